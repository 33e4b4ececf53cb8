package cli

import (
	"time"

	"github.com/anthanhphan/icon-layout-configurator/internal/layout"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	serverURL string
	timeout   time.Duration
	parallel  int
}

func (o *rootOptions) bridge() *layout.Bridge {
	return layout.NewBridge(o.serverURL,
		layout.WithTimeout(o.timeout),
		layout.WithParallelUploads(o.parallel),
	)
}

// NewRootCommand builds the iconctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "iconctl",
		Short: "Work with the icon layout image service",
		Long: `iconctl uploads and inspects the images used by the icon layout configurator.

Examples:
  iconctl upload cat.jpg dog.png     # Upload images, print stored names
  iconctl list                       # List stored images
  iconctl url 1700000000000_cat.jpg  # Print the URL of a stored image
  iconctl icons                      # Show the built-in icon palette`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.serverURL, "server", "s", layout.DefaultServerURL, "image service base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	root.PersistentFlags().IntVarP(&opts.parallel, "parallel", "p", 4, "concurrent uploads")

	root.AddCommand(newUploadCommand(opts))
	root.AddCommand(newListCommand(opts))
	root.AddCommand(newURLCommand(opts))
	root.AddCommand(newIconsCommand())

	return root
}
