package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthanhphan/icon-layout-configurator/internal/layout"
	"github.com/spf13/cobra"
)

func newUploadCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload image files",
		Long: `Upload one or more image files. Each file is sent as its own request;
uploads run in parallel and a failed upload does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, opts, args)
		},
	}
}

func runUpload(cmd *cobra.Command, opts *rootOptions, paths []string) error {
	files := make([]layout.ImageFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, layout.ImageFile{Name: filepath.Base(p), Content: content})
	}

	bridge := opts.bridge()
	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range bridge.SaveImages(cmd.Context(), files) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", res.Filename, bridge.LoadImage(res.Filename))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(files))
	}
	return nil
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored images",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := opts.bridge().ListImages(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newURLCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "url <filename>",
		Short: "Print the URL of a stored image",
		Long:  `Print the URL a stored image is served from. The service is not contacted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), opts.bridge().LoadImage(args[0]))
			return nil
		},
	}
}

func newIconsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "Show the built-in icon palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, icon := range layout.Icons() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s  %s\n", icon.ID, icon.Glyph, icon.Name)
			}
			return nil
		},
	}
}
