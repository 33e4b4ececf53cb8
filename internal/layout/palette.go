package layout

// Drag payload keys.
const (
	FormatText  = "text/plain"
	FormatImage = "image"
)

// DataTransfer carries string data from a drag source to a drop target,
// keyed by format.
type DataTransfer interface {
	SetData(format, data string)
	GetData(format string) string
}

// Transfer is an in-memory DataTransfer.
type Transfer map[string]string

func (t Transfer) SetData(format, data string) {
	t[format] = data
}

func (t Transfer) GetData(format string) string {
	return t[format]
}

// Palette is the closable panel of draggable icons.
type Palette struct {
	icons   []IconDefinition
	visible bool
	onClose func()
}

// NewPalette returns a visible palette. onClose, if set, runs on every Close.
func NewPalette(onClose func()) *Palette {
	return &Palette{
		icons:   Icons(),
		visible: true,
		onClose: onClose,
	}
}

func (p *Palette) Icons() []IconDefinition {
	return p.icons
}

func (p *Palette) Visible() bool {
	return p.visible
}

// BeginDrag attaches the icon id and glyph to dt for the drop target.
func (p *Palette) BeginDrag(dt DataTransfer, iconID, glyph string) {
	dt.SetData(FormatText, iconID)
	dt.SetData(FormatImage, glyph)
}

// Close hides the panel.
func (p *Palette) Close() {
	p.visible = false
	if p.onClose != nil {
		p.onClose()
	}
}

// Open shows the panel again.
func (p *Palette) Open() {
	p.visible = true
}
