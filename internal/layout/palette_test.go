package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcons_FixedCatalog(t *testing.T) {
	icons := Icons()
	require.Len(t, icons, 4)

	ids := make([]string, 0, len(icons))
	for _, icon := range icons {
		ids = append(ids, icon.ID)
	}
	assert.Equal(t, []string{"king", "queen", "minister", "soldier"}, ids)

	// Callers cannot change the catalog.
	icons[0].Glyph = "X"
	king, ok := LookupIcon("king")
	require.True(t, ok)
	assert.Equal(t, "♔", king.Glyph)

	_, ok = LookupIcon("bishop")
	assert.False(t, ok)
}

func TestPalette_BeginDrag(t *testing.T) {
	dt := Transfer{}
	NewPalette(nil).BeginDrag(dt, "king", "♔")

	assert.Equal(t, "king", dt.GetData(FormatText))
	assert.Equal(t, "♔", dt.GetData(FormatImage))
}

func TestPalette_CloseAndOpen(t *testing.T) {
	closed := 0
	p := NewPalette(func() { closed++ })
	assert.True(t, p.Visible())

	p.Close()
	assert.False(t, p.Visible())
	assert.Equal(t, 1, closed)

	p.Open()
	assert.True(t, p.Visible())
}
