package layout

import "slices"

// IconDefinition is one entry of the fixed icon palette.
type IconDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

var catalog = []IconDefinition{
	{ID: "king", Name: "King", Glyph: "♔"},
	{ID: "queen", Name: "Queen", Glyph: "♕"},
	{ID: "minister", Name: "Minister", Glyph: "♗"},
	{ID: "soldier", Name: "Soldier", Glyph: "♙"},
}

// Icons returns the palette in display order.
func Icons() []IconDefinition {
	return slices.Clone(catalog)
}

// LookupIcon finds an icon by id.
func LookupIcon(id string) (IconDefinition, bool) {
	for _, icon := range catalog {
		if icon.ID == id {
			return icon, true
		}
	}
	return IconDefinition{}, false
}
