package layout

import (
	"errors"
	"slices"
)

var ErrEmptyPayload = errors.New("drop payload carries no icon reference")

// Position is a point on the layout surface, in drop coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlacedIcon is an icon or uploaded image dropped onto the surface.
// Ref is an IconDefinition.ID or a stored image filename.
type PlacedIcon struct {
	Ref      string   `json:"ref"`
	Image    string   `json:"image"`
	Position Position `json:"position"`
}

// Surface is the drop target. Placements live for the session only.
type Surface struct {
	placed []PlacedIcon
}

func NewSurface() *Surface {
	return &Surface{}
}

// Drop reads the drag payload and places it at pos as given.
func (s *Surface) Drop(dt DataTransfer, pos Position) (PlacedIcon, error) {
	ref := dt.GetData(FormatText)
	if ref == "" {
		return PlacedIcon{}, ErrEmptyPayload
	}

	placed := PlacedIcon{
		Ref:      ref,
		Image:    dt.GetData(FormatImage),
		Position: pos,
	}
	s.placed = append(s.placed, placed)
	return placed, nil
}

// Placed returns placements in drop order.
func (s *Surface) Placed() []PlacedIcon {
	return slices.Clone(s.placed)
}
