package tool

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
)

// OverlayAlpha is the opacity of preview overlays.
const OverlayAlpha = 100.0 / 255.0

// Overlay is a translucent preview covering a set of cells.
type Overlay struct {
	points map[tilemap.Point]struct{}
	tint   colorful.Color
	alpha  float64
}

// NewOverlay creates an overlay over points tinted with c at OverlayAlpha.
func NewOverlay(points []tilemap.Point, c tcell.Color) *Overlay {
	o := &Overlay{
		points: make(map[tilemap.Point]struct{}, len(points)),
		tint:   toColorful(c),
		alpha:  OverlayAlpha,
	}
	for _, p := range points {
		o.points[p] = struct{}{}
	}
	return o
}

// Covers returns true if the overlay is drawn over (x, y). A nil overlay
// covers nothing.
func (o *Overlay) Covers(x, y int) bool {
	if o == nil {
		return false
	}
	_, ok := o.points[tilemap.Point{X: x, Y: y}]
	return ok
}

// Len returns the number of covered cells.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.points)
}

// Blend returns under with the overlay tint composited on top.
func (o *Overlay) Blend(under tcell.Color) tcell.Color {
	r, g, b := toColorful(under).BlendRgb(o.tint, o.alpha).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
