package engine

// Viewport maps between stage coordinates (the canvas's own logical
// space, where node geometry lives) and screen coordinates (pixels on
// the visible surface).
//
//	screen = stage*Zoom + Pan
type Viewport struct {
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	Zoom float64 `json:"zoom"`
}

// NewViewport returns the identity viewport: origin at origin, zoom 1.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ScreenToStage converts a screen point to stage coordinates.
func (v Viewport) ScreenToStage(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

// StageToScreen converts a stage point to screen coordinates.
func (v Viewport) StageToScreen(x, y float64) (float64, float64) {
	return x*v.Zoom + v.PanX, y*v.Zoom + v.PanY
}

// zoomedAt returns the viewport at the new zoom level with the pan
// recomputed so the given stage anchor keeps its screen position:
//
//	anchor*zoomOld + panOld == anchor*zoomNew + panNew
func (v Viewport) zoomedAt(zoom, anchorX, anchorY float64) Viewport {
	sx, sy := v.StageToScreen(anchorX, anchorY)
	return Viewport{
		PanX: sx - anchorX*zoom,
		PanY: sy - anchorY*zoom,
		Zoom: zoom,
	}
}
