package ui

import (
	"asciiglobe/internal/debug"
	"asciiglobe/internal/globe"
	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// GlobeView shows the globe on a braille canvas and turns mouse and zoom
// keys into camera gestures
type GlobeView struct {
	globe       *globe.Globe
	canvas      *render.Canvas
	width       int
	height      int
	aspectRatio float64

	dragging     bool
	lastX, lastY int
}

// NewGlobeView creates a view of width x height cells
func NewGlobeView(g *globe.Globe, width, height int, aspectRatio float64) *GlobeView {
	v := &GlobeView{globe: g, aspectRatio: aspectRatio}
	v.UpdateDimensions(width, height)
	return v
}

// UpdateDimensions resizes the canvas and the globe viewport
func (v *GlobeView) UpdateDimensions(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if v.canvas != nil && width == v.width && height == v.height {
		return
	}
	v.width = width
	v.height = height
	v.canvas = render.NewCanvas(width, height, v.aspectRatio)

	w, h := v.canvas.Size()
	v.globe.Resize(globe.Viewport{Width: w, Height: h})
	debug.Log("viewport_resized", "cols", width, "rows", height, "width", w, "height", h)
}

// Draw renders the globe if it changed and copies the canvas to the screen
func (v *GlobeView) Draw(screen tcell.Screen) {
	if v.globe.Dirty() {
		v.globe.Render(v.canvas)
	}
	v.canvas.Blit(screen, 0, 0)
}

// cellSize returns the logical pixel size of one terminal cell
func (v *GlobeView) cellSize() (float64, float64) {
	if v.width == 0 || v.height == 0 {
		return 0, 0
	}
	w, h := v.canvas.Size()
	return w / float64(v.width), h / float64(v.height)
}

// HandleMouse maps button-one drags to rotation and the wheel to zoom.
// It returns true when the event was consumed.
func (v *GlobeView) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		v.Zoom(v.globe.WheelStep())
		return true
	case buttons&tcell.WheelDown != 0:
		v.Zoom(1 / v.globe.WheelStep())
		return true
	case buttons&tcell.Button1 != 0:
		if !v.dragging {
			if x >= v.width || y >= v.height {
				return false
			}
			v.dragging = true
			v.lastX, v.lastY = x, y
			return true
		}
		cw, ch := v.cellSize()
		v.globe.HandleGesture(globe.Gesture{
			Origin:   globe.UserDrag,
			DX:       float64(x-v.lastX) * cw,
			DY:       float64(y-v.lastY) * ch,
			Pointers: 1,
		})
		v.lastX, v.lastY = x, y
		return true
	default:
		wasDragging := v.dragging
		v.dragging = false
		return wasDragging
	}
}

// Zoom multiplies the scale by factor as a wheel gesture
func (v *GlobeView) Zoom(factor float64) {
	v.globe.HandleGesture(globe.Gesture{Origin: globe.UserWheel, Factor: factor})
}

// Nudge rotates the globe by a number of cells as a drag gesture
func (v *GlobeView) Nudge(cols, rows int) {
	cw, ch := v.cellSize()
	v.globe.HandleGesture(globe.Gesture{
		Origin:   globe.UserDrag,
		DX:       float64(cols) * cw,
		DY:       float64(rows) * ch,
		Pointers: 1,
	})
}
