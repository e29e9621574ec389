package render

import (
	"bytes"
	"image/png"
	"testing"

	"asciiglobe/internal/geo"
)

func TestImageCanvas_BackingStoreScalesWithPixelRatio(t *testing.T) {
	c := NewImageCanvas(800, 600, 2)
	b := c.Image().Bounds()
	if b.Dx() != 1600 || b.Dy() != 1200 {
		t.Fatalf("expected 1600x1200 backing store, got %v", b)
	}
	if w, h := c.Size(); w != 800 || h != 600 {
		t.Fatalf("logical size changed: %vx%v", w, h)
	}
}

func TestImageCanvas_FillUsesLogicalCoordinates(t *testing.T) {
	c := NewImageCanvas(100, 100, 2)
	c.FillRings([][]geo.Point{{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}}}, ColorLand)

	inside := c.Image().RGBAAt(60, 60)
	if inside.G != ColorLand.G || inside.A != 0xff {
		t.Fatalf("device pixel (60,60) should be land, got %+v", inside)
	}
	outside := c.Image().RGBAAt(120, 120)
	if outside.A != 0 {
		t.Fatalf("device pixel (120,120) should be empty, got %+v", outside)
	}
}

func TestImageCanvas_StrokeAndPNG(t *testing.T) {
	c := NewImageCanvas(50, 20, 1)
	c.StrokeLine([]geo.Point{{X: 0, Y: 10}, {X: 50, Y: 10}}, 2, ColorBorder)
	if px := c.Image().RGBAAt(25, 10); px.A == 0 {
		t.Fatalf("stroke did not cover its center line")
	}

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 50 {
		t.Fatalf("unexpected decoded width %d", img.Bounds().Dx())
	}
}

func TestAsciiLabel(t *testing.T) {
	if got := asciiLabel(FlagGlyph("FR") + " France"); got != "[FR] France" {
		t.Fatalf("unexpected ascii label %q", got)
	}
	if got := asciiLabel("Côte"); got != "C?te" {
		t.Fatalf("unexpected replacement %q", got)
	}
}

func TestImageCanvas_TextDrawsHalo(t *testing.T) {
	c := NewImageCanvas(100, 40, 1)
	c.Text(50, 20, "France", ColorLabel, ColorHalo)
	white, dark := 0, 0
	img := c.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			px := img.RGBAAt(x, y)
			switch {
			case px.A == 0:
			case px.R == 0xff && px.G == 0xff:
				white++
			case px.R < 0x40:
				dark++
			}
		}
	}
	if white == 0 || dark == 0 {
		t.Fatalf("expected halo and fill pixels, got white=%d dark=%d", white, dark)
	}
}
