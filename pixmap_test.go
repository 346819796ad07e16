package gradient

import (
	"image"
	"image/color"
	"testing"
)

// Verify at compile time that Pixmap implements image.Image.
var _ image.Image = (*Pixmap)(nil)

func TestPixmap(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 4*3*4 {
		t.Fatalf("len(Data()) = %d, want 48", len(pm.Data()))
	}

	row := pm.Row(1)
	copy(row[8:12], []uint8{255, 128, 0, 255})
	if got := pm.At(2, 1); got != (color.NRGBA{255, 128, 0, 255}) {
		t.Errorf("At(2, 1) = %v, want {255 128 0 255}", got)
	}
	if got := pm.GetPixel(2, 1); got.R != 1 || got.B != 0 || got.A != 1 {
		t.Errorf("GetPixel(2, 1) = %v", got)
	}
	if got := pm.GetPixel(9, 9); got != (RGBA{}) {
		t.Errorf("GetPixel out of bounds = %v, want zero", got)
	}
}

func TestPixmap_CloneIsDeep(t *testing.T) {
	pm := NewPixmap(2, 2)
	c := pm.Clone()
	c.Data()[0] = 99
	if pm.Data()[0] != 0 {
		t.Error("Clone shares pixel data with the original")
	}
}

func TestPixmap_ToImage(t *testing.T) {
	pm := NewPixmap(2, 1)
	copy(pm.Data(), []uint8{1, 2, 3, 255, 4, 5, 6, 255})
	img := pm.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{4, 5, 6, 255}) {
		t.Errorf("RGBAAt(1, 0) = %v", got)
	}
	pm.Data()[0] = 200
	if img.Pix[0] != 1 {
		t.Error("ToImage shares pixel data with the pixmap")
	}
}
