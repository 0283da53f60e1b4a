package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// stripes returns a 2x3 image whose rows are red, green and blue.
func stripes() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	rows := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	for y, c := range rows {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeFlipsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, stripes()); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue bottom row first, got %v", got)
	}
	if got := img.RGBAAt(1, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red top row last, got %v", got)
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, stripes()); err != nil {
		t.Fatalf("failed to encode bmp: %v", err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue bottom row first, got %v", got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.SetRGBA(10, 20, color.RGBA{R: 9, A: 255})

	out := ToRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("expected origin-anchored bounds, got %v", out.Bounds())
	}
	if out.RGBAAt(0, 0).R != 9 {
		t.Errorf("expected top-left pixel to be copied, got %v", out.RGBAAt(0, 0))
	}
}

func TestFlipVerticalTwiceIsIdentity(t *testing.T) {
	img := ToRGBA(stripes())
	twice := FlipVertical(FlipVertical(img))
	if !bytes.Equal(img.Pix, twice.Pix) {
		t.Error("double flip should restore the original pixels")
	}
}

func TestSolid(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	img := Solid(c)
	if img.Bounds().Dx() != 1 || img.RGBAAt(0, 0) != c {
		t.Errorf("unexpected solid image %v", img.Pix)
	}
}

func TestUploadableEmptyImage(t *testing.T) {
	tests := []struct {
		name string
		img  *image.RGBA
	}{
		{"nil", nil},
		{"zero size", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"zero height", image.NewRGBA(image.Rect(0, 0, 4, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uploadable(tt.img)
			if got.Bounds().Dx() != 1 || got.Bounds().Dy() != 1 {
				t.Fatalf("expected 1x1 fallback, got %v", got.Bounds())
			}
			if got.RGBAAt(0, 0) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
				t.Errorf("expected white fallback, got %v", got.RGBAAt(0, 0))
			}
		})
	}

	img := Solid(color.RGBA{R: 7, A: 255})
	if uploadable(img) != img {
		t.Error("non-empty image should be uploaded as is")
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, stripes()); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write png: %v", err)
	}

	if _, err := decodeFile(path); err != nil {
		t.Errorf("decodeFile failed: %v", err)
	}
	if _, err := decodeFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := decodeFile(""); err == nil {
		t.Error("expected error for empty path")
	}
}
