// Package texture provides image decoding and OpenGL texture upload.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"unsafe"

	// Registered decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/breakout/internal/logger"
)

// Decode reads a PNG, JPEG, BMP or WebP image and returns it as RGBA with rows flipped
// so the first row is the bottom of the image, matching GL texture space.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	logger.Named("texture").Debug("image decoded",
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return FlipVertical(ToRGBA(img)), nil
}

// ToRGBA converts any image to *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with its rows in reverse order.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dst := out.Pix[(b.Dy()-1-y)*out.Stride:]
		copy(dst[:rowLen], src)
	}
	return out
}

// Solid returns a 1x1 image of the given colour.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func white() *image.RGBA {
	return Solid(color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// uploadable returns img, or a white pixel when img has nothing to upload.
func uploadable(img *image.RGBA) *image.RGBA {
	if img == nil || img.Bounds().Empty() || len(img.Pix) == 0 {
		return white()
	}
	return img
}

// Upload creates a mipmapped, repeating GL texture from img.
// An empty image is replaced by a white pixel.
func Upload(img *image.RGBA) uint32 {
	img = uploadable(img)
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// Load decodes and uploads the image at path. A missing or undecodable
// image yields a white 1x1 texture so the mesh still renders.
func Load(path string) uint32 {
	log := logger.Named("texture")

	img, err := decodeFile(path)
	if err == nil && img.Bounds().Empty() {
		err = fmt.Errorf("image has no pixels")
	}
	if err != nil {
		log.Warn("using fallback texture", zap.String("path", path), zap.Error(err))
		return Upload(white())
	}
	return Upload(img)
}

func decodeFile(path string) (*image.RGBA, error) {
	if path == "" {
		return nil, fmt.Errorf("no texture configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Delete frees a texture created by Upload or Load.
func Delete(texID uint32) {
	if texID != 0 {
		gl.DeleteTextures(1, &texID)
	}
}
