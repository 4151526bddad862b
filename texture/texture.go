// Package texture decodes image files into tightly packed pixel buffers ready
// for glTexImage2D.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is decoded pixel data. Rows are stored top row first with no padding,
// Channels bytes per pixel: 3 (RGB) for fully opaque images, 4 (RGBA) otherwise.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Load opens and decodes the image file at path. See Decode for maxSize.
func Load(path string, maxSize int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w", path, err)
	}
	return img, nil
}

// Decode reads any registered image format (png, jpeg, gif, bmp, tiff, webp) from r.
//
// When maxSize is positive and either side is larger, the image is scaled
// down with Catmull-Rom filtering so its longer side equals maxSize, keeping
// the aspect ratio.
func Decode(r io.Reader, maxSize int) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, errors.New("image has no pixels")
	}

	w, h := fit(b.Dx(), b.Dy(), maxSize)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), src, b, draw.Src, nil)
	}

	img := &Image{Width: w, Height: h}
	if canvas.Opaque() {
		img.Channels = 3
		img.Pix = packRGB(canvas)
	} else {
		img.Channels = 4
		img.Pix = canvas.Pix
	}
	return img, nil
}

// fit returns w x h shrunk so neither side exceeds maxSize.
func fit(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

func packRGB(m *image.NRGBA) []byte {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	pix := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}
	return pix
}
