// Package skybox turns six cube face images into the single horizontal strip
// the renderer uploads as a cubemap. Faces are ordered +X, -X, +Y, -Y, +Z, -Z.
package skybox

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"

	// Extra decoders for face images beyond the png/jpeg bild registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Faces is the number of cube faces.
const Faces = 6

// MaxFaceSize caps the face edge so the strip stays within common GPU texture limits.
const MaxFaceSize = 2048

var errEmpty = errors.New("skybox: empty face")

// Compose resizes every face to size×size and lays them out left to right.
// A size of 0 uses the smallest face edge, capped at MaxFaceSize.
func Compose(faces [Faces]image.Image, size int) (*image.RGBA, error) {
	if size <= 0 {
		size = MaxFaceSize
		for i, f := range faces {
			if f == nil {
				return nil, fmt.Errorf("%w: %d", errEmpty, i)
			}
			b := f.Bounds()
			size = min(size, b.Dx(), b.Dy())
		}
	}
	if size <= 0 {
		return nil, errEmpty
	}

	strip := image.NewRGBA(image.Rect(0, 0, size*Faces, size))
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("%w: %d", errEmpty, i)
		}
		face := f
		if b := f.Bounds(); b.Dx() != size || b.Dy() != size {
			face = transform.Resize(f, size, size, transform.Linear)
		}
		dst := image.Rect(i*size, 0, (i+1)*size, size)
		xdraw.Copy(strip, dst.Min, face, face.Bounds(), xdraw.Src, nil)
	}
	return strip, nil
}

// Load decodes the six face files and composes them. Repeated paths are decoded once.
func Load(paths [Faces]string, size int) (*image.RGBA, error) {
	var faces [Faces]image.Image
	decoded := make(map[string]image.Image, Faces)
	for i, p := range paths {
		if img, ok := decoded[p]; ok {
			faces[i] = img
			continue
		}
		img, err := imgio.Open(p)
		if err != nil {
			return nil, fmt.Errorf("skybox: face %d: %w", i, err)
		}
		decoded[p] = img
		faces[i] = img
	}
	return Compose(faces, size)
}
