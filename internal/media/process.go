package media

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"
)

// Rendition is a fixed-size recompressed copy of an uploaded image.
type Rendition struct {
	Name    string
	Width   int
	Height  int
	Quality int
}

var (
	Thumbnail = Rendition{Name: "thumbnail", Width: 128, Height: 128, Quality: 60}
	Preview   = Rendition{Name: "preview", Width: 600, Height: 400, Quality: 90}
)

// Processed holds the encoded renditions of one upload.
type Processed struct {
	Thumbnail []byte
	Preview   []byte
}

// Process decodes an original upload and derives its renditions. The EXIF
// orientation of camera photos is applied before cropping.
func Process(original []byte) (Processed, error) {
	img, err := imaging.Decode(bytes.NewReader(original))
	if err != nil {
		return Processed{}, err
	}
	img = orient(img, orientation(original))

	thumb, err := render(img, Thumbnail)
	if err != nil {
		return Processed{}, err
	}
	preview, err := render(img, Preview)
	if err != nil {
		return Processed{}, err
	}
	return Processed{Thumbnail: thumb, Preview: preview}, nil
}

func render(img image.Image, r Rendition) ([]byte, error) {
	fitted := imaging.Fill(img, r.Width, r.Height, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(r.Quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orientation reads the EXIF orientation tag. Images without EXIF data are
// upright.
func orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

func orient(img image.Image, o int) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
