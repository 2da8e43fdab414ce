package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

const (
	// DefaultGalleryColumns is the thumbnail count per gallery row.
	DefaultGalleryColumns = 3
	// DefaultThumbnailSize caps the longer thumbnail edge in pixels.
	DefaultThumbnailSize = 800
)

const galleryPage = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
.grid-container {
  display: grid;
  grid-template-columns: repeat({{.Columns}}, 1fr);
  gap: 10px;
  padding: 10px;
}
.grid-container img {
  width: 100%;
  height: auto;
  border-radius: 5px;
  cursor: pointer;
  transition: transform 0.2s;
}
.grid-container img:hover { transform: scale(1.05); }
.modal {
  display: none;
  position: fixed;
  z-index: 1000;
  left: 0;
  top: 0;
  width: 100%;
  height: 100%;
  background-color: rgba(0, 0, 0, 0.8);
  justify-content: center;
  align-items: center;
}
.modal img { max-width: 90%; max-height: 90%; object-fit: contain; border-radius: 10px; }
.modal:target { display: flex; }
.close { position: absolute; top: 10px; right: 20px; font-size: 30px; color: white; cursor: pointer; }
</style>
</head>
<body>
<div class="grid-container">
{{range .Images}}<a href="#img{{.Index}}"><img src="{{.Src}}" id="thumb{{.Index}}"></a>
<div id="img{{.Index}}" class="modal"><a href="#" class="close">&times;</a><img src="{{.Src}}"></div>
{{end}}</div>
</body>
</html>
`

var galleryTmpl = template.Must(template.New("gallery").Parse(galleryPage))

type galleryImage struct {
	Index int
	Src   template.URL
}

// Gallery writes a standalone HTML page to w with every image embedded as
// a base64 PNG thumbnail; clicking a thumbnail opens the full-size modal.
// Thumbnails are shrunk so the longer edge is at most maxSize pixels.
func Gallery(w io.Writer, images []image.Image, columns, maxSize int) error {
	if columns < 1 {
		columns = DefaultGalleryColumns
	}
	if maxSize < 1 {
		maxSize = DefaultThumbnailSize
	}

	data := struct {
		Columns int
		Images  []galleryImage
	}{Columns: columns}

	var buf bytes.Buffer
	for i, img := range images {
		buf.Reset()
		if err := png.Encode(&buf, shrink(img, maxSize)); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		data.Images = append(data.Images, galleryImage{Index: i, Src: template.URL(src)})
	}

	if err := galleryTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// GalleryDir builds a gallery at outPath from the images in dir, in file
// name order. Entries that do not decode as images are skipped.
func GalleryDir(dir, outPath string, columns, maxSize int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	var images []image.Image
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		img, err := decodeImage(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := Gallery(out, images, columns, maxSize); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// shrink caps the longer edge at maxSize, keeping the aspect ratio. Small
// images pass through untouched.
func shrink(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	target := fitRect(image.Rect(0, 0, maxSize, maxSize), b)
	dst := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
