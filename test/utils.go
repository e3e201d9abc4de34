package test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

// NewMultipartImageRequest builds a multipart upload with the image encoded
// as PNG under the "image" form field.
func NewMultipartImageRequest(target string, fieldFilename string, img image.Image) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("image", fieldFilename)
	png.Encode(part, img)
	writer.Close()

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Add("Content-Type", writer.FormDataContentType())
	return req
}

// NamedImage pairs an image with the filename it should be uploaded as.
type NamedImage struct {
	Filename string
	Image    image.Image
}

// NewMultipartImagesRequest uploads several PNG images under one form field.
func NewMultipartImagesRequest(target string, field string, images []NamedImage) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, ni := range images {
		part, _ := writer.CreateFormFile(field, ni.Filename)
		png.Encode(part, ni.Image)
	}
	writer.Close()

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Add("Content-Type", writer.FormDataContentType())
	return req
}

// SolidImage is a single-color image, handy for deterministic color
// extraction assertions.
func SolidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SplitImage fills the top half with one color and the bottom half with
// another, driving the classifier's vertical-ratio heuristic.
func SplitImage(w, h int, top, bottom color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := top
		if y >= h/2 {
			c = bottom
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// StubExtractor returns a fixed embedding for every image; failures can be
// injected through Err.
type StubExtractor struct {
	Embedding []float64
	Err       error
}

func (s StubExtractor) Embed(ctx context.Context, img image.Image) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]float64, len(s.Embedding))
	copy(out, s.Embedding)
	return out, nil
}

func (s StubExtractor) Dim() int {
	return len(s.Embedding)
}
