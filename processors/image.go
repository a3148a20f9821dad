package processors

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxResizeWidth caps the resized output; images already narrower are
// never upscaled
const maxResizeWidth = 800

// maxDecodedImageSize bounds the decoded pixel buffer. A crafted header
// can claim 65535x65535 and make image.Decode allocate ~16GB otherwise.
const maxDecodedImageSize = 1 << 28 // 256 MiB

// RegisterImageProcessor adds the raster image resizer to the registry
func RegisterImageProcessor(registry *Registry) {
	registry.Register(Entry{
		Extensions:  []string{"jpg", "jpeg", "png", "webp", "gif", "tiff"},
		Mimetypes:   []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		Transform:   processImage,
		Description: "Resize and optimize images",
	})
}

// processImage produces a width-capped copy of the image as an output
// file plus a summary of the original dimensions
func processImage(_ context.Context, input Input) (*Output, error) {
	// Check decoded size before decoding the full image
	cfg, _, err := image.DecodeConfig(bytes.NewReader(input.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header of %s: %w", input.Filename, err)
	}
	if int64(cfg.Width)*int64(cfg.Height)*4 > maxDecodedImageSize {
		return nil, fmt.Errorf("image %s too large to decode: %dx%d pixels", input.Filename, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(input.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", input.Filename, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	resized := img
	if width > maxResizeWidth {
		targetHeight := height * maxResizeWidth / width
		if targetHeight < 1 {
			targetHeight = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxResizeWidth, targetHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		resized = dst
	}

	encoded, outExt, err := encodeImage(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image %s: %w", input.Filename, err)
	}

	baseName := strings.TrimSuffix(input.Filename, "."+input.Extension)
	if input.Extension == "" {
		baseName = input.Filename
	}
	outFilename := fmt.Sprintf("%s-resized.%s", baseName, outExt)

	return &Output{
		Text: fmt.Sprintf("Processed image: %s\nOriginal: %dx%d\nResized to max %dpx width",
			input.Filename, width, height, maxResizeWidth),
		File: &OutputFile{
			Content:  encoded,
			Filename: outFilename,
			Title:    "Resized: " + input.Filename,
		},
		ReplyInThread: true,
	}, nil
}

// encodeImage writes the image back out in a format we can produce.
// PNG and GIF keep their format; everything else (JPEG, WebP, TIFF)
// becomes JPEG.
func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "png", nil
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "gif", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "jpg", nil
	}
}
