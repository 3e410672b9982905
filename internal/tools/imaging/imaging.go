// Package imaging resizes and re-encodes uploaded images.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/tools"
)

const (
	DefaultQuality = 90

	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeBMP  = "image/bmp"
	MimeTIFF = "image/tiff"
)

const (
	errInvalidImage     = "Invalid image"
	errTooLarge         = "Image too large"
	errConversionFailed = "Canvas conversion failed"
)

// Options are the optional target parameters. Zero means not given.
type Options struct {
	Width   int
	Height  int
	Quality int
}

type Transformer struct {
	defaultQuality int
	interpolator   draw.Interpolator
	maxPixels      int
}

func New(cfg config.ImagingConfig) (*Transformer, error) {
	interp, err := ParseInterpolator(cfg.Interpolator)
	if err != nil {
		return nil, err
	}

	quality := cfg.DefaultQuality
	if quality <= 0 {
		quality = DefaultQuality
	}

	return &Transformer{
		defaultQuality: quality,
		interpolator:   interp,
		maxPixels:      cfg.MaxPixels,
	}, nil
}

func ParseInterpolator(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	case "nearest", "nearestneighbor":
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("unknown interpolator %q", name)
	}
}

func (t *Transformer) Kind() catalog.Kind {
	return catalog.KindImage
}

func (t *Transformer) CheckInputs(_ catalog.Descriptor, values tools.Values) error {
	return values.RequireFile("file")
}

func (t *Transformer) Execute(ctx context.Context, tool catalog.Descriptor, values tools.Values) tools.Result {
	if err := values.RequireFile("file"); err != nil {
		return tools.NewErrorResult(err.Error())
	}
	file := values.File("file")

	mode := catalog.ModeResize
	if a, ok := tool.Action.(catalog.ClientImage); ok {
		mode = a.Mode
	}

	var opts Options
	opts.Width, _ = values.PositiveInt("width")
	opts.Height, _ = values.PositiveInt("height")
	opts.Quality, _ = values.PositiveInt("quality")

	return t.Transform(ctx, file, mode, opts)
}

// Transform decodes file, scales it to the target dimensions and encodes it
// again. Compress always produces JPEG; resize keeps the input format when
// an encoder exists for it.
func (t *Transformer) Transform(ctx context.Context, file *tools.File, mode catalog.ImageMode, opts Options) tools.Result {
	log := logger.FromContext(ctx)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		log.Debug("image header not decodable", zap.String("file", file.Name), zap.Error(err))
		return tools.NewErrorResult(errInvalidImage)
	}
	if t.tooLarge(cfg.Width, cfg.Height) {
		return tools.NewErrorResult(errTooLarge)
	}

	if err := ctx.Err(); err != nil {
		return tools.NewErrorResult(err.Error())
	}

	src, format, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		log.Debug("image not decodable", zap.String("file", file.Name), zap.Error(err))
		return tools.NewErrorResult(errInvalidImage)
	}

	bounds := src.Bounds()
	width, height := TargetSize(bounds.Dx(), bounds.Dy(), opts.Width, opts.Height)
	if width <= 0 || height <= 0 {
		return tools.NewErrorResult(errConversionFailed)
	}
	if t.tooLarge(width, height) {
		return tools.NewErrorResult(errTooLarge)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	t.interpolator.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	if err := ctx.Err(); err != nil {
		return tools.NewErrorResult(err.Error())
	}

	mime := file.MimeType
	if mode == catalog.ModeCompress {
		mime = MimeJPEG
	}

	data, mime, err := encode(dst, mime, t.quality(opts.Quality))
	if err != nil {
		log.Warn("image encoding failed", zap.String("file", file.Name), zap.String("mime", mime), zap.Error(err))
		return tools.NewErrorResult(errConversionFailed)
	}

	log.Debug("image transformed",
		zap.String("file", file.Name),
		zap.String("source_format", format),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("mime", mime),
		zap.Int("bytes", len(data)))

	return tools.NewFileResult(data, "processed-"+file.Name, mime)
}

// TargetSize computes the output dimensions. Both requested dimensions are
// used verbatim; a single one scales the other to keep the aspect ratio.
func TargetSize(srcW, srcH, width, height int) (int, int) {
	switch {
	case width > 0 && height > 0:
		return width, height
	case width > 0:
		return width, int(float64(srcH) * (float64(width) / float64(srcW)))
	case height > 0:
		return int(float64(srcW) * (float64(height) / float64(srcH))), height
	default:
		return srcW, srcH
	}
}

func (t *Transformer) tooLarge(w, h int) bool {
	return t.maxPixels > 0 && int64(w)*int64(h) > int64(t.maxPixels)
}

// quality maps the requested percentage onto the JPEG encoder range.
func (t *Transformer) quality(requested int) int {
	q := requested
	if q <= 0 {
		q = t.defaultQuality
	}
	return min(max(q, 1), 100)
}

// encode writes img in the format named by mime. Formats without an encoder
// fall back to PNG, and the returned mime reflects what was written.
func encode(img image.Image, mime string, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	var err error

	switch normalizeMime(mime) {
	case MimeJPEG:
		mime = MimeJPEG
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case MimeGIF:
		mime = MimeGIF
		err = gif.Encode(&buf, img, nil)
	case MimeBMP:
		mime = MimeBMP
		err = bmp.Encode(&buf, img)
	case MimeTIFF:
		mime = MimeTIFF
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		mime = MimePNG
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, mime, err
	}
	return buf.Bytes(), mime, nil
}

func normalizeMime(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "image/jpg", "image/pjpeg":
		return MimeJPEG
	case "image/x-ms-bmp", "image/x-bmp":
		return MimeBMP
	}
	return mime
}
