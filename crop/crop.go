// Package crop extracts per-garment image regions from a source photo using
// the normalized bounding boxes reported by detection. Boxes from the model
// are not trusted: every region is padded, converted to pixels and clamped so
// the extracted rectangle always lies fully inside the source image.
package crop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/outfitloop/garmentpipe/detect"
	"github.com/outfitloop/garmentpipe/vision"
)

const (
	// DefaultPaddingRatio is the fraction of a box's own width/height added
	// on each side before extraction. Empirically chosen; overridable via
	// Opts or config.Tunables.
	DefaultPaddingRatio = 0.1
	// DefaultWorkers bounds concurrent crops in CropAll.
	DefaultWorkers = 4
)

// ErrDegenerateBox indicates a bounding box that clamps to an empty pixel
// region.
var ErrDegenerateBox = errors.New("bounding box clamps to an empty region")

// ErrImageDecode indicates the source image bytes could not be decoded.
var ErrImageDecode = errors.New("source image does not decode")

// Opts configures a Cropper. Zero fields fall back to defaults.
type Opts struct {
	PaddingRatio float64
	Workers      int
}

// Cropper extracts padded, clamped garment regions from source images.
type Cropper struct {
	paddingRatio float64
	workers      int
}

// New creates a Cropper.
func New(opts Opts) *Cropper {
	c := &Cropper{paddingRatio: DefaultPaddingRatio, workers: DefaultWorkers}
	if opts.PaddingRatio > 0 {
		c.paddingRatio = opts.PaddingRatio
	}
	if opts.Workers > 0 {
		c.workers = opts.Workers
	}
	return c
}

// Decode decodes raw image bytes into an image. The error wraps
// ErrImageDecode so callers can treat it as a per-item crop failure.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}

// Crop extracts the region described by box from src. The box is expanded
// symmetrically by the padding ratio in normalized space, converted to pixel
// coordinates and clamped to the image bounds. The returned image never
// reads outside [0,W]x[0,H] of the source.
func (c *Cropper) Crop(src image.Image, box vision.BoundingBox) (image.Image, error) {
	rect, err := c.pixelRect(src.Bounds().Dx(), src.Bounds().Dy(), box)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(src, rect), nil
}

// pixelRect computes the padded, clamped pixel rectangle for a normalized
// box within a width x height image.
func (c *Cropper) pixelRect(width, height int, box vision.BoundingBox) (image.Rectangle, error) {
	p := c.paddingRatio

	// Symmetric expansion in normalized space.
	nx := box.X - p*box.Width
	ny := box.Y - p*box.Height
	nw := box.Width * (1 + 2*p)
	nh := box.Height * (1 + 2*p)

	px := int(math.Round(nx * float64(width)))
	py := int(math.Round(ny * float64(height)))
	pw := int(math.Round(nw * float64(width)))
	ph := int(math.Round(nh * float64(height)))

	// Clamp to image bounds. The origin moves first so the size clamp sees
	// the final position.
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	if px > width {
		px = width
	}
	if py > height {
		py = height
	}
	if pw > width-px {
		pw = width - px
	}
	if ph > height-py {
		ph = height - py
	}

	if pw <= 0 || ph <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: box %+v in %dx%d image", ErrDegenerateBox, box, width, height)
	}

	return image.Rect(px, py, px+pw, py+ph), nil
}

// Outcome is the per-item result of a batch crop. Exactly one of Err or
// Item.ExtractedImage is set.
type Outcome struct {
	Item detect.DetectedItem
	Err  error
}

// CropAll crops every detected item out of src concurrently, bounded by the
// worker limit. Items are independent: one degenerate box does not affect
// its siblings. Outcomes are returned in input order.
func (c *Cropper) CropAll(ctx context.Context, src image.Image, items []detect.DetectedItem) []Outcome {
	outcomes := make([]Outcome, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		g.Go(func() error {
			outcomes[i].Item = items[i]
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			img, err := c.Crop(src, items[i].BoundingBox)
			if err != nil {
				log.Warn().Err(err).Str("item", items[i].Name).Msg("failed to crop detected item")
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Item.ExtractedImage = img
			return nil
		})
	}
	// Goroutines record failures in their outcome instead of returning them.
	_ = g.Wait()

	return outcomes
}
