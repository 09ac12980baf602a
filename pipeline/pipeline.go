// Package pipeline wires detection, cropping and background removal into
// the upload flow. It commits nothing to persistent state, so the caller
// can cancel between stages at any time without cleanup.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/outfitloop/garmentpipe/closet"
	"github.com/outfitloop/garmentpipe/crop"
	"github.com/outfitloop/garmentpipe/detect"
	"github.com/outfitloop/garmentpipe/removal"
	"github.com/outfitloop/garmentpipe/vision"
)

// ProcessedItem is one garment's final image after cropping and optional
// background removal. Err is set when this item's crop failed; siblings are
// unaffected.
type ProcessedItem struct {
	Item         detect.DetectedItem
	Image        []byte
	UsedFallback bool
	Err          error
}

// Pipeline runs a photo through detection, per-item extraction and
// background removal. The remover may be nil to skip background removal.
type Pipeline struct {
	detector *detect.Service
	cropper  *crop.Cropper
	remover  *removal.Orchestrator
}

// New assembles a pipeline from its stages.
func New(detector *detect.Service, cropper *crop.Cropper, remover *removal.Orchestrator) *Pipeline {
	return &Pipeline{detector: detector, cropper: cropper, remover: remover}
}

// Process detects the garments in imageData and produces a final image per
// item. When detection degrades or finds nothing, the whole photo is
// processed as a single unnamed item so the caller can always proceed.
func (p *Pipeline) Process(ctx context.Context, imageData []byte, mimeType string, hint vision.PhotoHint) (*detect.MultiItemDetectionResult, []ProcessedItem) {
	result := p.detector.Detect(ctx, imageData, mimeType, hint)

	if result.Err != nil || result.ItemCount == 0 {
		return result, []ProcessedItem{p.wholeImageItem(ctx, imageData)}
	}

	src, err := crop.Decode(imageData)
	if err != nil {
		log.Warn().Err(err).Msg("source image decode failed after detection, using whole photo")
		return result, []ProcessedItem{p.wholeImageItem(ctx, imageData)}
	}

	outcomes := p.cropper.CropAll(ctx, src, result.Items)
	processed := make([]ProcessedItem, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			processed[i] = ProcessedItem{Item: outcome.Item, Err: outcome.Err}
			continue
		}
		data, err := encodePNG(outcome.Item.ExtractedImage)
		if err != nil {
			processed[i] = ProcessedItem{Item: outcome.Item, Err: err}
			continue
		}
		processed[i] = p.finishItem(ctx, outcome.Item, data)
	}

	return result, processed
}

// wholeImageItem treats the full photo as one item.
func (p *Pipeline) wholeImageItem(ctx context.Context, imageData []byte) ProcessedItem {
	item := detect.DetectedItem{
		BoundingBox: vision.BoundingBox{X: 0, Y: 0, Width: 1, Height: 1},
		Confidence:  1,
	}
	return p.finishItem(ctx, item, imageData)
}

// finishItem runs background removal when a remover is configured.
func (p *Pipeline) finishItem(ctx context.Context, item detect.DetectedItem, data []byte) ProcessedItem {
	if p.remover == nil {
		return ProcessedItem{Item: item, Image: data}
	}
	res := p.remover.RemoveBackground(ctx, data)
	return ProcessedItem{Item: item, Image: res.Image, UsedFallback: res.UsedFallback}
}

// ScannedItems converts processed garments into matcher input. The vision
// response carries no color field, so each item's color is estimated from
// the dominant color of its final image. Items whose crop failed are
// skipped.
func ScannedItems(processed []ProcessedItem) []closet.ScannedItem {
	items := make([]closet.ScannedItem, 0, len(processed))
	for _, p := range processed {
		if p.Err != nil {
			continue
		}
		color := ""
		if img, err := crop.Decode(p.Image); err == nil {
			color = crop.DominantColorName(img)
		}
		items = append(items, closet.ScannedItem{
			Name:       p.Item.Name,
			Category:   p.Item.Category,
			Color:      color,
			Confidence: p.Item.Confidence,
		})
	}
	return items
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode extracted image: %w", err)
	}
	return buf.Bytes(), nil
}
