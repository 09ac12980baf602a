// Package detect turns a photo into a structured list of garments by way of
// an external vision analyzer. Detection is a quality enhancement, not a
// required step: every failure mode degrades to an empty item list with an
// informational error so the caller can fall back to treating the photo as a
// single whole item.
package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/outfitloop/garmentpipe/vision"
)

// ErrImageDecode indicates the input bytes did not decode to an image with
// nonzero dimensions.
var ErrImageDecode = errors.New("image does not decode to nonzero dimensions")

// ErrAnalysis indicates the vision call failed or returned output that could
// not be parsed into the expected shape.
var ErrAnalysis = errors.New("vision analysis failed")

// DetectedItem is a garment found in a photo. ExtractedImage is nil until
// the crop stage has run for this item.
type DetectedItem struct {
	Name           string
	Category       string
	BoundingBox    vision.BoundingBox
	Confidence     float64
	ExtractedImage image.Image
}

// MultiItemDetectionResult is the outcome of one detection call. It is
// created once per call and not mutated afterwards. Err is informational:
// when set, Items is empty and the caller should treat the photo as a
// single whole item.
type MultiItemDetectionResult struct {
	HasMultipleItems bool
	ItemCount        int
	Items            []DetectedItem
	SourceWidth      int
	SourceHeight     int
	Usage            vision.Usage
	Err              error
}

// Service asks a vision analyzer to identify garments in a photo and
// normalizes the response.
type Service struct {
	analyzer vision.Analyzer
}

// NewService creates a detection service backed by the given analyzer.
func NewService(analyzer vision.Analyzer) *Service {
	return &Service{analyzer: analyzer}
}

// Detect identifies the garments in imageData. It never returns a hard
// failure: decode errors, vision call errors and unparseable responses all
// produce a result with empty Items and Err set.
func (s *Service) Detect(ctx context.Context, imageData []byte, mimeType string, hint vision.PhotoHint) *MultiItemDetectionResult {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		if err == nil {
			err = fmt.Errorf("decoded to %dx%d", cfg.Width, cfg.Height)
		}
		log.Warn().Err(err).Msg("detection input image does not decode")
		return &MultiItemDetectionResult{
			Err: fmt.Errorf("%w: %v", ErrImageDecode, err),
		}
	}

	result, err := s.analyzer.DetectGarments(ctx, imageData, mimeType, hint)
	if err == nil && (result == nil || result.Detection == nil) {
		err = errors.New("analyzer returned no detection")
	}
	if err != nil {
		log.Warn().Err(err).Msg("garment detection degraded to single item")
		return &MultiItemDetectionResult{
			SourceWidth:  cfg.Width,
			SourceHeight: cfg.Height,
			Err:          fmt.Errorf("%w: %v", ErrAnalysis, err),
		}
	}

	items := normalizeItems(result.Detection.Items)
	log.Info().
		Int("items", len(items)).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Msg("garment detection complete")

	return &MultiItemDetectionResult{
		HasMultipleItems: len(items) > 1,
		ItemCount:        len(items),
		Items:            items,
		SourceWidth:      cfg.Width,
		SourceHeight:     cfg.Height,
		Usage:            result.Usage,
	}
}

// normalizeItems cleans up model output: names and categories are trimmed,
// categories lowercased, confidence clamped to [0,1]. Items with no usable
// name are dropped. Bounding boxes are passed through as-is; the cropper
// clamps geometry.
func normalizeItems(garments []vision.DetectedGarment) []DetectedItem {
	items := make([]DetectedItem, 0, len(garments))
	for _, g := range garments {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			log.Warn().Interface("garment", g).Msg("dropping detected garment without a name")
			continue
		}
		items = append(items, DetectedItem{
			Name:        name,
			Category:    strings.ToLower(strings.TrimSpace(g.Category)),
			BoundingBox: g.BoundingBox,
			Confidence:  clamp01(g.Confidence),
		})
	}
	return items
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
