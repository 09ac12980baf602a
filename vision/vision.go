package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// PhotoHint tells the analyzer what kind of photo to expect.
type PhotoHint string

const (
	// HintAuto lets the model decide between the flat-lay and worn regimes.
	HintAuto PhotoHint = "auto"
	// HintFlatLay indicates garments laid out separately, not worn.
	HintFlatLay PhotoHint = "flat-lay"
	// HintWornOutfit indicates a person wearing one or more garments.
	HintWornOutfit PhotoHint = "worn-outfit"
)

// BoundingBox locates a garment in the source image. All coordinates are
// normalized to [0,1] relative to the image dimensions. The model is asked
// to keep boxes inside the unit square but downstream code must not rely
// on it.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetectedGarment is a single garment reported by the vision model.
type DetectedGarment struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Confidence  float64     `json:"confidence"`
}

// DetectionResponse is the structured shape every analyzer must produce.
type DetectionResponse struct {
	HasMultipleItems bool              `json:"hasMultipleItems"`
	Items            []DetectedGarment `json:"items"`
}

// Usage contains token usage and cost information for one analysis call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// AnalysisResult contains the parsed detection and usage information.
type AnalysisResult struct {
	Detection *DetectionResponse
	Usage     Usage
}

// Analyzer can analyze a photo and report the garments it contains.
type Analyzer interface {
	// DetectGarments takes image data and returns the garments found in it.
	DetectGarments(ctx context.Context, imageData []byte, mimeType string, hint PhotoHint) (*AnalysisResult, error)
}

// parseDetectionResponse parses model output into a DetectionResponse.
// Models occasionally wrap the JSON in markdown fences despite being told
// not to, so those are stripped first.
func parseDetectionResponse(text string) (*DetectionResponse, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp DetectionResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w (response: %s)", err, text)
	}

	return &resp, nil
}
