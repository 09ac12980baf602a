package detect

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitloop/garmentpipe/vision"
)

type fakeAnalyzer struct {
	result *vision.AnalysisResult
	err    error
	calls  int
}

func (f *fakeAnalyzer) DetectGarments(ctx context.Context, imageData []byte, mimeType string, hint vision.PhotoHint) (*vision.AnalysisResult, error) {
	f.calls++
	return f.result, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetect_MultipleItems(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &vision.AnalysisResult{
			Detection: &vision.DetectionResponse{
				HasMultipleItems: true,
				Items: []vision.DetectedGarment{
					{Name: " Black Hoodie ", Category: "Tops", BoundingBox: vision.BoundingBox{X: 0.1, Y: 0.1, Width: 0.4, Height: 0.3}, Confidence: 0.9},
					{Name: "Blue Jeans", Category: "bottoms", BoundingBox: vision.BoundingBox{X: 0.1, Y: 0.5, Width: 0.4, Height: 0.4}, Confidence: 1.7},
				},
			},
		},
	}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), pngBytes(t, 800, 600), "image/png", vision.HintFlatLay)
	require.NoError(t, res.Err)
	assert.True(t, res.HasMultipleItems)
	assert.Equal(t, 2, res.ItemCount)
	assert.Equal(t, 800, res.SourceWidth)
	assert.Equal(t, 600, res.SourceHeight)
	assert.Equal(t, "Black Hoodie", res.Items[0].Name)
	assert.Equal(t, "tops", res.Items[0].Category)
	assert.Equal(t, 1.0, res.Items[1].Confidence, "confidence is clamped to [0,1]")
}

func TestDetect_SingleItem(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &vision.AnalysisResult{
			Detection: &vision.DetectionResponse{
				Items: []vision.DetectedGarment{
					{Name: "Red Summer Dress", Category: "dresses", Confidence: 0.95},
				},
			},
		},
	}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), pngBytes(t, 100, 100), "image/png", vision.HintWornOutfit)
	require.NoError(t, res.Err)
	assert.False(t, res.HasMultipleItems)
	assert.Equal(t, 1, res.ItemCount)
}

func TestDetect_NothingFound(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &vision.AnalysisResult{Detection: &vision.DetectionResponse{}},
	}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), pngBytes(t, 100, 100), "image/png", vision.HintAuto)
	require.NoError(t, res.Err)
	assert.False(t, res.HasMultipleItems)
	assert.Equal(t, 0, res.ItemCount)
	assert.Empty(t, res.Items)
}

func TestDetect_AnalyzerFailureDegrades(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("model timed out")}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), pngBytes(t, 100, 100), "image/png", vision.HintAuto)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrAnalysis)
	assert.False(t, res.HasMultipleItems)
	assert.Empty(t, res.Items)
	assert.Equal(t, 100, res.SourceWidth, "dimensions survive a degraded detection")
}

func TestDetect_UndecodableImage(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), []byte("not an image"), "image/png", vision.HintAuto)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrImageDecode)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, analyzer.calls, "undecodable input never reaches the analyzer")
}

func TestDetect_NamelessItemsDropped(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &vision.AnalysisResult{
			Detection: &vision.DetectionResponse{
				Items: []vision.DetectedGarment{
					{Name: "   ", Category: "tops", Confidence: 0.8},
					{Name: "Wool Sweater", Category: "tops", Confidence: 0.8},
				},
			},
		},
	}
	svc := NewService(analyzer)

	res := svc.Detect(context.Background(), pngBytes(t, 100, 100), "image/png", vision.HintAuto)
	require.NoError(t, res.Err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Wool Sweater", res.Items[0].Name)
}
