package crop

import (
	"context"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitloop/garmentpipe/detect"
	"github.com/outfitloop/garmentpipe/vision"
)

func TestPixelRect_Golden(t *testing.T) {
	// 1000x1000 image, box {0.1, 0.1, 0.3, 0.4}, padding 0.1:
	// expanded box is {0.07, 0.06, 0.36, 0.48} so the pixel region is
	// x:[70,430], y:[60,540].
	c := New(Opts{PaddingRatio: 0.1})
	rect, err := c.pixelRect(1000, 1000, vision.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.4})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(70, 60, 430, 540), rect)
	assert.Equal(t, 360, rect.Dx())
	assert.Equal(t, 480, rect.Dy())
}

func TestCrop_GoldenDimensions(t *testing.T) {
	c := New(Opts{})
	src := image.NewRGBA(image.Rect(0, 0, 1000, 1000))

	out, err := c.Crop(src, vision.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.4})
	require.NoError(t, err)
	assert.Equal(t, 360, out.Bounds().Dx())
	assert.Equal(t, 480, out.Bounds().Dy())
}

func TestPixelRect_ClampsToImageBounds(t *testing.T) {
	c := New(Opts{})

	tests := []struct {
		name string
		box  vision.BoundingBox
	}{
		{"box at origin pads past left and top", vision.BoundingBox{X: 0, Y: 0, Width: 0.5, Height: 0.5}},
		{"box at far corner pads past right and bottom", vision.BoundingBox{X: 0.6, Y: 0.6, Width: 0.4, Height: 0.4}},
		{"box wider than the image", vision.BoundingBox{X: -0.2, Y: 0.1, Width: 1.5, Height: 0.5}},
		{"full frame box", vision.BoundingBox{X: 0, Y: 0, Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, err := c.pixelRect(640, 480, tt.box)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rect.Min.X, 0)
			assert.GreaterOrEqual(t, rect.Min.Y, 0)
			assert.LessOrEqual(t, rect.Max.X, 640)
			assert.LessOrEqual(t, rect.Max.Y, 480)
			assert.Positive(t, rect.Dx())
			assert.Positive(t, rect.Dy())
		})
	}
}

func TestPixelRect_AlwaysWithinBounds(t *testing.T) {
	c := New(Opts{})
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		box := vision.BoundingBox{
			X:      rng.Float64(),
			Y:      rng.Float64(),
			Width:  rng.Float64(),
			Height: rng.Float64(),
		}
		rect, err := c.pixelRect(1280, 720, box)
		if err != nil {
			assert.ErrorIs(t, err, ErrDegenerateBox)
			continue
		}
		assert.GreaterOrEqual(t, rect.Min.X, 0)
		assert.GreaterOrEqual(t, rect.Min.Y, 0)
		assert.LessOrEqual(t, rect.Max.X, 1280)
		assert.LessOrEqual(t, rect.Max.Y, 720)
	}
}

func TestPixelRect_DegenerateBox(t *testing.T) {
	c := New(Opts{})

	tests := []struct {
		name string
		box  vision.BoundingBox
	}{
		{"zero width", vision.BoundingBox{X: 0.5, Y: 0.5, Width: 0, Height: 0.2}},
		{"negative height", vision.BoundingBox{X: 0.5, Y: 0.5, Width: 0.2, Height: -0.3}},
		{"entirely right of the image", vision.BoundingBox{X: 1.5, Y: 0.5, Width: 0.2, Height: 0.2}},
		{"entirely below the image", vision.BoundingBox{X: 0.5, Y: 2, Width: 0.2, Height: 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.pixelRect(1000, 1000, tt.box)
			assert.ErrorIs(t, err, ErrDegenerateBox)
		})
	}
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestCropAll_PerItemIsolation(t *testing.T) {
	c := New(Opts{Workers: 2})
	src := image.NewRGBA(image.Rect(0, 0, 500, 500))

	items := []detect.DetectedItem{
		{Name: "Shirt", BoundingBox: vision.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}},
		{Name: "Broken", BoundingBox: vision.BoundingBox{X: 2, Y: 2, Width: 0.1, Height: 0.1}},
		{Name: "Jeans", BoundingBox: vision.BoundingBox{X: 0.5, Y: 0.5, Width: 0.4, Height: 0.4}},
	}

	outcomes := c.CropAll(context.Background(), src, items)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "Shirt", outcomes[0].Item.Name)
	assert.NoError(t, outcomes[0].Err)
	assert.NotNil(t, outcomes[0].Item.ExtractedImage)

	assert.Equal(t, "Broken", outcomes[1].Item.Name)
	assert.ErrorIs(t, outcomes[1].Err, ErrDegenerateBox)
	assert.Nil(t, outcomes[1].Item.ExtractedImage)

	assert.Equal(t, "Jeans", outcomes[2].Item.Name)
	assert.NoError(t, outcomes[2].Err)
	assert.NotNil(t, outcomes[2].Item.ExtractedImage)
}

func TestCropAll_Cancelled(t *testing.T) {
	c := New(Opts{})
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []detect.DetectedItem{
		{Name: "Shirt", BoundingBox: vision.BoundingBox{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}},
	}
	outcomes := c.CropAll(ctx, src, items)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, context.Canceled)
}
