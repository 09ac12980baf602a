package crop

import (
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors is the palette used to name a garment crop's dominant color.
// Names line up with the color vocabulary the matcher's synonym groups use.
var namedColors = []struct {
	name string
	c    colorful.Color
}{
	{"black", colorful.Color{R: 0.05, G: 0.05, B: 0.05}},
	{"white", colorful.Color{R: 0.97, G: 0.97, B: 0.97}},
	{"gray", colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	{"red", colorful.Color{R: 0.8, G: 0.1, B: 0.1}},
	{"orange", colorful.Color{R: 0.95, G: 0.55, B: 0.1}},
	{"yellow", colorful.Color{R: 0.95, G: 0.85, B: 0.15}},
	{"green", colorful.Color{R: 0.15, G: 0.6, B: 0.2}},
	{"blue", colorful.Color{R: 0.15, G: 0.3, B: 0.7}},
	{"navy", colorful.Color{R: 0.05, G: 0.1, B: 0.3}},
	{"purple", colorful.Color{R: 0.5, G: 0.2, B: 0.6}},
	{"pink", colorful.Color{R: 0.95, G: 0.6, B: 0.75}},
	{"brown", colorful.Color{R: 0.45, G: 0.3, B: 0.15}},
	{"beige", colorful.Color{R: 0.9, G: 0.85, B: 0.7}},
}

type colorBucket struct {
	r, g, b uint8
	count   int
}

// DominantColorName estimates the dominant color of a garment crop and maps
// it to the nearest palette name. Pixels are quantized into coarse buckets
// so slight shading variations group together; fully transparent pixels
// (background-removed output) are skipped. Returns "" for an image with no
// opaque pixels.
func DominantColorName(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Empty() {
		return ""
	}

	// Sample on a stride so large crops stay cheap.
	step := 1
	for (bounds.Dx()/step)*(bounds.Dy()/step) > 10000 {
		step++
	}

	counts := make(map[[3]uint8]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			// Quantize to group similar colors.
			key := [3]uint8{
				uint8((r >> 8) / 32 * 32),
				uint8((g >> 8) / 32 * 32),
				uint8((b >> 8) / 32 * 32),
			}
			counts[key]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	buckets := make([]colorBucket, 0, len(counts))
	for key, n := range counts {
		buckets = append(buckets, colorBucket{r: key[0], g: key[1], b: key[2], count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].count > buckets[j].count })

	top := buckets[0]
	dominant := colorful.Color{
		R: float64(top.r) / 255,
		G: float64(top.g) / 255,
		B: float64(top.b) / 255,
	}

	best := namedColors[0].name
	bestDist := dominant.DistanceLab(namedColors[0].c)
	for _, nc := range namedColors[1:] {
		if d := dominant.DistanceLab(nc.c); d < bestDist {
			best = nc.name
			bestDist = d
		}
	}
	return best
}
