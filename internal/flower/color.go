package flower

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RingColor returns the RGB color (0-1) shared by every point of a ring.
//
// The gradient moves the hue from Hue1 by Hue2/360 degrees per ring and fades the
// saturation by 1/80 per ring. The HSV-style saturation is mapped to HSL at full
// value before conversion.
func RingColor(cfg Config, ring int) (r, g, b float32) {
	h, s, l := ringHSL(cfg, ring)
	c := colorful.Hsl(h*360, s, l)
	return float32(c.R), float32(c.G), float32(c.B)
}

// ringHSL returns the normalized hue [0,1), HSL saturation and lightness [0,1].
func ringHSL(cfg Config, ring int) (h, s, l float64) {
	rf := float64(ring)
	h = (cfg.Hue1 - rf*(cfg.Hue2/360)) / 360
	h -= math.Floor(h)

	sv := (cfg.Saturation - rf) / 80
	l = (2 - sv) / 2

	// 分母为 0 时亮度为 0 或 1，饱和度不影响结果
	denom := 1 - math.Abs(2*l-1)
	if denom != 0 {
		s = sv / denom
	}

	return h, clamp01(s), clamp01(l)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
