package flower

import (
	"math"
	"testing"
)

// TestRingHSL_HueWrapsIntoUnitRange tests hue normalization
func TestRingHSL_HueWrapsIntoUnitRange(t *testing.T) {
	cfg := DefaultPetals()
	cfg.Hue1 = 0
	cfg.Hue2 = 360

	h, _, _ := ringHSL(cfg, 5)
	if h < 0 || h >= 1 {
		t.Errorf("hue = %v, want [0,1)", h)
	}
}

// TestRingHSL_Clamped tests that saturation and lightness stay in [0,1]
func TestRingHSL_Clamped(t *testing.T) {
	cfg := DefaultPetals()
	for ring := 0; ring < 400; ring++ {
		h, s, l := ringHSL(cfg, ring)
		if math.IsNaN(h) || math.IsNaN(s) || math.IsNaN(l) {
			t.Fatalf("ring %d produced NaN (%v, %v, %v)", ring, h, s, l)
		}
		if s < 0 || s > 1 || l < 0 || l > 1 {
			t.Fatalf("ring %d out of range: s=%v l=%v", ring, s, l)
		}
	}
}

// TestRingColor_FadesToWhite tests that the saturation fade brightens outer rings
func TestRingColor_FadesToWhite(t *testing.T) {
	cfg := DefaultPetals()
	cfg.Saturation = 80 // sv = 1 at ring 0

	r0, g0, b0 := RingColor(cfg, 0)
	r1, g1, b1 := RingColor(cfg, 79)

	if r1+g1+b1 <= r0+g0+b0 {
		t.Errorf("outer ring should be lighter: ring0=(%v,%v,%v) ring79=(%v,%v,%v)", r0, g0, b0, r1, g1, b1)
	}

	// sv = 0 → l = 1 → white
	r, g, b := RingColor(cfg, 80)
	if math.Abs(float64(r)-1) > 1e-6 || math.Abs(float64(g)-1) > 1e-6 || math.Abs(float64(b)-1) > 1e-6 {
		t.Errorf("fully faded ring = (%v,%v,%v), want white", r, g, b)
	}
}

// TestRingColor_InRange tests all channels stay within 0..1
func TestRingColor_InRange(t *testing.T) {
	for _, cfg := range []Config{DefaultPetals(), DefaultTrumpet()} {
		for ring := 0; ring < cfg.Rows; ring++ {
			r, g, b := RingColor(cfg, ring)
			for _, c := range []float32{r, g, b} {
				if c < -1e-6 || c > 1+1e-6 {
					t.Fatalf("ring %d channel out of range: %v", ring, c)
				}
			}
		}
	}
}
