package flower

import (
	"math"
	"testing"
)

// TestGenerate_PointCount tests that both buffers match rows*cols
func TestGenerate_PointCount(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"Petals", DefaultPetals(), 120 * 420},
		{"Trumpet", DefaultTrumpet(), 120 * 210},
		{"Tiny", Config{BaseRadius: 10, Scale: 1, Height: 5, Rows: 3, Cols: 4}, 12},
		{"SinglePoint", Config{Scale: 1, Rows: 1, Cols: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := Generate(tt.cfg)
			if grid.PointCount() != tt.want {
				t.Errorf("PointCount() = %d, want %d", grid.PointCount(), tt.want)
			}
			if len(grid.Positions) != tt.want*3 {
				t.Errorf("len(Positions) = %d, want %d", len(grid.Positions), tt.want*3)
			}
			if len(grid.Colors) != len(grid.Positions) {
				t.Errorf("len(Colors) = %d, want %d", len(grid.Colors), len(grid.Positions))
			}
		})
	}
}

// TestGenerate_DefaultPetalParameters tests the documented petal parameters
func TestGenerate_DefaultPetalParameters(t *testing.T) {
	cfg := Config{
		BaseRadius: 80, Scale: 0.022, Height: 250, Curve1: 0.7, Curve2: 0.45,
		PetalCount: 6, PetalLength: 80, PetalSharpness: 2,
		Bumpiness: 2.5, BumpinessIntensity: 12,
		Hue1: 35, Hue2: 10, Saturation: 150,
		Rows: 120, Cols: 420,
	}
	grid := Generate(cfg)
	if grid.PointCount() != 50400 {
		t.Fatalf("PointCount() = %d, want 50400", grid.PointCount())
	}
	if cfg != DefaultPetals() {
		t.Error("DefaultPetals() differs from the documented petal parameters")
	}
}

// TestGenerate_Degenerate tests that invalid grids degrade to empty output
func TestGenerate_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"ZeroRows", 0, 10},
		{"ZeroCols", 10, 0},
		{"NegativeRows", -3, 10},
		{"BothZero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPetals()
			cfg.Rows, cfg.Cols = tt.rows, tt.cols

			grid := Generate(cfg)
			if grid == nil {
				t.Fatal("Generate returned nil")
			}
			if grid.PointCount() != 0 || len(grid.Colors) != 0 {
				t.Errorf("expected empty grid, got %d points", grid.PointCount())
			}
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject the config")
			}
		})
	}
}

// TestGenerate_Deterministic tests bit-identical output across calls
func TestGenerate_Deterministic(t *testing.T) {
	for _, cfg := range []Config{DefaultPetals(), DefaultTrumpet()} {
		a := Generate(cfg)
		b := Generate(cfg)

		for i := range a.Positions {
			if math.Float32bits(a.Positions[i]) != math.Float32bits(b.Positions[i]) {
				t.Fatalf("position %d differs: %v vs %v", i, a.Positions[i], b.Positions[i])
			}
		}
		for i := range a.Colors {
			if math.Float32bits(a.Colors[i]) != math.Float32bits(b.Colors[i]) {
				t.Fatalf("color %d differs: %v vs %v", i, a.Colors[i], b.Colors[i])
			}
		}
	}
}

// TestGenerate_Centered tests that the bounding box is centered on the origin
func TestGenerate_Centered(t *testing.T) {
	for _, cfg := range []Config{DefaultPetals(), DefaultTrumpet()} {
		grid := Generate(cfg)
		min, max := grid.Bounds()
		for axis := 0; axis < 3; axis++ {
			mid := (float64(min[axis]) + float64(max[axis])) / 2
			if math.Abs(mid) > 1e-5 {
				t.Errorf("axis %d center = %v, want ~0", axis, mid)
			}
		}
	}
}

// TestGenerate_RingSharesColor tests that color varies by ring only
func TestGenerate_RingSharesColor(t *testing.T) {
	cfg := DefaultPetals()
	cfg.Rows, cfg.Cols = 8, 16
	grid := Generate(cfg)

	for ring := 0; ring < cfg.Rows; ring++ {
		base := ring * cfg.Cols * 3
		for column := 1; column < cfg.Cols; column++ {
			i := base + column*3
			for c := 0; c < 3; c++ {
				if grid.Colors[i+c] != grid.Colors[base+c] {
					t.Fatalf("ring %d column %d channel %d: %v != %v", ring, column, c, grid.Colors[i+c], grid.Colors[base+c])
				}
			}
		}
	}
}

// TestGenerate_CenterRingCollapses tests that ring 0 has zero radius
func TestGenerate_CenterRingCollapses(t *testing.T) {
	cfg := DefaultPetals()
	cfg.Rows, cfg.Cols = 4, 12
	grid := Generate(cfg)

	x0, y0 := grid.Positions[0], grid.Positions[1]
	for column := 1; column < cfg.Cols; column++ {
		if grid.Positions[column*3] != x0 || grid.Positions[column*3+1] != y0 {
			t.Fatalf("ring 0 column %d is not at the shared center", column)
		}
	}
}

// TestBellShape tests the bell profile at known points
func TestBellShape(t *testing.T) {
	tests := []struct {
		name                   string
		h, r, c1, c2, expected float64
	}{
		{"AtOrigin", 250, 0, 0.7, 0.45, 0},
		{"UnitRadius", 100, 1, 2, 1, 100 * math.Exp(-1)},
		{"NegativeRadiusMirrors", 100, -1, 2, 1, 100 * math.Exp(-1)},
		{"NoDecay", 10, 2, 1, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BellShape(tt.h, tt.r, tt.c1, tt.c2)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("BellShape = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestBumpiness tests the radial wave term
func TestBumpiness(t *testing.T) {
	if got := Bumpiness(2.5, 0, 12, 45); got != 1 {
		t.Errorf("Bumpiness at r=0 = %v, want 1", got)
	}
	// sin(90°) = 1 → 1 + 2*1*1
	if got := Bumpiness(2, 1, 1, 90); math.Abs(got-3) > 1e-9 {
		t.Errorf("Bumpiness peak = %v, want 3", got)
	}
}
