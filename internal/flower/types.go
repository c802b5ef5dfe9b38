// Package flower generates the daffodil point clouds.
//
// A flower part is described by a Config and turned into a PointGrid by Generate.
// The same generator produces visually distinct parts (petals, trumpet) from
// different parameter sets.
package flower

import "fmt"

// Config holds the numeric parameters of one flower part.
// Field names follow the scene.yaml keys.
type Config struct {
	BaseRadius float64 `yaml:"baseRadius"`
	Scale      float64 `yaml:"scale"`
	Height     float64 `yaml:"height"`
	Curve1     float64 `yaml:"curve1"` // bell profile exponent on |r|
	Curve2     float64 `yaml:"curve2"` // bell profile decay

	// Petal shape (花瓣形状)
	PetalCount     float64 `yaml:"pNum"`
	PetalLength    float64 `yaml:"pLength"`
	PetalSharpness float64 `yaml:"pSharpness"`

	// Surface waviness (表面起伏)
	Bumpiness          float64 `yaml:"pBumpiness"`
	BumpinessIntensity float64 `yaml:"pBumpinessIntensity"`

	// Color gradient, hues in degrees
	Hue1       float64 `yaml:"hue1"`
	Hue2       float64 `yaml:"hue2"`
	Saturation float64 `yaml:"saturation"`

	// Grid density
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

const (
	// DefaultScale is the uniform scale of the petal geometry.
	DefaultScale = 0.022
	// DefaultRows is the ring count of both default parts.
	DefaultRows = 120
	// DefaultCols is the column count of the petals; the trumpet uses half.
	DefaultCols = 420
)

// DefaultPetals returns the parameters of the outer petal ring.
func DefaultPetals() Config {
	return Config{
		BaseRadius:         80,
		Scale:              DefaultScale,
		Height:             250,
		Curve1:             0.7,
		Curve2:             0.45,
		PetalCount:         6,
		PetalLength:        80,
		PetalSharpness:     2,
		Bumpiness:          2.5,
		BumpinessIntensity: 12,
		Hue1:               35,
		Hue2:               10,
		Saturation:         150,
		Rows:               DefaultRows,
		Cols:               DefaultCols,
	}
}

// DefaultTrumpet returns the parameters of the central trumpet (副冠).
func DefaultTrumpet() Config {
	return Config{
		BaseRadius:         100,
		Scale:              DefaultScale / 2,
		Height:             675,
		Curve1:             3,
		Curve2:             1,
		PetalCount:         20,
		PetalLength:        10,
		PetalSharpness:     0.2,
		Bumpiness:          10,
		BumpinessIntensity: 7,
		Hue1:               25,
		Hue2:               30,
		Saturation:         150,
		Rows:               DefaultRows,
		Cols:               DefaultCols / 2,
	}
}

// Validate reports configurations that would produce an empty grid.
// Generate itself never fails; Validate is for callers that want to reject
// such input up front.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", c.Rows)
	}
	if c.Cols <= 0 {
		return fmt.Errorf("cols must be positive, got %d", c.Cols)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	return nil
}

// PointGrid is a generated point set, flattened row-major (ring by ring).
// Positions and Colors are parallel: point i occupies [3i, 3i+3) in both.
type PointGrid struct {
	Rows      int
	Cols      int
	Positions []float32
	Colors    []float32
}

// PointCount returns the number of points in the grid.
func (g *PointGrid) PointCount() int {
	return len(g.Positions) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty grid yields two zero vectors.
func (g *PointGrid) Bounds() (min, max [3]float32) {
	if len(g.Positions) < 3 {
		return min, max
	}
	copy(min[:], g.Positions[:3])
	copy(max[:], g.Positions[:3])
	for i := 3; i < len(g.Positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := g.Positions[i+axis]
			if v < min[axis] {
				min[axis] = v
			}
			if v > max[axis] {
				max[axis] = v
			}
		}
	}
	return min, max
}
