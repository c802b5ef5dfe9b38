package flower

import "math"

// bellExponent is the exponent applied to |r| inside the decay term of BellShape.
const bellExponent = 1.5

// zOffset lowers the whole surface so the cup opens upward around the origin
// before recentering.
const zOffset = 200.0

// BellShape is the asymmetric bell profile giving the flower its cupped silhouette:
//
//	h * e^(-c2 * |r|^1.5) * |r|^c1
func BellShape(height, r, curve1, curve2 float64) float64 {
	ar := math.Abs(r)
	return height * math.Exp(-curve2*math.Pow(ar, bellExponent)) * math.Pow(ar, curve1)
}

// Bumpiness adds a wave that grows with the radius:
//
//	1 + bumpiness * r² * sin(intensity * angle)
//
// angleDeg is in degrees.
func Bumpiness(bumpiness, r, intensity, angleDeg float64) float64 {
	return 1 + bumpiness*r*r*math.Sin(degToRad(intensity*angleDeg))
}

// Generate builds the point grid for cfg.
//
// The result is deterministic: identical configs give bit-identical buffers.
// Rows or cols <= 0 produce an empty grid.
func Generate(cfg Config) *PointGrid {
	grid := &PointGrid{Rows: cfg.Rows, Cols: cfg.Cols}
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		grid.Rows, grid.Cols = 0, 0
		grid.Positions = []float32{}
		grid.Colors = []float32{}
		return grid
	}

	count := cfg.Rows * cfg.Cols
	grid.Positions = make([]float32, 0, count*3)
	grid.Colors = make([]float32, 0, count*3)

	for ring := 0; ring < cfg.Rows; ring++ {
		r, g, b := RingColor(cfg, ring)
		ringFactor := float64(ring) / float64(cfg.Rows)

		for column := 0; column < cfg.Cols; column++ {
			angle := float64(column) * 360 / float64(cfg.Cols)
			petalAngle := (cfg.PetalCount / 2) * angle

			// 正弦调制半径形成花瓣，半径随环号线性增长
			radius := (cfg.PetalLength*math.Pow(math.Abs(math.Sin(degToRad(petalAngle))), cfg.PetalSharpness) + cfg.BaseRadius) * ringFactor

			x := radius * math.Cos(degToRad(angle))
			y := radius * math.Sin(degToRad(angle))
			z := BellShape(cfg.Height, radius/100, cfg.Curve1, cfg.Curve2) - zOffset +
				Bumpiness(cfg.Bumpiness, radius/100, cfg.BumpinessIntensity, angle)

			grid.Positions = append(grid.Positions,
				float32(x*cfg.Scale),
				float32(y*cfg.Scale),
				float32(z*cfg.Scale),
			)
			grid.Colors = append(grid.Colors, r, g, b)
		}
	}

	center(grid.Positions)
	return grid
}

// center translates positions so the bounding-box center sits at the origin.
func center(positions []float32) {
	if len(positions) < 3 {
		return
	}
	var min, max [3]float64
	for axis := 0; axis < 3; axis++ {
		min[axis] = float64(positions[axis])
		max[axis] = float64(positions[axis])
	}
	for i := 3; i < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := float64(positions[i+axis])
			min[axis] = math.Min(min[axis], v)
			max[axis] = math.Max(max[axis], v)
		}
	}

	var offset [3]float64
	for axis := 0; axis < 3; axis++ {
		offset[axis] = (min[axis] + max[axis]) / 2
	}
	for i := 0; i < len(positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			positions[i+axis] = float32(float64(positions[i+axis]) - offset[axis])
		}
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
