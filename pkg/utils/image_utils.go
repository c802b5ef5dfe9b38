package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GlowTextureSize 圆形精灵贴图边长（像素）
const GlowTextureSize = 32

// GlowAlpha 返回圆形软边遮罩在 (x, y) 处的透明度（0-255）
//
// 中心不透明，向边缘平滑衰减到 0，用于把方形点精灵裁成圆形。
func GlowAlpha(x, y, size int) uint8 {
	half := float64(size) / 2
	dx := (float64(x) + 0.5 - half) / half
	dy := (float64(y) + 0.5 - half) / half
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= 1 {
		return 0
	}
	// smoothstep 衰减
	t := 1 - d
	a := t * t * (3 - 2*t)
	return uint8(math.Round(a * 255))
}

// NewGlowMask 生成圆形 alpha 遮罩（白色，预乘 alpha）
func NewGlowMask(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := GlowAlpha(x, y, size)
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}

// NewGlowImage 生成点精灵使用的 ebiten 贴图
func NewGlowImage() *ebiten.Image {
	return ebiten.NewImageFromImage(NewGlowMask(GlowTextureSize))
}
