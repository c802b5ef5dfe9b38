package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/daffodil/pkg/ecs"
	"github.com/gonewx/daffodil/pkg/utils"
)

// maxQuadsPerBatch 每次 DrawTriangles 的最大精灵数（uint16 索引上限 65535 个顶点）
const maxQuadsPerBatch = 16383

// BackgroundColor 场景清屏颜色
var BackgroundColor = color.RGBA{R: 0x0b, G: 0x0d, B: 0x12, A: 0xff}

// RenderSystem 把点云绘制为带圆形遮罩的精灵
//
// 渲染流程：
//  1. PointProjector 投影所有可见点并按深度排序
//  2. 每个点生成 4 个顶点（2 个三角形组成正方形），顶点颜色即点的颜色
//  3. 所有精灵共享同一张圆形遮罩贴图，按 maxQuadsPerBatch 分批绘制
type RenderSystem struct {
	projector *PointProjector
	glow      *ebiten.Image
	glowSize  float32
	vertices  []ebiten.Vertex // 顶点数组（复用，避免每帧分配）
	indices   []uint16        // 索引数组（复用，避免每帧分配）
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		projector: NewPointProjector(em),
		glow:      utils.NewGlowImage(),
		glowSize:  utils.GlowTextureSize,
		vertices:  make([]ebiten.Vertex, 0, maxQuadsPerBatch*4),
		indices:   make([]uint16, 0, maxQuadsPerBatch*6),
	}
}

// Draw 清屏并绘制所有点云
func (s *RenderSystem) Draw(screen *ebiten.Image, view utils.CameraView, sizeScale float32) {
	screen.Fill(BackgroundColor)

	points := s.projector.Project(view, sizeScale)
	for start := 0; start < len(points); start += maxQuadsPerBatch {
		end := start + maxQuadsPerBatch
		if end > len(points) {
			end = len(points)
		}
		s.drawBatch(screen, points[start:end])
	}
}

// drawBatch 绘制一批不超过 maxQuadsPerBatch 个精灵
func (s *RenderSystem) drawBatch(screen *ebiten.Image, points []ProjectedPoint) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, p := range points {
		half := p.Size / 2
		baseIndex := uint16(len(s.vertices))

		s.vertices = append(s.vertices,
			s.vertex(p.X-half, p.Y-half, 0, 0, p),
			s.vertex(p.X+half, p.Y-half, s.glowSize, 0, p),
			s.vertex(p.X-half, p.Y+half, 0, s.glowSize, p),
			s.vertex(p.X+half, p.Y+half, s.glowSize, s.glowSize, p),
		)
		s.indices = append(s.indices,
			baseIndex+0, baseIndex+1, baseIndex+2, // 第一个三角形
			baseIndex+1, baseIndex+3, baseIndex+2, // 第二个三角形
		)
	}

	if len(s.vertices) == 0 {
		return
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterLinear
	screen.DrawTriangles(s.vertices, s.indices, s.glow, op)
}

// vertex 构建一个顶点；贴图为白色预乘 alpha，顶点颜色直接作为精灵颜色
func (s *RenderSystem) vertex(x, y, srcX, srcY float32, p ProjectedPoint) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   srcX,
		SrcY:   srcY,
		ColorR: p.R,
		ColorG: p.G,
		ColorB: p.B,
		ColorA: 1,
	}
}
