package world

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle on the screen plane.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// RectAround returns the rectangle of the given size centred on (cx, cy).
func RectAround(cx, cy, width, height float32) Rect {
	return Rect{
		MinX: cx - width/2,
		MinY: cy - height/2,
		MaxX: cx + width/2,
		MaxY: cy + height/2,
	}
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Grid describes a block wall.
type Grid struct {
	Rows      int
	Cols      int
	Gap       float32
	TopMargin float32
}

// TileBlocks returns the centres of a block wall laid out from the top of a
// screen. Columns are capped to what fits across the screen and the wall is
// centred horizontally; rows that would reach the lower half are dropped.
func TileBlocks(screenW, screenH, blockW, blockH float32, g Grid) []mgl32.Vec2 {
	if blockW <= 0 || blockH <= 0 || g.Rows <= 0 || g.Cols <= 0 {
		return nil
	}

	cols := g.Cols
	if fit := int((screenW + g.Gap) / (blockW + g.Gap)); cols > fit {
		cols = fit
	}
	if cols <= 0 {
		return nil
	}

	totalW := float32(cols)*blockW + float32(cols-1)*g.Gap
	startX := (screenW-totalW)/2 + blockW/2
	topY := screenH - g.TopMargin - blockH/2

	centres := make([]mgl32.Vec2, 0, cols*g.Rows)
	for row := 0; row < g.Rows; row++ {
		y := topY - float32(row)*(blockH+g.Gap)
		if y-blockH/2 < screenH/2 {
			break
		}
		for col := 0; col < cols; col++ {
			centres = append(centres, mgl32.Vec2{startX + float32(col)*(blockW+g.Gap), y})
		}
	}
	return centres
}

// ClampX keeps an object of the given half width inside [minX, maxX].
// An object wider than the range is centred.
func ClampX(x, halfWidth, minX, maxX float32) float32 {
	if 2*halfWidth >= maxX-minX {
		return (minX + maxX) / 2
	}
	return mgl32.Clamp(x, minX+halfWidth, maxX-halfWidth)
}
