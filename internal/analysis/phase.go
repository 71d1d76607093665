package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/greyspace/internal/storage"
)

type Point struct{ X, Y float64 }

// Path is the ship position in every frame.
func Path(frames []storage.FrameRecord) []Point {
	pts := make([]Point, len(frames))
	for i, fr := range frames {
		pts[i] = Point{X: fr.ShipX, Y: fr.ShipY}
	}
	return pts
}

// SpeedPotential pairs the potential under the ship with its speed. On a
// conserving run the points lie on the curve speed² = 2(E/m - g·P).
func SpeedPotential(frames []storage.FrameRecord) []Point {
	pts := make([]Point, 0, len(frames))
	for _, fr := range frames {
		pts = append(pts, Point{X: fr.Potential, Y: math.Hypot(fr.ShipVX, fr.ShipVY)})
	}
	return pts
}

// PlotASCII draws points as a terminal scatter plot. When flipY is set the
// y axis grows downward, matching field coordinates.
func PlotASCII(points []Point, width, height int, flipY bool) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y

	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	rowOf := func(y float64) int {
		r := int((y - minY) / rangeY * float64(height-1))
		if flipY {
			return r
		}
		return height - 1 - r
	}

	for i, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := rowOf(p.Y)
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch i {
		case 0:
			canvas[row][col] = 'S'
		case len(points) - 1:
			canvas[row][col] = 'E'
		default:
			if canvas[row][col] == ' ' {
				canvas[row][col] = '•'
			}
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := rowOf(0)
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
