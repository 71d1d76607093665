package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
)

var itemColors = map[string]string{
	space.KindFuel:   "#ffaa00",
	space.KindExit:   "#00ff88",
	space.KindBomb:   "#ff4444",
	space.KindPlanet: "#aa88ff",
}

// grey maps a potential to a grey level, 0 black and 1 white.
func grey(v float64) string {
	g := int(math.Round(dynamo.Clamp(v, 0, 1) * 255))
	return fmt.Sprintf("#%02x%02x%02x", g, g, g)
}

// SpaceToSVG draws the field as grey cells with the ship, particles and
// interactables on top. scale is the size of one field cell in pixels.
func SpaceToSVG(sp *space.Space, scale float64) string {
	if sp == nil {
		return ""
	}
	f := sp.Field
	width := float64(f.Width) * scale
	height := float64(f.Height) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<g shape-rendering="crispEdges">
`, width, height, width, height))

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, float64(y)*scale, scale, scale, grey(f.Potential(x, y))))
		}
	}
	sb.WriteString("</g>\n")

	circle := func(p dynamo.Vec2, r float64, fill string) {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X*scale, p.Y*scale, math.Max(r*scale, 1), fill))
	}

	snap := sp.Snapshot()
	for _, it := range snap.Items {
		circle(it.Pos, it.Size, itemColors[it.Kind])
	}
	for _, p := range snap.Particles {
		circle(p.Pos, p.Size, "#00ccff")
	}
	if snap.Ship != nil {
		circle(snap.Ship.Pos, snap.Ship.Size, "#ffffff")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG of the ship path in a recorded run
func TrajectoryToSVG(frames []storage.FrameRecord, width, height int, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := frames[0].ShipX, frames[0].ShipX
	minY, maxY := frames[0].ShipY, frames[0].ShipY
	for _, fr := range frames {
		minX, maxX = math.Min(minX, fr.ShipX), math.Max(maxX, fr.ShipX)
		minY, maxY = math.Min(minY, fr.ShipY), math.Max(maxY, fr.ShipY)
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

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	// Field y grows downward, as in SVG.
	for i, fr := range frames {
		x := (fr.ShipX - minX) / rangeX * float64(width)
		y := (fr.ShipY - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
`)
	for _, fr := range frames {
		if !fr.Fired {
			continue
		}
		x := (fr.ShipX - minX) / rangeX * float64(width)
		y := (fr.ShipY - minY) / rangeY * float64(height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#ffff00"/>
`, x, y))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
