package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/basinsim/internal/dynamo"
)

// TrajectoryToSVG draws a bob's path together with both poles. The view
// is fitted to the path and the poles with 10% padding.
func TrajectoryToSVG(points []dynamo.Vec2, poles [2]dynamo.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range append(points[1:len(points):len(points)], poles[0], poles[1]) {
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

	project := func(p dynamo.Vec2) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width),
			float64(height) - (p.Y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	for i, fill := range [2]string{"#ff0000", "#0000ff"} {
		x, y := project(poles[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
