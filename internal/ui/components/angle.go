package components

import (
	"math"
	"strings"
)

// AngleCanvas draws an angle of degrees between a horizontal ray and a
// second ray of the given radius. Columns are doubled to make up for tall
// terminal cells. Right angles get a corner marker.
func AngleCanvas(degrees float64, radius int) string {
	radius = max(radius, 2)
	w, h := 4*radius+1, radius+1
	cx, cy := 2*radius, radius

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}
	for x := cx + 1; x < w; x++ {
		grid[cy][x] = '─'
	}

	rad := degrees * math.Pi / 180
	ray := rayRune(degrees)
	for t := 0.5; t <= float64(radius); t += 0.25 {
		x := cx + int(math.Round(2*t*math.Cos(rad)))
		y := cy - int(math.Round(t*math.Sin(rad)))
		if y < 0 || y >= cy || x < 0 || x >= w {
			continue
		}
		grid[y][x] = ray
	}

	grid[cy][cx] = '●'
	if math.Abs(degrees-90) < 0.5 {
		grid[cy-1][cx+1] = '─'
		grid[cy-1][cx+2] = '┐'
	}

	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func rayRune(degrees float64) rune {
	switch {
	case degrees < 22.5:
		return '─'
	case degrees < 67.5:
		return '/'
	case degrees <= 112.5:
		return '│'
	case degrees <= 157.5:
		return '\\'
	default:
		return '─'
	}
}
