package imaging

import "math"

// Contour describes one connected region of a binary mask.
type Contour struct {
	Area      int
	Perimeter float64
	MinX      int
	MinY      int
	MaxX      int
	MaxY      int
}

// Width reports the bounding-box width in pixels.
func (c Contour) Width() int { return c.MaxX - c.MinX + 1 }

// Height reports the bounding-box height in pixels.
func (c Contour) Height() int { return c.MaxY - c.MinY + 1 }

// AspectRatio reports bounding-box width over height.
func (c Contour) AspectRatio() float64 {
	h := c.Height()
	if h == 0 {
		return 0
	}
	return float64(c.Width()) / float64(h)
}

// Circularity reports 4*pi*area/perimeter^2; 1.0 for a perfect disc,
// near zero for elongated or ragged shapes.
func (c Contour) Circularity() float64 {
	if c.Perimeter == 0 {
		return 0
	}
	return 4 * math.Pi * float64(c.Area) / (c.Perimeter * c.Perimeter)
}

// FindContours labels 8-connected regions of set pixels and returns one
// contour per region. Perimeter counts region pixels with at least one
// unset 4-neighbor (borders count as exposed).
func FindContours(m *Mask) []Contour {
	w, h := m.W, m.H
	visited := make([]bool, w*h)
	var contours []Contour
	var stack []int

	for start := range m.Pix {
		if m.Pix[start] == 0 || visited[start] {
			continue
		}
		c := Contour{MinX: w, MinY: h, MaxX: -1, MaxY: -1}
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w

			c.Area++
			if x < c.MinX {
				c.MinX = x
			}
			if x > c.MaxX {
				c.MaxX = x
			}
			if y < c.MinY {
				c.MinY = y
			}
			if y > c.MaxY {
				c.MaxY = y
			}
			if isBoundary(m, x, y) {
				c.Perimeter++
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if m.Pix[j] != 0 && !visited[j] {
						visited[j] = true
						stack = append(stack, j)
					}
				}
			}
		}
		contours = append(contours, c)
	}
	return contours
}

// LargestContourArea returns the area of the biggest connected region, or 0
// for an empty mask.
func LargestContourArea(m *Mask) int {
	best := 0
	for _, c := range FindContours(m) {
		if c.Area > best {
			best = c.Area
		}
	}
	return best
}

func isBoundary(m *Mask, x, y int) bool {
	if x == 0 || y == 0 || x == m.W-1 || y == m.H-1 {
		return true
	}
	return m.Pix[y*m.W+x-1] == 0 || m.Pix[y*m.W+x+1] == 0 ||
		m.Pix[(y-1)*m.W+x] == 0 || m.Pix[(y+1)*m.W+x] == 0
}
