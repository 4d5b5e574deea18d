package imaging

import "math"

// reflect101 mirrors an out-of-range index without repeating the border pixel.
func reflect101(i, n int) int {
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - i - 2
	}
	return i
}

// Convolve3x3 applies a 3x3 kernel (row-major) with mirrored borders and
// returns the float response per pixel.
func Convolve3x3(g *Gray, k [9]float64) []float64 {
	out := make([]float64, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum float64
			for ky := -1; ky <= 1; ky++ {
				sy := reflect101(y+ky, g.H)
				for kx := -1; kx <= 1; kx++ {
					sx := reflect101(x+kx, g.W)
					sum += k[(ky+1)*3+(kx+1)] * float64(g.Pix[sy*g.W+sx])
				}
			}
			out[y*g.W+x] = sum
		}
	}
	return out
}

// Sobel computes horizontal and vertical gradients of a grayscale image.
func Sobel(g *Gray) (gx, gy []float64) {
	gx = Convolve3x3(g, [9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
	gy = Convolve3x3(g, [9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
	return gx, gy
}

// LaplacianVariance measures the variance of the Laplacian response over the
// whole image. High values indicate chaotic detail; very low values indicate
// over-smoothed content.
func LaplacianVariance(g *Gray) float64 {
	resp := Convolve3x3(g, [9]float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	})
	return varianceFloat(resp)
}

// Variance reports the statistical variance of an 8-bit channel.
func Variance(pix []uint8) float64 {
	if len(pix) == 0 {
		return 0
	}
	var sum float64
	for _, v := range pix {
		sum += float64(v)
	}
	mean := sum / float64(len(pix))
	var acc float64
	for _, v := range pix {
		d := float64(v) - mean
		acc += d * d
	}
	return acc / float64(len(pix))
}

func varianceFloat(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var acc float64
	for _, v := range vals {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(vals))
}

// Canny produces a binary edge map using Sobel gradients, non-maximum
// suppression and double-threshold hysteresis.
func Canny(g *Gray, low, high float64) *Mask {
	gx, gy := Sobel(g)
	w, h := g.W, g.H

	mag := make([]float64, w*h)
	for i := range mag {
		mag[i] = math.Hypot(gx[i], gy[i])
	}

	// Non-maximum suppression along the quantized gradient direction.
	thin := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}
			angle := math.Atan2(gy[i], gx[i])
			if angle < 0 {
				angle += math.Pi
			}
			var dx, dy int
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				dx, dy = 1, 0
			case angle < 3*math.Pi/8:
				dx, dy = 1, 1
			case angle < 5*math.Pi/8:
				dx, dy = 0, 1
			default:
				dx, dy = -1, 1
			}
			n1 := neighborMag(mag, w, h, x+dx, y+dy)
			n2 := neighborMag(mag, w, h, x-dx, y-dy)
			if m >= n1 && m >= n2 {
				thin[i] = m
			}
		}
	}

	// Hysteresis: strong pixels seed, weak pixels survive when 8-connected
	// to a strong pixel.
	out := NewMask(w, h)
	var stack []int
	for i, m := range thin {
		if m >= high {
			out.Pix[i] = 1
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if out.Pix[j] == 0 && thin[j] >= low {
					out.Pix[j] = 1
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

func neighborMag(mag []float64, w, h, x, y int) float64 {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return mag[y*w+x]
}
