package imaging

// HSVImage holds per-channel hue/saturation/value planes. Hue uses the
// half-degree scale (0..180) so published color ranges translate directly;
// saturation and value stay in 0..255.
type HSVImage struct {
	W, H int
	Hue  []uint8
	Sat  []uint8
	Val  []uint8
}

// ToGray converts an RGB frame to grayscale using the ITU-R BT.601 weights.
func ToGray(f *Frame) *Gray {
	g := NewGray(f.W, f.H)
	for i := range g.Pix {
		r := float64(f.Pix[i*3])
		gr := float64(f.Pix[i*3+1])
		b := float64(f.Pix[i*3+2])
		g.Pix[i] = uint8(0.299*r + 0.587*gr + 0.114*b + 0.5)
	}
	return g
}

// ToHSV converts an RGB frame to hue/saturation/value planes.
func ToHSV(f *Frame) *HSVImage {
	hsv := &HSVImage{
		W:   f.W,
		H:   f.H,
		Hue: make([]uint8, f.W*f.H),
		Sat: make([]uint8, f.W*f.H),
		Val: make([]uint8, f.W*f.H),
	}
	for i := 0; i < f.W*f.H; i++ {
		r := float64(f.Pix[i*3])
		g := float64(f.Pix[i*3+1])
		b := float64(f.Pix[i*3+2])

		v := max3(r, g, b)
		m := min3(r, g, b)
		delta := v - m

		var s float64
		if v > 0 {
			s = 255 * delta / v
		}

		var h float64
		if delta > 0 {
			switch v {
			case r:
				h = 60 * (g - b) / delta
			case g:
				h = 120 + 60*(b-r)/delta
			default:
				h = 240 + 60*(r-g)/delta
			}
			if h < 0 {
				h += 360
			}
		}

		hsv.Hue[i] = uint8(h/2 + 0.5)
		hsv.Sat[i] = uint8(s + 0.5)
		hsv.Val[i] = uint8(v + 0.5)
	}
	return hsv
}

func max3(a, b, c float64) float64 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func min3(a, b, c float64) float64 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
