package imaging

// HSVRange is an inclusive hue/saturation/value window.
type HSVRange struct {
	HueLo, HueHi uint8
	SatLo, SatHi uint8
	ValLo, ValHi uint8
}

// InRange builds a mask of pixels falling inside the window on every channel.
func (img *HSVImage) InRange(r HSVRange) *Mask {
	m := NewMask(img.W, img.H)
	for i := range m.Pix {
		if img.Hue[i] >= r.HueLo && img.Hue[i] <= r.HueHi &&
			img.Sat[i] >= r.SatLo && img.Sat[i] <= r.SatHi &&
			img.Val[i] >= r.ValLo && img.Val[i] <= r.ValHi {
			m.Pix[i] = 1
		}
	}
	return m
}

// CountInRange counts matching pixels without materializing a mask.
func (img *HSVImage) CountInRange(r HSVRange) int {
	n := 0
	for i := range img.Hue {
		if img.Hue[i] >= r.HueLo && img.Hue[i] <= r.HueHi &&
			img.Sat[i] >= r.SatLo && img.Sat[i] <= r.SatHi &&
			img.Val[i] >= r.ValLo && img.Val[i] <= r.ValHi {
			n++
		}
	}
	return n
}
