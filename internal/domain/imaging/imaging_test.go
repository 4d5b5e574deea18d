package imaging

import (
	"math"
	"testing"
)

func TestToGray(t *testing.T) {
	f := NewFrame(2, 1)
	f.SetRGB(0, 0, 255, 255, 255)
	f.SetRGB(1, 0, 0, 0, 0)

	g := ToGray(f)
	if g.At(0, 0) != 255 {
		t.Errorf("white should map to 255, got %d", g.At(0, 0))
	}
	if g.At(1, 0) != 0 {
		t.Errorf("black should map to 0, got %d", g.At(1, 0))
	}
}

func TestToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		hue     uint8
		sat     uint8
		val     uint8
	}{
		{"pure blue", 0, 0, 255, 120, 255, 255},
		{"pure red", 255, 0, 0, 0, 255, 255},
		{"pure green", 0, 255, 0, 60, 255, 255},
		{"white", 255, 255, 255, 0, 0, 255},
		{"black", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(1, 1)
			f.SetRGB(0, 0, tt.r, tt.g, tt.b)
			hsv := ToHSV(f)
			if hsv.Hue[0] != tt.hue || hsv.Sat[0] != tt.sat || hsv.Val[0] != tt.val {
				t.Errorf("got h=%d s=%d v=%d, want h=%d s=%d v=%d",
					hsv.Hue[0], hsv.Sat[0], hsv.Val[0], tt.hue, tt.sat, tt.val)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	f := NewFrame(4, 1)
	f.SetRGB(0, 0, 0, 0, 255)   // blue
	f.SetRGB(1, 0, 30, 60, 255) // still blue-ish
	f.SetRGB(2, 0, 255, 0, 0)   // red
	f.SetRGB(3, 0, 0, 0, 0)     // black

	hsv := ToHSV(f)
	blue := HSVRange{HueLo: 100, HueHi: 130, SatLo: 50, SatHi: 255, ValLo: 50, ValHi: 255}

	m := hsv.InRange(blue)
	if got := m.Count(); got != 2 {
		t.Errorf("expected 2 blue pixels, got %d", got)
	}
	if got := hsv.CountInRange(blue); got != 2 {
		t.Errorf("CountInRange disagrees with mask count: %d", got)
	}
}

func TestLaplacianVariance(t *testing.T) {
	flat := NewGray(16, 16)
	for i := range flat.Pix {
		flat.Pix[i] = 128
	}
	if v := LaplacianVariance(flat); v != 0 {
		t.Errorf("flat image should have zero edge variance, got %f", v)
	}

	noisy := NewGray(16, 16)
	for i := range noisy.Pix {
		if (i/16+i%16)%2 == 0 {
			noisy.Pix[i] = 255
		}
	}
	if v := LaplacianVariance(noisy); v <= 1000 {
		t.Errorf("checkerboard should have high edge variance, got %f", v)
	}
}

func TestVariance(t *testing.T) {
	if v := Variance([]uint8{5, 5, 5, 5}); v != 0 {
		t.Errorf("constant channel should have zero variance, got %f", v)
	}
	if v := Variance([]uint8{0, 255}); math.Abs(v-16256.25) > 0.01 {
		t.Errorf("expected variance 16256.25, got %f", v)
	}
	if v := Variance(nil); v != 0 {
		t.Errorf("empty channel should have zero variance, got %f", v)
	}
}

func TestSobelDirection(t *testing.T) {
	// Left half dark, right half bright: a vertical boundary, so the
	// gradient is horizontal (gx dominates).
	g := NewGray(8, 8)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			g.Pix[y*8+x] = 255
		}
	}
	gx, gy := Sobel(g)
	i := 3*8 + 4
	if math.Abs(gx[i]) <= math.Abs(gy[i]) {
		t.Errorf("vertical boundary should produce horizontal gradient, gx=%f gy=%f", gx[i], gy[i])
	}
}

func TestCanny(t *testing.T) {
	flat := NewGray(16, 16)
	if n := Canny(flat, 50, 150).Count(); n != 0 {
		t.Errorf("flat image should have no edges, got %d", n)
	}

	step := NewGray(16, 16)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			step.Pix[y*16+x] = 255
		}
	}
	if n := Canny(step, 50, 150).Count(); n == 0 {
		t.Error("step image should produce edges")
	}
}

func TestFindContours(t *testing.T) {
	m := NewMask(10, 10)
	// 3x3 blob.
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			m.Set(x, y)
		}
	}
	// Single pixel far away.
	m.Set(8, 8)

	cs := FindContours(m)
	if len(cs) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(cs))
	}
	var blob Contour
	for _, c := range cs {
		if c.Area > blob.Area {
			blob = c
		}
	}
	if blob.Area != 9 {
		t.Errorf("blob area should be 9, got %d", blob.Area)
	}
	if blob.Width() != 3 || blob.Height() != 3 {
		t.Errorf("blob bounds should be 3x3, got %dx%d", blob.Width(), blob.Height())
	}
	if LargestContourArea(m) != 9 {
		t.Errorf("largest contour should be 9, got %d", LargestContourArea(m))
	}
}

func TestCircularity(t *testing.T) {
	square := Contour{Area: 100, Perimeter: 40}
	line := Contour{Area: 40, Perimeter: 80}
	if square.Circularity() <= line.Circularity() {
		t.Errorf("square should be more circular than a line: %f vs %f",
			square.Circularity(), line.Circularity())
	}
	if (Contour{}).Circularity() != 0 {
		t.Error("degenerate contour should have zero circularity")
	}
}
