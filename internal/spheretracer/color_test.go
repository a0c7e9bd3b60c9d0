package spheretracer

import "testing"

func TestColorMulClamps(t *testing.T) {
	c := Color{R: 200, G: 100, B: 0, A: 0}
	if got := c.Mul(2); got.R != 255 || got.G < 199 || got.G > 200 || got.B != 0 {
		t.Fatalf("Mul(2) = %+v", got)
	}
	if got := c.Mul(-1); got != (Color{}) {
		t.Fatalf("Mul(-1) = %+v, want black", got)
	}
	if got := White.Mul(0.5); got.R != 127 || got.G != 127 || got.B != 127 {
		t.Fatalf("White.Mul(0.5) = %+v, want 127s (truncated)", got)
	}
	if got := Red.Mul(1); got != Red {
		t.Fatalf("Red.Mul(1) = %+v", got)
	}
}

func TestColorAddSaturates(t *testing.T) {
	a := Color{R: 200, G: 10, B: 255, A: 0}
	b := Color{R: 100, G: 20, B: 1, A: 0}
	if got := a.Add(b); got != (Color{R: 255, G: 30, B: 255, A: 0}) {
		t.Fatalf("Add = %+v", got)
	}
}

func TestColorRGBAOpaque(t *testing.T) {
	r, g, b, a := Grey.RGBA()
	if r != 85*0x101 || g != r || b != r || a != 0xffff {
		t.Fatalf("RGBA = %x %x %x %x", r, g, b, a)
	}
}

func TestPaletteAlphaZero(t *testing.T) {
	for name, c := range Palette {
		if c.A != 0 {
			t.Fatalf("%s alpha = %d, want 0", name, c.A)
		}
	}
	if Background != (Color{R: 85, G: 85, B: 85, A: 0}) {
		t.Fatalf("Background = %+v", Background)
	}
}
