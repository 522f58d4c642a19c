package vi

import "testing"

func TestGammaLUT_EndpointsFixed(t *testing.T) {
	if gammaLUT[0] != 0 {
		t.Errorf("gammaLUT[0] = %d, want 0", gammaLUT[0])
	}
	if gammaLUT[255] != 255 {
		t.Errorf("gammaLUT[255] = %d, want 255", gammaLUT[255])
	}
}

func TestGammaLUT_Monotonic(t *testing.T) {
	for i := 1; i < len(gammaLUT); i++ {
		if gammaLUT[i] < gammaLUT[i-1] {
			t.Fatalf("gammaLUT not monotonic at %d: %d < %d", i, gammaLUT[i], gammaLUT[i-1])
		}
	}
}

func TestGammaFilter_NoOpWhenDisabled(t *testing.T) {
	c := ccvg{r: 100, g: 150, b: 200, cvg: 3}
	rng := newDitherRNG(1)

	got := gammaFilter(c, Ctrl{}, rng)
	if got != c {
		t.Errorf("gammaFilter with both flags off = %+v, want unchanged %+v", got, c)
	}
}

func TestGammaFilter_AppliesLUTWhenEnabled(t *testing.T) {
	c := ccvg{r: 64, g: 64, b: 64}
	rng := newDitherRNG(1)

	got := gammaFilter(c, Ctrl{GammaEnable: true}, rng)
	want := gammaLUT[64]
	if got.r != want || got.g != want || got.b != want {
		t.Errorf("gammaFilter = %+v, want all channels %d", got, want)
	}
}

func TestDitherRNG_Dither3StaysInRange(t *testing.T) {
	rng := newDitherRNG(0xdeadbeef)
	for i := 0; i < 1000; i++ {
		v := rng.dither3()
		if v < -1 || v > 1 {
			t.Fatalf("dither3() = %d, want in [-1, 1]", v)
		}
	}
}

func TestClamp8(t *testing.T) {
	if clamp8(-5) != 0 {
		t.Errorf("clamp8(-5) != 0")
	}
	if clamp8(300) != 255 {
		t.Errorf("clamp8(300) != 255")
	}
	if clamp8(100) != 100 {
		t.Errorf("clamp8(100) != 100")
	}
}
