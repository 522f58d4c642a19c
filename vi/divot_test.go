package vi

import "testing"

func TestMedian3(t *testing.T) {
	cases := []struct{ a, b, c, want uint8 }{
		{5, 10, 3, 5},
		{1, 2, 3, 2},
		{3, 1, 2, 2},
		{7, 7, 7, 7},
		{0, 255, 128, 128},
		{255, 0, 0, 0},
	}
	for _, tc := range cases {
		if got := median3(tc.a, tc.b, tc.c); got != tc.want {
			t.Errorf("median3(%d,%d,%d) = %d, want %d", tc.a, tc.b, tc.c, got, tc.want)
		}
	}
}

func TestDivotFilter_CollapsesSpike(t *testing.T) {
	left := ccvg{r: 10, g: 10, b: 10, cvg: 7}
	center := ccvg{r: 250, g: 250, b: 250, cvg: 7}
	right := ccvg{r: 12, g: 12, b: 12, cvg: 7}

	got := divotFilter(center, left, right)
	if got.r != 12 || got.g != 12 || got.b != 12 {
		t.Errorf("divotFilter spike = %+v, want channel collapsed to 12", got)
	}
	if got.cvg != center.cvg {
		t.Errorf("cvg = %d, want center's %d", got.cvg, center.cvg)
	}
}

func TestDivotFilter_PassesMonotoneRunThrough(t *testing.T) {
	left := ccvg{r: 10}
	center := ccvg{r: 20}
	right := ccvg{r: 30}

	got := divotFilter(center, left, right)
	if got.r != 20 {
		t.Errorf("divotFilter monotone run = %d, want 20 unchanged", got.r)
	}
}
