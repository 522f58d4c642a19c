package vi

import "testing"

func TestDecodeCtrl_FieldsFromRawBits(t *testing.T) {
	// type=RGBA8888(3), gamma_dither, gamma, divot, serrate, aa_mode=2
	raw := uint32(3) | 1<<2 | 1<<3 | 1<<4 | 1<<6 | 2<<8

	ctrl := DecodeCtrl(raw)

	if ctrl.Type != FBRGBA8888 {
		t.Errorf("Type = %v, want FBRGBA8888", ctrl.Type)
	}
	if !ctrl.GammaDitherEnable || !ctrl.GammaEnable || !ctrl.DivotEnable || !ctrl.Serrate {
		t.Errorf("flags not decoded: %+v", ctrl)
	}
	if ctrl.AAMode != AAResampleOnly {
		t.Errorf("AAMode = %v, want AAResampleOnly", ctrl.AAMode)
	}
}

func TestFBType_HasActiveImage(t *testing.T) {
	cases := map[FBType]bool{
		FBBlank:     false,
		FBReserved:  false,
		FBRGBA5551:  true,
		FBRGBA8888:  true,
	}
	for t_, want := range cases {
		if got := t_.hasActiveImage(); got != want {
			t.Errorf("FBType(%d).hasActiveImage() = %v, want %v", t_, got, want)
		}
	}
}

func TestUnknownTypeBitsSet_AlwaysFalseForDecodedType(t *testing.T) {
	for raw := uint32(0); raw < 4; raw++ {
		if unknownTypeBitsSet(FBType(raw)) {
			t.Errorf("unknownTypeBitsSet(%d) = true, want false (Type is always 2 bits)", raw)
		}
	}
}
