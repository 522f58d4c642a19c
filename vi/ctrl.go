package vi

// FBType is the VI_STATUS framebuffer pixel format field.
type FBType uint32

const (
	FBBlank     FBType = 0
	FBReserved  FBType = 1
	FBRGBA5551  FBType = 2
	FBRGBA8888  FBType = 3
)

// hasActiveImage reports whether this format has the high type bit set,
// i.e. there is an actual image to scan out rather than blanking.
func (t FBType) hasActiveImage() bool {
	return t&2 != 0
}

// AAMode is the VI_STATUS anti-aliasing mode field.
type AAMode uint32

const (
	AAResampleAlways   AAMode = 0 // resample + AA, always fetch extra lines
	AAResampleIfNeeded AAMode = 1 // resample + AA, fetch extra lines only if needed
	AAResampleOnly     AAMode = 2 // resample only, treat as fully covered
	AAReplicate        AAMode = 3 // replicate pixels, no interpolation
)

// Ctrl is the decoded VI_STATUS control word.
type Ctrl struct {
	Raw                uint32
	Type               FBType
	GammaDitherEnable  bool
	GammaEnable        bool
	DivotEnable        bool
	VBusClockEnable    bool
	Serrate            bool
	TestMode           bool
	AAMode             AAMode
	KillWE             bool
	PixelAdvance       uint32
	DitherFilterEnable bool
}

// DecodeCtrl unpacks a raw VI_STATUS register value into its named fields.
func DecodeCtrl(raw uint32) Ctrl {
	return Ctrl{
		Raw:                raw,
		Type:               FBType(raw & 0x3),
		GammaDitherEnable:  raw&(1<<2) != 0,
		GammaEnable:        raw&(1<<3) != 0,
		DivotEnable:        raw&(1<<4) != 0,
		VBusClockEnable:    raw&(1<<5) != 0,
		Serrate:            raw&(1<<6) != 0,
		TestMode:           raw&(1<<7) != 0,
		AAMode:             AAMode((raw >> 8) & 0x3),
		KillWE:             raw&(1<<10) != 0,
		PixelAdvance:       (raw >> 11) & 0xf,
		DitherFilterEnable: raw&(1<<15) != 0,
	}
}

// unknownTypeBitsSet guards against framebuffer type bits beyond the two
// known ones. Since Type is always masked to two bits by DecodeCtrl, this
// can never be true in practice; kept anyway so a future change to how
// Type is decoded does not silently drop the check.
func unknownTypeBitsSet(t FBType) bool {
	return uint32(t)&^uint32(0x3) != 0
}
