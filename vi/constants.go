// Package vi implements the Video Interface filter pipeline: the stage
// that turns a framebuffer in emulated RAM plus a bank of control
// registers into a raster image, the way the console's VI silicon did
// between the framebuffer and the analog video output.
package vi

// Anamorphic resolutions the original hardware's two sync standards settle
// on, and the prescale buffer sized to hold the larger of the two.
const (
	hResNTSC = 640
	vResNTSC = 480

	hResPAL = 768
	vResPAL = 576

	vSyncNTSC = 525
	vSyncPAL  = 625

	// PrescaleWidth and PrescaleHeight bound the intermediate rasterization
	// target. Every geometry computation clamps into this rectangle.
	PrescaleWidth  = hResNTSC
	PrescaleHeight = vSyncPAL
)

// cacheCap is the per-scanline AA/divot cache capacity, indexed by source
// column (via idx, below). hres never exceeds PrescaleWidth in practice,
// so this is a wide margin, not a tight bound.
const cacheCap = 0xa10

// cacheMargin shifts every cache array access so that the few columns of
// negative-offset lookahead fetchFilter's prev/far taps need near column 0
// (real hardware's x_start_init ordinarily carries enough fractional head
// start to avoid this, but nothing guarantees it) land in bounds instead
// of panicking on a negative index.
const cacheMargin = 4

// idx translates a source column (which may run a couple of positions
// negative at the left edge) into a valid index into a [cacheCap]ccvg.
func idx(col int) int { return col + cacheMargin }

// vstartOffsetNTSC and vstartOffsetPAL are the fixed vertical blanking
// offsets applied to v_start once ispal is known.
const (
	vstartOffsetNTSC = 34
	vstartOffsetPAL  = 44
)

const (
	hstartOffsetNTSC = 108
	hstartOffsetPAL  = 128
)
