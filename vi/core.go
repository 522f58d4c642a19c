package vi

import (
	"fmt"

	"github.com/kalindor/n64vi/worker"
)

// interlaceHistory is the frame-to-frame state needed to infer which
// interlace field is current. emuControlsVICurrent starts undecided (-1);
// oldVStart starts at a value no real VI_V_START will ever produce.
type interlaceHistory struct {
	prevVICurrent        uint32
	emuControlsVICurrent int // -1 = undecided, 0 = VI drives it, 1 = we drive it
	prevSerrate          bool
	oldLowerField        bool
	oldVStart            int32
}

func newInterlaceHistory() interlaceHistory {
	return interlaceHistory{emuControlsVICurrent: -1, oldVStart: 1337}
}

// geometry is the per-frame geometry record derived by processStartNormal
// (or processStartFast), immutable once either returns.
type geometry struct {
	hres, vres         int32
	hStart, vStart     int32
	xAdd, yAdd         uint32
	xStartInit         uint32
	yStart             uint32
	minhpass, maxhpass int32
	vSync              int32
	isPAL              bool
	vactivelines       int32
	linecount          int32
	prescalePtr        int32
	lowerField         bool
	viWidthLow         int32
	frameBuffer        uint32
	validh             bool

	// fast-path-only fields
	hresRaw, vresRaw int32
}

// ViCore owns all frame-to-frame state: the geometry, the interlace
// history, the prescale buffer, the one-shot warning latches, and the
// worker pool. Init constructs it, Update borrows it mutably one frame at
// a time, Close tears it down.
type ViCore struct {
	cfg Config

	ram   RAMReader
	regs  RegisterWindow
	depth DepthBufferProvider
	sink  DisplaySink
	msg   MessageSink

	pool *worker.Pool

	prescale []int32 // PrescaleWidth * PrescaleHeight, row-major

	hist interlaceHistory
	geom geometry
	ctrl Ctrl

	lastMode     Mode
	prevWasBlank bool

	dither []*ditherRNG // one per worker, see gamma.go

	screenshotPath string

	onetime struct {
		vbusClock bool
		noLerp    bool
	}
}

// Deps bundles the external collaborators Init needs.
type Deps struct {
	RAM   RAMReader
	Regs  RegisterWindow
	Depth DepthBufferProvider
	Sink  DisplaySink
	Msg   MessageSink // may be nil, defaults to NopSink
}

// Init constructs a ViCore: allocates the prescale buffer and the
// per-worker dither state, and starts the worker pool. The gamma and
// restore tables are package-level, computed once at import time.
func Init(cfg Config, deps Deps) (*ViCore, error) {
	if cfg.VI.Mode < 0 || cfg.VI.Mode >= modeNum {
		return nil, fmt.Errorf("vi: invalid mode %d", cfg.VI.Mode)
	}
	if deps.RAM == nil || deps.Regs == nil || deps.Sink == nil {
		return nil, fmt.Errorf("vi: RAM, Regs and Sink dependencies are required")
	}
	msg := deps.Msg
	if msg == nil {
		msg = NopSink{}
	}

	pool := worker.New(cfg.NumWorkers)

	dither := make([]*ditherRNG, pool.NumWorkers())
	for i := range dither {
		dither[i] = newDitherRNG(uint32(i)*2654435761 + 1)
	}

	c := &ViCore{
		cfg:      cfg,
		ram:      deps.RAM,
		regs:     deps.Regs,
		depth:    deps.Depth,
		sink:     deps.Sink,
		msg:      msg,
		pool:     pool,
		prescale: make([]int32, PrescaleWidth*PrescaleHeight),
		hist:     newInterlaceHistory(),
		lastMode: ModeNormal,
		dither:   dither,
	}
	return c, nil
}

// Close tears down the worker pool. Its shutdown precedes any release
// of the prescale buffer: workers must finish before the buffer they
// were writing into goes away.
func (c *ViCore) Close() {
	c.pool.Close()
}

// Screenshot requests a screenshot at the next successful frame.
func (c *ViCore) Screenshot(path string) {
	c.screenshotPath = path
}

// Update processes one frame. It is idempotent on blank frames: two
// successive blank frames after the first touch neither the prescale
// buffer nor the display sink.
func (c *ViCore) Update() error {
	if c.cfg.VI.Mode != c.lastMode {
		for i := range c.prescale {
			c.prescale[i] = 0
		}
		c.lastMode = c.cfg.VI.Mode
	}

	if c.cfg.VI.Mode == ModeNormal {
		return c.updateNormal()
	}
	return c.updateFast()
}

func (c *ViCore) updateNormal() error {
	if !c.processStartNormal() {
		return nil
	}

	if c.cfg.NumWorkers != 1 {
		if err := c.pool.Run(c.processNormalWorker); err != nil {
			return err
		}
	} else {
		c.processNormalWorker(0)
	}

	return c.endStageNormal()
}

func (c *ViCore) updateFast() error {
	if !c.processStartFast() {
		return nil
	}

	if c.cfg.NumWorkers != 1 {
		if err := c.pool.Run(c.processFastWorker); err != nil {
			return err
		}
	} else {
		c.processFastWorker(0)
	}

	return c.endStageFast()
}
