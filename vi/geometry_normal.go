package vi

// processStartNormal derives this frame's geometry from the live register
// window. It returns false when there is nothing to display this frame
// (blank, zero origin, no active lines) — the caller must return from
// Update without touching the prescale buffer or sink.
func (c *ViCore) processStartNormal() bool {
	vStartReg := c.regs.VIRegister(RegVStart)
	hStartReg := c.regs.VIRegister(RegHStart)

	vStart := int32((vStartReg >> 16) & 0x3ff)
	hStart := int32((hStartReg >> 16) & 0x3ff)
	vEnd := int32(vStartReg & 0x3ff)
	hEnd := int32(hStartReg & 0x3ff)

	hres := hEnd - hStart
	vres := (vEnd - vStart) / 2

	ctrl := DecodeCtrl(c.regs.VIRegister(RegStatus))
	if unknownTypeBitsSet(ctrl.Type) {
		c.msg.Error("vi: unknown framebuffer format %d", ctrl.Type)
	}
	if ctrl.VBusClockEnable && !c.onetime.vbusClock {
		c.msg.Warning("vi: vbus_clock_enable set in VI_STATUS; this would damage real hardware, continuing emulation")
		c.onetime.vbusClock = true
	}

	vSync := int32(c.regs.VIRegister(RegVSync) & 0x3ff)
	xAdd := c.regs.VIRegister(RegXScale) & 0xfff

	if ctrl.AAMode == AAReplicate && ctrl.Type == FBRGBA5551 && !c.onetime.noLerp && hStart < 0x80 && xAdd <= 0x200 {
		c.msg.Warning("vi: disabling interpolation in 16-bit color with h_start < 128 and x_scale <= 0x200 glitches on hardware")
		c.onetime.noLerp = true
	}

	isPAL := vSync > (vSyncNTSC + 25)
	if isPAL {
		hStart -= hstartOffsetPAL
	} else {
		hStart -= hstartOffsetNTSC
	}

	xStartInit := (c.regs.VIRegister(RegXScale) >> 16) & 0xfff

	hStartClamped := false
	if hStart < 0 {
		xStartInit += xAdd * uint32(-hStart)
		hres += hStart
		hStart = 0
		hStartClamped = true
	}

	validInterlace := ctrl.Type.hasActiveImage() && ctrl.Serrate
	vCurrentLine := c.regs.VIRegister(RegVCurrentLine)

	if validInterlace && c.hist.prevSerrate && c.hist.emuControlsVICurrent < 0 {
		if (vCurrentLine&1 != 0) != (c.hist.prevVICurrent != 0) {
			c.hist.emuControlsVICurrent = 1
		} else {
			c.hist.emuControlsVICurrent = 0
		}
	}

	lowerField := false
	if validInterlace {
		switch c.hist.emuControlsVICurrent {
		case 1:
			lowerField = vCurrentLine&1 == 0
		case 0:
			if vStart == c.hist.oldVStart {
				lowerField = !c.hist.oldLowerField
			} else {
				lowerField = vStart < c.hist.oldVStart
			}
		}
	}

	c.hist.oldLowerField = lowerField

	if validInterlace {
		c.hist.prevSerrate = true
		c.hist.prevVICurrent = vCurrentLine & 1
		c.hist.oldVStart = vStart
	} else {
		c.hist.prevSerrate = false
	}

	var vstartOffset int32
	if isPAL {
		vstartOffset = vstartOffsetPAL
	} else {
		vstartOffset = vstartOffsetNTSC
	}
	vStart = (vStart - vstartOffset) / 2

	yStart := (c.regs.VIRegister(RegYScale) >> 16) & 0xfff
	yAdd := c.regs.VIRegister(RegYScale) & 0xfff

	if vStart < 0 {
		yStart += yAdd * uint32(-vStart)
		vStart = 0
	}

	hresClamped := false
	if hres+hStart > PrescaleWidth {
		hres = PrescaleWidth - hStart
		hresClamped = true
	}

	if vres+vStart > PrescaleHeight {
		vres = PrescaleHeight - vStart
		c.msg.Warning("vi: vres=%d v_start=%d clamped to prescale height", vres, vStart)
	}

	lineShifter := int32(1)
	if ctrl.Serrate {
		lineShifter = 0
	}

	vactivelines := vSync - vstartOffset
	if vactivelines > PrescaleHeight {
		c.msg.Error("vi: VI_V_SYNC too big (vactivelines=%d)", vactivelines)
	}
	if vactivelines < 0 {
		return false
	}
	vactivelines >>= uint(lineShifter)

	validh := hres > 0 && hStart < PrescaleWidth

	minhpass := int32(8)
	if hStartClamped {
		minhpass = 0
	}
	maxhpass := hres - 7
	if hresClamped {
		maxhpass = hres
	}

	if !ctrl.Type.hasActiveImage() {
		// First blank frame after a visible one clears the prescale
		// buffer so stale pixels don't linger; further blank frames
		// short-circuit without touching anything.
		if !c.prevWasBlank {
			for i := range c.prescale {
				c.prescale[i] = 0
			}
			c.prevWasBlank = true
		}
		return false
	}
	c.prevWasBlank = false

	linecount := int32(PrescaleWidth)
	if ctrl.Serrate {
		linecount = PrescaleWidth << 1
	}
	prescalePtr := vStart*linecount + hStart
	if lowerField {
		prescalePtr += PrescaleWidth
	}

	viWidthLow := int32(c.regs.VIRegister(RegWidth) & 0xfff)
	frameBuffer := c.regs.VIRegister(RegOrigin) & 0xffffff

	if frameBuffer == 0 {
		return false
	}

	c.ctrl = ctrl
	c.geom = geometry{
		hres: hres, vres: vres,
		hStart: hStart, vStart: vStart,
		xAdd: xAdd, yAdd: yAdd,
		xStartInit: xStartInit, yStart: yStart,
		minhpass: minhpass, maxhpass: maxhpass,
		vSync: vSync, isPAL: isPAL,
		vactivelines: vactivelines,
		linecount:    linecount,
		prescalePtr:  prescalePtr,
		lowerField:   lowerField,
		viWidthLow:   viWidthLow,
		frameBuffer:  frameBuffer,
		validh:       validh,
	}

	return validh
}
