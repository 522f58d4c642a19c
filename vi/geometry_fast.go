package vi

// processStartFast derives the fast path's geometry: a cut-down version of
// processStartNormal covering only the active-window decode and origin/
// width reads, plus the fast path's own raw-resolution computation and
// odd-field drop.
func (c *ViCore) processStartFast() bool {
	vStartReg := c.regs.VIRegister(RegVStart)
	hStartReg := c.regs.VIRegister(RegHStart)

	vStart := int32((vStartReg >> 16) & 0x3ff)
	hStart := int32((hStartReg >> 16) & 0x3ff)
	vEnd := int32(vStartReg & 0x3ff)
	hEnd := int32(hStartReg & 0x3ff)

	hres := hEnd - hStart
	vres := (vEnd - vStart) / 2

	if hres <= 0 || vres <= 0 {
		return false
	}

	xAdd := c.regs.VIRegister(RegXScale) & 0xfff
	yAdd := c.regs.VIRegister(RegYScale) & 0xfff

	hresRaw := int32(xAdd) * hres / 1024
	vresRaw := int32(yAdd) * vres / 1024

	if hresRaw <= 0 || vresRaw <= 0 {
		return false
	}

	// Drop every other interlaced frame to avoid "wobbly" output from the
	// vertical offset between fields.
	if c.regs.VIRegister(RegVCurrentLine)&1 != 0 {
		return false
	}

	viWidthLow := int32(c.regs.VIRegister(RegWidth) & 0xfff)
	frameBuffer := c.regs.VIRegister(RegOrigin) & 0xffffff
	if frameBuffer == 0 {
		return false
	}

	ctrl := DecodeCtrl(c.regs.VIRegister(RegStatus))
	vSync := int32(c.regs.VIRegister(RegVSync) & 0x3ff)

	if !ctrl.Type.hasActiveImage() {
		return false
	}
	if unknownTypeBitsSet(ctrl.Type) {
		c.msg.Error("vi: unknown framebuffer format %d", ctrl.Type)
	}

	c.ctrl = ctrl
	c.geom = geometry{
		hres: hres, vres: vres,
		xAdd: xAdd, yAdd: yAdd,
		vSync:       vSync,
		viWidthLow:  viWidthLow,
		frameBuffer: frameBuffer,
		hresRaw:     hresRaw,
		vresRaw:     vresRaw,
	}
	return true
}
