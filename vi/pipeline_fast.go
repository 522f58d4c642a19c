package vi

// processFastWorker fills the prescale buffer directly from the raw
// framebuffer, depth buffer or coverage bits with no filtering at all,
// dispatching on cfg.VI.Mode. Scanlines are partitioned the same strided
// way as the normal path's worker.
func (c *ViCore) processFastWorker(workerID int) {
	g := &c.geom
	ctrl := c.ctrl

	jStart, jAdd := 0, 1
	if c.cfg.NumWorkers != 1 {
		jStart = workerID
		jAdd = c.pool.NumWorkers()
	}

	rng := c.dither[workerID%len(c.dither)]

	switch c.cfg.VI.Mode {
	case ModeColor:
		c.fastColor(g, ctrl, rng, jStart, jAdd)
	case ModeDepth:
		c.fastDepth(g, ctrl, rng, jStart, jAdd)
	case ModeCoverage:
		c.fastCoverage(g, ctrl, rng, jStart, jAdd)
	}
}

// fastColor decodes framebuffer pixels straight off RAM with no AA cache
// in between: rgba5551 expands each 5-bit channel by <<3, rgba8888 keeps
// the top three bytes.
func (c *ViCore) fastColor(g *geometry, ctrl Ctrl, rng *ditherRNG, jStart, jAdd int) {
	for y := int32(jStart); y < g.vresRaw; y += int32(jAdd) {
		line := y * g.viWidthLow
		rowBase := y * g.hresRaw
		for x := int32(0); x < g.hresRaw; x++ {
			idx := uint32(line + x)

			var px ccvg
			switch ctrl.Type {
			case FBRGBA5551:
				pix := c.ram.ReadIdx16((g.frameBuffer >> 1) + idx)
				px.r = uint8((pix >> 8) & 0xf8)
				px.g = uint8((pix >> 3) & 0xf8)
				px.b = uint8((pix << 2) & 0xf8)
			case FBRGBA8888:
				pix := c.ram.ReadIdx32((g.frameBuffer >> 2) + idx)
				px.r = uint8(pix >> 24)
				px.g = uint8(pix >> 16)
				px.b = uint8(pix >> 8)
			}

			px = gammaFilter(px, ctrl, rng)
			c.prescale[rowBase+x] = int32(px.r)<<16 | int32(px.g)<<8 | int32(px.b)
		}
	}
}

func (c *ViCore) fastDepth(g *geometry, ctrl Ctrl, rng *ditherRNG, jStart, jAdd int) {
	if c.depth == nil {
		return
	}
	depthBase := c.depth.DepthBufferAddress()
	for y := int32(jStart); y < g.vresRaw; y += int32(jAdd) {
		line := y * g.viWidthLow
		rowBase := y * g.hresRaw
		for x := int32(0); x < g.hresRaw; x++ {
			idx := uint32(line+x) + depthBase/2
			z := c.ram.ReadIdx16(idx)
			shade := uint8(z >> 8)

			px := gammaFilter(ccvg{r: shade, g: shade, b: shade}, ctrl, rng)
			c.prescale[rowBase+x] = int32(px.r)<<16 | int32(px.g)<<8 | int32(px.b)
		}
	}
}

// fastCoverage visualizes the hidden coverage plane directly: shade =
// (((pix&1)<<2)|hval)<<5. This reads the pixel/hidden-bits pair straight
// from RAM rather than going through fetchFilter, since fetchFilter folds
// coverage through ctrl.AAMode (replicate/resample-only collapse it to a
// constant 7) — coverage mode wants the raw per-pixel value regardless of
// aa_mode.
func (c *ViCore) fastCoverage(g *geometry, ctrl Ctrl, rng *ditherRNG, jStart, jAdd int) {
	for y := int32(jStart); y < g.vresRaw; y += int32(jAdd) {
		line := y * g.viWidthLow
		rowBase := y * g.hresRaw
		for x := int32(0); x < g.hresRaw; x++ {
			idx := (g.frameBuffer >> 1) + uint32(line+x)
			pix, hval := c.ram.ReadPair16(idx)
			shade := uint8((((int(pix) & 1) << 2) | int(hval)) << 5)

			px := gammaFilter(ccvg{r: shade, g: shade, b: shade}, ctrl, rng)
			c.prescale[rowBase+x] = int32(px.r)<<16 | int32(px.g)<<8 | int32(px.b)
		}
	}
}
