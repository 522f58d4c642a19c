package vi

// endStageNormal hands the filtered frame to the display sink and, if a
// screenshot was requested, writes it out first. The upload covers exactly
// the non-blanked window the pipeline stage filled in: [minhpass, maxhpass)
// columns and vres<<serrate rows.
func (c *ViCore) endStageNormal() error {
	g := &c.geom
	width := g.maxhpass - g.minhpass
	height := g.vres
	if c.ctrl.Serrate {
		height = g.vres << 1
	}

	outputHeight := c.outputHeight((g.vres << 1) * vSyncNTSC / g.vSync)
	bufPtr := g.prescalePtr + g.minhpass

	if c.cfg.VI.ShowOverscan {
		// Emit the entire prescale buffer instead of cropping to the
		// active window: the blanking region shows up as black borders.
		width = PrescaleWidth
		if g.isPAL {
			height = vResPAL
		} else {
			height = vResNTSC
		}
		if !c.ctrl.Serrate {
			height >>= 1
		}
		outputHeight = c.outputHeight(vResNTSC)
		bufPtr = 0
	}

	if c.screenshotPath != "" {
		if err := c.writeScreenshot(c.screenshotPath, bufPtr, width, height, PrescaleWidth, outputHeight); err != nil {
			c.msg.Warning("vi: cannot write screenshot: %v", err)
		}
		c.screenshotPath = ""
	}

	// The pitch handed to the sink (and to the screenshot writer above) is
	// always the fixed PrescaleWidth, not g.linecount: linecount is the
	// *source* buffer's row-to-row stride, doubled under interlace so each
	// field's rows land PrescaleWidth apart inside one shared buffer, but
	// the row width the sink should step by when consuming the cropped
	// region is the constant the pipeline crops into, never the doubled one.
	region := c.prescale[bufPtr:]
	if err := c.sink.ScreenUpload(region, int(width), int(height), PrescaleWidth, int(outputHeight)); err != nil {
		return err
	}
	return c.sink.ScreenSwap()
}

// endStageFast is endStageNormal's analogue for the three fast-mode
// reinterpretations: no sub-window cropping, since processFastWorker
// wrote every column it computed.
func (c *ViCore) endStageFast() error {
	g := &c.geom
	// The raw buffer's aspect depends on the scale registers rather than
	// the active window, so the filtered path's scanout height is rescaled
	// by hresRaw/hres to keep the displayed proportions.
	filteredHeight := (g.vres << 1) * vSyncNTSC / g.vSync
	outputHeight := c.outputHeight(g.hresRaw * filteredHeight / g.hres)

	if c.screenshotPath != "" {
		if err := c.writeScreenshot(c.screenshotPath, 0, g.hresRaw, g.vresRaw, g.hresRaw, outputHeight); err != nil {
			c.msg.Warning("vi: cannot write screenshot: %v", err)
		}
		c.screenshotPath = ""
	}

	if err := c.sink.ScreenUpload(c.prescale, int(g.hresRaw), int(g.vresRaw), int(g.hresRaw), int(outputHeight)); err != nil {
		return err
	}
	return c.sink.ScreenSwap()
}

// outputHeight derives the display-facing row count the sink should
// stretch to from the raw (vres<<1)*525/v_sync scanout height, squeezing
// it for widescreen presentation when configured.
func (c *ViCore) outputHeight(rawHeight int32) int32 {
	if !c.cfg.VI.Widescreen {
		return rawHeight
	}
	// 4:3 source stretched onto a 16:9 frame keeps width fixed and squeezes
	// height by 9/16.
	return rawHeight * 9 / 16
}
