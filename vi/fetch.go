package vi

// fetchFilter resolves a single source-column sample for the normal
// filter pipeline, dispatching on ctrl.Type&1 to the 16-bit or 32-bit
// framebuffer variant. Within each variant the AA mode decides how much
// of RAM the fetch touches: the two resample+AA modes read the sample's
// coverage alongside its color and, when coverage is partial, compose the
// output from the fully covered neighbors (videoFilter*); replicate and
// resample-only do a direct lookup and treat the sample as fully covered.
// Fully covered samples still pass through the dither reconstruction
// filter (restoreFilter*) when ctrl.dither_filter_enable is set.
//
// idx is the already-computed pixel index (vi_width_low*row + column);
// width is the framebuffer stride in pixels, which the neighborhood
// filters step by to reach the rows above and below. fetchBug carries the
// per-scanline sampling-artifact state: when two successive output rows
// pull from the same source row, the hardware's line buffer is not
// advanced, so the "row below" taps of the following row's fetches read
// the current row instead.
func fetchFilter(ram RAMReader, frameBuffer uint32, idx int, ctrl Ctrl, width int32, fetchBug uint32) ccvg {
	if ctrl.Type&1 != 0 {
		return fetchFilter32(ram, frameBuffer, idx, ctrl, width, fetchBug)
	}
	return fetchFilter16(ram, frameBuffer, idx, ctrl, width, fetchBug)
}

func fetchFilter16(ram RAMReader, frameBuffer uint32, idx int, ctrl Ctrl, width int32, fetchBug uint32) ccvg {
	addr := (frameBuffer >> 1) + uint32(int32(idx))

	var pix uint16
	var cvg uint32
	if ctrl.AAMode == AAResampleAlways || ctrl.AAMode == AAResampleIfNeeded {
		p, hidden := ram.ReadPair16(addr)
		pix = p
		cvg = uint32(pix&1)<<2 | uint32(hidden&3)
	} else {
		pix = ram.ReadIdx16(addr)
		cvg = 7
	}

	r := int((pix >> 8) & 0xf8)
	g := int((pix >> 3) & 0xf8)
	b := int((pix << 2) & 0xf8)

	if cvg == 7 {
		if ctrl.DitherFilterEnable {
			restoreFilter16(&r, &g, &b, ram, frameBuffer, idx, width, fetchBug)
		}
	} else {
		videoFilter16(&r, &g, &b, ram, frameBuffer, idx, width, cvg, fetchBug)
	}

	return ccvg{r: uint8(r), g: uint8(g), b: uint8(b), cvg: uint8(cvg)}
}

func fetchFilter32(ram RAMReader, frameBuffer uint32, idx int, ctrl Ctrl, width int32, fetchBug uint32) ccvg {
	addr := (frameBuffer >> 2) + uint32(int32(idx))
	pix := ram.ReadIdx32(addr)

	var cvg uint32
	if ctrl.AAMode == AAResampleAlways || ctrl.AAMode == AAResampleIfNeeded {
		cvg = (pix >> 5) & 7
	} else {
		cvg = 7
	}

	r := int((pix >> 24) & 0xff)
	g := int((pix >> 16) & 0xff)
	b := int((pix >> 8) & 0xff)

	if cvg == 7 {
		if ctrl.DitherFilterEnable {
			restoreFilter32(&r, &g, &b, ram, frameBuffer, idx, width, fetchBug)
		}
	} else {
		videoFilter32(&r, &g, &b, ram, frameBuffer, idx, width, cvg, fetchBug)
	}

	return ccvg{r: uint8(r), g: uint8(g), b: uint8(b), cvg: uint8(cvg)}
}
