package vi

// processNormalWorker runs the full AA + divot + bilerp + gamma pipeline
// for every scanline this worker owns. Each call gets its
// own scanlineCache/divotCache — function-local, not fields on ViCore, so
// every worker's call frame owns independent cache state and concurrent
// workers never share cache memory even though they share the ViCore they
// were dispatched from.
func (c *ViCore) processNormalWorker(workerID int) {
	g := &c.geom
	ctrl := c.ctrl

	jStart, jAdd := 0, 1
	if c.cfg.NumWorkers != 1 {
		jStart = workerID
		jAdd = c.pool.NumWorkers()
	}

	var aa scanlineCache
	var dv divotCache
	// Markers compare plain source columns, so the init must sit one
	// below the first pixel's prev tap; anything higher would skip that
	// fetch and feed the divot filter's left tap an empty sample.
	markerInit := int(g.xStartInit>>10) - 2

	cacheInit := false
	var fetchBug uint32
	rng := c.dither[workerID%len(c.dither)]

	for j := int32(jStart); j < g.vres; j += int32(jAdd) {
		xStart := g.xStartInit
		curry := g.yStart + uint32(j)*g.yAdd
		nexty := g.yStart + uint32(j+1)*g.yAdd
		prevy := curry >> 10
		yfrac := int((curry >> 5) & 0x1f)

		pixels := g.viWidthLow * int32(prevy)
		nextpixels := pixels + g.viWidthLow

		if prevy == (nexty >> 10) {
			fetchBug = 2
		} else {
			fetchBug >>= 1
		}

		aa.reset(markerInit)
		dv.reset(markerInit)

		rowBase := g.prescalePtr + g.linecount*j

		for i := int32(0); i < g.hres; i, xStart = i+1, xStart+g.xAdd {
			lineX := int(xStart >> 10)
			prevX := lineX - 1
			nextX := lineX + 1
			farX := lineX + 2

			curIdx := int(pixels) + lineX
			prevIdx := int(pixels) + prevX
			nextIdx := int(pixels) + nextX
			farIdx := int(pixels) + farX

			scanIdx := int(nextpixels) + lineX
			prevScanIdx := int(nextpixels) + prevX
			nextScanIdx := int(nextpixels) + nextX
			farScanIdx := int(nextpixels) + farX

			xfrac := int((xStart >> 5) & 0x1f)
			lerping := ctrl.AAMode != AAReplicate && (xfrac != 0 || yfrac != 0)

			ensureAA(&aa.cur, &aa.curMarker, c.ram, g.frameBuffer, ctrl, g.viWidthLow, 0, prevX, lineX, nextX, prevIdx, curIdx, nextIdx)
			ensureAA(&aa.next, &aa.nextMarker, c.ram, g.frameBuffer, ctrl, g.viWidthLow, fetchBug, prevX, lineX, nextX, prevScanIdx, scanIdx, nextScanIdx)

			if ctrl.DivotEnable {
				if farX > aa.curMarker {
					aa.cur[idx(farX)] = fetchFilter(c.ram, g.frameBuffer, farIdx, ctrl, g.viWidthLow, 0)
					aa.curMarker = farX
				}
				if farX > aa.nextMarker {
					aa.next[idx(farX)] = fetchFilter(c.ram, g.frameBuffer, farScanIdx, ctrl, g.viWidthLow, fetchBug)
					aa.nextMarker = farX
				}

				ensureDivot(&dv.cur, &dv.curMarker, &aa.cur, lineX, nextX, farX)
				ensureDivot(&dv.next, &dv.nextMarker, &aa.next, lineX, nextX, farX)
			}

			var color, nextColor, scanColor, scanNextColor ccvg
			if ctrl.DivotEnable {
				color = dv.cur[idx(lineX)]
			} else {
				color = aa.cur[idx(lineX)]
			}

			if lerping {
				if ctrl.DivotEnable {
					nextColor = dv.cur[idx(nextX)]
					scanColor = dv.next[idx(lineX)]
					scanNextColor = dv.next[idx(nextX)]
				} else {
					nextColor = aa.cur[idx(nextX)]
					scanColor = aa.next[idx(lineX)]
					scanNextColor = aa.next[idx(nextX)]
				}

				vlLerp(&color, scanColor, yfrac)
				vlLerp(&nextColor, scanNextColor, yfrac)
				vlLerp(&color, nextColor, xfrac)
			}

			color = gammaFilter(color, ctrl, rng)

			var packed int32
			if i >= g.minhpass && i < g.maxhpass {
				packed = int32(color.r)<<16 | int32(color.g)<<8 | int32(color.b)
			}
			c.prescale[rowBase+i] = packed
		}

		if !cacheInit && g.yAdd == 0x400 {
			aa.swap(markerInit)
			if ctrl.DivotEnable {
				dv.swap(markerInit)
			}
			cacheInit = true
		}
	}
}

// ensureAA populates the three-tap window {prev, cur, next} in cache,
// advancing marker by the highest-unpopulated-first rule: a single miss
// at prev fetches all three; a miss only at cur fetches cur and next; a
// miss only at next fetches just next.
func ensureAA(cache *[cacheCap]ccvg, marker *int, ram RAMReader, fb uint32, ctrl Ctrl, width int32, fetchBug uint32, prevX, curX, nextX, prevIdx, curIdx, nextIdx int) {
	switch {
	case prevX > *marker:
		cache[idx(prevX)] = fetchFilter(ram, fb, prevIdx, ctrl, width, fetchBug)
		cache[idx(curX)] = fetchFilter(ram, fb, curIdx, ctrl, width, fetchBug)
		cache[idx(nextX)] = fetchFilter(ram, fb, nextIdx, ctrl, width, fetchBug)
		*marker = nextX
	case curX > *marker:
		cache[idx(curX)] = fetchFilter(ram, fb, curIdx, ctrl, width, fetchBug)
		cache[idx(nextX)] = fetchFilter(ram, fb, nextIdx, ctrl, width, fetchBug)
		*marker = nextX
	case nextX > *marker:
		cache[idx(nextX)] = fetchFilter(ram, fb, nextIdx, ctrl, width, fetchBug)
		*marker = nextX
	}
}

// ensureDivot builds the divot-filtered samples at lineX and nextX from
// the already-fetched AA window, using the same highest-unpopulated-first
// marker discipline as ensureAA.
func ensureDivot(cache *[cacheCap]ccvg, marker *int, aa *[cacheCap]ccvg, lineX, nextX, farX int) {
	switch {
	case lineX > *marker:
		cache[idx(lineX)] = divotFilter(aa[idx(lineX)], aa[idx(lineX-1)], aa[idx(nextX)])
		cache[idx(nextX)] = divotFilter(aa[idx(nextX)], aa[idx(lineX)], aa[idx(farX)])
		*marker = nextX
	case nextX > *marker:
		cache[idx(nextX)] = divotFilter(aa[idx(nextX)], aa[idx(lineX)], aa[idx(farX)])
		*marker = nextX
	}
}
