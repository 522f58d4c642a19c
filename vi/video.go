package vi

// videoFilter16 composes the anti-aliased color of a partially covered
// 16-bit sample from its neighborhood: the six nearest samples on the
// rows above, beside and below (the hardware's coverage-sum gather
// pattern). Only fully covered neighbors participate; partial ones count
// as black for the maximum and as white for the minimum, which keeps them
// out of both extremes. The output blends the center toward the
// penultimate extremes of that set, weighted by the center's missing
// coverage:
//
//	out = center + (((penmin + penmax - 2*center) * (7-cvg) + 4) >> 3)
func videoFilter16(r, g, b *int, ram RAMReader, frameBuffer uint32, idx int, width int32, centerCvg, fetchBug uint32) {
	var backR, backG, backB [7]int
	var invR, invG, invB [7]int

	backR[0], backG[0], backB[0] = *r, *g, *b
	invR[0] = ^*r & 0xff
	invG[0] = ^*g & 0xff
	invB[0] = ^*b & 0xff

	base := (frameBuffer >> 1) + uint32(int32(idx))
	w := uint32(int32(width))

	toLeft := base - 1
	leftUp := base - w - 1
	rightUp := base - w + 1
	leftDown := base + w - 1
	rightDown := base + w + 1
	if fetchBug == 1 {
		// Line buffer not advanced: the row-below taps re-read the
		// current row.
		leftDown = toLeft
		rightDown = toLeft + 2
	}

	n := 1
	gather := func(addr uint32) {
		pix, hidden := ram.ReadPair16(addr)
		if hidden&3 == 3 && pix&1 != 0 {
			backR[n] = int((pix >> 8) & 0xf8)
			backG[n] = int((pix >> 3) & 0xf8)
			backB[n] = int((pix << 2) & 0xf8)
			invR[n] = ^backR[n] & 0xff
			invG[n] = ^backG[n] & 0xff
			invB[n] = ^backB[n] & 0xff
		}
		n++
	}

	gather(leftUp)
	gather(rightUp)
	gather(toLeft)
	gather(toLeft + 2)
	gather(leftDown)
	gather(rightDown)

	coeff := int(7 - centerCvg)
	*r = filterBlend(*r, penultimateMax(backR), ^penultimateMax(invR)&0xff, coeff)
	*g = filterBlend(*g, penultimateMax(backG), ^penultimateMax(invG)&0xff, coeff)
	*b = filterBlend(*b, penultimateMax(backB), ^penultimateMax(invB)&0xff, coeff)
}

// videoFilter32 is videoFilter16 for 32-bit framebuffers: channels come
// from the top three bytes, coverage from the low byte's top three bits.
func videoFilter32(r, g, b *int, ram RAMReader, frameBuffer uint32, idx int, width int32, centerCvg, fetchBug uint32) {
	var backR, backG, backB [7]int
	var invR, invG, invB [7]int

	backR[0], backG[0], backB[0] = *r, *g, *b
	invR[0] = ^*r & 0xff
	invG[0] = ^*g & 0xff
	invB[0] = ^*b & 0xff

	base := (frameBuffer >> 2) + uint32(int32(idx))
	w := uint32(int32(width))

	toLeft := base - 1
	leftUp := base - w - 1
	rightUp := base - w + 1
	leftDown := base + w - 1
	rightDown := base + w + 1
	if fetchBug == 1 {
		leftDown = toLeft
		rightDown = toLeft + 2
	}

	n := 1
	gather := func(addr uint32) {
		pix := ram.ReadIdx32(addr)
		if (pix>>5)&7 == 7 {
			backR[n] = int((pix >> 24) & 0xff)
			backG[n] = int((pix >> 16) & 0xff)
			backB[n] = int((pix >> 8) & 0xff)
			invR[n] = ^backR[n] & 0xff
			invG[n] = ^backG[n] & 0xff
			invB[n] = ^backB[n] & 0xff
		}
		n++
	}

	gather(leftUp)
	gather(rightUp)
	gather(toLeft)
	gather(toLeft + 2)
	gather(leftDown)
	gather(rightDown)

	coeff := int(7 - centerCvg)
	*r = filterBlend(*r, penultimateMax(backR), ^penultimateMax(invR)&0xff, coeff)
	*g = filterBlend(*g, penultimateMax(backG), ^penultimateMax(invG)&0xff, coeff)
	*b = filterBlend(*b, penultimateMax(backB), ^penultimateMax(invB)&0xff, coeff)
}

func filterBlend(cur, penMax, penMin, coeff int) int {
	col := penMin + penMax - (cur << 1)
	return ((((col * coeff) + 4) >> 3) + cur) & 0xff
}

// penultimateMax returns the second-largest entry of v, except that an
// unchallenged v[0] returns itself: the center sample only yields to a
// neighbor that actually displaced it as the running maximum.
func penultimateMax(v [7]int) int {
	pos := 0
	penMax := v[0]
	for i := 1; i < 7; i++ {
		if v[i] > v[pos] {
			penMax = v[pos]
			pos = i
		} else if v[i] > penMax {
			penMax = v[i]
		}
	}
	return penMax
}
