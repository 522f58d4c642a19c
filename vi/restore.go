package vi

// restoreTable maps a (center, neighbor) pair of 5-bit channel values to
// the -1/0/+1 correction the dither reconstruction filter applies for
// that neighbor: index center<<5 | neighbor, value the sign of
// neighbor - center.
var restoreTable = func() [0x400]int8 {
	var t [0x400]int8
	for i := range t {
		center := (i >> 5) & 0x1f
		neighbor := i & 0x1f
		switch {
		case center < neighbor:
			t[i] = 1
		case center > neighbor:
			t[i] = -1
		}
	}
	return t
}()

// restoreFilter16 is the dither_filter_enable path for fully covered
// 16-bit samples: the RDP wrote the framebuffer through an ordered
// dither, and the VI partially undoes the truncation by nudging each
// channel one step toward each of the six surrounding samples. A channel
// flanked by six brighter neighbors rises by 6; flat areas are left
// untouched.
func restoreFilter16(r, g, b *int, ram RAMReader, frameBuffer uint32, idx int, width int32, fetchBug uint32) {
	base := (frameBuffer >> 1) + uint32(int32(idx))
	w := uint32(int32(width))

	toLeft := base - 1
	leftUp := base - w - 1
	leftDown := base + w - 1
	if fetchBug == 1 {
		leftDown = toLeft
	}

	redPtr := restoreTable[(*r&0xf8)<<2:]
	greenPtr := restoreTable[(*g&0xf8)<<2:]
	bluePtr := restoreTable[(*b&0xf8)<<2:]

	rend, gend, bend := *r, *g, *b
	compare := func(addr uint32) {
		pix := ram.ReadIdx16(addr)
		rend += int(redPtr[(pix>>11)&0x1f])
		gend += int(greenPtr[(pix>>6)&0x1f])
		bend += int(bluePtr[(pix>>1)&0x1f])
	}

	compare(leftUp)
	compare(leftUp + 2)
	compare(toLeft)
	compare(toLeft + 2)
	compare(leftDown)
	compare(leftDown + 2)

	*r = rend & 0xff
	*g = gend & 0xff
	*b = bend & 0xff
}

// restoreFilter32 mirrors restoreFilter16 on 32-bit framebuffers,
// comparing the top five bits of each 8-bit channel.
func restoreFilter32(r, g, b *int, ram RAMReader, frameBuffer uint32, idx int, width int32, fetchBug uint32) {
	base := (frameBuffer >> 2) + uint32(int32(idx))
	w := uint32(int32(width))

	toLeft := base - 1
	leftUp := base - w - 1
	leftDown := base + w - 1
	if fetchBug == 1 {
		leftDown = toLeft
	}

	redPtr := restoreTable[(*r&0xf8)<<2:]
	greenPtr := restoreTable[(*g&0xf8)<<2:]
	bluePtr := restoreTable[(*b&0xf8)<<2:]

	rend, gend, bend := *r, *g, *b
	compare := func(addr uint32) {
		pix := ram.ReadIdx32(addr)
		rend += int(redPtr[(pix>>27)&0x1f])
		gend += int(greenPtr[(pix>>19)&0x1f])
		bend += int(bluePtr[(pix>>11)&0x1f])
	}

	compare(leftUp)
	compare(leftUp + 2)
	compare(toLeft)
	compare(toLeft + 2)
	compare(leftDown)
	compare(leftDown + 2)

	*r = rend & 0xff
	*g = gend & 0xff
	*b = bend & 0xff
}
