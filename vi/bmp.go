package vi

import (
	"bufio"
	"encoding/binary"
	"os"
)

// bmpHeaderSize is the 14-byte BITMAPFILEHEADER plus 40-byte
// BITMAPINFOHEADER, plus 10 reserved bytes ahead of pixel data (an
// artifact of the original hardware's fixed offset table, kept so
// trace-captured screenshot fixtures stay byte-comparable).
const bmpHeaderSize = 14 + 40 + 10

// writeScreenshot writes a 32-bpp bottom-up BMP of the prescale window
// starting at ptr, width x height, row pitch linecount, resampled to
// outputHeight rows by nearest-neighbor row selection.
// This is a hand-rolled encoder rather than golang.org/x/image/bmp: that
// package's Encode only ever emits top-down 24/32-bit images straight from
// an image.Image and has no notion of a row pitch distinct from width or
// of resampling on write, both of which this exact-layout format requires
// (see DESIGN.md).
func (c *ViCore) writeScreenshot(path string, ptr, width, height, linecount, outputHeight int32) error {
	if outputHeight <= 0 {
		outputHeight = height
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	rowSize := width * 4
	pixelDataSize := rowSize * outputHeight
	fileSize := bmpHeaderSize + pixelDataSize

	// BITMAPFILEHEADER
	writeU16(w, 0x4d42) // "BM"
	writeU32(w, uint32(fileSize))
	writeU16(w, 0)
	writeU16(w, 0)
	writeU32(w, bmpHeaderSize)

	// BITMAPINFOHEADER
	writeU32(w, 40)
	writeU32(w, uint32(width))
	writeU32(w, uint32(outputHeight))
	writeU16(w, 1)  // planes
	writeU16(w, 32) // bpp
	writeU32(w, 0)  // BI_RGB
	writeU32(w, uint32(pixelDataSize))
	writeU32(w, 0) // x pixels per meter, unset
	writeU32(w, 0) // y pixels per meter, unset
	writeU32(w, 0)
	writeU32(w, 0)

	var pad [10]byte
	w.Write(pad[:])

	for outRow := outputHeight - 1; outRow >= 0; outRow-- {
		srcRow := outRow * height / outputHeight
		rowBase := ptr + srcRow*linecount
		for x := int32(0); x < width; x++ {
			px := c.prescale[rowBase+x]
			var pixel [4]byte
			pixel[0] = byte(px)
			pixel[1] = byte(px >> 8)
			pixel[2] = byte(px >> 16)
			pixel[3] = 0
			w.Write(pixel[:])
		}
	}

	return w.Flush()
}

func writeU16(w *bufio.Writer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeU32(w *bufio.Writer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}
