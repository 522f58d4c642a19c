// Package ebitensink implements vi.DisplaySink on top of ebiten: each
// uploaded frame is written into an offscreen image, then scaled and
// drawn to fit the window.
package ebitensink

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/kalindor/n64vi/vi"
)

// Sink owns the offscreen image the VI pipeline uploads into and the HUD
// overlay drawn on top of it.
type Sink struct {
	mu sync.Mutex

	offscreen    *ebiten.Image
	outputHeight int
	nativeW      int

	hud      string
	hudFace  text.Face
	hudUntil int // frames remaining, decremented from Draw
}

// New constructs a Sink with a basicfont-backed HUD face: a fixed bitmap
// font fits the VI filter pipeline's own debug HUD better than a shaped
// vector font, since it renders uniformly at any resolution without
// shaping.
func New() *Sink {
	return &Sink{hudFace: text.NewGoXFace(basicfont.Face7x13)}
}

// packedToImage unpacks this VI core's row-major (r<<16|g<<8|b) buffer
// into a standard image.RGBA, honoring the pipeline's own row pitch
// (pitch can exceed width when the source is the full prescale buffer
// rather than a tightly packed copy).
type packedRow struct {
	buf          []int32
	width, height, pitch int
}

func (p *packedRow) ColorModel() color.Model { return color.RGBAModel }
func (p *packedRow) Bounds() image.Rectangle { return image.Rect(0, 0, p.width, p.height) }
func (p *packedRow) At(x, y int) color.Color {
	v := p.buf[y*p.pitch+x]
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// ScreenUpload implements vi.DisplaySink. It copies buf into the offscreen
// ebiten image via golang.org/x/image/draw, which resolves the pitch
// mismatch between the pipeline's row stride and the image's tight one
// pixel at a time (draw.Draw's Src op is a plain nearest copy here, no
// resampling, since width/height already match 1:1).
func (s *Sink) ScreenUpload(buf []int32, width, height, pitch, outputHeight int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offscreen == nil || s.offscreen.Bounds().Dx() != width || s.offscreen.Bounds().Dy() != height {
		s.offscreen = ebiten.NewImage(width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := &packedRow{buf: buf, width: width, height: height, pitch: pitch}
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)

	s.offscreen.WritePixels(dst.Pix)
	s.outputHeight = outputHeight
	s.nativeW = width
	return nil
}

// ScreenSwap implements vi.DisplaySink. The pipeline has no double-buffer
// of its own to flip; ebiten's own frame pacing (Draw called once per
// vsync) is the swap, so this is a no-op that exists to satisfy the
// contract and give future frame-pacing instrumentation a hook.
func (s *Sink) ScreenSwap() error {
	return nil
}

// Notify arms a one-line HUD message for the given number of frames
// reduced to a frame count instead of a wall-clock timer since the
// pipeline has no clock of its own to read.
func (s *Sink) Notify(message string, frames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hud = message
	s.hudUntil = frames
}

// Draw renders the current frame into screen, scaled and centered the way
// Emulator.DrawToScreen does, then overlays the HUD message if one is
// still active.
func (s *Sink) Draw(screen *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offscreen == nil {
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(s.nativeW)
	nativeH := float64(s.outputHeight)
	if nativeH <= 0 {
		nativeH = float64(s.offscreen.Bounds().Dy())
	}

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale*nativeH/float64(s.offscreen.Bounds().Dy()))
	op.GeoM.Translate(offsetX, offsetY)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(s.offscreen, op)

	if s.hudUntil > 0 && s.hud != "" {
		top := text.DrawOptions{}
		top.GeoM.Translate(8, 8)
		top.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, s.hud, s.hudFace, &top)
		s.hudUntil--
	}
}
