// Command n64vi replays a captured VI trace fixture through the filter
// pipeline in a window, the interactive counterpart to n64vi-trace.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kalindor/n64vi/display/ebitensink"
	"github.com/kalindor/n64vi/internal/viconfig"
	"github.com/kalindor/n64vi/tracefile"
	"github.com/kalindor/n64vi/vi"
)

func main() {
	tracePath := flag.String("trace", "", "path to a VI trace fixture (.zip or .rar)")
	mode := flag.String("mode", "", "override vi.mode: normal, color, depth, coverage")
	numWorkers := flag.Int("workers", -1, "override worker count (0 = auto, 1 = single-threaded)")
	widescreen := flag.Bool("widescreen", false, "squeeze output height for 16:9 presentation")
	overscan := flag.Bool("show-overscan", false, "show the full prescale buffer including blanking borders")
	flag.Parse()

	if *tracePath == "" {
		log.Fatal("n64vi: -trace is required")
	}

	trace, err := tracefile.Load(*tracePath)
	if err != nil {
		log.Fatalf("n64vi: loading trace: %v", err)
	}
	if len(trace.Frames) == 0 {
		log.Fatal("n64vi: trace has no frames")
	}

	cfgFile, err := viconfig.Load()
	if err != nil {
		log.Printf("n64vi: loading config: %v, using defaults", err)
		cfgFile = viconfig.DefaultConfig()
	}
	if *mode != "" {
		cfgFile.Mode = *mode
	}
	if *numWorkers >= 0 {
		cfgFile.NumWorkers = *numWorkers
	}
	cfgFile.Widescreen = cfgFile.Widescreen || *widescreen
	cfgFile.ShowOverscan = cfgFile.ShowOverscan || *overscan

	sink := ebitensink.New()
	regs := &frameWindow{trace: trace}
	core, err := vi.Init(cfgFile.ToViConfig(), vi.Deps{
		RAM:  trace.RAM,
		Regs: regs,
		Sink: sink,
		Msg:  vi.NewStdSink(nil),
	})
	if err != nil {
		log.Fatalf("n64vi: vi.Init: %v", err)
	}
	defer core.Close()

	g := &game{core: core, sink: sink, regs: regs}

	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowTitle("n64vi trace viewer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// frameWindow is a vi.RegisterWindow that steps through a trace's captured
// frames one at a time, replacing the live hardware register pointers the
// original VI reads from.
type frameWindow struct {
	trace *tracefile.Trace
	index int
}

func (f *frameWindow) VIRegister(idx vi.RegisterIndex) uint32 {
	return f.trace.Frames[f.index%len(f.trace.Frames)].VIRegister(idx)
}

func (f *frameWindow) advance() { f.index++ }

type game struct {
	core *vi.ViCore
	sink *ebitensink.Sink
	regs *frameWindow
}

func (g *game) Update() error {
	if err := g.core.Update(); err != nil {
		return err
	}
	g.regs.advance()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.sink.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
