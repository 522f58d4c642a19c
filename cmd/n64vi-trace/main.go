// Command n64vi-trace runs a captured VI trace fixture through the filter
// pipeline headlessly, writing one BMP screenshot per frame. It is the
// batch/regression counterpart to n64vi's interactive viewer, driving the
// pipeline without a UI.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/kalindor/n64vi/internal/viconfig"
	"github.com/kalindor/n64vi/tracefile"
	"github.com/kalindor/n64vi/vi"
)

// nullSink discards every frame; n64vi-trace only cares about the
// screenshots vi.ViCore writes as a side effect of endStageNormal /
// endStageFast, not about the live display path.
type nullSink struct{}

func (nullSink) ScreenUpload([]int32, int, int, int, int) error { return nil }
func (nullSink) ScreenSwap() error                              { return nil }

// frameWindow steps through a trace's captured frames one at a time,
// standing in for the live register memory a running emulator
// exposes.
type frameWindow struct {
	trace *tracefile.Trace
	index int
}

func (f *frameWindow) VIRegister(idx vi.RegisterIndex) uint32 {
	return f.trace.Frames[f.index%len(f.trace.Frames)].VIRegister(idx)
}

func (f *frameWindow) advance() { f.index++ }

func main() {
	tracePath := flag.String("trace", "", "path to a VI trace fixture (.zip or .rar)")
	outDir := flag.String("out", ".", "directory to write frame_NNNNN.bmp into")
	mode := flag.String("mode", "", "override vi.mode: normal, color, depth, coverage")
	numWorkers := flag.Int("workers", -1, "override worker count (0 = auto, 1 = single-threaded)")
	flag.Parse()

	if *tracePath == "" {
		log.Fatal("n64vi-trace: -trace is required")
	}

	trace, err := tracefile.Load(*tracePath)
	if err != nil {
		log.Fatalf("n64vi-trace: loading trace: %v", err)
	}
	if len(trace.Frames) == 0 {
		log.Fatal("n64vi-trace: trace has no frames")
	}

	cfgFile, err := viconfig.Load()
	if err != nil {
		log.Printf("n64vi-trace: loading config: %v, using defaults", err)
		cfgFile = viconfig.DefaultConfig()
	}
	if *mode != "" {
		cfgFile.Mode = *mode
	}
	if *numWorkers >= 0 {
		cfgFile.NumWorkers = *numWorkers
	}

	regs := &frameWindow{trace: trace}
	core, err := vi.Init(cfgFile.ToViConfig(), vi.Deps{
		RAM:  trace.RAM,
		Regs: regs,
		Sink: nullSink{},
		Msg:  vi.NewStdSink(nil),
	})
	if err != nil {
		log.Fatalf("n64vi-trace: vi.Init: %v", err)
	}
	defer core.Close()

	for i := range trace.Frames {
		core.Screenshot(filepath.Join(*outDir, fmt.Sprintf("frame_%05d.bmp", i)))
		if err := core.Update(); err != nil {
			log.Fatalf("n64vi-trace: frame %d: %v", i, err)
		}
		regs.advance()
	}

	log.Printf("n64vi-trace: wrote %d frames to %s", len(trace.Frames), *outDir)
}
