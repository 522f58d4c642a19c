package vi

import "log"

// RegisterIndex names a slot in the VI register window.
type RegisterIndex int

const (
	RegStatus RegisterIndex = iota
	RegOrigin
	RegWidth
	RegVCurrentLine
	RegXScale
	RegYScale
	RegHStart
	RegVStart
	RegVSync
	numRegisters
)

// RegisterWindow is the sole live input to the core: a read-through view
// of the nine memory-mapped VI registers. Implementations may back this
// with the emulator's live register memory or a fixed snapshot (as tests
// and the trace replayer do).
type RegisterWindow interface {
	VIRegister(idx RegisterIndex) uint32
}

// RAMReader is the RAM access collaborator. All three methods are pure
// reads; the VI never mutates RDRAM, so concurrent calls from multiple
// workers are safe as long as the implementation's own reads are.
type RAMReader interface {
	ReadIdx16(idx uint32) uint16
	ReadIdx32(idx uint32) uint32
	ReadPair16(idx uint32) (pix uint16, hidden uint8)
}

// DepthBufferProvider resolves the current depth buffer's RAM address,
// consumed only by the fast path's depth mode.
type DepthBufferProvider interface {
	DepthBufferAddress() uint32
}

// DisplaySink is the out-of-scope host display collaborator: upload and
// swap are invoked after the filter pipeline barrier, never during it.
type DisplaySink interface {
	ScreenUpload(buf []int32, width, height, pitch, outputHeight int) error
	ScreenSwap() error
}

// MessageSink is the error/warning taxonomy collaborator: fatal register
// decode errors and one-shot hardware-oddity warnings both flow through
// it, so the core never decides on its own whether to abort a process.
type MessageSink interface {
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// NopSink discards every message; useful in tests that only care about
// pixel output.
type NopSink struct{}

func (NopSink) Warning(string, ...any) {}
func (NopSink) Error(string, ...any)   {}

// StdSink reports warnings and errors through a standard library
// *log.Logger rather than routing through a structured logging layer.
type StdSink struct {
	*log.Logger
}

// NewStdSink wraps log.Default() if logger is nil.
func NewStdSink(logger *log.Logger) StdSink {
	if logger == nil {
		logger = log.Default()
	}
	return StdSink{Logger: logger}
}

func (s StdSink) Warning(format string, args ...any) {
	s.Printf("vi: warning: "+format, args...)
}

func (s StdSink) Error(format string, args ...any) {
	s.Printf("vi: error: "+format, args...)
}

// Registers is a plain fixed snapshot implementing RegisterWindow, for
// tests and the trace replayer: the register window provider reduced to
// nine named fields instead of a live pointer table.
type Registers [numRegisters]uint32

func (r Registers) VIRegister(idx RegisterIndex) uint32 { return r[idx] }
