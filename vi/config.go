package vi

// Mode selects the normal filtered path or one of the fast path's
// framebuffer reinterpretations.
type Mode int

const (
	ModeNormal Mode = iota
	ModeColor
	ModeDepth
	ModeCoverage

	modeNum
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeColor:
		return "color"
	case ModeDepth:
		return "depth"
	case ModeCoverage:
		return "coverage"
	default:
		return "invalid"
	}
}

// VIConfig is the vi.* sub-tree of Config.
type VIConfig struct {
	Mode         Mode
	Widescreen   bool
	ShowOverscan bool // emit the full prescale buffer, blanking borders included
}

// Config is the recognized configuration structure for the VI core.
type Config struct {
	NumWorkers int // 0 = auto-detect worker count, 1 = no parallelism
	VI         VIConfig
}
