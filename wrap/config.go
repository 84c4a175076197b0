package wrap

// Mode selects how text rows are re-flowed.
type Mode int

const (
	// ModeOff copies rows unchanged.
	ModeOff Mode = iota
	// ModeWrap re-flows rows; short lines end their paragraph.
	ModeWrap
	// ModeUnwrapShort re-flows rows and joins short lines as well.
	ModeUnwrapShort
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeWrap:
		return "wrap"
	case ModeUnwrapShort:
		return "unwrap-short"
	default:
		return "unknown"
	}
}

// Config controls line assembly.
type Config struct {
	Mode Mode

	// MaxRegionWidthIn is the output line width in source inches.
	MaxRegionWidthIn float64

	// MaxJustifyExpansion limits full justification: a line is only
	// stretched when the added whitespace is at most this multiple of the
	// gaps being stretched.
	// Default: 3
	MaxJustifyExpansion float64

	// WordBoxes hands word rectangles to the target with every region so
	// they can be recognized.
	WordBoxes bool
}

// DefaultConfig returns wrapping enabled for a 3.3 inch wide line.
func DefaultConfig() Config {
	return Config{
		Mode:                ModeWrap,
		MaxRegionWidthIn:    3.3,
		MaxJustifyExpansion: 3,
	}
}
