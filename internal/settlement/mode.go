package settlement

import (
	"fmt"
	"strings"
)

// SplitMode selects how per-participant weights are interpreted.
type SplitMode string

const (
	SplitEqual   SplitMode = "equal"
	SplitPercent SplitMode = "percent"
	SplitShares  SplitMode = "shares"
	SplitExact   SplitMode = "exact"
)

// SplitModes lists every supported mode.
var SplitModes = []SplitMode{SplitEqual, SplitPercent, SplitShares, SplitExact}

// ParseSplitMode accepts a mode name case-insensitively. An empty string
// means equal split.
func ParseSplitMode(s string) (SplitMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SplitEqual, nil
	}
	for _, m := range SplitModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown split mode %q", ErrInvalidSplit, s)
}

// Label is the human-readable name used in exports.
func (m SplitMode) Label() string {
	switch m {
	case SplitEqual:
		return "Equally"
	case SplitPercent:
		return "By Percent (%)"
	case SplitShares:
		return "By Shares"
	case SplitExact:
		return "By Exact Amount"
	default:
		return string(m)
	}
}
