package settlement

import (
	"fmt"
	"strings"
)

// NormalizeParticipants trims names, drops blanks and removes case-insensitive
// duplicates. The first spelling of a name wins and input order is kept.
func NormalizeParticipants(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, name)
	}
	return unique
}

// roster resolves participant references case-insensitively to the
// canonical spelling.
type roster struct {
	names []string
	index map[string]string
}

func newRoster(participants []string) roster {
	r := roster{names: participants, index: make(map[string]string, len(participants))}
	for _, p := range participants {
		r.index[strings.ToLower(strings.TrimSpace(p))] = p
	}
	return r
}

func (r roster) resolve(name string) (string, error) {
	canonical, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	return canonical, nil
}
