package protocol

import (
	"regexp"
	"sort"
)

// Pattern pairs a compiled regex with the operation it identifies, per
// spec.md §4.1's "for every response shape, a compiled extended POSIX
// regular expression is maintained along with the expected capture
// count." Grounded in the corpus's own regex-dispatch idiom (a
// Pattern{Regex, ...} table matched with FindStringSubmatch, in the
// style of the voice-command filter's Pattern/Filter pair), adapted
// from a single flat list to two tables — one for wire frames a server
// receives (requests), one for frames a client receives (responses) —
// since request and response grammars diverge for some operations
// (e.g. the front-panel report shapes appear only in the response table).
type Pattern struct {
	Op              Op
	Regexp          *regexp.Regexp
	ExpectedMatches int // capture groups, not counting the full match
}

// Table is an ordered set of patterns matched in priority order: longer,
// more specific patterns before shorter, more general ones (spec.md
// §4.1's tie-break rule). Go's regexp package has no native "most
// specific" notion, so Table orders its patterns once at construction by
// descending source-pattern length and walks them in that order.
type Table struct {
	patterns []Pattern
}

// NewTable builds a Table from an unordered pattern list, sorting by
// descending pattern-source length so that a more specific pattern is
// tried before a more general one it could also satisfy.
func NewTable(patterns []Pattern) *Table {
	sorted := append([]Pattern(nil), patterns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Regexp.String()) > len(sorted[j].Regexp.String())
	})
	return &Table{patterns: sorted}
}

// MatchFrame tries every pattern in priority order against payload (the
// frame's contents with the enclosing brackets already stripped) and
// returns the first match. ok is false if no pattern matches, which the
// caller treats as UnknownCommand (spec.md §4.1).
func (t *Table) MatchFrame(payload string) (m Match, ok bool) {
	for _, p := range t.patterns {
		groups := p.Regexp.FindStringSubmatch(payload)
		if groups == nil {
			continue
		}
		return Match{Op: p.Op, Captures: groups[1:]}, true
	}
	return Match{}, false
}
