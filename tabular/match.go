package tabular

import "strings"

// Name matching runs an ordered chain of strategies, strictest first.
// The first strategy that produces a match wins, so an exact name is
// never shadowed by a looser interpretation of it.
type matcher struct {
	name string
	fn   func(want string, have []string) int // -1 when no match
}

var nameMatchers = []matcher{
	{"exact", matchExact},
	{"fold", matchFold},
	{"substring", matchSubstring},
	{"fuzzy", matchFuzzy},
}

// matchName finds the stored name best satisfying want. It returns the
// index into have, the strategy that matched, and whether any matched.
func matchName(want string, have []string) (int, string, bool) {
	for _, m := range nameMatchers {
		if i := m.fn(want, have); i >= 0 {
			return i, m.name, true
		}
	}
	return -1, "", false
}

// MatchColumn resolves want against names with the full matcher chain.
// Formatting rules use it so a rule keyed "net sales" still finds the
// "Net_Sales" column it decorates.
func MatchColumn(want string, names []string) (int, bool) {
	i, _, ok := matchName(want, names)
	return i, ok
}

func matchExact(want string, have []string) int {
	for i, h := range have {
		if h == want {
			return i
		}
	}
	return -1
}

// fold lowercases and collapses internal whitespace.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func matchFold(want string, have []string) int {
	w := fold(want)
	for i, h := range have {
		if fold(h) == w {
			return i
		}
	}
	return -1
}

// matchSubstring accepts containment in either direction. When several
// stored names qualify the shortest wins, so "Region" beats
// "Region Detail" for want "Region".
func matchSubstring(want string, have []string) int {
	w := fold(want)
	if w == "" {
		return -1
	}
	best := -1
	for i, h := range have {
		f := fold(h)
		if f == "" {
			continue
		}
		if strings.Contains(f, w) || strings.Contains(w, f) {
			if best < 0 || len(f) < len(fold(have[best])) {
				best = i
			}
		}
	}
	return best
}

// squash additionally treats '_', '-' and '.' as word separators and
// removes them entirely, so "net_sales", "Net-Sales" and "net sales"
// all reduce to "netsales".
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', '.', ' ', '\t', '\n':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchFuzzy compares separator-squashed forms, accepting containment
// and, for names longer than three characters, a single typo (one edit
// or one adjacent transposition).
func matchFuzzy(want string, have []string) int {
	w := squash(want)
	if w == "" {
		return -1
	}
	best := -1
	for i, h := range have {
		f := squash(h)
		if f == "" {
			continue
		}
		ok := strings.Contains(f, w) || strings.Contains(w, f)
		if !ok && len(w) > 3 && len(f) > 3 {
			ok = editDistanceAtMostOne(w, f)
		}
		if ok {
			if best < 0 || len(f) < len(squash(have[best])) {
				best = i
			}
		}
	}
	return best
}

// editDistanceAtMostOne reports whether b is reachable from a with one
// substitution, insertion, deletion or adjacent transposition.
func editDistanceAtMostOne(a, b string) bool {
	if a == b {
		return true
	}
	la, lb := len(a), len(b)
	switch {
	case la == lb:
		// One substitution, or one adjacent transposition.
		diff := -1
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				if diff >= 0 {
					if i == diff+1 && a[diff] == b[i] && a[i] == b[diff] {
						return a[i+1:] == b[i+1:]
					}
					return false
				}
				diff = i
			}
		}
		return true
	case la == lb+1:
		return oneDeletion(a, b)
	case lb == la+1:
		return oneDeletion(b, a)
	}
	return false
}

// oneDeletion reports whether deleting one byte from longer yields
// shorter.
func oneDeletion(longer, shorter string) bool {
	for i := 0; i < len(longer); i++ {
		if longer[:i]+longer[i+1:] == shorter {
			return true
		}
	}
	return false
}
