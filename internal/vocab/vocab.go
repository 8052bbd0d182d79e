// Package vocab holds the static reference data for voice transcript
// correction: the exercise vocabulary (canonical exercise-name phrases) and
// the correction table (exact noisy-token → canonical replacements).
//
// Both structures are immutable after construction and are therefore safe
// to share across goroutines without locks. The compiled-in defaults cover
// the exercises and speech-to-text mishearings GymSage sees most often;
// deployments can merge additional entries from a YAML file (see
// [LoadFile]).
package vocab

import "strings"

// Vocabulary is an ordered, immutable set of canonical exercise-name
// phrases. Order is significant: fuzzy matching scans entries front to back
// and keeps the first best-scoring entry, so more common exercises should
// come first.
//
// The vocabulary may contain semantically overlapping entries (e.g. "squat"
// and "squats"); both are independent match targets.
type Vocabulary struct {
	phrases []string
	index   map[string]struct{}
}

// NewVocabulary builds a [Vocabulary] from phrases. Entries are lowercased
// and trimmed; empty and duplicate entries are dropped while preserving the
// order of first appearance.
func NewVocabulary(phrases ...string) *Vocabulary {
	v := &Vocabulary{
		phrases: make([]string, 0, len(phrases)),
		index:   make(map[string]struct{}, len(phrases)),
	}
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, dup := v.index[p]; dup {
			continue
		}
		v.phrases = append(v.phrases, p)
		v.index[p] = struct{}{}
	}
	return v
}

// Phrases returns the canonical phrases in priority order. The returned
// slice is shared with the Vocabulary and must not be modified.
func (v *Vocabulary) Phrases() []string {
	return v.phrases
}

// Contains reports whether phrase (already lowercased and trimmed) is a
// canonical vocabulary entry. O(1).
func (v *Vocabulary) Contains(phrase string) bool {
	_, ok := v.index[phrase]
	return ok
}

// Len returns the number of canonical phrases.
func (v *Vocabulary) Len() int {
	return len(v.phrases)
}

// Merge returns a new [Vocabulary] containing v's phrases followed by any
// extra phrases not already present. v itself is never modified.
func (v *Vocabulary) Merge(extra ...string) *Vocabulary {
	combined := make([]string, 0, len(v.phrases)+len(extra))
	combined = append(combined, v.phrases...)
	combined = append(combined, extra...)
	return NewVocabulary(combined...)
}

// Corrections is an immutable exact-lookup table mapping a noisy token (or
// a short multi-word phrase, for bigram lookups) to its canonical
// replacement. Keys are lowercase and punctuation-free; each key maps to
// exactly one value.
type Corrections struct {
	m map[string]string
}

// NewCorrections builds a [Corrections] table from entries. Keys are
// lowercased and trimmed; the map is copied, so later mutation of entries
// does not affect the table.
func NewCorrections(entries map[string]string) *Corrections {
	c := &Corrections{m: make(map[string]string, len(entries))}
	for k, val := range entries {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		c.m[k] = val
	}
	return c
}

// Lookup returns the canonical replacement for token and whether the table
// contains an entry for it. Pure O(1) hash lookup, no fuzziness: the table
// acts as an authoritative override for known noisy tokens.
func (c *Corrections) Lookup(token string) (string, bool) {
	v, ok := c.m[token]
	return v, ok
}

// Len returns the number of entries in the table.
func (c *Corrections) Len() int {
	return len(c.m)
}

// Merge returns a new [Corrections] table containing c's entries overlaid
// with extra. Extra entries win on key collisions. c is never modified.
func (c *Corrections) Merge(extra map[string]string) *Corrections {
	combined := make(map[string]string, len(c.m)+len(extra))
	for k, v := range c.m {
		combined[k] = v
	}
	for k, v := range extra {
		combined[k] = v
	}
	return NewCorrections(combined)
}
