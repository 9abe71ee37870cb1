// Package vocab implements the token vocabulary backing wordpiece
// tokenization: an immutable bidirectional mapping between token strings and
// dense 0-based integer indices, built once from ordered token sequences with
// optional frequency pruning, a size cap, reserved tokens, and an optional
// unknown-token fallback.
package vocab

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefinedToken is returned by GetIndex when the token is absent from the
// vocabulary and no unknown token is configured.
var ErrUndefinedToken = errors.New("token not in vocabulary; configure an unknown token to enable fallback")

// ErrInvalidConfig is returned by Build when the options cannot be satisfied.
var ErrInvalidConfig = errors.New("invalid vocabulary configuration")

// Options configures Build. The zero value builds an empty vocabulary with no
// pruning and no unknown token.
type Options struct {
	// Sentences are ordered token sequences. First-seen order across all
	// sentences determines initial index assignment (0, 1, 2, ...).
	Sentences [][]string

	// Reserved tokens are never pruned. Any reserved token not present in
	// Sentences is appended after the sentence tokens, in the order given.
	Reserved []string

	// MinFrequency removes tokens seen fewer than MinFrequency times.
	// Disabled when < 2.
	MinFrequency int

	// MaxTokens caps the vocabulary size, keeping the most frequent tokens.
	// Disabled when <= 0. Must not be smaller than the reserved-token count.
	MaxTokens int

	// UnknownToken, when non-empty, is the fallback target for lookups of
	// absent tokens. It is implicitly reserved.
	UnknownToken string
}

// entry is the per-token record. pinned marks reserved tokens: they sort
// above any counted frequency and are never pruned.
type entry struct {
	index  int64
	count  int
	pinned bool
}

// Vocabulary is an immutable token<->index mapping. Once built it is
// read-only and safe to share across concurrent readers.
type Vocabulary struct {
	tokens       map[string]entry
	indexToToken []string
	unknown      string
	hasUnknown   bool
}

// Build constructs a Vocabulary from opts. Index assignment is sequential in
// first-seen order; reserved tokens not present in the input are appended
// last. Pruning (min frequency, then size cap) reassigns dense indices while
// preserving the original relative order.
func Build(opts Options) (*Vocabulary, error) {
	reserved := reservedInOrder(opts)

	if opts.MaxTokens > 0 && opts.MaxTokens < len(reserved) {
		return nil, fmt.Errorf("%w: max tokens %d is smaller than the %d reserved tokens",
			ErrInvalidConfig, opts.MaxTokens, len(reserved))
	}

	reservedSet := make(map[string]bool, len(reserved))
	for _, t := range reserved {
		reservedSet[t] = true
	}

	v := &Vocabulary{
		tokens:     make(map[string]entry),
		unknown:    opts.UnknownToken,
		hasUnknown: opts.UnknownToken != "",
	}

	for _, sentence := range opts.Sentences {
		for _, token := range sentence {
			v.addToken(token, reservedSet[token])
		}
	}
	// Reserved tokens come after the input tokens so that vocab-file order is
	// preserved for everything else.
	for _, token := range reserved {
		v.addToken(token, true)
	}

	if v.pruneTokens(opts.MinFrequency, opts.MaxTokens) {
		v.reindex()
	} else {
		v.indexFromEntries()
	}

	return v, nil
}

// reservedInOrder returns the reserved tokens deduplicated in the order
// given, with the unknown token appended if not already listed.
func reservedInOrder(opts Options) []string {
	seen := make(map[string]bool, len(opts.Reserved)+1)
	out := make([]string, 0, len(opts.Reserved)+1)
	for _, t := range opts.Reserved {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if opts.UnknownToken != "" && !seen[opts.UnknownToken] {
		out = append(out, opts.UnknownToken)
	}
	return out
}

func (v *Vocabulary) addToken(token string, pinned bool) {
	e, ok := v.tokens[token]
	if !ok {
		e = entry{index: int64(len(v.tokens))}
	}
	if pinned {
		e.pinned = true
	} else {
		e.count++
	}
	v.tokens[token] = e
}

// pruneTokens removes tokens below minFrequency, then trims to maxSize
// keeping the most frequent. Reports whether a pruning pass ran (indices must
// then be reassigned).
func (v *Vocabulary) pruneTokens(minFrequency, maxSize int) bool {
	pruned := false

	if minFrequency > 1 {
		for token, e := range v.tokens {
			if !e.pinned && e.count < minFrequency {
				delete(v.tokens, token)
			}
		}
		pruned = true
	}

	if maxSize > 0 && len(v.tokens) > maxSize {
		// Ordering: pinned first, then frequency descending, ties broken by
		// original index ascending. The tie-break is a deliberate
		// deterministic policy; map iteration order must not leak into the
		// surviving set.
		ordered := make([]string, 0, len(v.tokens))
		for token := range v.tokens {
			ordered = append(ordered, token)
		}
		sort.Slice(ordered, func(i, j int) bool {
			a, b := v.tokens[ordered[i]], v.tokens[ordered[j]]
			if a.pinned != b.pinned {
				return a.pinned
			}
			if a.count != b.count {
				return a.count > b.count
			}
			return a.index < b.index
		})
		for _, token := range ordered[maxSize:] {
			delete(v.tokens, token)
		}
		pruned = true
	}

	return pruned
}

// reindex rebuilds indexToToken after pruning: surviving tokens sorted by
// original index ascending get new dense indices 0..N-1, closing the gaps
// while preserving relative order.
func (v *Vocabulary) reindex() {
	ordered := make([]string, 0, len(v.tokens))
	for token := range v.tokens {
		ordered = append(ordered, token)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return v.tokens[ordered[i]].index < v.tokens[ordered[j]].index
	})

	v.indexToToken = ordered
	for i, token := range ordered {
		e := v.tokens[token]
		e.index = int64(i)
		v.tokens[token] = e
	}
}

// indexFromEntries builds indexToToken from the already-dense sequential
// indices assigned during the add phase.
func (v *Vocabulary) indexFromEntries() {
	v.indexToToken = make([]string, len(v.tokens))
	for token, e := range v.tokens {
		v.indexToToken[e.index] = token
	}
}

// Contains reports whether token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// GetToken returns the token at index. Out-of-range indices return the
// unknown token string, which is "" when no unknown token is configured;
// callers must treat "" as absence. Out-of-range lookup is not an error.
func (v *Vocabulary) GetToken(index int64) string {
	if index < 0 || index >= int64(len(v.indexToToken)) {
		return v.unknown
	}
	return v.indexToToken[index]
}

// GetIndex returns the index assigned to token. Absent tokens resolve to the
// unknown token's index when one is configured; otherwise ErrUndefinedToken.
func (v *Vocabulary) GetIndex(token string) (int64, error) {
	if e, ok := v.tokens[token]; ok {
		return e.index, nil
	}
	if v.hasUnknown {
		return v.tokens[v.unknown].index, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUndefinedToken, token)
}

// Size returns the number of tokens in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// UnknownToken returns the configured unknown token, if any.
func (v *Vocabulary) UnknownToken() (string, bool) {
	return v.unknown, v.hasUnknown
}
