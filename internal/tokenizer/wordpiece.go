package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-wordpiece/internal/vocab"
)

// ContinuationPrefix marks a subword piece that continues a word, e.g. the
// "##r" in "make" + "##r".
const ContinuationPrefix = "##"

// ErrTooManySubTokens is returned when a single word segments into more
// pieces than its character cap allows. Unreachable with a correct matcher;
// it guards the segmentation loop against logic errors.
var ErrTooManySubTokens = errors.New("wordpiece segmentation exceeded the per-word piece cap")

// Wordpiece performs greedy longest-match-first subword segmentation against
// a vocabulary. It is immutable after construction and safe for concurrent
// use; the vocabulary may be shared across instances.
type Wordpiece struct {
	vocab         *vocab.Vocabulary
	unknown       string
	maxInputChars int
}

// NewWordpiece returns a tokenizer bound to v. Words longer than
// maxInputChars characters, and words with no valid segmentation, emit the
// unknown placeholder instead of pieces.
func NewWordpiece(v *vocab.Vocabulary, unknown string, maxInputChars int) *Wordpiece {
	return &Wordpiece{
		vocab:         v,
		unknown:       unknown,
		maxInputChars: maxInputChars,
	}
}

// Tokenize splits text on single spaces after trimming, then segments each
// word into the longest vocabulary-matching pieces. Non-initial pieces carry
// the "##" prefix. A word that is oversized or has an unmatchable remainder
// contributes exactly one unknown placeholder.
func (w *Wordpiece) Tokenize(text string) ([]string, error) {
	output := []string{}
	var pieces []string

	for _, word := range strings.Split(strings.TrimSpace(text), " ") {
		if word == "" {
			// Runs of spaces split into empty words; nothing to segment.
			continue
		}

		runes := []rune(word)
		if len(runes) > w.maxInputChars {
			output = append(output, w.unknown)
			continue
		}

		pieces = pieces[:0]
		bad := false
		start := 0
		for start < len(runes) {
			matched := false
			for end := len(runes); end > start; end-- {
				sub := string(runes[start:end])
				if start > 0 {
					sub = ContinuationPrefix + sub
				}
				if w.vocab.Contains(sub) {
					pieces = append(pieces, sub)
					start = end
					matched = true
					break
				}
			}
			if !matched {
				// Not even the single character matched: the whole word is
				// unmatchable and any accumulated pieces are discarded.
				bad = true
				break
			}
			if len(pieces) > w.maxInputChars {
				return nil, fmt.Errorf("%w: %d pieces for word %q", ErrTooManySubTokens, len(pieces), word)
			}
		}

		if bad {
			output = append(output, w.unknown)
		} else {
			output = append(output, pieces...)
		}
	}

	return output, nil
}

// TokenToIDs resolves each token to its vocabulary index, preserving order
// and length. It propagates vocab.ErrUndefinedToken when a token is absent
// and the vocabulary has no unknown fallback.
func (w *Wordpiece) TokenToIDs(tokens []string) ([]int64, error) {
	ids := make([]int64, len(tokens))
	for i, token := range tokens {
		id, err := w.vocab.GetIndex(token)
		if err != nil {
			return nil, fmt.Errorf("resolve token %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// Encode tokenizes text and resolves the pieces to vocabulary IDs.
func (w *Wordpiece) Encode(text string) ([]int64, error) {
	tokens, err := w.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return w.TokenToIDs(tokens)
}
