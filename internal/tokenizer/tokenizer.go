// Package tokenizer provides subword tokenization for transformer model
// input. The primary implementation is a greedy longest-match-first wordpiece
// tokenizer over a vocab-backed lookup; an alternate backend wraps the
// sugarme/tokenizer WordPiece model for cross-checking.
package tokenizer

// Tokenizer converts raw text into vocabulary token strings and IDs.
type Tokenizer interface {
	// Tokenize splits text into vocabulary token strings.
	Tokenize(text string) ([]string, error)

	// Encode tokenizes text and resolves each token to its vocabulary ID.
	Encode(text string) ([]int64, error)
}
