package tokenizer

import (
	"fmt"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
)

// Sugarme wraps the sugarme/tokenizer WordPiece model as an alternate
// backend over the same vocab.txt file. It applies BERT-style normalization
// and pre-tokenization, so its output matches the native Wordpiece backend
// only for input the normalizer leaves untouched (lowercase words separated
// by single spaces). No special tokens are inserted.
type Sugarme struct {
	t *tk.Tokenizer
}

// NewSugarme loads a WordPiece model from a newline-delimited vocab file.
func NewSugarme(vocabPath, unknown string) (*Sugarme, error) {
	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, unknown)
	if err != nil {
		return nil, fmt.Errorf("load wordpiece vocab %q: %w", vocabPath, err)
	}

	t := tk.NewTokenizer(wp)
	t.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())

	return &Sugarme{t: t}, nil
}

func (s *Sugarme) encode(text string) (*tk.Encoding, error) {
	enc, err := s.t.Encode(tk.NewSingleEncodeInput(tk.NewInputSequence(text)), false)
	if err != nil {
		return nil, fmt.Errorf("sugarme encode: %w", err)
	}
	return enc, nil
}

// Tokenize returns the wordpiece token strings for text.
func (s *Sugarme) Tokenize(text string) ([]string, error) {
	enc, err := s.encode(text)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), enc.GetTokens()...), nil
}

// Encode returns the vocabulary IDs for text.
func (s *Sugarme) Encode(text string) ([]int64, error) {
	enc, err := s.encode(text)
	if err != nil {
		return nil, err
	}

	ids := enc.GetIds()
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out, nil
}
