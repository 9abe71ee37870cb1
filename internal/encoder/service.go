// Package encoder wires the vocabulary, the tokenizer backend, and the
// optional ONNX model into one service used by the CLI and the HTTP server.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/example/go-wordpiece/internal/config"
	"github.com/example/go-wordpiece/internal/onnx"
	"github.com/example/go-wordpiece/internal/tokenizer"
	"github.com/example/go-wordpiece/internal/vocab"
)

// Service owns a built Vocabulary, the configured tokenizer backend, and a
// lazily created ONNX runner for embedding.
type Service struct {
	cfg   config.Config
	vocab *vocab.Vocabulary
	tok   tokenizer.Tokenizer

	mu        sync.Mutex
	runner    *onnx.Runner
	runnerErr error
}

// NewService builds the vocabulary from cfg.Paths.VocabPath and constructs
// the selected tokenizer backend. The ONNX model is not touched until the
// first Embed call.
func NewService(cfg config.Config) (*Service, error) {
	backend, err := config.NormalizeBackend(cfg.Tokenizer.Backend)
	if err != nil {
		return nil, err
	}

	v, err := vocab.FromFile(cfg.Paths.VocabPath, vocab.Options{
		Reserved:     cfg.Tokenizer.ReservedTokens,
		MinFrequency: cfg.Tokenizer.MinFrequency,
		MaxTokens:    cfg.Tokenizer.MaxTokens,
		UnknownToken: cfg.Tokenizer.UnknownToken,
	})
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	var tok tokenizer.Tokenizer
	switch backend {
	case config.BackendWordpiece:
		tok = tokenizer.NewWordpiece(v, cfg.Tokenizer.UnknownToken, cfg.Tokenizer.MaxInputChars)
	case config.BackendSugarme:
		tok, err = tokenizer.NewSugarme(cfg.Paths.VocabPath, cfg.Tokenizer.UnknownToken)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("tokenizer ready",
		"backend", backend,
		"vocab_path", cfg.Paths.VocabPath,
		"vocab_size", v.Size(),
	)

	return &Service{cfg: cfg, vocab: v, tok: tok}, nil
}

// Vocabulary returns the built vocabulary for direct lookups.
func (s *Service) Vocabulary() *vocab.Vocabulary {
	return s.vocab
}

// Tokenize splits text into vocabulary token strings.
func (s *Service) Tokenize(text string) ([]string, error) {
	return s.tok.Tokenize(text)
}

// Encode tokenizes text and resolves the tokens to vocabulary IDs.
func (s *Service) Encode(text string) ([]int64, error) {
	return s.tok.Encode(text)
}

// Embed encodes text, runs the ONNX model on a [1, N] int64 tensor of token
// IDs, and returns the model's float32 output alongside the IDs.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, []int64, error) {
	ids, err := s.tok.Encode(text)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return nil, nil, errors.New("no tokens produced from input")
	}

	input, err := onnx.NewTensor(ids, []int64{1, int64(len(ids))})
	if err != nil {
		return nil, nil, fmt.Errorf("build input tensor: %w", err)
	}

	runner, err := s.ensureRunner()
	if err != nil {
		return nil, nil, err
	}

	outputs, err := runner.Run(ctx, map[string]*onnx.Tensor{
		s.cfg.Runtime.InputName: input,
	})
	if err != nil {
		return nil, nil, err
	}

	out, err := selectOutput(outputs, s.cfg.Runtime.OutputName)
	if err != nil {
		return nil, nil, err
	}

	vec, err := out.Float32Data()
	if err != nil {
		return nil, nil, err
	}

	return vec, ids, nil
}

// ensureRunner creates the ONNX runner once. A failed attempt is cached;
// restart the process to retry with a different model or library.
func (s *Service) ensureRunner() (*onnx.Runner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runner != nil || s.runnerErr != nil {
		return s.runner, s.runnerErr
	}

	s.runner, s.runnerErr = onnx.NewRunner(onnx.RunnerConfig{
		LibraryPath: s.cfg.Runtime.ORTLibraryPath,
		APIVersion:  uint32(s.cfg.Runtime.ORTAPIVersion),
		ModelPath:   s.cfg.Paths.ModelPath,
	})
	if s.runnerErr == nil {
		slog.Info("onnx model loaded", "path", s.cfg.Paths.ModelPath)
	}

	return s.runner, s.runnerErr
}

// selectOutput picks the named output, or the first float32 output in name
// order when no name is configured.
func selectOutput(outputs map[string]*onnx.Tensor, name string) (*onnx.Tensor, error) {
	if name != "" {
		out, ok := outputs[name]
		if !ok {
			return nil, fmt.Errorf("model has no output named %q", name)
		}
		return out, nil
	}

	names := make([]string, 0, len(outputs))
	for n := range outputs {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if outputs[n].DType() == onnx.DTypeFloat32 {
			return outputs[n], nil
		}
	}

	return nil, errors.New("model produced no float32 output")
}

// Close releases the ONNX runner if one was created.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runner != nil {
		s.runner.Close()
		s.runner = nil
	}
}
