package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadTokenFile reads a newline-delimited vocabulary file: one token per
// line, lines trimmed of surrounding whitespace, blank lines skipped. Line
// order determines index assignment order.
func ReadTokenFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab file: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	return tokens, nil
}

// FromFile builds a Vocabulary from a token file, appending its lines as one
// sentence after any sentences already present in opts.
func FromFile(path string, opts Options) (*Vocabulary, error) {
	tokens, err := ReadTokenFile(path)
	if err != nil {
		return nil, err
	}

	opts.Sentences = append(opts.Sentences, tokens)

	return Build(opts)
}
