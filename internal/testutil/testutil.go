// Package testutil provides shared skip helpers and fixtures for tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// RequireONNXRuntime skips the test if no ONNX Runtime shared library can be
// located. It checks (in order): the ORT_LIBRARY_PATH env var, then the
// WORDPIECE_ORT_LIB env var, then common system library paths.
func RequireONNXRuntime(tb testing.TB) {
	tb.Helper()

	for _, env := range []string{"ORT_LIBRARY_PATH", "WORDPIECE_ORT_LIB"} {
		if p := os.Getenv(env); p != "" {
			_, err := os.Stat(p)
			if err == nil {
				return // found
			}

			tb.Skipf("ONNX Runtime library not found at %s=%q", env, p)
		}
	}
	// Fall back to common system locations.
	candidates := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
	}
	for _, p := range candidates {
		_, err := os.Stat(p)
		if err == nil {
			return // found
		}
	}

	tb.Skip("ONNX Runtime shared library not found; set ORT_LIBRARY_PATH or WORDPIECE_ORT_LIB")
}

// RequireModelFile skips the test if no ONNX model exists at the path given
// by the WORDPIECE_MODEL_PATH environment variable.
func RequireModelFile(tb testing.TB) string {
	tb.Helper()

	p := os.Getenv("WORDPIECE_MODEL_PATH")
	if p == "" {
		tb.Skip("no model file configured; set WORDPIECE_MODEL_PATH to run")
	}

	_, err := os.Stat(p)
	if err != nil {
		tb.Skipf("model file not found at WORDPIECE_MODEL_PATH=%q", p)
	}

	return p
}

// WriteVocabFile writes tokens to a temp vocabulary file, one per line, and
// returns its path. The file is removed when the test ends.
func WriteVocabFile(tb testing.TB, tokens []string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "vocab.txt")
	err := os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o644)
	if err != nil {
		tb.Fatalf("write vocab fixture: %v", err)
	}

	return path
}
