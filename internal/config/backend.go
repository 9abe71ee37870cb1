package config

import (
	"fmt"
	"strings"
)

const (
	BackendWordpiece = "wordpiece"
	BackendSugarme   = "sugarme"
)

func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	if backend == "" {
		backend = BackendWordpiece
	}
	switch backend {
	case BackendWordpiece, BackendSugarme:
		return backend, nil
	default:
		return "", fmt.Errorf("invalid tokenizer backend %q (expected %s|%s)", raw, BackendWordpiece, BackendSugarme)
	}
}
