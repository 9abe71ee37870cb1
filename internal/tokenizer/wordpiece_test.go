package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/go-wordpiece/internal/vocab"
)

func buildVocab(t *testing.T, unknown string, tokens ...string) *vocab.Vocabulary {
	t.Helper()

	v, err := vocab.Build(vocab.Options{
		Sentences:    [][]string{tokens},
		UnknownToken: unknown,
	})
	if err != nil {
		t.Fatalf("vocab.Build: %v", err)
	}

	return v
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Tokenize
// ---------------------------------------------------------------------------

func TestTokenize_WholeWordMatches(t *testing.T) {
	v := buildVocab(t, "[UNK]", "i", "want", "to", "make", "a", "transfer", "israel")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("i want to make a transfer to israel")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"i", "want", "to", "make", "a", "transfer", "to", "israel"}
	if !equalStrings(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenize_GreedyLongestMatchSplitsSubwords(t *testing.T) {
	v := buildVocab(t, "[UNK]", "make", "##r")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("maker")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"make", "##r"}
	if !equalStrings(got, want) {
		t.Errorf("Tokenize(maker) = %v, want %v", got, want)
	}
}

func TestTokenize_UnmatchableRemainderEmitsUnknown(t *testing.T) {
	// "make" matches but the trailing "r" has no "##r" entry, so the whole
	// word falls back to the placeholder and the partial pieces are dropped.
	v := buildVocab(t, "[UNK]", "make")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("maker")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"[UNK]"}
	if !equalStrings(got, want) {
		t.Errorf("Tokenize(maker) = %v, want %v", got, want)
	}
}

func TestTokenize_UnmatchableFirstCharacterEmitsUnknown(t *testing.T) {
	v := buildVocab(t, "[UNK]", "hello")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("zzz")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if !equalStrings(got, []string{"[UNK]"}) {
		t.Errorf("Tokenize(zzz) = %v, want [[UNK]]", got)
	}
}

func TestTokenize_OversizedWordEmitsSinglePlaceholder(t *testing.T) {
	v := buildVocab(t, "[UNK]", "a", "##a")
	wp := NewWordpiece(v, "[UNK]", 5)

	got, err := wp.Tokenize(strings.Repeat("a", 6))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	// Exactly one placeholder, zero subword pieces.
	if !equalStrings(got, []string{"[UNK]"}) {
		t.Errorf("Tokenize = %v, want [[UNK]]", got)
	}
}

func TestTokenize_ContinuationPrefixOnlyOnNonInitialPieces(t *testing.T) {
	v := buildVocab(t, "[UNK]", "un", "##break", "##able")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("unbreakable")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"un", "##break", "##able"}
	if !equalStrings(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}

	for i, piece := range got {
		prefixed := strings.HasPrefix(piece, ContinuationPrefix)
		if i == 0 && prefixed {
			t.Errorf("first piece %q must not carry %q", piece, ContinuationPrefix)
		}
		if i > 0 && !prefixed {
			t.Errorf("piece %d %q must carry %q", i, piece, ContinuationPrefix)
		}
	}
}

func TestTokenize_EmptyAndWhitespaceOnlyInput(t *testing.T) {
	v := buildVocab(t, "[UNK]", "a")
	wp := NewWordpiece(v, "[UNK]", 200)

	for _, input := range []string{"", "   ", " \t "} {
		got, err := wp.Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("Tokenize(%q) = %v, want no tokens", input, got)
		}
	}
}

func TestTokenize_ConsecutiveSpacesProduceNoTokens(t *testing.T) {
	v := buildVocab(t, "[UNK]", "a", "b")
	wp := NewWordpiece(v, "[UNK]", 200)

	got, err := wp.Tokenize("a   b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	// The empty words between spaces segment to nothing.
	want := []string{"a", "b"}
	if !equalStrings(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenize_MultiByteRunesCountAsSingleCharacters(t *testing.T) {
	v := buildVocab(t, "[UNK]", "日本", "##語")
	wp := NewWordpiece(v, "[UNK]", 3)

	got, err := wp.Tokenize("日本語")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"日本", "##語"}
	if !equalStrings(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TokenToIDs / Encode
// ---------------------------------------------------------------------------

func TestTokenToIDs_PreservesOrderAndLength(t *testing.T) {
	v := buildVocab(t, "[UNK]", "i", "want", "to")
	wp := NewWordpiece(v, "[UNK]", 200)

	ids, err := wp.TokenToIDs([]string{"to", "i", "want"})
	if err != nil {
		t.Fatalf("TokenToIDs: %v", err)
	}

	want := []int64{2, 0, 1}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestTokenToIDs_MissingTokenWithoutUnknownFails(t *testing.T) {
	v, err := vocab.Build(vocab.Options{Sentences: [][]string{{"a"}}})
	if err != nil {
		t.Fatalf("vocab.Build: %v", err)
	}
	wp := NewWordpiece(v, "[UNK]", 200)

	_, err = wp.TokenToIDs([]string{"missing"})
	if err == nil {
		t.Fatal("expected error for token absent with no unknown fallback")
	}
	if !errors.Is(err, vocab.ErrUndefinedToken) {
		t.Errorf("expected vocab.ErrUndefinedToken, got: %v", err)
	}
}

func TestEncode_LengthMatchesTokenize(t *testing.T) {
	v := buildVocab(t, "[UNK]", "i", "want", "to", "make", "a", "transfer", "israel")
	wp := NewWordpiece(v, "[UNK]", 200)

	for _, input := range []string{
		"i want to make a transfer to israel",
		"holaesta es uncabeza",
		"",
		"make make make",
	} {
		tokens, err := wp.Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		ids, err := wp.Encode(input)
		if err != nil {
			t.Fatalf("Encode(%q): %v", input, err)
		}
		if len(ids) != len(tokens) {
			t.Errorf("Encode(%q) length %d != Tokenize length %d", input, len(ids), len(tokens))
		}
	}
}

func TestWordpiece_ImplementsTokenizer(t *testing.T) {
	v := buildVocab(t, "[UNK]", "a")

	var _ Tokenizer = NewWordpiece(v, "[UNK]", 200)
}
