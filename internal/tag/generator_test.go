package tag

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerateFormat(t *testing.T) {
	got := Generate("pub-1", "camp-1", "42")
	if len(got) != 64 {
		t.Fatalf("expected 64 characters, got %d: %q", len(got), got)
	}
	if !hexPattern.MatchString(got) {
		t.Fatalf("expected lowercase hex digest, got %q", got)
	}
}

func TestGenerateDistinctInputs(t *testing.T) {
	inputs := [][3]string{
		{"pub-1", "camp-1", "1"},
		{"pub-1", "camp-2", "1"},
		{"pub-2", "", ""},
		{"pub-3", "camp-1", ""},
	}

	seen := make(map[string]bool)
	for _, in := range inputs {
		got := Generate(in[0], in[1], in[2])
		if seen[got] {
			t.Fatalf("collision for inputs %v: %q", in, got)
		}
		seen[got] = true
	}
}

func TestGenerateSameInputsDiffer(t *testing.T) {
	first := Generate("pub-1", "camp-1", "7")
	second := Generate("pub-1", "camp-1", "7")
	if first == second {
		t.Fatalf("two calls with identical inputs produced the same tag %q", first)
	}
}
