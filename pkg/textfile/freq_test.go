package textfile

import (
	"testing"
)

func TestTopWords(t *testing.T) {
	content := "Data, data everywhere. The data! The end.\n"
	path := writeFixture(t, t.TempDir(), "words.txt", content)

	got, err := TopWords(path, 3)
	if err != nil {
		t.Fatalf("TopWords() error = %v", err)
	}

	want := []WordCount{
		{Word: "data", Count: 3},
		{Word: "the", Count: 2},
		{Word: "end", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("TopWords() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopWordsTieOrder(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "ties.txt", "beta alpha beta alpha\n")

	got, err := TopWords(path, 0)
	if err != nil {
		t.Fatalf("TopWords() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("TopWords() returned %d entries, want 2", len(got))
	}
	// Equal counts sort alphabetically.
	if got[0].Word != "alpha" || got[1].Word != "beta" {
		t.Errorf("tie order = %q, %q, want alpha, beta", got[0].Word, got[1].Word)
	}
}

func TestTopWordsEmptyFile(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "empty.txt", "")

	got, err := TopWords(path, 10)
	if err != nil {
		t.Fatalf("TopWords() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("TopWords() returned %d entries, want 0", len(got))
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Data,", "data"},
		{"(hello)", "hello"},
		{"don't", "don't"},
		{"end.", "end"},
		{"--", ""},
		{"UPPER", "upper"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeWord(tt.in); got != tt.want {
				t.Errorf("normalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
