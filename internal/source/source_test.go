package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromTextUsesFirstNonEmptyLine(t *testing.T) {
	got, err := FromText(strings.NewReader("\n   \n  Andreassen\tTechnology  \nsecond line\n"))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if got != "Andreassen Technology" {
		t.Fatalf("got %q", got)
	}
}

func TestFromTextEmpty(t *testing.T) {
	_, err := FromText(strings.NewReader(" \n\t\n"))
	if !errors.Is(err, ErrNoSentence) {
		t.Fatalf("expected ErrNoSentence, got %v", err)
	}
}

func TestFirstSentence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single", "Blur every word but one.", "Blur every word but one."},
		{"takes first", "  Hello there! Second sentence.", "Hello there!"},
		{"skips numbering", "1. Focus follows the pointer. Next", "Focus follows the pointer."},
		{"no terminator", "no punctuation here", "no punctuation here"},
		{"capped", "one two three four five six seven eight nine ten eleven twelve thirteen fourteen.", "one two three four five six seven eight nine ten eleven twelve"},
		{"decimal inside", "Pi is 3.14 roughly. More", "Pi is 3.14 roughly."},
		{"collapses whitespace", "Focus\n\tfollows   you?", "Focus follows you?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FirstSentence(tc.in)
			if err != nil {
				t.Fatalf("FirstSentence: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFirstSentenceNeedsLetters(t *testing.T) {
	if _, err := FirstSentence("1. 2. 3.14 -- 42"); !errors.Is(err, ErrNoSentence) {
		t.Fatalf("expected ErrNoSentence, got %v", err)
	}
}

func TestFromTextCapsWords(t *testing.T) {
	line := strings.Repeat("word ", MaxWords+3)
	got, err := FromText(strings.NewReader("\n" + line + "\nsecond line"))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	if n := len(strings.Fields(got)); n != MaxWords {
		t.Fatalf("got %d words, want %d", n, MaxWords)
	}
}

func TestLoadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.txt")
	if err := os.WriteFile(path, []byte("Ship it today\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "Ship it today" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.PDF")
	if err := os.WriteFile(path, minimalPDF("Focus on one word at a time. Everything else waits."), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "Focus on one word at a time." {
		t.Fatalf("got %q", got)
	}
}

func TestLoadRejectsBrokenPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for broken pdf")
	}
}

// minimalPDF writes a single-page document showing text in Helvetica.
func minimalPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
