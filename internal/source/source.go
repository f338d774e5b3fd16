// Package source loads the sentence to animate from a file on disk.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxWords caps sentences taken from documents; a hero line longer than this
// does not fit a terminal row.
const MaxWords = 12

// ErrNoSentence is returned when a file contains no usable text.
var ErrNoSentence = errors.New("no sentence found")

// Load picks a sentence out of path. PDFs contribute their first sentence,
// anything else its first non-empty line.
func Load(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FromPDF(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open sentence file: %w", err)
	}
	defer f.Close()
	return FromText(f)
}

// FromText returns the first non-empty line of r, whitespace-normalised and
// cut to MaxWords.
func FromText(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if words := strings.Fields(scanner.Text()); len(words) > 0 {
			return clip(words), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read sentence: %w", err)
	}
	return "", ErrNoSentence
}

// FromPDF returns the first sentence of the document's plain text.
func FromPDF(path string) (string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return FirstSentence(string(text))
}

// FirstSentence returns the first sentence of text that contains a letter,
// so list numbering like "1." is skipped. A sentence ends at a word ending in
// '.', '!' or '?', or after MaxWords words.
func FirstSentence(text string) (string, error) {
	var words []string
	for _, word := range strings.Fields(text) {
		words = append(words, word)
		if !endsSentence(word) && len(words) < MaxWords {
			continue
		}
		if hasLetter(words) {
			return clip(words), nil
		}
		words = words[:0]
	}
	if hasLetter(words) {
		return clip(words), nil
	}
	return "", ErrNoSentence
}

func endsSentence(word string) bool {
	last, _ := utf8.DecodeLastRuneInString(word)
	return last == '.' || last == '!' || last == '?'
}

func clip(words []string) string {
	if len(words) > MaxWords {
		words = words[:MaxWords]
	}
	return strings.Join(words, " ")
}

func hasLetter(words []string) bool {
	for _, word := range words {
		if strings.IndexFunc(word, unicode.IsLetter) >= 0 {
			return true
		}
	}
	return false
}
