package transliteration

import (
	"strings"
	"unicode/utf8"
)

// Segment is a maximal run of either Ainu-letter runes (Word) or anything
// else: spaces, punctuation, digits, text the converters leave alone.
type Segment struct {
	Text string
	Word bool
}

// Split partitions s into alternating word and non-word runs. Invalid UTF-8
// bytes fall into non-word runs. Join(Split(s)) == s for every s.
func Split(s string) []Segment {
	if s == "" {
		return nil
	}

	segments := make([]Segment, 0, 4)
	start := 0
	inWord := false

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		word := r != utf8.RuneError && IsAinuLetter(r)
		if i == 0 {
			inWord = word
		} else if word != inWord {
			segments = append(segments, Segment{Text: s[start:i], Word: inWord})
			start = i
			inWord = word
		}
		i += size
	}
	segments = append(segments, Segment{Text: s[start:], Word: inWord})

	return segments
}

// Join concatenates segment texts in order.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// mapWords applies fn to every word run of s and copies the rest verbatim.
func mapWords(s string, fn func(word string) string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, seg := range Split(s) {
		if seg.Word {
			b.WriteString(fn(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
