package transliteration

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const combiningAcute = '\u0301'

// stripAcute is stateful and must not be shared between goroutines,
// so RemoveAcuteAccent builds a fresh chain per call.
func stripAcute() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r == combiningAcute })),
		norm.NFC,
	)
}

// RemoveAcuteAccent drops stress marks written with the combining acute
// accent (U+0301), whether the input carried it precomposed or decomposed.
// All other diacritics are recomposed unchanged.
func RemoveAcuteAccent(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripAcute(), s)
	if err != nil {
		return s
	}
	return out
}
