package transliteration

import (
	"strings"
	"unicode"
)

const (
	vowels     = "aiueo"
	consonants = "kstcnhmyrwpx'’"
)

// Combining and spacing (semi-)voicing marks used by Katakana.
const (
	combiningVoiced     = '\u3099'
	combiningSemiVoiced = '\u309A'
	spacingVoiced       = '\u309B'
	spacingSemiVoiced   = '\u309C'
)

// IsCyrillic reports whether r is in the Cyrillic block (U+0400–U+04FF).
func IsCyrillic(r rune) bool {
	return r >= 0x0400 && r <= 0x04FF
}

// IsKatakana reports whether r is in the Katakana block or the Katakana
// Phonetic Extensions used for Ainu codas (U+30A1–U+31FF).
func IsKatakana(r rune) bool {
	return r >= 0x30A1 && r <= 0x31FF
}

// IsAinuLetter reports whether r can be part of an Ainu word in any of the
// supported scripts: letters, combining marks (including the kana voicing
// marks), and the apostrophes used for the glottal stop.
func IsAinuLetter(r rune) bool {
	switch r {
	case '\'', '’', spacingVoiced, spacingSemiVoiced:
		return true
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.M, r)
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

func isConsonant(r rune) bool {
	return strings.ContainsRune(consonants, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
