package transliteration

import (
	"strings"
	"unicode"
)

// latnToCyrl maps lower-case romanized Ainu letters to Cyrillic. The right
// single quote only separates letters in Latin and has no Cyrillic form.
var latnToCyrl = map[rune]string{
	'a': "а", 'i': "и", 'u': "у", 'e': "э", 'o': "о",
	'k': "к", 's': "с", 't': "т", 'c': "ц", 'h': "х",
	'm': "м", 'n': "н", 'p': "п", 'r': "р", 'w': "в",
	'y': "й",
	'\'': "ъ",
	'’':  "",
}

// iotatedCyrl holds y + vowel pairs that Cyrillic writes as one letter.
var iotatedCyrl = map[rune]string{
	'u': "ю", 'a': "я", 'o': "ё", 'e': "е",
}

var cyrlToLatn = map[rune]string{
	'ю': "yu", 'я': "ya", 'ё': "yo", 'е': "ye",
	'а': "a", 'и': "i", 'у': "u", 'э': "e", 'о': "o",
	'к': "k", 'с': "s", 'т': "t", 'ц': "c", 'х': "h",
	'м': "m", 'н': "n", 'п': "p", 'р': "r", 'в': "w",
	'й': "y",
	'ъ': "'",
	// The soft sign has no Ainu value and is dropped. Spaces are not in
	// the table and pass through.
	'ь': "",
	'’': "",
}

// splitIotated holds й + vowel pairs. Decoding them to y’ + vowel keeps
// the reverse direction from fusing them back into an iotated letter.
var splitIotated = map[rune]string{
	'у': "y’u", 'а': "y’a", 'о': "y’o", 'э': "y’e",
}

// LatnToCyrl converts romanized Ainu to Cyrillic. Letters keep their case;
// characters outside the Ainu alphabet pass through unchanged.
func LatnToCyrl(latn string) string {
	return substitute(latn, 'y', iotatedCyrl, latnToCyrl)
}

// CyrlToLatn converts Cyrillic Ainu to romanized Ainu. The soft sign is
// dropped, so the conversion is not a strict inverse of LatnToCyrl.
func CyrlToLatn(cyrl string) string {
	return substitute(cyrl, 'й', splitIotated, cyrlToLatn)
}

// substitute scans s rune by rune. When the lower-cased rune equals lead and
// the next rune's lower-case form is a key of pairs, both runes are replaced
// by the pair mapping; otherwise the rune goes through single. The case of
// the first source rune is applied to the whole replacement.
func substitute(s string, lead rune, pairs, single map[rune]string) string {
	if s == "" {
		return ""
	}

	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(rs); i++ {
		cur := rs[i]
		lower := unicode.ToLower(cur)

		out, ok := "", false
		if lower == lead && i+1 < len(rs) {
			if pair, found := pairs[unicode.ToLower(rs[i+1])]; found {
				out, ok = pair, true
				i++
			}
		}
		if !ok {
			out, ok = single[lower]
		}

		switch {
		case !ok:
			b.WriteRune(cur)
		case unicode.IsUpper(cur):
			b.WriteString(strings.ToUpper(out))
		default:
			b.WriteString(out)
		}
	}

	return b.String()
}
