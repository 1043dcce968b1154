// Package transliteration converts Ainu text between the Latin
// romanization, Cyrillic and Katakana, and detects which of them a text is
// written in.
//
// Latin and Cyrillic map letter by letter. Katakana is syllabic: romanized
// words are first divided into syllables (see Separate) and the spelling of
// some codas depends on the syllable that follows.
//
// Every function is total and safe for concurrent use. Characters a
// converter does not know pass through unchanged.
package transliteration

import "strings"

// CyrlToKana converts Cyrillic to Katakana by way of the Latin spelling.
func CyrlToKana(cyrl string) string {
	return LatnToKana(CyrlToLatn(cyrl))
}

// KanaToCyrl converts Katakana to Cyrillic by way of the Latin spelling.
func KanaToCyrl(kana string) string {
	return LatnToCyrl(KanaToLatn(kana))
}

// ConvertFrom converts text written in from into to. Text is returned
// unchanged when from equals to or either script is not one of Latn, Cyrl
// and Kana.
func ConvertFrom(text string, from, to Script) string {
	switch {
	case from == Latn && to == Cyrl:
		return LatnToCyrl(text)
	case from == Latn && to == Kana:
		return LatnToKana(text)
	case from == Cyrl && to == Latn:
		return CyrlToLatn(text)
	case from == Cyrl && to == Kana:
		return CyrlToKana(text)
	case from == Kana && to == Latn:
		return KanaToLatn(text)
	case from == Kana && to == Cyrl:
		return KanaToCyrl(text)
	default:
		return text
	}
}

// Convert detects the script of text and converts it into to. It returns
// the converted text and the detected source script.
func Convert(text string, to Script) (string, Script) {
	from := Detect(text)
	return ConvertFrom(text, from, to), from
}

// Syllabify divides every word of a romanized text into syllables, after
// the same clean-up LatnToKana applies: lower-casing, dropping = and
// stress accents.
func Syllabify(text string) [][]string {
	text = RemoveAcuteAccent(strings.ReplaceAll(text, "=", ""))

	var words [][]string
	for _, seg := range Split(text) {
		if !seg.Word {
			continue
		}
		if syllables := Separate(strings.ToLower(seg.Text)); len(syllables) > 0 {
			words = append(words, syllables)
		}
	}
	return words
}
