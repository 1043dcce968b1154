// Package ainconv converts Ainu text between the Latin romanization,
// Cyrillic and Katakana.
//
//	kana := ainconv.ConvertLatnToKana("aynu itak") // アイヌ イタㇰ
//	cyrl := ainconv.ConvertKanaToCyrl(kana)        // аину итак
//
// Conversion to Katakana loses information (glottal stops, y and w codas),
// so round trips through Katakana are not exact.
package ainconv

import "github.com/ainutools/ainconv/internal/transliteration"

// Script identifies a writing system. The zero value is Unknown.
type Script = transliteration.Script

const (
	Unknown = transliteration.Unknown
	Latn    = transliteration.Latn
	Cyrl    = transliteration.Cyrl
	Kana    = transliteration.Kana
	Mixed   = transliteration.Mixed
)

// ConvertLatnToCyrl converts romanized Ainu to Cyrillic.
func ConvertLatnToCyrl(s string) string { return transliteration.LatnToCyrl(s) }

// ConvertCyrlToLatn converts Cyrillic Ainu to the Latin romanization.
func ConvertCyrlToLatn(s string) string { return transliteration.CyrlToLatn(s) }

// ConvertLatnToKana converts romanized Ainu to Katakana.
func ConvertLatnToKana(s string) string { return transliteration.LatnToKana(s) }

// ConvertKanaToLatn converts Katakana (or hiragana) Ainu to the Latin
// romanization.
func ConvertKanaToLatn(s string) string { return transliteration.KanaToLatn(s) }

func ConvertCyrlToKana(s string) string { return transliteration.CyrlToKana(s) }

func ConvertKanaToCyrl(s string) string { return transliteration.KanaToCyrl(s) }

// Detect reports which script s is written in.
func Detect(s string) Script { return transliteration.Detect(s) }

// Separate divides a lower-case romanized word into syllables.
func Separate(word string) []string { return transliteration.Separate(word) }

// Convert detects the script of text and converts it into to, returning
// the detected script too. Mixed and Unknown text is returned unchanged.
func Convert(text string, to Script) (string, Script) {
	return transliteration.Convert(text, to)
}

func ConvertFrom(text string, from, to Script) string {
	return transliteration.ConvertFrom(text, from, to)
}

// Syllabify divides every word of a romanized text into syllables.
func Syllabify(text string) [][]string { return transliteration.Syllabify(text) }

// ParseScript parses a script code such as "Kana" or a name such as
// "katakana", ignoring case.
func ParseScript(name string) (Script, error) { return transliteration.ParseScript(name) }
