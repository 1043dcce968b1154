package transliteration

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// syllableKana maps onset+vowel (or a bare vowel) to Katakana.
var syllableKana = map[string]string{
	"a": "ア", "i": "イ", "u": "ウ", "e": "エ", "o": "オ",
	// Unreachable: Separate drops apostrophes.
	"'a": "ア", "'i": "イ", "'u": "ウ", "'e": "エ", "'o": "オ",
	"’a": "ア", "’i": "イ", "’u": "ウ", "’e": "エ", "’o": "オ",
	"ka": "カ", "ki": "キ", "ku": "ク", "ke": "ケ", "ko": "コ",
	"sa": "サ", "si": "シ", "su": "ス", "se": "セ", "so": "ソ",
	"ta": "タ", "tu": "ト\u309A", "te": "テ", "to": "ト",
	"ca": "チャ", "ci": "チ", "cu": "チュ", "ce": "チェ", "co": "チョ",
	"na": "ナ", "ni": "ニ", "nu": "ヌ", "ne": "ネ", "no": "ノ",
	"ha": "ハ", "hi": "ヒ", "hu": "フ", "he": "ヘ", "ho": "ホ",
	"pa": "パ", "pi": "ピ", "pu": "プ", "pe": "ペ", "po": "ポ",
	"ma": "マ", "mi": "ミ", "mu": "ム", "me": "メ", "mo": "モ",
	"ya": "ヤ", "yi": "イ", "yu": "ユ", "ye": "イェ", "yo": "ヨ",
	"ra": "ラ", "ri": "リ", "ru": "ル", "re": "レ", "ro": "ロ",
	"wa": "ワ", "wi": "ヰ", "we": "ヱ", "wo": "ヲ",
	// Unreachable: Separate never puts two consonants in one syllable onset.
	"nn": "ン",
	"tt": "ッ",
}

// codaKana holds the codas whose spelling does not depend on context.
var codaKana = map[rune]string{
	'w': "ゥ",
	'y': "ィ",
	'm': "ㇺ",
	'n': "ㇴ",
	's': "ㇱ",
	'p': "ㇷ\u309A",
	't': "ッ",
	// Unreachable: input is lower-cased before syllabification.
	'T': "ㇳ",
	'k': "ㇰ",
}

// colouredCodaKana holds the codas spelled after the vowel of the
// following syllable.
var colouredCodaKana = map[rune]map[rune]string{
	'r': {'a': "ㇻ", 'i': "ㇼ", 'u': "ㇽ", 'e': "ㇾ", 'o': "ㇿ"},
	'h': {'a': "ㇵ", 'i': "ㇶ", 'u': "ㇷ", 'e': "ㇸ", 'o': "ㇹ"},
	'x': {'a': "ㇵ", 'i': "ㇶ", 'u': "ㇷ", 'e': "ㇸ", 'o': "ㇹ"},
}

// kanaFixups rewrites small kana that must not stand alone and spells the
// legacy wi/we/wo kana as digraphs.
var kanaFixups = strings.NewReplacer(
	"ィ", "イ",
	"ゥ", "ウ",
	"ㇴ", "ン",
	"ヱ", "ウェ",
	"ヰ", "ウィ",
	"ヲ", "ウォ",
)

// LatnToKana converts romanized Ainu to Katakana. Morpheme boundaries (=)
// and stress accents are ignored; runs of non-letters are copied as is.
func LatnToKana(latn string) string {
	latn = strings.ReplaceAll(latn, "=", "")
	latn = RemoveAcuteAccent(latn)
	return mapWords(latn, func(word string) string {
		return kanaFixups.Replace(wordToKana(strings.ToLower(word)))
	})
}

func wordToKana(word string) string {
	syllables := Separate(word)

	var b strings.Builder
	for i, syllable := range syllables {
		remains, coda := splitCoda(syllable)

		if kana, ok := syllableKana[remains]; ok {
			b.WriteString(kana)
		} else {
			b.WriteString(remains)
		}

		if coda == 0 {
			continue
		}
		if coloured, ok := colouredCodaKana[coda]; ok {
			b.WriteString(coloured[followingVowel(syllables, i)])
		} else if kana, ok := codaKana[coda]; ok {
			b.WriteString(kana)
		} else {
			b.WriteRune(coda)
		}
	}

	return b.String()
}

// splitCoda separates a trailing consonant from the rest of the syllable.
// coda is 0 when the syllable ends in a vowel.
func splitCoda(syllable string) (remains string, coda rune) {
	rs := []rune(syllable)
	last := rs[len(rs)-1]
	if !isConsonant(last) {
		return syllable, 0
	}
	return string(rs[:len(rs)-1]), last
}

// followingVowel returns the first letter of the syllable after i when it
// is a vowel, and u otherwise.
func followingVowel(syllables []string, i int) rune {
	if i+1 < len(syllables) {
		if r, _ := utf8.DecodeRuneInString(syllables[i+1]); isVowel(r) {
			return r
		}
	}
	return 'u'
}

// kanaDigraphs are two-kana sequences read as one romanized unit.
var kanaDigraphs = map[[2]rune]string{
	{'イ', 'ェ'}: "ye",
	{'ウ', 'ェ'}: "we",
	{'ウ', 'ィ'}: "wi",
	{'ウ', 'ォ'}: "wo",
	{'ト', 'ゥ'}: "tu",
	{'ト', combiningSemiVoiced}: "tu",
	{'ㇷ', combiningSemiVoiced}: "p",
	{'チ', 'ャ'}: "ca",
	{'チ', 'ュ'}: "cu",
	{'チ', 'ェ'}: "ce",
	{'チ', 'ョ'}: "co",
}

var kanaLatn = map[rune]string{
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	'カ': "ka", 'キ': "ki", 'ク': "ku", 'ケ': "ke", 'コ': "ko",
	'サ': "sa", 'シ': "si", 'ス': "su", 'セ': "se", 'ソ': "so",
	'タ': "ta", 'チ': "ci", 'テ': "te", 'ト': "to",
	'ナ': "na", 'ニ': "ni", 'ヌ': "nu", 'ネ': "ne", 'ノ': "no",
	'ハ': "ha", 'ヒ': "hi", 'フ': "hu", 'ヘ': "he", 'ホ': "ho",
	'パ': "pa", 'ピ': "pi", 'プ': "pu", 'ペ': "pe", 'ポ': "po",
	'マ': "ma", 'ミ': "mi", 'ム': "mu", 'メ': "me", 'モ': "mo",
	'ヤ': "ya", 'ユ': "yu", 'ヨ': "yo",
	'ラ': "ra", 'リ': "ri", 'ル': "ru", 'レ': "re", 'ロ': "ro",
	'ワ': "wa", 'ヰ': "wi", 'ヱ': "we", 'ヲ': "wo",
	'ン': "n",
	'ㇺ': "m",
	'ㇴ': "n",
	'ゥ': "w",
	'ィ': "y",
	'ㇷ': "h",
	'ㇱ': "s",
	'ッ': "t",
	'ㇳ': "t",
	'ㇰ': "k",
	'ㇵ': "x", 'ㇶ': "x", 'ㇸ': "x", 'ㇹ': "x",
	'ァ': "a", 'ェ': "e", 'ォ': "o",
	'ㇻ': "r", 'ㇼ': "r", 'ㇽ': "r", 'ㇾ': "r", 'ㇿ': "r",
}

// cjkPunctuation re-spaces full-width punctuation for Latin text.
var cjkPunctuation = map[rune]string{
	'。': ". ",
	'、': ", ",
	'，': ", ",
	'．': ". ",
	'！': "! ",
	'？': "? ",
	'：': ": ",
	'；': "; ",
	'「': "“",
	'」': "”",
	'『': "“",
	'』': "”",
	'（': "(",
	'）': ")",
	'・': " ",
	'　': " ",
	'～': "~",
}

const glottalMark = '’'

// KanaToLatn converts Katakana Ainu to romanized Ainu. Hiragana, half-width
// Katakana and spacing voicing marks are accepted as well.
//
// The conversion is lossy: an apostrophe is written only between a
// consonant and a vowel, so glottal stops between vowels are lost and
// hioy’oy comes back as hioioi.
func KanaToLatn(kana string) string {
	segments := Split(foldKana(kana))

	var b strings.Builder
	b.Grow(len(kana))
	for _, seg := range segments {
		if seg.Word {
			b.WriteString(kanaWordToLatn(seg.Text))
		} else {
			b.WriteString(respacePunctuation(seg.Text))
		}
	}
	return b.String()
}

// kanaToken is one step of the Katakana scanner.
type kanaToken struct {
	latn    string
	size    int // source runes consumed, 1 or 2
	matched bool
}

func scanKana(rs []rune, i int) kanaToken {
	if i+1 < len(rs) {
		if latn, ok := kanaDigraphs[[2]rune{rs[i], rs[i+1]}]; ok {
			return kanaToken{latn: latn, size: 2, matched: true}
		}
	}
	if latn, ok := kanaLatn[rs[i]]; ok {
		return kanaToken{latn: latn, size: 1, matched: true}
	}
	return kanaToken{latn: string(rs[i]), size: 1}
}

func kanaWordToLatn(word string) string {
	rs := []rune(word)

	var b strings.Builder
	prevMatched := false
	for i := 0; i < len(rs); {
		tok := scanKana(rs, i)
		// Only kana units are joined with the placeholder; unmapped
		// characters such as Latin letters or voiced kana stay glued to
		// their neighbours.
		if tok.matched && prevMatched {
			b.WriteRune(glottalMark)
		}
		b.WriteString(tok.latn)
		prevMatched = tok.matched
		i += tok.size
	}

	return dropGlottalMarks(b.String())
}

// dropGlottalMarks keeps an apostrophe only when it follows a non-vowel and
// precedes a vowel.
func dropGlottalMarks(s string) string {
	if !strings.ContainsRune(s, glottalMark) {
		return s
	}

	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i, r := range rs {
		if r == glottalMark {
			if i > 0 && isVowel(rs[i-1]) {
				continue
			}
			if i < len(rs)-1 && !isVowel(rs[i+1]) {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// foldKana widens half-width Katakana, maps Hiragana onto Katakana, turns
// spacing voicing marks into combining ones and composes the result.
func foldKana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == spacingVoiced || r == 0xFF9E:
			b.WriteRune(combiningVoiced)
		case r == spacingSemiVoiced || r == 0xFF9F:
			b.WriteRune(combiningSemiVoiced)
		case r >= 0x3041 && r <= 0x3096:
			b.WriteRune(r + 0x60)
		case r >= 0xFF61 && r <= 0xFF9D:
			b.WriteString(width.Widen.String(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}

func respacePunctuation(run string) string {
	var b strings.Builder
	for _, r := range run {
		if out, ok := cjkPunctuation[r]; ok {
			b.WriteString(out)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
