package transliteration

import (
	"strings"
	"testing"
	"unicode/utf8"
)

var fuzzSeeds = []string{
	"",
	"aynu",
	"Aynu itak!",
	"eyaykosiramsuypa",
	"a’e kar'a",
	"айну итак",
	"アイヌ。イタㇰ",
	"ｱｲﾇ",
	"áynu",
	"ay\xffnu",
}

func FuzzSplitLossless(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if got := Join(Split(s)); got != s {
			t.Errorf("Join(Split(%q)) = %q", s, got)
		}
	})
}

func FuzzSeparateKeepsLetters(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		got := strings.Join(Separate(s), "")
		if want := stripApostrophes(s); got != want {
			t.Errorf("Separate(%q) joined = %q, want %q", s, got, want)
		}
	})
}

func FuzzCyrillicRoundTrip(f *testing.F) {
	for _, s := range []string{"aynu", "yukar", "a'e", "iyairaykere", "kamuy"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		// Words of plain Ainu letters survive a Cyrillic round trip. The
		// right quote is excluded since Cyrillic has no letter for it.
		for _, r := range s {
			if !strings.ContainsRune("aiueokstcnhmpyrw'", r) {
				t.Skip()
			}
		}
		if got := CyrlToLatn(LatnToCyrl(s)); got != s {
			t.Errorf("CyrlToLatn(LatnToCyrl(%q)) = %q", s, got)
		}
	})
}

func FuzzKanaConvertersTotal(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		_ = LatnToKana(s)
		_ = KanaToLatn(s)
		_ = KanaToCyrl(s)
		_ = CyrlToKana(s)
		_ = Detect(s)
	})
}
