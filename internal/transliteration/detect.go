package transliteration

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Script identifies one of the writing systems used for Ainu.
type Script int

const (
	Unknown Script = iota // zero value, none of the supported scripts found
	Latn                  // Latin romanization
	Cyrl                  // Cyrillic
	Kana                  // Katakana
	Mixed                 // more than one supported script
)

var scriptNames = [...]string{
	Unknown: "Unknown",
	Latn:    "Latn",
	Cyrl:    "Cyrl",
	Kana:    "Kana",
	Mixed:   "Mixed",
}

var scriptFromName = map[string]Script{
	"unknown":  Unknown,
	"latn":     Latn,
	"latin":    Latn,
	"cyrl":     Cyrl,
	"cyrillic": Cyrl,
	"kana":     Kana,
	"katakana": Kana,
	"mixed":    Mixed,
}

// String returns the ISO 15924-style code of the script.
func (s Script) String() string {
	if int(s) >= 0 && int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return fmt.Sprintf("Script(%d)", int(s))
}

// ParseScript parses a script code or English name, ignoring case.
func ParseScript(name string) (Script, error) {
	s, ok := scriptFromName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unknown, fmt.Errorf("transliteration: unknown script: %q", name)
	}
	return s, nil
}

// MarshalJSON encodes the script as its code, e.g. "Kana".
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts anything ParseScript accepts.
func (s *Script) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseScript(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Detect reports which script s is written in. Only letters count; a
// single letter from a second script makes the result Mixed, and text with
// no Latin, Cyrillic or Katakana letters is Unknown.
func Detect(s string) Script {
	var latn, cyrl, kana bool
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		switch {
		case r <= unicode.MaxASCII:
			latn = true
		case IsCyrillic(r):
			cyrl = true
		case IsKatakana(r):
			kana = true
		}
	}

	found := 0
	for _, b := range [...]bool{latn, cyrl, kana} {
		if b {
			found++
		}
	}

	switch {
	case found > 1:
		return Mixed
	case kana:
		return Kana
	case cyrl:
		return Cyrl
	case latn:
		return Latn
	default:
		return Unknown
	}
}
