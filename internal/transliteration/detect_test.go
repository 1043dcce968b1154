package transliteration

import (
	"encoding/json"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		in   string
		want Script
	}{
		{"aynu", Latn},
		{"AYNU", Latn},
		{"айну", Cyrl},
		{"АЙНУ", Cyrl},
		{"アイヌ", Kana},
		{"イタㇰ", Kana},
		{"aynu айну", Mixed},
		{"Aynuイタㇰ", Mixed},
		{"айну アイヌ", Mixed},
		{"", Unknown},
		{"123 !?", Unknown},
		{"愛努", Unknown},
		{"あいぬ", Unknown},
		{"aynu, 123!", Latn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Detect(tt.in); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		in      string
		want    Script
		wantErr bool
	}{
		{"Latn", Latn, false},
		{"latin", Latn, false},
		{" CYRL ", Cyrl, false},
		{"katakana", Kana, false},
		{"mixed", Mixed, false},
		{"hira", Unknown, true},
		{"", Unknown, true},
	}
	for _, tt := range tests {
		got, err := ParseScript(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScript(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScript(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScriptString(t *testing.T) {
	if got := Kana.String(); got != "Kana" {
		t.Errorf("Kana.String() = %q", got)
	}
	if got := Script(42).String(); got != "Script(42)" {
		t.Errorf("Script(42).String() = %q", got)
	}
}

func TestScriptJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		From Script `json:"from"`
	}{Cyrl})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"from":"Cyrl"}` {
		t.Errorf("Marshal = %s", data)
	}

	var s Script
	if err := json.Unmarshal([]byte(`"katakana"`), &s); err != nil {
		t.Fatal(err)
	}
	if s != Kana {
		t.Errorf("Unmarshal = %v, want Kana", s)
	}
	if err := json.Unmarshal([]byte(`"greek"`), &s); err == nil {
		t.Error("Unmarshal of unknown script succeeded")
	}
}
