package transliteration

import "testing"

func TestLatnToCyrl(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"capitalized", "Aynu", "Айну"},
		{"upper case", "AYNU", "АЙНУ"},
		{"iotated upper", "Yukar", "Юкар"},
		{"iotated lower lead", "yA", "я"},
		{"all iotated", "yuyayoye", "юяёе"},
		{"hard sign", "a'e", "аъэ"},
		{"right quote dropped", "hioy’oy", "хиойой"},
		{"space and digits", "aynu itak 2", "айну итак 2"},
		{"foreign letters", "bdfg", "bdfg"},
		{"trailing y", "ay", "ай"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatnToCyrl(tt.in); got != tt.want {
				t.Errorf("LatnToCyrl(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCyrlToLatn(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"capitalized", "Айну", "Aynu"},
		{"iotated upper", "Юкар", "YUkar"},
		{"split iotation", "йа", "y’a"},
		{"split iotation upper", "ЙА", "Y’A"},
		{"hard sign", "аъэ", "a'e"},
		{"soft sign dropped", "ань", "an"},
		{"spaces kept", "айну итак", "aynu itak"},
		{"other letters pass", "жук", "жuk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CyrlToLatn(tt.in); got != tt.want {
				t.Errorf("CyrlToLatn(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
