package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"15,000", 15000},
		{"", 0},
		{"abc", 0},
		{"1,500.75", 1500},
		{"Rs 2,340", 2340},
		{"0", 0},
		{"  7500  ", 7500},
		{".99", 0},
		{"12.00", 12},
		{"-", 0},
	}

	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseStrict(t *testing.T) {
	if got, err := ParseStrict(""); err != nil || got != 0 {
		t.Errorf("ParseStrict(\"\") = %d, %v; want 0, nil", got, err)
	}
	if got, err := ParseStrict("   "); err != nil || got != 0 {
		t.Errorf("ParseStrict(whitespace) = %d, %v; want 0, nil", got, err)
	}
	if _, err := ParseStrict("abc"); err != ErrNotAnAmount {
		t.Errorf("ParseStrict(\"abc\") error = %v, want ErrNotAnAmount", err)
	}
	if got, err := ParseStrict("15,000"); err != nil || got != 15000 {
		t.Errorf("ParseStrict(\"15,000\") = %d, %v; want 15000, nil", got, err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{45300, "45,300"},
		{1234567, "1,234,567"},
		{-500, "-500"},
		{-45300, "-45,300"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
