package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"user_name", []string{"user_name"}},
		{"email@example.com", []string{"email", "example", "com"}},
		{"", nil},
		{"  spaces  ", []string{"spaces"}},
		{"café résumé", []string{"café", "résumé"}},
		{"first-name", []string{"first", "name"}},
		{"input[name]", []string{"input", "name"}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeWhitespaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\nb", "a b"},
		{"a   b", "a b"},
		{"a\r\n  b", "a b"},
		{"ab", "ab"},
	}
	for _, tt := range tests {
		got := NormalizeWhitespaces(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeWhitespaces(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Full Name", "full name"},
		{"  E-Mail\nAddress ", "e-mail address"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
