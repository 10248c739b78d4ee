package textnorm

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"punctuation only", "?!.,;:", ""},
		{"lowercases", "Chest PAIN", "chest pain"},
		{"strips punctuation", "chest-pain, sudden!", "chest pain sudden"},
		{"collapses whitespace", "chest   pain \t now", "chest pain now"},
		{"trims ends", "  chest pain  ", "chest pain"},
		{"keeps digits", "pain for 3 hours", "pain for 3 hours"},
		{"devanagari preserved", "सीने में दर्द!", "सीने में दर्द"},
		{"telugu preserved", "ఛాతిలో నొప్పి...", "ఛాతిలో నొప్పి"},
		{"mixed scripts", "chest pain और सीने में दर्द", "chest pain और सीने में दर्द"},
		{"emoji replaced", "chest pain ⚠️ now", "chest pain now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Sudden CHEST pain!!",
		"सीने में दर्द, अचानक",
		"ఛాతిలో నొప్పి హఠాత్తుగా మొదలైంది",
		"pain   for  3   hours...",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_OutputShape(t *testing.T) {
	inputs := []string{
		"Sudden; CHEST---pain??  ",
		" धड़कन तेज़ है! ",
		"ఊపిరి రావడం లేదు!!",
	}

	for _, in := range inputs {
		out := Normalize(in)

		if strings.HasPrefix(out, " ") || strings.HasSuffix(out, " ") {
			t.Errorf("Normalize(%q) has leading/trailing space: %q", in, out)
		}
		if strings.Contains(out, "  ") {
			t.Errorf("Normalize(%q) contains a double space: %q", in, out)
		}
		for _, r := range out {
			if r == ' ' {
				continue
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) {
				t.Errorf("Normalize(%q) contains non letter/digit/mark rune %q", in, r)
			}
			if unicode.IsUpper(r) {
				t.Errorf("Normalize(%q) contains upper-case rune %q", in, r)
			}
		}
	}
}
