package slugs

import (
	"regexp"
	"testing"
)

func TestGenerate(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello-world",
		"My Merchant Name!":  "my-merchant-name",
		"Test & More":        "test-more",
		"Multiple   Spaces":  "multiple-spaces",
		"Special@#$%^&*()":   "special",
		"snake_case_name":    "snake-case-name",
		"  padded  ":         "padded",
		"--already-sluggy--": "already-sluggy",
		"Acme Shop":          "acme-shop",
		"Blue Mug":           "blue-mug",
		"ÄÖÜ":                "",
		"日本語":                "",
		"Café au Lait":       "caf-au-lait",
		"":                   "",
		"!!!":                "",
		"42 Things":          "42-things",
	}

	for input, want := range cases {
		if got := Generate(input); got != want {
			t.Errorf("Generate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	inputs := []string{"Hello World", "A  B_C-D", "Überraschung", "x"}
	for _, in := range inputs {
		first := Generate(in)
		for i := 0; i < 10; i++ {
			if got := Generate(in); got != first {
				t.Fatalf("Generate(%q) not deterministic: %q vs %q", in, first, got)
			}
		}
	}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerateCharset(t *testing.T) {
	inputs := []string{
		"Hello World", "a__b", "a - b", "MiXeD CaSe 99", "trailing hyphen -",
		"- leading", "many     spaces", "under_score_run___x",
	}
	for _, in := range inputs {
		got := Generate(in)
		if got == "" {
			t.Fatalf("Generate(%q) unexpectedly empty", in)
		}
		if !slugPattern.MatchString(got) {
			t.Errorf("Generate(%q) = %q violates slug charset", in, got)
		}
	}
}
