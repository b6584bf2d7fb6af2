package domain

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Zootie", want: "zootie"},
		{name: "periods to hyphens", input: "The Notorious B.I.G.", want: "the-notorious-b-i-g"},
		{name: "whitespace to hyphens", input: "Wu Tang Clan", want: "wu-tang-clan"},
		{name: "dollar to s", input: "Too $hort", want: "too-short"},
		{name: "ampersand to and", input: "Eric B. & Rakim", want: "eric-b-and-rakim"},
		{name: "entity ampersand", input: "Salt-N-Pepa &amp; Friends", want: "salt-n-pepa-and-friends"},
		{name: "leading apostrophe stripped", input: "'hood", want: "hood"},
		{name: "leading hyphen stripped", input: "-iz- infix", want: "iz-infix"},
		{name: "inner apostrophe dropped", input: "rollin' deep", want: "rollin-deep"},
		{name: "comma dropped", input: "Brentwood, New York, USA", want: "brentwood-new-york-usa"},
		{name: "colon dropped", input: "Liquid Swords: The Return", want: "liquid-swords-the-return"},
		{name: "slash dropped", input: "bread/cheese", want: "breadcheese"},
		{name: "accents folded", input: "Beyoncé", want: "beyonce"},
		{name: "collapse runs", input: "a  .  b", want: "a-b"},
		{name: "trailing hyphen trimmed", input: "O.G.", want: "o-g"},
		{name: "digits kept", input: "50 Cent", want: "50-cent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Deterministic: a second call yields the same slug.
			if again := Slugify(tt.input); again != tt.want {
				t.Errorf("Slugify(%q) second call = %q, want %q", tt.input, again, tt.want)
			}
		})
	}
}

func TestSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headword string
		want     string
	}{
		{name: "article rotated", headword: "The Notorious B.I.G.", want: "notorious-b-i-g, the"},
		{name: "no article", headword: "Nas", want: "nas"},
		{name: "lowercase article", headword: "the bricks", want: "bricks, the"},
		{name: "article not a prefix word", headword: "Theodore Unit", want: "theodore-unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SortKey(tt.headword); got != tt.want {
				t.Errorf("SortKey(%q) = %q, want %q", tt.headword, got, tt.want)
			}
		})
	}
}

func TestLetterBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		slug string
		want string
	}{
		{name: "plain", slug: "zootie", want: "z"},
		{name: "skips the prefix", slug: "the-bricks", want: "b"},
		{name: "digit falls to hash", slug: "40-oz", want: "#"},
		{name: "empty falls to hash", slug: "", want: "#"},
		{name: "bare the prefix", slug: "the-", want: "#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := LetterBucket(tt.slug); got != tt.want {
				t.Errorf("LetterBucket(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestExpandCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "westCoast", want: "West Coast"},
		{input: "drugs", want: "Drugs"},
		{input: "dirtySouthSlang", want: "Dirty South Slang"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		if got := ExpandCamelCase(tt.input); got != tt.want {
			t.Errorf("ExpandCamelCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExpandSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "marijuana_products", want: "Marijuana Products"},
		{input: "money", want: "Money"},
		{input: "firearms_and_ammunition", want: "Firearms And Ammunition"},
	}
	for _, tt := range tests {
		if got := ExpandSnakeCase(tt.input); got != tt.want {
			t.Errorf("ExpandSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
