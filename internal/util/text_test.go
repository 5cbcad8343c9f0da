package util

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Tag", want: "tag"},
		{name: "spaces", input: "Hide and Seek", want: "hide-and-seek"},
		{name: "punctuation", input: "Hide-and-Seek!", want: "hide-and-seek"},
		{name: "underscores and runs", input: "  Duck__Duck   Goose ", want: "duck-duck-goose"},
		{name: "leading trailing hyphens", input: "--Tag--", want: "tag"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestDiceCoefficient(t *testing.T) {
	if got := DiceCoefficient("night", "night"); got != 1 {
		t.Fatalf("identical strings: got %v", got)
	}
	if got := DiceCoefficient("night", "nacht"); got <= 0 || got >= 1 {
		t.Fatalf("similar strings should score in (0,1): got %v", got)
	}
	if got := DiceCoefficient("tag", "hide"); got != 0 {
		t.Fatalf("dissimilar strings: got %v", got)
	}
	if got := DiceCoefficient("", "hide"); got != 0 {
		t.Fatalf("empty input: got %v", got)
	}
}

func TestUniqueSorted(t *testing.T) {
	got := UniqueSorted([]string{" ball ", "active", "ball", "", "active"})
	want := []string{"active", "ball"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
