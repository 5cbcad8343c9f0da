package pipeline

import (
	"strings"
	"testing"
)

func TestNormalizeTrimsRecursively(t *testing.T) {
	raw := Object(map[string]Value{
		"name": String("  Tag  "),
		"tags": Array(String(" active "), String("outdoor")),
		"meta": Object(map[string]Value{"note": String(" x ")}),
	})

	c := Normalize(raw)
	if c.Name != "Tag" {
		t.Fatalf("name not trimmed: %q", c.Name)
	}
	tags, _ := c.Raw.Field("tags")
	if tags.Arr[0].Str != "active" {
		t.Fatalf("array leaf not trimmed: %q", tags.Arr[0].Str)
	}
	meta, _ := c.Raw.Field("meta")
	note, _ := meta.Field("note")
	if note.Str != "x" {
		t.Fatalf("nested leaf not trimmed: %q", note.Str)
	}
}

func TestNormalizeDerivesID(t *testing.T) {
	cases := []struct {
		name string
		raw  Value
		want string
	}{
		{
			name: "explicit id wins",
			raw:  Object(map[string]Value{"id": String("custom-id"), "name": String("Tag")}),
			want: "custom-id",
		},
		{
			name: "slug from name",
			raw:  Object(map[string]Value{"name": String("Hide-and-Seek!")}),
			want: "hide-and-seek",
		},
		{
			name: "no id and no name",
			raw:  Object(map[string]Value{"description": String("...")}),
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw).ID; got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeSentinels(t *testing.T) {
	raw := Object(map[string]Value{
		"name":        String("Tag"),
		"description": String(" NULL, "),
		"category":    String("null"),
		"prepLevel":   String(""),
	})

	c := Normalize(raw)
	for _, field := range []string{"description", "category", "prepLevel"} {
		v, _ := c.Raw.Field(field)
		if v.Kind != KindNull {
			t.Fatalf("%s: sentinel not normalized to null, kind=%d", field, v.Kind)
		}
	}
}

func TestNormalizeSwapsInvertedRanges(t *testing.T) {
	raw := Object(map[string]Value{
		"name":       String("Tag"),
		"ageMin":     Number(12),
		"ageMax":     Number(8),
		"playersMin": Number(2),
		"playersMax": Number(10),
	})

	c := Normalize(raw)
	lo, _ := c.Raw.Field("ageMin")
	hi, _ := c.Raw.Field("ageMax")
	if lo.Num != 8 || hi.Num != 12 {
		t.Fatalf("range not swapped: ageMin=%v ageMax=%v", lo.Num, hi.Num)
	}
	if len(c.Warnings) != 1 || !strings.Contains(c.Warnings[0], "ageMin") {
		t.Fatalf("expected one warning mentioning the inversion, got %v", c.Warnings)
	}

	pLo, _ := c.Raw.Field("playersMin")
	pHi, _ := c.Raw.Field("playersMax")
	if pLo.Num != 2 || pHi.Num != 10 {
		t.Fatalf("valid range must be untouched: %v..%v", pLo.Num, pHi.Num)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := Object(map[string]Value{
		"name":   String(" Hide and Seek "),
		"ageMin": Number(12),
		"ageMax": Number(8),
		"tags":   Array(String(" active ")),
	})

	once := Normalize(raw)
	twice := Normalize(once.Raw)

	if !once.Raw.Equal(twice.Raw) {
		t.Fatal("re-normalizing a normalized record changed it")
	}
	if len(twice.Warnings) != 0 {
		t.Fatalf("re-normalizing emitted warnings: %v", twice.Warnings)
	}
	if once.ID != twice.ID {
		t.Fatalf("id drifted: %q vs %q", once.ID, twice.ID)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	for _, raw := range []Value{String("just text"), Number(3), Array(String("a")), Null()} {
		if c := Normalize(raw); !c.Malformed {
			t.Fatalf("kind %d should be malformed", raw.Kind)
		}
	}
}
