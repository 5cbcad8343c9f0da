package pipeline

import (
	"fmt"
	"strings"

	"gamedex/internal/util"
)

// optionalStringFields are the scalar string fields subject to sentinel
// normalization: a trimmed, lowercased "", "null" or "null," means absent.
var optionalStringFields = []string{
	"description", "equipment", "category", "traditionality", "prepLevel",
}

var rangePairs = [][2]string{
	{"ageMin", "ageMax"},
	{"playersMin", "playersMax"},
}

// Candidate is a normalized record awaiting schema validation.
type Candidate struct {
	Raw        Value
	ID         string
	ExplicitID string
	Name       string
	Warnings   []string
	Malformed  bool
}

// Normalize applies the structural transforms to one raw record: recursive
// string trimming, identifier derivation, sentinel normalization and range
// correction. It never fails; a record with no derivable id keeps an empty
// id so validation can reject it with a reason.
func Normalize(raw Value) Candidate {
	trimmed := raw.Trimmed()
	if trimmed.Kind != KindObject {
		return Candidate{Raw: trimmed, Malformed: true}
	}

	obj := make(map[string]Value, len(trimmed.Obj))
	for k, v := range trimmed.Obj {
		obj[k] = v
	}

	c := Candidate{}

	for _, field := range optionalStringFields {
		if v, ok := obj[field]; ok && v.Kind == KindString && isSentinel(v.Str) {
			obj[field] = Null()
		}
	}
	// name is required downstream, so a sentinel becomes the empty string
	// for the validator to reject rather than a null.
	if v, ok := obj["name"]; ok && v.Kind == KindString {
		if isSentinel(v.Str) {
			obj["name"] = String("")
		} else {
			c.Name = v.Str
		}
	}

	if v, ok := obj["id"]; ok && v.Kind == KindString && v.Str != "" {
		c.ExplicitID = v.Str
		c.ID = v.Str
	} else if c.Name != "" {
		c.ID = util.Slugify(c.Name)
	}
	obj["id"] = String(c.ID)

	for _, pair := range rangePairs {
		lo, hasLo := obj[pair[0]]
		hi, hasHi := obj[pair[1]]
		if hasLo && hasHi && lo.Kind == KindNumber && hi.Kind == KindNumber && lo.Num > hi.Num {
			obj[pair[0]], obj[pair[1]] = hi, lo
			c.Warnings = append(c.Warnings, fmt.Sprintf(
				"inverted range: %s (%v) was greater than %s (%v), values swapped",
				pair[0], lo.Num, pair[1], hi.Num))
		}
	}

	c.Raw = Object(obj)
	return c
}

func isSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "null,":
		return true
	}
	return false
}
