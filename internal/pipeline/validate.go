package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gamedex/internal"
)

var arrayFields = []string{
	"generalRules", "variations", "skillsDeveloped", "tags",
	"regionalPopularity", "regionalNames", "keywords", "relatedGames", "links",
}

var intFields = []string{"ageMin", "ageMax", "playersMin", "playersMax"}

// Validator schema-checks normalized candidates. Failure is a normal,
// expected outcome for dirty input and is reported as field issues, never
// as an error.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate extracts the typed game from a candidate. On success the issue
// list is empty; otherwise every violation's field path and message is
// returned and the game is nil.
func (v *Validator) Validate(c Candidate) (*internal.Game, []internal.FieldIssue) {
	if c.Malformed {
		return nil, []internal.FieldIssue{{Field: "$", Message: "record is not an object"}}
	}

	var issues []internal.FieldIssue
	game := &internal.Game{ID: c.ID, Name: c.Name}

	game.Description = v.optionalString(c.Raw, "description", &issues)
	game.Equipment = v.optionalString(c.Raw, "equipment", &issues)
	game.Category = v.optionalString(c.Raw, "category", &issues)
	game.Traditionality = v.optionalString(c.Raw, "traditionality", &issues)
	game.PrepLevel = v.optionalString(c.Raw, "prepLevel", &issues)

	ints := map[string]**int{
		"ageMin": &game.AgeMin, "ageMax": &game.AgeMax,
		"playersMin": &game.PlayersMin, "playersMax": &game.PlayersMax,
	}
	for _, field := range intFields {
		*ints[field] = v.optionalInt(c.Raw, field, &issues)
	}

	arrays := map[string]*[]string{
		"generalRules": &game.GeneralRules, "variations": &game.Variations,
		"skillsDeveloped": &game.SkillsDeveloped, "tags": &game.Tags,
		"regionalPopularity": &game.RegionalPopularity, "regionalNames": &game.RegionalNames,
		"keywords": &game.Keywords, "relatedGames": &game.RelatedGames, "links": &game.Links,
	}
	for _, field := range arrayFields {
		*arrays[field] = v.stringArray(c.Raw, field, &issues)
	}

	if err := v.validate.Struct(game); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			issues = append(issues, translateValidationErrors(verrs)...)
		} else {
			issues = append(issues, internal.FieldIssue{Field: "$", Message: err.Error()})
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return game, nil
}

func (v *Validator) optionalString(raw Value, field string, issues *[]internal.FieldIssue) *string {
	val, ok := raw.Field(field)
	if !ok || val.Kind == KindNull {
		return nil
	}
	if val.Kind != KindString {
		*issues = append(*issues, internal.FieldIssue{Field: field, Message: "must be a string or null"})
		return nil
	}
	s := val.Str
	return &s
}

func (v *Validator) optionalInt(raw Value, field string, issues *[]internal.FieldIssue) *int {
	val, ok := raw.Field(field)
	if !ok || val.Kind == KindNull {
		return nil
	}
	n, whole := val.Int()
	if !whole {
		*issues = append(*issues, internal.FieldIssue{Field: field, Message: "must be an integer or null"})
		return nil
	}
	return &n
}

func (v *Validator) stringArray(raw Value, field string, issues *[]internal.FieldIssue) []string {
	val, ok := raw.Field(field)
	if !ok || val.Kind == KindNull {
		return []string{}
	}
	if val.Kind != KindArray {
		*issues = append(*issues, internal.FieldIssue{Field: field, Message: "must be an array of strings"})
		return []string{}
	}
	out := make([]string, 0, len(val.Arr))
	for i, el := range val.Arr {
		if el.Kind != KindString {
			*issues = append(*issues, internal.FieldIssue{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "must be a string",
			})
			continue
		}
		out = append(out, el.Str)
	}
	return out
}

func translateValidationErrors(errs validator.ValidationErrors) []internal.FieldIssue {
	out := make([]internal.FieldIssue, 0, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "gte":
			message = fmt.Sprintf("must be at least %s", err.Param())
		default:
			message = fmt.Sprintf("failed %q validation", err.Tag())
		}
		out = append(out, internal.FieldIssue{Field: err.Field(), Message: message})
	}
	return out
}
