package internal

// FacetKey names a dimension games can be filtered on.
type FacetKey string

const (
	FacetCategory           FacetKey = "category"
	FacetTags               FacetKey = "tags"
	FacetTraditionality     FacetKey = "traditionality"
	FacetPrepLevel          FacetKey = "prepLevel"
	FacetSkillsDeveloped    FacetKey = "skillsDeveloped"
	FacetRegionalPopularity FacetKey = "regionalPopularity"
)

// FacetKeys is the fixed facet set, in presentation order.
var FacetKeys = []FacetKey{
	FacetCategory,
	FacetTags,
	FacetTraditionality,
	FacetPrepLevel,
	FacetSkillsDeveloped,
	FacetRegionalPopularity,
}

func IsFacetKey(s string) bool {
	for _, k := range FacetKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

type IssueKind string

const (
	IssueMalformedInput      IssueKind = "MALFORMED_INPUT"
	IssueMissingIdentifier   IssueKind = "MISSING_IDENTIFIER"
	IssueSchemaViolation     IssueKind = "SCHEMA_VIOLATION"
	IssueDuplicateIdentifier IssueKind = "DUPLICATE_IDENTIFIER"
)

// Game is a catalogue entry after normalization and validation.
type Game struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description"`
	Equipment      *string `json:"equipment"`
	Category       *string `json:"category"`
	Traditionality *string `json:"traditionality"`
	PrepLevel      *string `json:"prepLevel"`

	AgeMin     *int `json:"ageMin" validate:"omitempty,gte=0"`
	AgeMax     *int `json:"ageMax" validate:"omitempty,gte=0"`
	PlayersMin *int `json:"playersMin" validate:"omitempty,gte=0"`
	PlayersMax *int `json:"playersMax" validate:"omitempty,gte=0"`

	GeneralRules       []string `json:"generalRules"`
	Variations         []string `json:"variations"`
	SkillsDeveloped    []string `json:"skillsDeveloped"`
	Tags               []string `json:"tags"`
	RegionalPopularity []string `json:"regionalPopularity"`
	RegionalNames      []string `json:"regionalNames"`
	Keywords           []string `json:"keywords"`
	RelatedGames       []string `json:"relatedGames"`
	Links              []string `json:"links"`
}

// FacetValues returns the game's value set for one facet key. Scalar facets
// yield zero or one value; array facets yield the stored list.
func (g *Game) FacetValues(key FacetKey) []string {
	scalar := func(v *string) []string {
		if v == nil {
			return nil
		}
		return []string{*v}
	}
	switch key {
	case FacetCategory:
		return scalar(g.Category)
	case FacetTags:
		return g.Tags
	case FacetTraditionality:
		return scalar(g.Traditionality)
	case FacetPrepLevel:
		return scalar(g.PrepLevel)
	case FacetSkillsDeveloped:
		return g.SkillsDeveloped
	case FacetRegionalPopularity:
		return g.RegionalPopularity
	}
	return nil
}

// FieldIssue is one schema violation, addressed by field path.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RejectionRecord traces why one raw input record was or was not included
// in the catalogue. Diagnostics-facing only.
type RejectionRecord struct {
	Index            int          `json:"index"`
	DerivedID        string       `json:"derivedId"`
	ExplicitID       string       `json:"explicitId"`
	Name             string       `json:"name"`
	Issues           []string     `json:"issues"`
	Warnings         []string     `json:"warnings"`
	ValidationIssues []FieldIssue `json:"validationIssues"`
	Included         bool         `json:"included"`
	DuplicateCount   *int         `json:"duplicateCount,omitempty"`
	DuplicateOf      *int         `json:"duplicateOf,omitempty"`
}

// DuplicateGroup links every input index that shared one identifier.
type DuplicateGroup struct {
	SharedID      string   `json:"sharedId"`
	MemberIndices []int    `json:"memberIndices"`
	Names         []string `json:"names"`
}

// FieldCoverage reports how many accepted games populate one field.
type FieldCoverage struct {
	FieldLabel   string `json:"fieldLabel"`
	PresentCount int    `json:"presentCount"`
	TotalCount   int    `json:"totalCount"`
}

type IngestCounts struct {
	Total      int `json:"total"`
	Accepted   int `json:"accepted"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
}

// Report is the full diagnostics output of one catalogue build.
type Report struct {
	Records         []RejectionRecord `json:"records"`
	DuplicateGroups []DuplicateGroup  `json:"duplicateGroups"`
	Coverage        []FieldCoverage   `json:"coverage"`
	Counts          IngestCounts      `json:"counts"`
}
