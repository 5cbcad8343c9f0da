package pipeline

import (
	"gamedex/internal"
	"gamedex/internal/catalog"
)

// BuildCatalog runs normalization, validation and deduplication over an
// ordered sequence of raw records and returns the frozen catalogue together
// with the full diagnostics report. A bad record never halts the build;
// every exclusion is traced in the report.
func BuildCatalog(records []Value) (*catalog.Catalog, *internal.Report) {
	validator := NewValidator()
	dedup := NewDeduplicator()

	report := &internal.Report{
		Records: make([]internal.RejectionRecord, 0, len(records)),
	}
	var games []*internal.Game

	for i, raw := range records {
		c := Normalize(raw)
		rec := internal.RejectionRecord{
			Index:            i,
			DerivedID:        c.ID,
			ExplicitID:       c.ExplicitID,
			Name:             c.Name,
			Issues:           []string{},
			Warnings:         append([]string{}, c.Warnings...),
			ValidationIssues: []internal.FieldIssue{},
		}

		switch {
		case c.Malformed:
			rec.Issues = append(rec.Issues, string(internal.IssueMalformedInput))
		default:
			game, issues := validator.Validate(c)
			if c.ID == "" {
				rec.Issues = append(rec.Issues, string(internal.IssueMissingIdentifier))
			}
			if len(issues) > 0 {
				rec.Issues = append(rec.Issues, string(internal.IssueSchemaViolation))
				rec.ValidationIssues = issues
			}
			if game != nil {
				first, firstIndex := dedup.Admit(game.ID, i, game.Name)
				if first {
					rec.Included = true
					games = append(games, game)
				} else {
					rec.Issues = append(rec.Issues, string(internal.IssueDuplicateIdentifier))
					idx := firstIndex
					rec.DuplicateOf = &idx
				}
			}
		}

		report.Records = append(report.Records, rec)
		report.Counts.Total++
		if rec.Included {
			report.Counts.Accepted++
		} else if rec.DuplicateOf != nil {
			report.Counts.Duplicates++
		} else {
			report.Counts.Rejected++
		}
	}

	report.DuplicateGroups = dedup.Groups()
	for _, group := range report.DuplicateGroups {
		count := len(group.MemberIndices)
		for _, idx := range group.MemberIndices {
			n := count
			report.Records[idx].DuplicateCount = &n
		}
	}

	report.Coverage = coverage(games)
	return catalog.New(games), report
}

func coverage(games []*internal.Game) []internal.FieldCoverage {
	total := len(games)
	entry := func(label string, present func(*internal.Game) bool) internal.FieldCoverage {
		count := 0
		for _, g := range games {
			if present(g) {
				count++
			}
		}
		return internal.FieldCoverage{FieldLabel: label, PresentCount: count, TotalCount: total}
	}

	strPresent := func(get func(*internal.Game) *string) func(*internal.Game) bool {
		return func(g *internal.Game) bool { return get(g) != nil }
	}
	intPresent := func(get func(*internal.Game) *int) func(*internal.Game) bool {
		return func(g *internal.Game) bool { return get(g) != nil }
	}
	arrPresent := func(get func(*internal.Game) []string) func(*internal.Game) bool {
		return func(g *internal.Game) bool { return len(get(g)) > 0 }
	}

	return []internal.FieldCoverage{
		entry("description", strPresent(func(g *internal.Game) *string { return g.Description })),
		entry("equipment", strPresent(func(g *internal.Game) *string { return g.Equipment })),
		entry("category", strPresent(func(g *internal.Game) *string { return g.Category })),
		entry("traditionality", strPresent(func(g *internal.Game) *string { return g.Traditionality })),
		entry("prepLevel", strPresent(func(g *internal.Game) *string { return g.PrepLevel })),
		entry("ageMin", intPresent(func(g *internal.Game) *int { return g.AgeMin })),
		entry("ageMax", intPresent(func(g *internal.Game) *int { return g.AgeMax })),
		entry("playersMin", intPresent(func(g *internal.Game) *int { return g.PlayersMin })),
		entry("playersMax", intPresent(func(g *internal.Game) *int { return g.PlayersMax })),
		entry("generalRules", arrPresent(func(g *internal.Game) []string { return g.GeneralRules })),
		entry("variations", arrPresent(func(g *internal.Game) []string { return g.Variations })),
		entry("skillsDeveloped", arrPresent(func(g *internal.Game) []string { return g.SkillsDeveloped })),
		entry("tags", arrPresent(func(g *internal.Game) []string { return g.Tags })),
		entry("regionalPopularity", arrPresent(func(g *internal.Game) []string { return g.RegionalPopularity })),
		entry("regionalNames", arrPresent(func(g *internal.Game) []string { return g.RegionalNames })),
		entry("keywords", arrPresent(func(g *internal.Game) []string { return g.Keywords })),
		entry("relatedGames", arrPresent(func(g *internal.Game) []string { return g.RelatedGames })),
		entry("links", arrPresent(func(g *internal.Game) []string { return g.Links })),
	}
}
