package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedex/internal"
)

func intp(v int) *int { return &v }

func sampleReport() *internal.Report {
	return &internal.Report{
		Records: []internal.RejectionRecord{
			{
				Index: 0, DerivedID: "tag-game", Name: "Tag Game",
				Issues: []string{}, Warnings: []string{"inverted range: ageMin (12) was greater than ageMax (8), values swapped"},
				ValidationIssues: []internal.FieldIssue{},
				Included:         true, DuplicateCount: intp(2),
			},
			{
				Index: 1, DerivedID: "tag-game", Name: "tag_game",
				Issues:           []string{string(internal.IssueDuplicateIdentifier)},
				Warnings:         []string{},
				ValidationIssues: []internal.FieldIssue{},
				DuplicateCount:   intp(2), DuplicateOf: intp(0),
			},
			{
				Index: 2, DerivedID: "", Name: "",
				Issues:   []string{string(internal.IssueMissingIdentifier), string(internal.IssueSchemaViolation)},
				Warnings: []string{},
				ValidationIssues: []internal.FieldIssue{
					{Field: "id", Message: "is required"},
					{Field: "name", Message: "is required"},
				},
			},
		},
		DuplicateGroups: []internal.DuplicateGroup{
			{SharedID: "tag-game", MemberIndices: []int{0, 1}, Names: []string{"Tag Game", "tag_game"}},
		},
		Coverage: []internal.FieldCoverage{
			{FieldLabel: "description", PresentCount: 0, TotalCount: 1},
			{FieldLabel: "category", PresentCount: 1, TotalCount: 1},
		},
		Counts: internal.IngestCounts{Total: 3, Accepted: 1, Rejected: 1, Duplicates: 1},
	}
}

func TestInsertAndGetReport(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "gamedex.db"))
	require.NoError(t, err)
	defer db.Close()

	ingestID, err := db.InsertReport("trace-1", "games.json", sampleReport())
	require.NoError(t, err)
	require.NotZero(t, ingestID)

	got, err := db.GetReport(ingestID)
	require.NoError(t, err)

	want := sampleReport()
	assert.Equal(t, want.Counts, got.Counts)
	require.Len(t, got.Records, 3)
	assert.Equal(t, want.Records[0].Warnings, got.Records[0].Warnings)
	assert.Equal(t, want.Records[1].Issues, got.Records[1].Issues)
	assert.Equal(t, want.Records[1].DuplicateOf, got.Records[1].DuplicateOf)
	assert.Equal(t, want.Records[2].ValidationIssues, got.Records[2].ValidationIssues)
	assert.True(t, got.Records[0].Included)
	assert.False(t, got.Records[1].Included)
	assert.Equal(t, want.DuplicateGroups, got.DuplicateGroups)
	assert.Equal(t, want.Coverage, got.Coverage)
}

func TestGetReportMissing(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "gamedex.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetReport(999)
	assert.Error(t, err)
}

func TestListIngests(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "gamedex.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.InsertReport("trace-1", "a.json", sampleReport())
	require.NoError(t, err)
	_, err = db.InsertReport("trace-2", "b.json", sampleReport())
	require.NoError(t, err)

	runs, err := db.ListIngests(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "trace-2", runs[0].TraceID, "newest first")
	assert.Equal(t, 3, runs[0].Counts.Total)
}
