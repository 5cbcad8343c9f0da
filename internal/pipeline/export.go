package pipeline

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gamedex/internal"
)

// ExportReportToXLSX writes one row per input record plus a summary sheet
// of duplicate groups and field coverage.
func ExportReportToXLSX(report *internal.Report, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"index", "derived_id", "explicit_id", "name",
		"included", "issues", "warnings", "validation_issues",
		"duplicate_count", "duplicate_of",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range report.Records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.Index)
		set(2, rec.DerivedID)
		set(3, rec.ExplicitID)
		set(4, rec.Name)
		set(5, rec.Included)
		set(6, strings.Join(rec.Issues, "; "))
		set(7, strings.Join(rec.Warnings, "; "))
		set(8, joinIssues(rec.ValidationIssues))
		set(9, derefInt(rec.DuplicateCount))
		set(10, derefInt(rec.DuplicateOf))
	}

	if _, err := f.NewSheet("summary"); err != nil {
		return err
	}
	writeSummary(f, report)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeSummary(f *excelize.File, report *internal.Report) {
	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue("summary", cell, value)
	}

	set(1, 1, "total")
	set(2, 1, report.Counts.Total)
	set(1, 2, "accepted")
	set(2, 2, report.Counts.Accepted)
	set(1, 3, "rejected")
	set(2, 3, report.Counts.Rejected)
	set(1, 4, "duplicates")
	set(2, 4, report.Counts.Duplicates)

	row := 6
	set(1, row, "shared_id")
	set(2, row, "member_indices")
	set(3, row, "names")
	for _, group := range report.DuplicateGroups {
		row++
		set(1, row, group.SharedID)
		set(2, row, joinInts(group.MemberIndices))
		set(3, row, strings.Join(group.Names, "; "))
	}

	row += 2
	set(1, row, "field")
	set(2, row, "present")
	set(3, row, "total")
	for _, cov := range report.Coverage {
		row++
		set(1, row, cov.FieldLabel)
		set(2, row, cov.PresentCount)
		set(3, row, cov.TotalCount)
	}
}

func joinIssues(issues []internal.FieldIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
