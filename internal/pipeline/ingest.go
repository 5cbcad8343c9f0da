package pipeline

import (
	"time"

	"github.com/google/uuid"

	"gamedex/internal"
	"gamedex/internal/catalog"
	"gamedex/internal/logger"
	"gamedex/internal/storage"
)

// IngestService runs the one-shot build and persists the diagnostics
// report for the dashboard consumer.
type IngestService struct {
	db  *storage.DB
	log *logger.Logger
}

func NewIngestService(db *storage.DB, log *logger.Logger) *IngestService {
	return &IngestService{db: db, log: log}
}

type IngestResult struct {
	IngestID int64
	TraceID  string
	Catalog  *catalog.Catalog
	Report   *internal.Report
}

// Ingest builds the catalogue from the given records and persists the
// report under a fresh trace id.
func (s *IngestService) Ingest(sourceRef string, records []Value) (IngestResult, error) {
	start := time.Now()
	traceID := uuid.NewString()

	cat, report := BuildCatalog(records)

	ingestID, err := s.db.InsertReport(traceID, sourceRef, report)
	if err != nil {
		return IngestResult{}, err
	}

	s.log.Info("ingest complete",
		"traceId", traceID,
		"source", sourceRef,
		"total", report.Counts.Total,
		"accepted", report.Counts.Accepted,
		"rejected", report.Counts.Rejected,
		"duplicates", report.Counts.Duplicates,
		"elapsedMs", time.Since(start).Milliseconds(),
	)

	return IngestResult{IngestID: ingestID, TraceID: traceID, Catalog: cat, Report: report}, nil
}
