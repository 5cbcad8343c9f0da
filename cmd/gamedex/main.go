package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gamedex/internal/catalog"
	"gamedex/internal/config"
	"gamedex/internal/filter"
	"gamedex/internal/logger"
	"gamedex/internal/pipeline"
	"gamedex/internal/server"
	"gamedex/internal/source"
	"gamedex/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	log := logger.New(cfg.LogLevel, os.Stderr)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		src := fs.String("source", cfg.SourcePath, "records file or URL")
		_ = fs.Parse(os.Args[2:])

		records, err := source.LoadRecords(*src)
		must(err)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewIngestService(db, log)
		res, err := svc.Ingest(*src, records)
		must(err)
		fmt.Printf("ingest %d done: total=%d accepted=%d rejected=%d duplicates=%d\n",
			res.IngestID, res.Report.Counts.Total, res.Report.Counts.Accepted,
			res.Report.Counts.Rejected, res.Report.Counts.Duplicates)
	case "ingest:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "max runs to list")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListIngests(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%d  %s  %s  total=%d accepted=%d  %s\n",
				run.ID, run.CreatedAt, run.TraceID, run.Counts.Total, run.Counts.Accepted, run.SourceRef)
		}
	case "report:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		ingestID := fs.Int64("ingestId", 0, "ingest run id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *ingestID == 0 {
			must(fmt.Errorf("--ingestId is required"))
		}
		if strings.TrimSpace(*out) == "" {
			*out = filepath.Join(cfg.OutputDir, fmt.Sprintf("report-%d.xlsx", *ingestID))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		report, err := db.GetReport(*ingestID)
		must(err)
		must(pipeline.ExportReportToXLSX(report, *out))
		fmt.Printf("exported report for ingest %d to %s\n", *ingestID, *out)
	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		src := fs.String("source", cfg.SourcePath, "records file or URL")
		state := fs.String("state", "", "filter state as a query string, e.g. q=hide&tags=active")
		query := fs.String("q", "", "free-text query (overrides q from --state)")
		_ = fs.Parse(os.Args[2:])

		records, err := source.LoadRecords(*src)
		must(err)
		cat, report := pipeline.BuildCatalog(records)
		search := catalog.BuildSearchIndex(cat, cfg.SearchThreshold)

		st := filter.Decode(*state)
		if strings.TrimSpace(*query) != "" {
			st.Query = *query
		}
		result := filter.Evaluate(cat, search, st, cfg.PageSize)

		fmt.Printf("catalogue: %d accepted of %d records\n", report.Counts.Accepted, report.Counts.Total)
		fmt.Printf("matches: %d (page %d/%d)\n", result.TotalCount, result.Page, result.TotalPages)
		for _, g := range result.Games {
			fmt.Printf("  %-30s %s\n", g.ID, g.Name)
		}
		fmt.Printf("canonical: %s\n", filter.Encode(st))
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		src := fs.String("source", cfg.SourcePath, "records file or URL")
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		_ = fs.Parse(os.Args[2:])

		records, err := source.LoadRecords(*src)
		must(err)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewIngestService(db, log)
		res, err := svc.Ingest(*src, records)
		must(err)

		facets := catalog.BuildFacetIndex(res.Catalog)
		search := catalog.BuildSearchIndex(res.Catalog, cfg.SearchThreshold)
		srv := server.New(res.Catalog, facets, search, res.Report, cfg.PageSize, log)

		log.Info("serving", "addr", *addr, "games", res.Catalog.Len())
		must(http.ListenAndServe(*addr, srv.Router()))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: gamedex <command>")
	fmt.Println("commands:")
	fmt.Println("  ingest --source=./data/games.json")
	fmt.Println("  ingest:list --limit=10")
	fmt.Println("  report:xlsx --ingestId=1 [--out=./out/report-1.xlsx]")
	fmt.Println("  search --source=./data/games.json [--state='q=hide&tags=active'] [--q=hide]")
	fmt.Println("  serve --source=./data/games.json --addr=:8080")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
