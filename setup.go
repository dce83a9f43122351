package taxidb

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const DefaultMonths = 3

type SetupOpts struct {
	Months   int       // months of trips to load, clamped to [1, 12]; 0 means DefaultMonths
	Config   *Config   // nil means DefaultConfig()
	ReportTo io.Writer // nil means os.Stdout
}

// Setup provisions dbPath with the zones and trips tables and prints the
// summary report. Both tables are recreated from scratch, so running it
// against an existing database refreshes the data. It returns the issues
// found by Verify, which are warnings rather than failures.
func Setup(dbPath string, opts *SetupOpts) ([]string, error) {
	if dbPath == "" {
		panic("Missing dbPath")
	}
	if opts == nil {
		opts = &SetupOpts{}
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	months := opts.Months
	if months == 0 {
		months = DefaultMonths
	}
	months = clampMonths(months)
	reportTo := opts.ReportTo
	if reportTo == nil {
		reportTo = os.Stdout
	}

	slog.Info(fmt.Sprintf("Setting up %s with %d month(s) of trips", dbPath, months))

	db, err := openDB(dbPath, cfg.MemoryLimit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	if err := loadZones(db, cfg); err != nil {
		return nil, err
	}
	if err := loadTrips(db, cfg, months); err != nil {
		return nil, err
	}

	issues, err := Verify(db)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		slog.Warn(issue)
	}

	if err := Report(db, reportTo); err != nil {
		return issues, err
	}

	err = db.Close()
	db = nil
	if err != nil {
		return issues, err
	}

	slog.Info(fmt.Sprintf("Wrote %s", dbPath))
	return issues, nil
}
