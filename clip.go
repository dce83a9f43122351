package taxidb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Clip writes a copy of a database keeping only one borough: its zones, and
// the trips that start and end inside it. Smaller databases keep training
// exercises snappy on modest laptops.
func Clip(inputPath string, outputPath string, borough string) error {
	if inputPath == "" {
		panic("Missing inputPath")
	}
	if outputPath == "" {
		panic("Missing outputPath")
	}
	if borough == "" {
		panic("Missing borough")
	}

	slog.Info(fmt.Sprintf("Writing a %s-only copy of %s to %s", borough, inputPath, outputPath))

	if err := checkBorough(inputPath, borough); err != nil {
		return err
	}

	err := os.Remove(outputPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	db, err := openDB(outputPath, "")
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	if _, err := db.Exec(fmt.Sprintf("ATTACH %s AS src (READ_ONLY)", sqlQuote(inputPath))); err != nil {
		return err
	}

	if _, err := db.Exec(fmt.Sprintf(
		"CREATE TABLE zones AS SELECT * FROM src.zones WHERE borough = %s", sqlQuote(borough))); err != nil {
		return err
	}

	var totalCount int64
	if err := db.Get(&totalCount, "SELECT count(*) AS count FROM src.trips"); err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE TABLE trips AS
SELECT * FROM src.trips
WHERE pickup_location_id IN (SELECT location_id FROM zones)
	AND dropoff_location_id IN (SELECT location_id FROM zones)`); err != nil {
		return err
	}
	var keptCount int64
	if err := db.Get(&keptCount, "SELECT count(*) AS count FROM trips"); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("%d of %d trips start and end in %s", keptCount, totalCount, borough))

	if _, err := db.Exec("DETACH src"); err != nil {
		return err
	}

	issues, err := Verify(db)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		slog.Warn(issue)
	}

	err = db.Close()
	db = nil
	if err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Wrote %s", outputPath))
	return nil
}

// checkBorough runs before the output file is created, so a mistyped borough
// leaves nothing behind.
func checkBorough(inputPath string, borough string) error {
	db, err := openDBReadOnly(inputPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var zoneCount int64
	if err := db.Get(&zoneCount, "SELECT count(*) AS count FROM zones WHERE borough = ?", borough); err != nil {
		return err
	}
	if zoneCount == 0 {
		var boroughs []string
		if err := db.Select(&boroughs, "SELECT DISTINCT borough FROM zones ORDER BY borough"); err != nil {
			return err
		}
		return fmt.Errorf("no zones in borough %q (boroughs: %s)", borough, strings.Join(boroughs, ", "))
	}
	return nil
}
