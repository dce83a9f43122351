package taxidb

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/jszwec/csvutil"
	"log/slog"
	"os"
)

type ExportOpts struct{}

// Export writes the zones and trips tables of an existing database to a zip
// of CSV files, for trainees who want to poke at the data outside SQL.
func Export(inputPath string, outputPath string, opts *ExportOpts) error {
	if inputPath == "" {
		panic("Missing inputPath")
	}
	if outputPath == "" {
		panic("Missing outputPath")
	}

	slog.Info(fmt.Sprintf("Exporting %s to %s", inputPath, outputPath))

	db, err := openDBReadOnly(inputPath)
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	outputF, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	outputZip := zip.NewWriter(outputF)
	defer func() {
		_ = outputZip.Close()
		_ = outputF.Close()
	}()

	if err := exportZonesIn(db, outputZip); err != nil {
		return err
	}
	if err := exportTripsIn(db, outputZip); err != nil {
		return err
	}

	if err := outputZip.Close(); err != nil {
		return err
	}
	if err := outputF.Close(); err != nil {
		return err
	}

	err = db.Close()
	db = nil
	if err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Wrote %s", outputPath))
	return nil
}

func exportZonesIn(db *sqlx.DB, outputZip *zip.Writer) error {
	outputF, err := outputZip.Create("zones.csv")
	if err != nil {
		return err
	}
	outputCSV := csv.NewWriter(outputF)
	enc := csvutil.NewEncoder(outputCSV)
	if err := enc.EncodeHeader(Zone{}); err != nil {
		return err
	}

	rows, err := db.Queryx("SELECT * FROM zones ORDER BY location_id")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	rowCount := 0
	for rows.Next() {
		var zone Zone
		if err := rows.StructScan(&zone); err != nil {
			return err
		}
		if err := enc.Encode(zone); err != nil {
			return err
		}
		rowCount++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	outputCSV.Flush()
	if err := outputCSV.Error(); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d rows to zones.csv", rowCount))
	return nil
}

func exportTripsIn(db *sqlx.DB, outputZip *zip.Writer) error {
	outputF, err := outputZip.Create("trips.csv")
	if err != nil {
		return err
	}
	outputCSV := csv.NewWriter(outputF)
	enc := csvutil.NewEncoder(outputCSV)
	if err := enc.EncodeHeader(Trip{}); err != nil {
		return err
	}

	rows, err := db.Queryx("SELECT * FROM trips ORDER BY trip_id")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	rowCount := 0
	for rows.Next() {
		var trip Trip
		if err := rows.StructScan(&trip); err != nil {
			return err
		}
		if err := enc.Encode(trip); err != nil {
			return err
		}
		rowCount++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	outputCSV.Flush()
	if err := outputCSV.Error(); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d rows to trips.csv", rowCount))
	return nil
}
