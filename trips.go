package taxidb

import (
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"path"
	"time"
)

// ErrNoTripData means the first month could not be read, so the database
// would have no trips at all. Later months failing only logs a warning.
var ErrNoTripData = errors.New("no trip data loaded")

const tripColumns = `
	tpep_pickup_datetime AS pickup_datetime,
	tpep_dropoff_datetime AS dropoff_datetime,
	PULocationID AS pickup_location_id,
	DOLocationID AS dropoff_location_id,
	passenger_count,
	trip_distance,
	fare_amount,
	tip_amount,
	total_amount,
	payment_type`

// Drops refunds, data errors, and implausible rides at load time.
const tripFilters = `
WHERE fare_amount > 0 AND fare_amount < 500
	AND trip_distance > 0 AND trip_distance < 100
	AND passenger_count > 0 AND passenger_count <= 6`

func loadTrips(db *sqlx.DB, cfg *Config, months int) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS trips"); err != nil {
		return err
	}

	sources := monthSources(cfg, months)
	slog.Info(fmt.Sprintf("Loading %d month(s) of trips", len(sources)))

	first := sources[0]
	slog.Info("Reading " + sourceName(first))
	query := fmt.Sprintf(`CREATE TABLE trips AS
SELECT
	row_number() OVER () AS trip_id,%s
FROM read_parquet(%s)%s
LIMIT %d`, tripColumns, sqlQuote(first), tripFilters, cfg.FirstMonthCap)
	if _, err := db.Exec(query); err != nil {
		slog.Error(fmt.Sprintf("Could not read %s: %v", sourceName(first), err))
		return fmt.Errorf("%s: %w", sourceName(first), ErrNoTripData)
	}

	for _, source := range sources[1:] {
		slog.Info("Reading " + sourceName(source))
		query := fmt.Sprintf(`INSERT INTO trips
SELECT
	row_number() OVER () + (SELECT max(trip_id) FROM trips) AS trip_id,%s
FROM read_parquet(%s)%s
LIMIT %d`, tripColumns, sqlQuote(source), tripFilters, cfg.NextMonthCap)
		if _, err := db.Exec(query); err != nil {
			slog.Warn(fmt.Sprintf("Could not read %s, continuing without it: %v", sourceName(source), err))
		}
	}

	var count int64
	if err := db.Get(&count, "SELECT count(*) AS count FROM trips"); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d trips", count))
	return nil
}

// monthSources expands cfg.TripURLPattern for months consecutive months
// starting at the reference month, rolling over year ends.
func monthSources(cfg *Config, months int) []string {
	months = clampMonths(months)
	start := time.Date(cfg.ReferenceYear, time.Month(cfg.ReferenceMonth), 1, 0, 0, 0, 0, time.UTC)
	sources := make([]string, months)
	for i := range sources {
		month := start.AddDate(0, i, 0)
		sources[i] = fmt.Sprintf(cfg.TripURLPattern, month.Year(), int(month.Month()))
	}
	return sources
}

func clampMonths(months int) int {
	if months < 1 {
		return 1
	}
	if months > 12 {
		return 12
	}
	return months
}

func sourceName(source string) string {
	return path.Base(source)
}
