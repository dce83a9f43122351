package taxidb

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// loadZones recreates the zones table from the TLC zone lookup. Any failure
// to fetch or read the lookup falls back to the built-in zone list, so setup
// works offline.
func loadZones(db *sqlx.DB, cfg *Config) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS zones"); err != nil {
		return err
	}

	csvPath, err := downloadZoneLookup(cfg.ZoneLookupURL, cfg.downloadTimeout())
	if err != nil {
		slog.Warn(fmt.Sprintf("Could not download zone lookup, using fallback zones: %v", err))
		return loadFallbackZones(db)
	}
	defer func() { _ = os.Remove(csvPath) }()

	query := fmt.Sprintf(`CREATE TABLE zones AS
SELECT
	LocationID AS location_id,
	Zone AS zone_name,
	Borough AS borough,
	service_zone
FROM read_csv_auto(%s)`, sqlQuote(csvPath))
	if _, err := db.Exec(query); err != nil {
		slog.Warn(fmt.Sprintf("Could not read zone lookup, using fallback zones: %v", err))
		return loadFallbackZones(db)
	}

	var count int64
	if err := db.Get(&count, "SELECT count(*) AS count FROM zones"); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d zones", count))
	return nil
}

func downloadZoneLookup(url string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	f, err := os.CreateTemp("", "taxi_zone_lookup_*.csv")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func loadFallbackZones(db *sqlx.DB) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS zones"); err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE TABLE zones (
	location_id INTEGER PRIMARY KEY,
	zone_name VARCHAR,
	borough VARCHAR,
	service_zone VARCHAR
)`); err != nil {
		return err
	}

	stmt, err := db.Prepare("INSERT INTO zones VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, zone := range fallbackZones {
		if _, err := stmt.Exec(zone.LocationID, zone.ZoneName, zone.Borough, zone.ServiceZone); err != nil {
			return err
		}
	}

	slog.Info(fmt.Sprintf("Wrote %d fallback zones", len(fallbackZones)))
	return nil
}
