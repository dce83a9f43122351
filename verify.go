package taxidb

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"log/slog"
)

// Verify re-checks the invariants the load queries are supposed to have
// established. It reports issues rather than fixing them: the quality
// filters run at load time, so anything found here points at a bug or at a
// hand-edited database.
func Verify(db *sqlx.DB) ([]string, error) {
	slog.Info("Verifying")

	checks := []struct {
		what  string
		query string
	}{
		{
			"trip(s) with fare_amount outside (0, 500)",
			"SELECT count(*) AS count FROM trips WHERE fare_amount <= 0 OR fare_amount >= 500",
		},
		{
			"trip(s) with trip_distance outside (0, 100)",
			"SELECT count(*) AS count FROM trips WHERE trip_distance <= 0 OR trip_distance >= 100",
		},
		{
			"trip(s) with passenger_count outside [1, 6]",
			"SELECT count(*) AS count FROM trips WHERE passenger_count <= 0 OR passenger_count > 6",
		},
		{
			"duplicated trip_id value(s)",
			"SELECT count(*) AS count FROM (SELECT trip_id FROM trips GROUP BY trip_id HAVING count(*) > 1) dups",
		},
		{
			"trip(s) with trip_id out of load order",
			"SELECT count(*) AS count FROM (SELECT trip_id - lag(trip_id) OVER (ORDER BY rowid) AS step FROM trips) steps WHERE step <= 0",
		},
		{
			"trip(s) with a pickup location missing from zones",
			"SELECT count(*) AS count FROM trips WHERE pickup_location_id NOT IN (SELECT location_id FROM zones)",
		},
		{
			"trip(s) with a dropoff location missing from zones",
			"SELECT count(*) AS count FROM trips WHERE dropoff_location_id NOT IN (SELECT location_id FROM zones)",
		},
	}

	var issues []string
	for _, check := range checks {
		var count int64
		if err := db.Get(&count, check.query); err != nil {
			return nil, err
		}
		if count > 0 {
			issues = append(issues, fmt.Sprintf("%d %s", count, check.what))
		}
	}
	return issues, nil
}
