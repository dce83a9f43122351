package taxidb

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func TestVerifyCleanLoad(t *testing.T) {
	dir := testTempdir(t)
	cfg := testConfig(t, dir)

	writeTripParquet(t, monthFile(dir, time.January), []tlcTrip{
		validTrip(time.January, 2), ewrTrip(time.January, 3),
	})

	db, err := openDB(dir+"/taxi.duckdb", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, loadFallbackZones(db))
	require.NoError(t, loadTrips(db, cfg, 1))

	issues, err := Verify(db)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestVerifyFlagsBadRows(t *testing.T) {
	dir := testTempdir(t)

	db, err := openDB(dir+"/bad.duckdb", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, loadFallbackZones(db))
	_, err = db.Exec(`CREATE TABLE trips (
	trip_id BIGINT,
	pickup_datetime TIMESTAMP,
	dropoff_datetime TIMESTAMP,
	pickup_location_id BIGINT,
	dropoff_location_id BIGINT,
	passenger_count BIGINT,
	trip_distance DOUBLE,
	fare_amount DOUBLE,
	tip_amount DOUBLE,
	total_amount DOUBLE,
	payment_type BIGINT
)`)
	require.NoError(t, err)
	// One clean row, then one row violating every check at once: duplicated
	// and non-increasing trip_id, zero passengers, zero distance, zero fare,
	// and both locations unknown.
	_, err = db.Exec(`INSERT INTO trips VALUES
	(1, '2024-01-02 08:30:00', '2024-01-02 08:45:00', 4, 12, 1, 2.5, 15.0, 3.0, 18.0, 1),
	(1, '2024-01-02 09:00:00', '2024-01-02 09:10:00', 999, 998, 0, 0.0, 0.0, 0.0, 0.0, 2)`)
	require.NoError(t, err)

	issues, err := Verify(db)
	require.NoError(t, err)
	require.Len(t, issues, 7)

	joined := strings.Join(issues, "\n")
	assert.Contains(t, joined, "1 trip(s) with fare_amount outside (0, 500)")
	assert.Contains(t, joined, "1 trip(s) with passenger_count outside [1, 6]")
	assert.Contains(t, joined, "1 duplicated trip_id value(s)")
	assert.Contains(t, joined, "1 trip(s) with trip_id out of load order")
	assert.Contains(t, joined, "1 trip(s) with a pickup location missing from zones")
}
