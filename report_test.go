package taxidb

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestReportSections(t *testing.T) {
	dir := testTempdir(t)
	cfg := testConfig(t, dir)

	trips := []tlcTrip{
		validTrip(time.January, 2),
		validTrip(time.January, 3),
		ewrTrip(time.January, 4),
	}
	trips[1].PaymentType = 2 // one cash ride
	writeTripParquet(t, monthFile(dir, time.January), trips)

	db, err := openDB(dir+"/taxi.duckdb", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, loadFallbackZones(db))
	require.NoError(t, loadTrips(db, cfg, 1))

	var out bytes.Buffer
	require.NoError(t, Report(db, &out))
	report := out.String()

	assert.Contains(t, report, "Trips: 3 rows")
	assert.Contains(t, report, "Zones: 38 rows")
	assert.Contains(t, report, "Sample trips")
	assert.Contains(t, report, "Date range")
	assert.Contains(t, report, "2024-01-02 08:30:00")
	assert.Contains(t, report, "2024-01-04 08:30:00")
	assert.Contains(t, report, "Trip statistics")
	assert.Contains(t, report, "45.00", "revenue sums fares, not totals")
	assert.Contains(t, report, "Top pickup zones")
	assert.Contains(t, report, "Alphabet City")
	assert.Contains(t, report, "Newark Airport")
	assert.Contains(t, report, "Payment types")
	assert.Contains(t, report, "Credit Card")
	assert.Contains(t, report, "Cash")
}

func TestReportPaymentLabels(t *testing.T) {
	dir := testTempdir(t)
	cfg := testConfig(t, dir)

	var trips []tlcTrip
	for day, paymentType := range []int64{1, 2, 3, 4, 99} {
		trip := validTrip(time.January, day+1)
		trip.PaymentType = paymentType
		trips = append(trips, trip)
	}
	writeTripParquet(t, monthFile(dir, time.January), trips)

	db, err := openDB(dir+"/taxi.duckdb", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, loadFallbackZones(db))
	require.NoError(t, loadTrips(db, cfg, 1))

	var out bytes.Buffer
	require.NoError(t, Report(db, &out))
	report := out.String()

	for _, label := range []string{"Credit Card", "Cash", "No Charge", "Dispute", "Unknown"} {
		assert.Contains(t, report, label)
	}
	// Five types, one trip each
	assert.Contains(t, report, "20.00")
}

func TestReportEmptyTrips(t *testing.T) {
	dir := testTempdir(t)

	db, err := openDB(dir+"/empty.duckdb", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, loadFallbackZones(db))
	_, err = db.Exec("CREATE TABLE trips (trip_id BIGINT, pickup_datetime TIMESTAMP)")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Report(db, &out))

	assert.Contains(t, out.String(), "Trips: 0 rows")
	assert.Contains(t, out.String(), "skipping the rest of the report")
}
