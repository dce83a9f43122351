package taxidb

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// tlcTrip mirrors the column layout of the TLC yellow taxi parquet files.
type tlcTrip struct {
	PickupDatetime  time.Time `parquet:"tpep_pickup_datetime,timestamp(microsecond)"`
	DropoffDatetime time.Time `parquet:"tpep_dropoff_datetime,timestamp(microsecond)"`
	PULocationID    int64     `parquet:"PULocationID"`
	DOLocationID    int64     `parquet:"DOLocationID"`
	PassengerCount  int64     `parquet:"passenger_count"`
	TripDistance    float64   `parquet:"trip_distance"`
	FareAmount      float64   `parquet:"fare_amount"`
	TipAmount       float64   `parquet:"tip_amount"`
	TotalAmount     float64   `parquet:"total_amount"`
	PaymentType     int64     `parquet:"payment_type"`
}

// validTrip passes every quality filter. Both locations are in
// fallbackZones so Verify has nothing to complain about.
func validTrip(month time.Month, day int) tlcTrip {
	pickup := time.Date(2024, month, day, 8, 30, 0, 0, time.UTC)
	return tlcTrip{
		PickupDatetime:  pickup,
		DropoffDatetime: pickup.Add(15 * time.Minute),
		PULocationID:    4,  // Alphabet City
		DOLocationID:    12, // Battery Park
		PassengerCount:  1,
		TripDistance:    2.5,
		FareAmount:      15,
		TipAmount:       3,
		TotalAmount:     18,
		PaymentType:     1,
	}
}

func ewrTrip(month time.Month, day int) tlcTrip {
	trip := validTrip(month, day)
	trip.PULocationID = 1 // Newark Airport
	trip.DOLocationID = 1
	return trip
}

func writeTripParquet(t *testing.T, path string, trips []tlcTrip) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[tlcTrip](f)
	_, err = w.Write(trips)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func monthFile(dir string, month time.Month) string {
	return filepath.Join(dir, fmt.Sprintf("yellow_tripdata_2024-%02d.parquet", int(month)))
}

// tlcZoneCSV matches the shape of the real taxi+_zone_lookup.csv.
const tlcZoneCSV = `"LocationID","Borough","Zone","service_zone"
1,"EWR","Newark Airport","EWR"
2,"Queens","Jamaica Bay","Boro Zone"
3,"Bronx","Allerton/Pelham Gardens","Boro Zone"
4,"Manhattan","Alphabet City","Yellow Zone"
`

func zoneServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

// testConfig reads trips from dir and serves 404 for the zone lookup, so
// tests get the fallback zones unless they override ZoneLookupURL.
func testConfig(t *testing.T, dir string) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TripURLPattern = filepath.Join(dir, "yellow_tripdata_%d-%02d.parquet")
	cfg.ZoneLookupURL = zoneServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	cfg.DownloadTimeout = 5
	return cfg
}

func testTempdir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	t.Cleanup(func() {
		if t.Failed() {
			fmt.Println("Preserving tempdir after failed test", dir)
		} else {
			_ = os.RemoveAll(dir)
		}
	})
	return dir
}

func openTestDB(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := openDBReadOnly(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
