package taxidb

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/olekukonko/tablewriter"
	"io"
	"strconv"
	"time"
)

// Report prints the fixed summary suite for a set-up database: row counts,
// a few sample trips, the covered date range, headline statistics, the top
// pickup zones, and the payment type distribution.
func Report(db *sqlx.DB, w io.Writer) error {
	var tripCount, zoneCount int64
	if err := db.Get(&tripCount, "SELECT count(*) AS count FROM trips"); err != nil {
		return err
	}
	if err := db.Get(&zoneCount, "SELECT count(*) AS count FROM zones"); err != nil {
		return err
	}
	fmt.Fprintf(w, "Trips: %d rows\n", tripCount)
	fmt.Fprintf(w, "Zones: %d rows\n", zoneCount)

	if tripCount == 0 {
		fmt.Fprintln(w, "No trips loaded, skipping the rest of the report")
		return nil
	}

	if err := reportSample(db, w); err != nil {
		return err
	}
	if err := reportDateRange(db, w); err != nil {
		return err
	}
	if err := reportStatistics(db, w); err != nil {
		return err
	}
	if err := reportTopZones(db, w); err != nil {
		return err
	}
	return reportPaymentTypes(db, w)
}

func reportSample(db *sqlx.DB, w io.Writer) error {
	var sample []struct {
		PickupDatetime time.Time `db:"pickup_datetime"`
		PassengerCount int64     `db:"passenger_count"`
		TripDistance   float64   `db:"trip_distance"`
		FareAmount     float64   `db:"fare_amount"`
		TipAmount      float64   `db:"tip_amount"`
		PaymentType    int64     `db:"payment_type"`
	}
	err := db.Select(&sample, `SELECT
	pickup_datetime, passenger_count, trip_distance, fare_amount, tip_amount, payment_type
FROM trips
LIMIT 5`)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sample))
	for _, trip := range sample {
		rows = append(rows, []string{
			trip.PickupDatetime.Format(time.DateTime),
			strconv.FormatInt(trip.PassengerCount, 10),
			formatAmount(trip.TripDistance),
			formatAmount(trip.FareAmount),
			formatAmount(trip.TipAmount),
			strconv.FormatInt(trip.PaymentType, 10),
		})
	}
	renderTable(w, "Sample trips",
		[]string{"pickup_datetime", "passenger_count", "trip_distance", "fare_amount", "tip_amount", "payment_type"},
		rows)
	return nil
}

func reportDateRange(db *sqlx.DB, w io.Writer) error {
	var r struct {
		Earliest time.Time `db:"earliest_trip"`
		Latest   time.Time `db:"latest_trip"`
		Days     int64     `db:"days_of_data"`
	}
	err := db.Get(&r, `SELECT
	min(pickup_datetime) AS earliest_trip,
	max(pickup_datetime) AS latest_trip,
	count(DISTINCT date_trunc('day', pickup_datetime)) AS days_of_data
FROM trips`)
	if err != nil {
		return err
	}

	renderTable(w, "Date range",
		[]string{"earliest_trip", "latest_trip", "days_of_data"},
		[][]string{{
			r.Earliest.Format(time.DateTime),
			r.Latest.Format(time.DateTime),
			strconv.FormatInt(r.Days, 10),
		}})
	return nil
}

func reportStatistics(db *sqlx.DB, w io.Writer) error {
	var s struct {
		TotalTrips   int64   `db:"total_trips"`
		AvgFare      float64 `db:"avg_fare"`
		TotalRevenue float64 `db:"total_revenue"`
		AvgDistance  float64 `db:"avg_distance"`
		AvgTip       float64 `db:"avg_tip"`
	}
	err := db.Get(&s, `SELECT
	count(*) AS total_trips,
	round(avg(fare_amount), 2) AS avg_fare,
	round(sum(fare_amount), 2) AS total_revenue,
	round(avg(trip_distance), 2) AS avg_distance,
	round(avg(tip_amount), 2) AS avg_tip
FROM trips`)
	if err != nil {
		return err
	}

	renderTable(w, "Trip statistics",
		[]string{"total_trips", "avg_fare", "total_revenue", "avg_distance", "avg_tip"},
		[][]string{{
			strconv.FormatInt(s.TotalTrips, 10),
			formatAmount(s.AvgFare),
			formatAmount(s.TotalRevenue),
			formatAmount(s.AvgDistance),
			formatAmount(s.AvgTip),
		}})
	return nil
}

func reportTopZones(db *sqlx.DB, w io.Writer) error {
	var zones []struct {
		ZoneName   string `db:"zone_name"`
		Borough    string `db:"borough"`
		NumPickups int64  `db:"num_pickups"`
	}
	err := db.Select(&zones, `SELECT
	z.zone_name, z.borough, count(*) AS num_pickups
FROM trips t
JOIN zones z ON t.pickup_location_id = z.location_id
GROUP BY z.zone_name, z.borough
ORDER BY num_pickups DESC, z.zone_name
LIMIT 5`)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(zones))
	for _, zone := range zones {
		rows = append(rows, []string{zone.ZoneName, zone.Borough, strconv.FormatInt(zone.NumPickups, 10)})
	}
	renderTable(w, "Top pickup zones", []string{"zone_name", "borough", "num_pickups"}, rows)
	return nil
}

func reportPaymentTypes(db *sqlx.DB, w io.Writer) error {
	var payments []struct {
		PaymentMethod string  `db:"payment_method"`
		NumTrips      int64   `db:"num_trips"`
		Percentage    float64 `db:"percentage"`
	}
	err := db.Select(&payments, `SELECT
	CASE payment_type
		WHEN 1 THEN 'Credit Card'
		WHEN 2 THEN 'Cash'
		WHEN 3 THEN 'No Charge'
		WHEN 4 THEN 'Dispute'
		ELSE 'Unknown'
	END AS payment_method,
	count(*) AS num_trips,
	round(count(*) * 100.0 / sum(count(*)) OVER (), 2) AS percentage
FROM trips
GROUP BY payment_type
ORDER BY num_trips DESC`)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{p.PaymentMethod, strconv.FormatInt(p.NumTrips, 10), formatAmount(p.Percentage)})
	}
	renderTable(w, "Payment types", []string{"payment_method", "num_trips", "percentage"}, rows)
	return nil
}

func renderTable(w io.Writer, title string, header []string, rows [][]string) {
	fmt.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
