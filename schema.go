package taxidb

import "time"

// Zone is one row of the TLC taxi zone lookup, with the source's mixed-case
// column names mapped to snake_case.
type Zone struct {
	LocationID  int64  `db:"location_id" csv:"location_id"`
	ZoneName    string `db:"zone_name" csv:"zone_name"`
	Borough     string `db:"borough" csv:"borough"`
	ServiceZone string `db:"service_zone" csv:"service_zone"`
}

// Trip is one row of the trips table. trip_id is assigned at load time and
// is unique across all loaded months.
type Trip struct {
	TripID            int64     `db:"trip_id" csv:"trip_id"`
	PickupDatetime    time.Time `db:"pickup_datetime" csv:"pickup_datetime"`
	DropoffDatetime   time.Time `db:"dropoff_datetime" csv:"dropoff_datetime"`
	PickupLocationID  int64     `db:"pickup_location_id" csv:"pickup_location_id"`
	DropoffLocationID int64     `db:"dropoff_location_id" csv:"dropoff_location_id"`
	PassengerCount    int64     `db:"passenger_count" csv:"passenger_count"`
	TripDistance      float64   `db:"trip_distance" csv:"trip_distance"`
	FareAmount        float64   `db:"fare_amount" csv:"fare_amount"`
	TipAmount         float64   `db:"tip_amount" csv:"tip_amount"`
	TotalAmount       float64   `db:"total_amount" csv:"total_amount"`
	PaymentType       int64     `db:"payment_type" csv:"payment_type"`
}

// fallbackZones stands in for the TLC zone lookup when it can't be
// downloaded: Newark Airport plus the Manhattan yellow zones, which is where
// most yellow taxi trips start and end anyway.
var fallbackZones = []Zone{
	{1, "Newark Airport", "EWR", "EWR"},
	{4, "Alphabet City", "Manhattan", "Yellow Zone"},
	{12, "Battery Park", "Manhattan", "Yellow Zone"},
	{13, "Battery Park City", "Manhattan", "Yellow Zone"},
	{43, "Central Park", "Manhattan", "Yellow Zone"},
	{45, "Chinatown", "Manhattan", "Yellow Zone"},
	{79, "East Village", "Manhattan", "Yellow Zone"},
	{87, "Financial District North", "Manhattan", "Yellow Zone"},
	{88, "Financial District South", "Manhattan", "Yellow Zone"},
	{100, "Garment District", "Manhattan", "Yellow Zone"},
	{107, "Gramercy", "Manhattan", "Yellow Zone"},
	{113, "Greenwich Village North", "Manhattan", "Yellow Zone"},
	{114, "Greenwich Village South", "Manhattan", "Yellow Zone"},
	{125, "Hell's Kitchen", "Manhattan", "Yellow Zone"},
	{137, "Kips Bay", "Manhattan", "Yellow Zone"},
	{140, "Lenox Hill East", "Manhattan", "Yellow Zone"},
	{141, "Lenox Hill West", "Manhattan", "Yellow Zone"},
	{142, "Lincoln Square East", "Manhattan", "Yellow Zone"},
	{143, "Lincoln Square West", "Manhattan", "Yellow Zone"},
	{144, "Little Italy", "Manhattan", "Yellow Zone"},
	{148, "Lower East Side", "Manhattan", "Yellow Zone"},
	{161, "Midtown Center", "Manhattan", "Yellow Zone"},
	{162, "Midtown East", "Manhattan", "Yellow Zone"},
	{163, "Midtown North", "Manhattan", "Yellow Zone"},
	{164, "Midtown South", "Manhattan", "Yellow Zone"},
	{170, "Murray Hill", "Manhattan", "Yellow Zone"},
	{186, "Penn Station", "Manhattan", "Yellow Zone"},
	{224, "Times Square", "Manhattan", "Yellow Zone"},
	{229, "Tribeca", "Manhattan", "Yellow Zone"},
	{230, "Two Bridges", "Manhattan", "Yellow Zone"},
	{231, "UN/Turtle Bay South", "Manhattan", "Yellow Zone"},
	{232, "Union Square", "Manhattan", "Yellow Zone"},
	{233, "Upper East Side North", "Manhattan", "Yellow Zone"},
	{234, "Upper East Side South", "Manhattan", "Yellow Zone"},
	{236, "Upper West Side North", "Manhattan", "Yellow Zone"},
	{237, "Upper West Side South", "Manhattan", "Yellow Zone"},
	{249, "Yorkville East", "Manhattan", "Yellow Zone"},
	{250, "Yorkville West", "Manhattan", "Yellow Zone"},
}
