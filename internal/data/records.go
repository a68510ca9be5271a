package data

// County is a row of the hub table. Every other table references it by FIPS.
type County struct {
	FIPS  int64  `db:"fips" json:"fips"`
	Name  string `db:"county_name" json:"county_name"`
	State string `db:"state_abbr" json:"state_abbr"`
}

// Nullable columns are pointers: the loader stores empty CSV cells as NULL.

type Demographic struct {
	DemoID                int64    `db:"demo_id" json:"demo_id"`
	FIPS                  int64    `db:"fips" json:"fips"`
	PopTotal              *int64   `db:"pop_total" json:"pop_total"`
	PopWhite              *int64   `db:"pop_white" json:"pop_white"`
	PopBlack              *int64   `db:"pop_black" json:"pop_black"`
	PopHispanic           *int64   `db:"pop_hispanic" json:"pop_hispanic"`
	IncomeMedianHousehold *float64 `db:"income_median_household" json:"income_median_household"`
}

type Housing struct {
	HousingID       int64    `db:"housing_id" json:"housing_id"`
	FIPS            int64    `db:"fips" json:"fips"`
	RentMedianGross *float64 `db:"rent_median_gross" json:"rent_median_gross"`
	RentBurdenedPct *float64 `db:"rent_burdened_pct" json:"rent_burdened_pct"`
}

type Eviction struct {
	EvictionID int64  `db:"eviction_id" json:"eviction_id"`
	FIPS       int64  `db:"fips" json:"fips"`
	Year       *int64 `db:"evict_year" json:"evict_year"`
	Filings    *int64 `db:"evict_filings" json:"evict_filings"`
}

// EvictionRecord is an eviction row joined with the county name.
type EvictionRecord struct {
	Eviction
	CountyName string `db:"county_name" json:"county_name"`
}

type BarrierHotspot struct {
	CountyName            string  `db:"county_name" json:"county_name"`
	StateAbbr             string  `db:"state_abbr" json:"state_abbr"`
	IncomeMedianHousehold float64 `db:"income_median_household" json:"income_median_household"`
	RentBurdenedPct       float64 `db:"rent_burdened_pct" json:"rent_burdened_pct"`
}

type EvictionLeader struct {
	CountyName string `db:"county_name" json:"county_name"`
	StateAbbr  string `db:"state_abbr" json:"state_abbr"`
	Filings    *int64 `db:"evict_filings" json:"evict_filings"`
}

type DisparityGroup struct {
	GroupLabel   string   `db:"group_label" json:"group_label"`
	AvgEvictions *float64 `db:"avg_evictions" json:"avg_evictions"`
}

type AffordabilityRow struct {
	CountyName            string  `db:"county_name" json:"county_name"`
	StateAbbr             string  `db:"state_abbr" json:"state_abbr"`
	RentMedianGross       float64 `db:"rent_median_gross" json:"rent_median_gross"`
	IncomeMedianHousehold float64 `db:"income_median_household" json:"income_median_household"`
	Filings               *int64  `db:"evict_filings" json:"evict_filings"`
}

type StateSummary struct {
	StateAbbr      string   `db:"state_abbr" json:"state_abbr"`
	AvgRentBurden  *float64 `db:"avg_rent_burden" json:"avg_rent_burden"`
	TotalEvictions *int64   `db:"total_evictions" json:"total_evictions"`
}

// Int64 and Float64 return pointers for the nullable record fields.
func Int64(v int64) *int64 { return &v }

func Float64(v float64) *float64 { return &v }
