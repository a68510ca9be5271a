package loader

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/data"
)

// Record is one line of the source CSV. Columns are matched by the csv tag.
// Columns marked required must be present in the header, their cells may
// still be empty and are stored as NULL, except fips.
type Record struct {
	FIPS                  int64    `csv:"fips" required:"true"`
	PopTotal              *int64   `csv:"pop_total" required:"true"`
	PopWhite              *int64   `csv:"pop_white" required:"true"`
	PopBlack              *int64   `csv:"pop_black" required:"true"`
	PopHispanic           *int64   `csv:"pop_hispanic" required:"true"`
	IncomeMedianHousehold *float64 `csv:"income_median_household" required:"true"`
	RentMedianGross       *float64 `csv:"rent_median_gross" required:"true"`
	RentBurdenedPct       *float64 `csv:"rent_burdened_pct" required:"true"`
	EvictYear             *int64   `csv:"evict_year" required:"true"`
	EvictFilings          *int64   `csv:"evict_filings" required:"true"`

	// Optional. When absent a placeholder is derived from fips.
	CountyName string `csv:"county_name"`
	StateAbbr  string `csv:"state_abbr"`
}

const placeholderState = "N/A"

func (x Record) County() data.County {
	c := data.County{FIPS: x.FIPS, Name: x.CountyName, State: data.NormalizeState(x.StateAbbr)}
	if c.Name == "" {
		c.Name = "County " + strconv.FormatInt(x.FIPS, 10)
	}
	if c.State == "" {
		c.State = placeholderState
	}
	return c
}

func (x Record) Demographic() data.Demographic {
	return data.Demographic{
		FIPS:                  x.FIPS,
		PopTotal:              x.PopTotal,
		PopWhite:              x.PopWhite,
		PopBlack:              x.PopBlack,
		PopHispanic:           x.PopHispanic,
		IncomeMedianHousehold: x.IncomeMedianHousehold,
	}
}

func (x Record) Housing() data.Housing {
	return data.Housing{
		FIPS:            x.FIPS,
		RentMedianGross: x.RentMedianGross,
		RentBurdenedPct: x.RentBurdenedPct,
	}
}

func (x Record) Eviction() data.Eviction {
	return data.Eviction{FIPS: x.FIPS, Year: x.EvictYear, Filings: x.EvictFilings}
}

var typeRecord = reflect.TypeOf(Record{})

// header maps a Record field index to its column in the CSV rows.
type header map[int]int

func parseHeader(columns []string) (header, error) {
	pos := make(map[string]int, len(columns))
	for i, s := range columns {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))] = i
	}
	h := make(header)
	var missing []string
	for i := 0; i < typeRecord.NumField(); i++ {
		field := typeRecord.Field(i)
		n, ok := pos[field.Tag.Get("csv")]
		if ok {
			h[i] = n
			continue
		}
		if field.Tag.Get("required") == "true" {
			missing = append(missing, field.Tag.Get("csv"))
		}
	}
	if len(missing) > 0 {
		return nil, merry.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) decode(row []string) (Record, error) {
	var x Record
	v := reflect.ValueOf(&x).Elem()
	for i, n := range h {
		if n >= len(row) {
			continue
		}
		field := typeRecord.Field(i)
		s := strings.TrimSpace(row[n])
		if err := setField(v.Field(i), s); err != nil {
			return Record{}, merry.Appendf(err, "column %s", field.Tag.Get("csv"))
		}
	}
	if x.FIPS <= 0 {
		return Record{}, merry.New("fips is missing")
	}
	return x, nil
}

// fips returns the fips cell of row when it holds a valid code, whatever the
// other cells hold.
func (h header) fips(row []string) (int64, bool) {
	n, ok := h[fipsField]
	if !ok || n >= len(row) {
		return 0, false
	}
	v, err := parseInt(strings.TrimSpace(row[n]))
	return v, err == nil && v > 0
}

var fipsField = func() int {
	f, _ := typeRecord.FieldByName("FIPS")
	return f.Index[0]
}()

func setField(f reflect.Value, s string) error {
	switch f.Interface().(type) {
	case string:
		f.SetString(s)
	case int64:
		if isNull(s) {
			return nil
		}
		n, err := parseInt(s)
		if err != nil {
			return err
		}
		f.SetInt(n)
	case *int64:
		if isNull(s) {
			return nil
		}
		n, err := parseInt(s)
		if err != nil {
			return err
		}
		f.Set(reflect.ValueOf(&n))
	case *float64:
		if isNull(s) {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return merry.Wrap(err)
		}
		f.Set(reflect.ValueOf(&n))
	default:
		panic(f.Type().String())
	}
	return nil
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return true
	}
	return false
}

// parseInt accepts integers written as floats, 1001.0, as pandas does when a
// column has missing values.
func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}
	v, errF := strconv.ParseFloat(s, 64)
	if errF != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, merry.Wrap(err)
	}
	if v < -(1<<63) || v >= 1<<63 {
		return 0, merry.Errorf("%s: value out of range", s)
	}
	return int64(v), nil
}
