package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fpawel/evictdash/internal/data"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type column[T any] struct {
	Name string
	F    func(T) string
}

func printRows[T any](w io.Writer, cols []column[T], xs []T) error {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}
	rows := make([][]string, 0, len(xs))
	for _, x := range xs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.F(x)
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func fmtInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var evictionCols = []column[data.EvictionRecord]{
	{"ID", func(x data.EvictionRecord) string { return strconv.FormatInt(x.EvictionID, 10) }},
	{"FIPS", func(x data.EvictionRecord) string { return strconv.FormatInt(x.FIPS, 10) }},
	{"County", func(x data.EvictionRecord) string { return x.CountyName }},
	{"Year", func(x data.EvictionRecord) string { return fmtInt(x.Year) }},
	{"Filings", func(x data.EvictionRecord) string { return fmtInt(x.Filings) }},
}

var countyCols = []column[data.County]{
	{"FIPS", func(x data.County) string { return strconv.FormatInt(x.FIPS, 10) }},
	{"County", func(x data.County) string { return x.Name }},
	{"State", func(x data.County) string { return x.State }},
}

var hotspotCols = []column[data.BarrierHotspot]{
	{"County", func(x data.BarrierHotspot) string { return x.CountyName }},
	{"State", func(x data.BarrierHotspot) string { return x.StateAbbr }},
	{"Median income", func(x data.BarrierHotspot) string { return formatFloat(x.IncomeMedianHousehold) }},
	{"Rent burdened, %", func(x data.BarrierHotspot) string { return formatFloat(x.RentBurdenedPct) }},
}

var leaderCols = []column[data.EvictionLeader]{
	{"County", func(x data.EvictionLeader) string { return x.CountyName }},
	{"State", func(x data.EvictionLeader) string { return x.StateAbbr }},
	{"Filings", func(x data.EvictionLeader) string { return fmtInt(x.Filings) }},
}

var disparityCols = []column[data.DisparityGroup]{
	{"Group", func(x data.DisparityGroup) string { return x.GroupLabel }},
	{"Avg filings", func(x data.DisparityGroup) string { return fmtFloat(x.AvgEvictions) }},
}

var affordabilityCols = []column[data.AffordabilityRow]{
	{"County", func(x data.AffordabilityRow) string { return x.CountyName }},
	{"State", func(x data.AffordabilityRow) string { return x.StateAbbr }},
	{"Median rent", func(x data.AffordabilityRow) string { return formatFloat(x.RentMedianGross) }},
	{"Median income", func(x data.AffordabilityRow) string { return formatFloat(x.IncomeMedianHousehold) }},
	{"Filings", func(x data.AffordabilityRow) string { return fmtInt(x.Filings) }},
}

var stateCols = []column[data.StateSummary]{
	{"State", func(x data.StateSummary) string { return x.StateAbbr }},
	{"Avg rent burden, %", func(x data.StateSummary) string { return fmtFloat(x.AvgRentBurden) }},
	{"Total filings", func(x data.StateSummary) string { return fmtInt(x.TotalEvictions) }},
}

var summaryCols = []column[data.ColumnSummary]{
	{"Column", func(x data.ColumnSummary) string { return x.Column }},
	{"Count", func(x data.ColumnSummary) string { return strconv.Itoa(x.Count) }},
	{"Mean", func(x data.ColumnSummary) string { return formatFloat(x.Mean) }},
	{"Std dev", func(x data.ColumnSummary) string { return formatFloat(x.StdDev) }},
	{"Min", func(x data.ColumnSummary) string { return formatFloat(x.Min) }},
	{"25%", func(x data.ColumnSummary) string { return formatFloat(x.Q25) }},
	{"50%", func(x data.ColumnSummary) string { return formatFloat(x.Median) }},
	{"75%", func(x data.ColumnSummary) string { return formatFloat(x.Q75) }},
	{"Max", func(x data.ColumnSummary) string { return formatFloat(x.Max) }},
}
