package adapter

import (
	"fmt"
	"math"

	"github.com/aurine/docgen/internal/chart"
)

// Chart sizes used by the report page.
const (
	PieSize      = 150.0
	WeeklyHeight = 150.0
	DailyHeight  = 120.0
)

// Sample values substituted for blank form fields.
const (
	DefaultEngagement  = 23.0
	DefaultBookings    = 33.0
	DefaultConversions = 50.0
	// FallbackConversionPct applies when the conversion count is zero.
	FallbackConversionPct = 66.0
)

// Series colors.
const (
	EngagementColor = "#3b82f6"
	ConversionColor = "#ec4899"
	RemainderColor  = "#27272a"
)

var (
	defaultWeekly = []chart.WeeklyPoint{
		{Name: "Tydz. 1", Reach: 15000, Clicks: 650},
		{Name: "Tydz. 2", Reach: 19000, Clicks: 820},
		{Name: "Tydz. 3", Reach: 25000, Clicks: 1100},
		{Name: "Tydz. 4", Reach: 26000, Clicks: 930},
	}
	defaultDaily = []float64{22, 28, 32, 35, 38, 42, 25}
	weekdays     = []string{"Pn", "Wt", "Śr", "Cz", "Pt", "Sb", "Nd"}
)

// ReportForm holds the raw campaign report fields exactly as entered.
type ReportForm struct {
	ClientName        string `json:"clientName" yaml:"clientName" validate:"required,max=100"`
	City              string `json:"city" yaml:"city" validate:"required,max=100"`
	Period            string `json:"period" yaml:"period" validate:"required"`
	Budget            string `json:"budget" yaml:"budget" validate:"required"`
	Impressions       string `json:"impressions" yaml:"impressions" validate:"required"`
	Reach             string `json:"reach" yaml:"reach" validate:"required"`
	Clicks            string `json:"clicks" yaml:"clicks" validate:"required"`
	CTR               string `json:"ctr" yaml:"ctr" validate:"required"`
	Conversions       string `json:"conversions" yaml:"conversions" validate:"required"`
	CostPerConversion string `json:"costPerConversion" yaml:"costPerConversion" validate:"required"`
	Bookings          string `json:"bookings" yaml:"bookings" validate:"required"`
	CampaignObjective string `json:"campaignObjective,omitempty" yaml:"campaignObjective,omitempty"`
	CampaignStatus    string `json:"campaignStatus,omitempty" yaml:"campaignStatus,omitempty" validate:"omitempty,oneof=Aktywna Zakończona Wstrzymana Planowana"`
	EngagementRate    string `json:"engagementRate,omitempty" yaml:"engagementRate,omitempty"`
	WeeklyReachData   string `json:"weeklyReachData,omitempty" yaml:"weeklyReachData,omitempty"`
	WeeklyClicksData  string `json:"weeklyClicksData,omitempty" yaml:"weeklyClicksData,omitempty"`
	DailyBookingsData string `json:"dailyBookingsData,omitempty" yaml:"dailyBookingsData,omitempty"`
	Recommendations   string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// ChartData is the numeric input of the four report charts.
type ChartData struct {
	EngagementPct float64             `json:"engagementPct"`
	ConversionPct float64             `json:"conversionPct"`
	Engagement    chart.Series        `json:"engagement"`
	Conversion    chart.Series        `json:"conversion"`
	Weekly        []chart.WeeklyPoint `json:"weekly"`
	Daily         chart.Series        `json:"daily"`
}

// BuildCharts derives chart series from the form. Blank optional fields are
// replaced with sample data so a preview always has something to draw.
// Percentages are clamped to [0, 100] and negative list entries to 0, which
// keeps every series valid for the renderers.
func BuildCharts(form ReportForm, parser NumberParser) ChartData {
	if parser == nil {
		parser = PolishGrouping
	}

	engagement := DefaultEngagement
	if form.EngagementRate != "" {
		engagement = parser.Parse(form.EngagementRate)
	}
	engagement = clampPct(engagement)

	bookings := orDefault(parser.Parse(form.Bookings), DefaultBookings)
	conversions := orDefault(parser.Parse(form.Conversions), DefaultConversions)
	conversion := FallbackConversionPct
	if conversions > 0 {
		conversion = bookings / conversions * 100
	}
	conversion = clampPct(conversion)

	return ChartData{
		EngagementPct: engagement,
		ConversionPct: conversion,
		Engagement: chart.Series{
			{Name: "Zaangażowani", Value: engagement, Color: EngagementColor},
			{Name: "Pozostali", Value: 100 - engagement, Color: RemainderColor},
		},
		Conversion: chart.Series{
			{Name: "Rezerwacje", Value: conversion, Color: ConversionColor},
			{Name: "Pozostałe", Value: 100 - conversion, Color: RemainderColor},
		},
		Weekly: weeklyPoints(form, parser),
		Daily:  dailySeries(form, parser),
	}
}

func weeklyPoints(form ReportForm, parser NumberParser) []chart.WeeklyPoint {
	if form.WeeklyReachData == "" || form.WeeklyClicksData == "" {
		return append([]chart.WeeklyPoint(nil), defaultWeekly...)
	}
	reach := SplitList(form.WeeklyReachData)
	clicks := SplitList(form.WeeklyClicksData)
	points := make([]chart.WeeklyPoint, len(reach))
	for i, r := range reach {
		var c string
		if i < len(clicks) {
			c = clicks[i]
		}
		points[i] = chart.WeeklyPoint{
			Name:   fmt.Sprintf("Tydz. %d", i+1),
			Reach:  nonNegative(parser.Parse(r)),
			Clicks: nonNegative(parser.Parse(c)),
		}
	}
	return points
}

func dailySeries(form ReportForm, parser NumberParser) chart.Series {
	values := defaultDaily
	if form.DailyBookingsData != "" {
		items := SplitList(form.DailyBookingsData)
		values = make([]float64, len(items))
		for i, item := range items {
			values[i] = nonNegative(parser.Parse(item))
		}
	}
	series := make(chart.Series, len(values))
	for i, v := range values {
		series[i] = chart.LabeledValue{Name: dayLabel(i), Value: v}
	}
	return series
}

func dayLabel(i int) string {
	if i < len(weekdays) {
		return weekdays[i]
	}
	return fmt.Sprintf("D%d", i+1)
}

// Charts holds the rendered report charts.
type Charts struct {
	Engagement *chart.Chart `json:"engagement"`
	Conversion *chart.Chart `json:"conversion"`
	Weekly     *chart.Chart `json:"weekly"`
	Daily      *chart.Chart `json:"daily"`
}

// Render lays out the four report charts at their page sizes.
func (d ChartData) Render(opts chart.Options) (*Charts, error) {
	var (
		out Charts
		err error
	)
	if out.Engagement, err = chart.Pie(d.Engagement, PieSize, opts); err != nil {
		return nil, fmt.Errorf("engagement chart: %w", err)
	}
	if out.Conversion, err = chart.Pie(d.Conversion, PieSize, opts); err != nil {
		return nil, fmt.Errorf("conversion chart: %w", err)
	}
	if out.Weekly, err = chart.Line(d.Weekly, WeeklyHeight, opts); err != nil {
		return nil, fmt.Errorf("weekly chart: %w", err)
	}
	if out.Daily, err = chart.Bar(d.Daily, DailyHeight, opts); err != nil {
		return nil, fmt.Errorf("daily chart: %w", err)
	}
	return &out, nil
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}
