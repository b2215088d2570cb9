package weather

import (
	"errors"
	"fmt"
	"testing"
)

func hourlyFrom(start string, hours int) HourlySeries {
	var h HourlySeries
	for i := 0; i < hours; i++ {
		day := 1 + i/24
		h.Time = append(h.Time, fmt.Sprintf("%s-%02dT%02d:00", start, day, i%24))
		h.Temperature = append(h.Temperature, float64(i))
		h.WeatherCode = append(h.WeatherCode, 0)
		h.ApparentTemperature = append(h.ApparentTemperature, float64(i)-1)
		h.RelativeHumidity = append(h.RelativeHumidity, 50)
		h.Precipitation = append(h.Precipitation, 0)
	}
	return h
}

func TestFormatHour_Boundaries(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{23, "11 PM"},
		{24, "12 AM"},
		{-1, "11 PM"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour %d", tt.hour), func(t *testing.T) {
			if got := FormatHour(tt.hour); got != tt.expected {
				t.Errorf("FormatHour(%d) = %q, want %q", tt.hour, got, tt.expected)
			}
		})
	}
}

func TestSliceForDay_ReturnsOrderedSubsequence(t *testing.T) {
	samples := hourlyFrom("2024-05", 72).Samples()

	got := SliceForDay(samples, "2024-05-02")
	if len(got) != 24 {
		t.Fatalf("expected 24 samples, got %d", len(got))
	}
	if len(got) > len(samples) {
		t.Fatalf("result longer than input: %d > %d", len(got), len(samples))
	}

	for i, s := range got {
		if s.At().Format("2006-01-02") != "2024-05-02" {
			t.Errorf("sample %d has date %s, want 2024-05-02", i, s.At().Format("2006-01-02"))
		}
		if s.Hour != i {
			t.Errorf("sample %d has hour %d, want %d", i, s.Hour, i)
		}
		if i > 0 && !got[i-1].At().Before(s.At()) {
			t.Errorf("samples out of order at %d", i)
		}
	}
	if got[0].Label != "12 AM" || got[23].Label != "11 PM" {
		t.Errorf("unexpected labels %q..%q", got[0].Label, got[23].Label)
	}
}

func TestSliceForDay_EmptyCases(t *testing.T) {
	samples := hourlyFrom("2024-05", 24).Samples()

	tests := []struct {
		name    string
		samples []HourSample
		dayKey  string
	}{
		{name: "empty series", samples: nil, dayKey: "2024-05-01"},
		{name: "day without samples", samples: samples, dayKey: "2024-06-01"},
		{name: "invalid day key", samples: samples, dayKey: "May 1st"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SliceForDay(tt.samples, tt.dayKey)
			if got == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(got) != 0 {
				t.Errorf("expected no samples, got %d", len(got))
			}
		})
	}
}

func TestSliceForDay_InclusiveBounds(t *testing.T) {
	h := HourlySeries{
		Time:                []string{"2024-05-01T23:59", "2024-05-02T00:00", "2024-05-02T23:59", "2024-05-03T00:00"},
		Temperature:         []float64{1, 2, 3, 4},
		WeatherCode:         []int{0, 0, 0, 0},
		ApparentTemperature: []float64{1, 2, 3, 4},
		RelativeHumidity:    []float64{1, 2, 3, 4},
		Precipitation:       []float64{0, 0, 0, 0},
	}

	got := SliceForDay(h.Samples(), "2024-05-02")
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Temperature != 2 || got[1].Temperature != 3 {
		t.Errorf("unexpected samples %+v", got)
	}
}

func TestSamples_SkipsUnparsableTimes(t *testing.T) {
	h := HourlySeries{
		Time:                []string{"2024-05-01T10:00", "garbage", "2024-05-01T12:00"},
		Temperature:         []float64{10, 11, 12},
		WeatherCode:         []int{0, 61, 95},
		ApparentTemperature: []float64{9, 10, 11},
		RelativeHumidity:    []float64{40, 41, 42},
		Precipitation:       []float64{0, 1, 2},
	}

	got := h.Samples()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[1].Temperature != 12 || got[1].Condition != ConditionStorm {
		t.Errorf("unexpected second sample %+v", got[1])
	}
}

func TestSummaries(t *testing.T) {
	d := DailySeries{
		Time:           []string{"2024-05-01", "2024-05-02"},
		TemperatureMin: []float64{10, 11},
		TemperatureMax: []float64{20, 21},
		WeatherCode:    []int{3, 71},
	}

	got := d.Summaries()
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Weekday != "Wednesday" || got[1].Weekday != "Thursday" {
		t.Errorf("unexpected weekdays %q, %q", got[0].Weekday, got[1].Weekday)
	}
	if got[1].Condition != ConditionSnow {
		t.Errorf("expected snow, got %s", got[1].Condition)
	}
}

func TestSnapshotView_SelectsToday(t *testing.T) {
	snap := sampleSnapshot(Place{Name: "Amman", Country: "Jordan"}, MetricUnits())

	v, err := snap.View()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Day.Index != 0 || v.Day.Day.Key != "2024-05-01" {
		t.Errorf("expected today selected, got %+v", v.Day.Day)
	}
	if len(v.Day.Hours) != 24 {
		t.Errorf("expected 24 hours for today, got %d", len(v.Day.Hours))
	}
	if v.Current.Hour == nil || v.Current.Hour.Hour != 13 {
		t.Errorf("expected current hour 13, got %+v", v.Current.Hour)
	}
}

func TestSnapshotValidate(t *testing.T) {
	good := sampleSnapshot(Place{Name: "Amman"}, MetricUnits())
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noHourly := good
	noHourly.Hourly = HourlySeries{}

	misaligned := good
	misaligned.Hourly.Temperature = misaligned.Hourly.Temperature[:3]

	noCurrent := good
	noCurrent.Current = Current{}

	noDaily := good
	noDaily.Daily = DailySeries{}

	for name, s := range map[string]Snapshot{
		"no hourly":  noHourly,
		"misaligned": misaligned,
		"no current": noCurrent,
		"no daily":   noDaily,
	} {
		t.Run(name, func(t *testing.T) {
			if err := s.Validate(); !errors.Is(err, ErrMalformedForecast) {
				t.Errorf("expected ErrMalformedForecast, got %v", err)
			}
		})
	}
}
