package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2025-06-15",
			want:  NewDate(2025, time.June, 15),
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  NewDate(2024, time.February, 29),
		},
		{
			name:    "invalid format",
			input:   "15/06/2025",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		d := NewDate(2025, time.March, 5)
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-05"`, string(data))

		var back Date
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, back.Equal(d))
	})

	t.Run("rfc3339 fallback", func(t *testing.T) {
		t.Parallel()

		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-05T14:30:00Z"`), &d))
		assert.Equal(t, "2025-03-05", d.String())
	})

	t.Run("null yields zero", func(t *testing.T) {
		t.Parallel()

		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("zero marshals null", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Month
		wantErr bool
	}{
		{
			name:  "valid",
			input: "2025-06",
			want:  NewMonth(2025, time.June),
		},
		{
			name:  "january",
			input: "2025-01",
			want:  NewMonth(2025, time.January),
		},
		{
			name:    "month out of range",
			input:   "2025-13",
			wantErr: true,
		},
		{
			name:    "full date rejected",
			input:   "2025-06-15",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonth_Window(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		month     Month
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{
			name:      "31-day month",
			month:     NewMonth(2025, time.July),
			wantStart: "2025-07-01",
			wantEnd:   "2025-07-31",
			wantDays:  31,
		},
		{
			name:      "30-day month",
			month:     NewMonth(2025, time.April),
			wantStart: "2025-04-01",
			wantEnd:   "2025-04-30",
			wantDays:  30,
		},
		{
			name:      "february non-leap",
			month:     NewMonth(2025, time.February),
			wantStart: "2025-02-01",
			wantEnd:   "2025-02-28",
			wantDays:  28,
		},
		{
			name:      "february leap",
			month:     NewMonth(2024, time.February),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
			wantDays:  29,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantStart, tt.month.Start().String())
			assert.Equal(t, tt.wantEnd, tt.month.End().String())
			assert.Equal(t, tt.wantDays, tt.month.Days())
		})
	}
}

func TestMonth_Contains(t *testing.T) {
	t.Parallel()

	m := NewMonth(2025, time.June)

	assert.True(t, m.Contains(NewDate(2025, time.June, 1)))
	assert.True(t, m.Contains(NewDate(2025, time.June, 30)))
	assert.False(t, m.Contains(NewDate(2025, time.May, 31)))
	assert.False(t, m.Contains(NewDate(2025, time.July, 1)))
	assert.False(t, m.Contains(NewDate(2024, time.June, 15)))
}

func TestMonth_ContainsOrBefore(t *testing.T) {
	t.Parallel()

	m := NewMonth(2025, time.June)

	assert.True(t, m.ContainsOrBefore(NewDate(2025, time.June, 30)))
	assert.True(t, m.ContainsOrBefore(NewDate(2025, time.January, 1)))
	assert.True(t, m.ContainsOrBefore(NewDate(2020, time.December, 31)))
	assert.False(t, m.ContainsOrBefore(NewDate(2025, time.July, 1)))
}

func TestMonth_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("prev across year boundary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewMonth(2024, time.December), NewMonth(2025, time.January).Prev())
	})

	t.Run("next across year boundary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewMonth(2026, time.January), NewMonth(2025, time.December).Next())
	})

	t.Run("add months", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewMonth(2025, time.November), NewMonth(2025, time.June).AddMonths(5))
		assert.Equal(t, NewMonth(2025, time.January), NewMonth(2025, time.June).AddMonths(-5))
	})

	t.Run("ordering", func(t *testing.T) {
		t.Parallel()
		assert.True(t, NewMonth(2025, time.May).Before(NewMonth(2025, time.June)))
		assert.True(t, NewMonth(2025, time.June).After(NewMonth(2024, time.December)))
		assert.False(t, NewMonth(2025, time.June).Before(NewMonth(2025, time.June)))
	})
}

func TestMonth_Day_Clamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		month Month
		day   int
		want  string
	}{
		{
			name:  "normal day",
			month: NewMonth(2025, time.June),
			day:   15,
			want:  "2025-06-15",
		},
		{
			name:  "day 31 clamps to feb 28",
			month: NewMonth(2025, time.February),
			day:   31,
			want:  "2025-02-28",
		},
		{
			name:  "day 31 clamps to feb 29 on leap year",
			month: NewMonth(2024, time.February),
			day:   31,
			want:  "2024-02-29",
		},
		{
			name:  "day 31 clamps to 30",
			month: NewMonth(2025, time.April),
			day:   31,
			want:  "2025-04-30",
		},
		{
			name:  "zero floors to first",
			month: NewMonth(2025, time.June),
			day:   0,
			want:  "2025-06-01",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.month.Day(tt.day).String())
		})
	}
}

func TestMonth_JSON(t *testing.T) {
	t.Parallel()

	m := NewMonth(2025, time.June)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06"`, string(data))

	var back Month
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}
