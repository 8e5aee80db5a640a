package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestChartData_Series(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  ChartData
		want  []ChartPoint
		wantN int
	}{
		{
			name: "one point per timestamp",
			data: ChartData{
				Timestamps: []int64{1700000000, 1700000300, 1700000600},
				Closes:     []*float64{ptr(189.5), ptr(190.1), ptr(189.9)},
			},
			want: []ChartPoint{
				{Time: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), Close: ptr(189.5)},
				{Time: time.Date(2023, 11, 14, 22, 18, 20, 0, time.UTC), Close: ptr(190.1)},
				{Time: time.Date(2023, 11, 14, 22, 23, 20, 0, time.UTC), Close: ptr(189.9)},
			},
			wantN: 3,
		},
		{
			name: "null and missing closes become nil",
			data: ChartData{
				Timestamps: []int64{0, 60},
				Closes:     []*float64{nil},
			},
			want: []ChartPoint{
				{Time: time.Unix(0, 0).UTC()},
				{Time: time.Unix(60, 0).UTC()},
			},
			wantN: 2,
		},
		{
			name:  "empty",
			data:  ChartData{},
			want:  []ChartPoint{},
			wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.data.Series()
			assert.Len(t, got, tt.wantN)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChartQuery_WithDefaultsAndValidate(t *testing.T) {
	t.Parallel()

	q := ChartQuery{Symbol: "AAPL"}.WithDefaults()
	assert.Equal(t, ChartQuery{Symbol: "AAPL", Region: "US", Range: "1d", Interval: "5m"}, q)
	assert.NoError(t, q.Validate())

	tests := []struct {
		name string
		q    ChartQuery
	}{
		{"missing symbol", ChartQuery{Region: "US", Range: "1d", Interval: "5m"}},
		{"bad region", ChartQuery{Symbol: "AAPL", Region: "MARS", Range: "1d", Interval: "5m"}},
		{"bad range", ChartQuery{Symbol: "AAPL", Region: "US", Range: "2d", Interval: "5m"}},
		{"bad interval", ChartQuery{Symbol: "AAPL", Region: "US", Range: "1d", Interval: "2m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.q.Validate())
		})
	}
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	err := error(NewNoDataError("Chart data is not available."))
	assert.True(t, IsNoData(err))
	assert.Equal(t, "Chart data is not available.", err.Error())

	fe, ok := AsFetchError(NewTransportError(assert.AnError))
	assert.True(t, ok)
	assert.Equal(t, KindTransport, fe.Kind)
	assert.False(t, IsNoData(fe))
	assert.Equal(t, assert.AnError.Error(), fe.Message)
}
