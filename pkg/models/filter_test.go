package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterTime(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "blank", input: "  ", wantNil: true},
		{name: "date only", input: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, loc)},
		{name: "minutes with T", input: "2024-03-01T10:30", want: time.Date(2024, 3, 1, 10, 30, 0, 0, loc)},
		{name: "minutes with space", input: "2024-03-01 10:30", want: time.Date(2024, 3, 1, 10, 30, 0, 0, loc)},
		{name: "seconds", input: "2024-03-01T10:30:15", want: time.Date(2024, 3, 1, 10, 30, 15, 0, loc)},
		{name: "rfc3339 keeps zone", input: "2024-03-01T10:30:00Z", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilterTime(tt.input, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, *got)
		})
	}
}

func TestQueryFilter_Values(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	v := QueryFilter{Start: &start, Barcode: "A1", Limit: 100}.Values()

	assert.Equal(t, "2024-01-01T00:00:00Z", v.Get(ParamStartDate))
	assert.Equal(t, "A1", v.Get(ParamBarcode))
	assert.Equal(t, "100", v.Get(ParamLimit))
	assert.False(t, v.Has(ParamEndDate))
	assert.False(t, v.Has(ParamSkip))

	assert.Empty(t, QueryFilter{}.Values())
}

func TestQueryFilter_Matches(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := QueryFilter{Start: &start, End: &end, Barcode: "BC"}

	assert.True(t, f.Matches(Scan{Barcode: "ABCD", ScannedAt: start}), "start is inclusive")
	assert.False(t, f.Matches(Scan{Barcode: "ABCD", ScannedAt: end}), "end is exclusive")
	assert.False(t, f.Matches(Scan{Barcode: "XYZ", ScannedAt: start.Add(time.Hour)}))
	assert.True(t, f.Matches(Scan{Barcode: "abcd", ScannedAt: start}), "substring match ignores case")
	assert.True(t, QueryFilter{}.Matches(Scan{Barcode: "anything"}))
}
