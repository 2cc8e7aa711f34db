package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int64
		wantOK bool
	}{
		{name: "empty", raw: ""},
		{name: "none marker", raw: "None"},
		{name: "null marker", raw: " NULL "},
		{name: "not a number", raw: "ford"},
		{name: "zero", raw: "0"},
		{name: "negative", raw: "-4"},
		{name: "valid", raw: "12", want: 12, wantOK: true},
		{name: "valid with spaces", raw: " 7 ", want: 7, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseID(tt.raw).Get()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDs_DropsInvalidEntries(t *testing.T) {
	assert.Equal(t, []int64{3, 9}, ParseIDs([]string{"3", "", "None", "x", "9"}))
	assert.Empty(t, ParseIDs([]string{"", "None"}))
	assert.Empty(t, ParseIDs(nil))
}

func TestParseYear(t *testing.T) {
	assert.False(t, ParseYear(0).IsSet())
	assert.False(t, ParseYear(-1).IsSet())
	assert.Equal(t, 2019, ParseYear(2019).OrElse(0))

	assert.False(t, ParseYearString("").IsSet())
	assert.False(t, ParseYearString("None").IsSet())
	assert.Equal(t, 2020, ParseYearString("2020.0").OrElse(0))
	assert.False(t, ParseYearString("2020.5").IsSet())
	assert.False(t, ParseYearString("abc").IsSet())
}

func TestPriceBounds(t *testing.T) {
	assert.False(t, PriceMin(0).IsSet())
	assert.False(t, PriceMin(-10).IsSet())
	assert.False(t, PriceMin(math.NaN()).IsSet())
	assert.Equal(t, 25.5, PriceMin(25.5).OrElse(0))

	assert.False(t, PriceMax(0).IsSet())
	assert.False(t, PriceMax(PriceUnbounded).IsSet())
	assert.False(t, PriceMax(PriceUnbounded+1).IsSet())
	assert.Equal(t, 150.0, PriceMax(150).OrElse(0))

	assert.False(t, PriceMinPtr(nil).IsSet())
	assert.False(t, PriceMaxPtr(nil).IsSet())
	v := 42.0
	assert.True(t, PriceMaxPtr(&v).IsSet())
}

func TestOptional_MarshalJSON(t *testing.T) {
	b, err := None[int64]().MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Some(int64(5)).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "5", string(b))

	assert.Equal(t, "<unset>", None[int]().String())
	assert.Equal(t, "5", Some(5).String())
}
