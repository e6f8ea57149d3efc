package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	f := Default()

	tests := []struct {
		amount int
		want   string
	}{
		{4700, "€\u00a04.700"},
		{0, "€\u00a00"},
		{600, "€\u00a0600"},
		{21505, "€\u00a021.505"},
		{1250000, "€\u00a01.250.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Currency(tt.amount))
	}

	assert.Equal(t, "€\u00a0600/mo", f.MonthlyCurrency(600))
}

func TestCurrency_OtherLocale(t *testing.T) {
	f, err := New("en-US", "EUR")
	require.NoError(t, err)

	assert.Equal(t, "€\u00a04,700", f.Currency(4700))
	assert.Equal(t, "EUR", f.CurrencyCode())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("!!", "EUR")
	assert.Error(t, err)

	_, err = New("nl-NL", "EURO")
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	f := Default()

	tests := []struct {
		v    float64
		want string
	}{
		{0.5, "0.5 days"},
		{1, "1 day"},
		{7, "7 days"},
		{0, "0 days"},
		{0.25, "0.3 days"},
		{0.04, "0 days"},
		{2.5, "2.5 days"},
		{25, "25 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Days(tt.v))
	}
}

func TestWeeks(t *testing.T) {
	f := Default()

	assert.Equal(t, "1 week", f.Weeks(1))
	assert.Equal(t, "3 weeks", f.Weeks(3))
	assert.Equal(t, "20 weeks", f.Weeks(20))
}

func TestPercentageAndDate(t *testing.T) {
	f := Default()
	ts := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "15%", f.Percentage(15))
	assert.Equal(t, "07-03-2024", f.Date(ts))
	assert.Equal(t, "2024-03-07", f.WithDateLayout("2006-01-02").Date(ts))
	assert.Equal(t, "07-03-2024", f.WithDateLayout("").Date(ts))
}
