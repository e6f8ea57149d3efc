// Package formatter turns proposal figures into the display strings embedded
// in summaries, mail bodies and documents. Every method is total: it never
// fails once a Formatter exists.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale     = "nl-NL"
	DefaultCurrency   = "EUR"
	DefaultDateLayout = "02-01-2006"

	nbsp = "\u00a0"
)

type Formatter struct {
	tag        language.Tag
	unit       currency.Unit
	printer    *message.Printer
	symbol     string
	dateLayout string
}

// New builds a formatter for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	p := message.NewPrinter(tag)
	return &Formatter{
		tag:        tag,
		unit:       unit,
		printer:    p,
		symbol:     p.Sprint(currency.Symbol(unit)),
		dateLayout: DefaultDateLayout,
	}, nil
}

// Default is nl-NL with euros.
func Default() *Formatter {
	f, err := New(DefaultLocale, DefaultCurrency)
	if err != nil {
		panic(err)
	}
	return f
}

// WithDateLayout returns a copy using layout for Date. An empty layout keeps
// the current one.
func (f *Formatter) WithDateLayout(layout string) *Formatter {
	c := *f
	if layout != "" {
		c.dateLayout = layout
	}
	return &c
}

func (f *Formatter) Locale() string { return f.tag.String() }

func (f *Formatter) CurrencyCode() string { return f.unit.String() }

func (f *Formatter) Symbol() string { return f.symbol }

// Currency renders a whole amount with locale grouping and no decimals,
// e.g. "€ 4.700" for nl-NL.
func (f *Formatter) Currency(amount int) string {
	return f.symbol + nbsp + f.printer.Sprintf("%d", amount)
}

// MonthlyCurrency renders a recurring amount, e.g. "€ 600/mo".
func (f *Formatter) MonthlyCurrency(amount int) string {
	return f.Currency(amount) + "/mo"
}

// Days renders an effort day count: "1 day", rounded to one decimal below
// one day, the plain count otherwise.
func (f *Formatter) Days(v float64) string {
	switch {
	case v == 1:
		return "1 day"
	case v < 1:
		return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + " days"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64) + " days"
	}
}

func (f *Formatter) Weeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return strconv.Itoa(n) + " weeks"
}

func (f *Formatter) Percentage(n int) string {
	return strconv.Itoa(n) + "%"
}

func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}
