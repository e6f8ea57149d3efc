// Package aggregator reduces a catalog and a selection into proposal totals.
//
// Calculate is a pure function: it reads the catalog, never mutates its
// inputs, and returns the same Totals for the same Inputs. Callers recompute
// after every mutation; nothing is cached.
package aggregator

import (
	"math"

	"proposal-workers/internal/proposal/catalog"
)

const (
	// RushFactor scales effort days when accelerated delivery is chosen. Cost is unaffected.
	RushFactor = 0.75
	// DaysPerWeek converts effort days into calendar weeks.
	DaysPerWeek = 4.5

	// ceilEpsilon keeps accumulated float error from pushing an exact integer up a day.
	ceilEpsilon = 1e-9
)

// Inputs is everything the totals depend on besides the catalog.
type Inputs struct {
	Selected              map[string]bool
	Approach              catalog.Approach
	Rush                  bool
	ContingencyPercentage int
}

// Totals are the derived proposal figures. Money is in whole currency units.
type Totals struct {
	OneOffTotal       int `json:"oneOffTotal"`
	RecurringTotal    int `json:"recurringTotal"`
	EffortDays        int `json:"effortDays"`
	EstimatedWeeks    int `json:"estimatedWeeks"`
	ContingencyAmount int `json:"contingencyAmount"`
	GrandTotal        int `json:"grandTotal"`

	// RawEffortDays is the selected day sum before the rush factor and rounding.
	RawEffortDays float64 `json:"rawEffortDays"`
}

// Calculate derives Totals. Unknown ids in in.Selected are ignored and any
// contingency percentage is accepted as given.
func Calculate(cat *catalog.Catalog, in Inputs) Totals {
	var t Totals

	cat.Each(func(_ string, it catalog.Item) {
		if !in.Selected[it.ID] {
			return
		}
		if it.IsRecurring() {
			t.RecurringTotal += it.Monthly()
		} else {
			t.OneOffTotal += it.Price.For(in.Approach)
		}
		// recurring items carry zero days, summing them is harmless
		t.RawEffortDays += it.Days.For(in.Approach)
	})

	t.EffortDays = EffortDays(t.RawEffortDays, in.Rush)
	t.EstimatedWeeks = EstimatedWeeks(t.EffortDays)
	t.ContingencyAmount = ContingencyAmount(t.OneOffTotal, in.ContingencyPercentage)
	t.GrandTotal = t.OneOffTotal + t.ContingencyAmount
	return t
}

// EffortDays applies the rush factor to the whole sum and rounds up once.
func EffortDays(rawDays float64, rush bool) int {
	factor := 1.0
	if rush {
		factor = RushFactor
	}
	d := math.Ceil(rawDays*factor - ceilEpsilon)
	if d <= 0 {
		return 0
	}
	return int(d)
}

// EstimatedWeeks is ceil(effortDays / 4.5), never less than one week.
func EstimatedWeeks(effortDays int) int {
	weeks := int(math.Ceil(float64(effortDays)/DaysPerWeek - ceilEpsilon))
	if weeks < 1 {
		return 1
	}
	return weeks
}

// ContingencyAmount rounds oneOffTotal * percentage / 100 half up.
func ContingencyAmount(oneOffTotal, percentage int) int {
	p := oneOffTotal * percentage
	if p >= 0 {
		return (p*2 + 100) / 200
	}
	return int(math.Floor(float64(p)/100 + 0.5))
}

// Line is one selected item as it appears in a breakdown.
type Line struct {
	ItemID       string  `json:"id"`
	Label        string  `json:"label"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Recurring    bool    `json:"recurring"`
	Essential    bool    `json:"essential"`
	Amount       int     `json:"amount"`
	Days         float64 `json:"days"`
}

// LineItems lists the selected items in catalog order. Amount is the price
// for the active approach, or the monthly cost for recurring items.
func LineItems(cat *catalog.Catalog, in Inputs) []Line {
	var lines []Line
	cat.Each(func(categoryName string, it catalog.Item) {
		if !in.Selected[it.ID] {
			return
		}
		line := Line{
			ItemID:       it.ID,
			Label:        it.Label,
			CategoryID:   it.Category,
			CategoryName: categoryName,
			Recurring:    it.IsRecurring(),
			Essential:    it.Essential,
			Days:         it.Days.For(in.Approach),
		}
		if it.IsRecurring() {
			line.Amount = it.Monthly()
		} else {
			line.Amount = it.Price.For(in.Approach)
		}
		lines = append(lines, line)
	})
	return lines
}

// ApproachTotals pairs an approach with the totals the selection would have under it.
type ApproachTotals struct {
	Approach catalog.Approach `json:"approach"`
	Label    string           `json:"label"`
	Totals   Totals           `json:"totals"`
}

// CompareApproaches evaluates the same selection under every approach.
func CompareApproaches(cat *catalog.Catalog, in Inputs) []ApproachTotals {
	out := make([]ApproachTotals, 0, 3)
	for _, a := range catalog.Approaches() {
		variant := in
		variant.Approach = a
		out = append(out, ApproachTotals{
			Approach: a,
			Label:    a.Label(),
			Totals:   Calculate(cat, variant),
		})
	}
	return out
}
