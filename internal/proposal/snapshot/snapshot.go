// Package snapshot captures an immutable copy of a proposal for the export
// adapters. A Snapshot shares no memory with the state it was taken from.
package snapshot

import (
	"fmt"
	"time"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/formatter"
	"proposal-workers/internal/proposal/selection"

	"github.com/google/uuid"
)

// Client identifies who the proposal is for. Values are opaque and never validated.
type Client struct {
	Name       string
	Restaurant string
	Email      string
}

// Line is a selected item with its display strings.
type Line struct {
	aggregator.Line
	FormattedAmount string `json:"formattedAmount"`
	FormattedDays   string `json:"formattedDays"`
}

// Group is the selected items of one category, in catalog order.
type Group struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Lines        []Line `json:"lines"`
}

// Formatted holds the totals rendered for display.
type Formatted struct {
	OneOffTotal           string `json:"oneOffTotal"`
	RecurringTotal        string `json:"recurringTotal"`
	ContingencyAmount     string `json:"contingencyAmount"`
	ContingencyPercentage string `json:"contingencyPercentage"`
	GrandTotal            string `json:"grandTotal"`
	EffortDays            string `json:"effortDays"`
	EstimatedWeeks        string `json:"estimatedWeeks"`
	GeneratedOn           string `json:"generatedOn"`
}

type Snapshot struct {
	ID                    string
	Client                Client
	Approach              catalog.Approach
	ApproachLabel         string
	Rush                  bool
	ContingencyPercentage int
	SelectedIDs           []string
	Groups                []Group
	Totals                aggregator.Totals
	Formatted             Formatted
	GeneratedAt           time.Time
}

// Take snapshots a live selection state.
func Take(state *selection.State, client Client, f *formatter.Formatter, now time.Time) Snapshot {
	return build(state.Catalog(), uuid.NewString(), client, state.Inputs(), f, now)
}

// FromRequest rebuilds a snapshot from a job payload. Unknown service ids are
// dropped and returned so the caller can report them. A missing contingency
// percentage takes the default.
func FromRequest(cat *catalog.Catalog, req models.ProposalRequest, f *formatter.Formatter, now time.Time) (Snapshot, []string, error) {
	approach, err := catalog.ParseApproach(req.Approach)
	if err != nil {
		return Snapshot{}, nil, errors.NewInvalidApproachError(req.Approach)
	}

	pct := selection.DefaultContingencyPercentage
	if req.ContingencyPercentage != nil {
		pct = *req.ContingencyPercentage
	}
	if pct < 0 {
		return Snapshot{}, nil, errors.NewInvalidProposalInputError(
			fmt.Sprintf("contingencyPercentage must not be negative, got %d", pct))
	}

	state := selection.New(cat)
	var unknown []string
	for _, id := range req.SelectedServices {
		if !state.Select(id, true) {
			unknown = append(unknown, id)
		}
	}
	state.SetApproach(approach)
	state.SetRush(req.RushDelivery)
	state.SetContingencyPercentage(pct)

	id := req.ProposalID
	if id == "" {
		id = uuid.NewString()
	}
	client := Client{Name: req.ClientName, Restaurant: req.RestaurantName, Email: req.ClientEmail}
	return build(cat, id, client, state.Inputs(), f, now), unknown, nil
}

func build(cat *catalog.Catalog, id string, client Client, in aggregator.Inputs, f *formatter.Formatter, now time.Time) Snapshot {
	totals := aggregator.Calculate(cat, in)

	s := Snapshot{
		ID:                    id,
		Client:                client,
		Approach:              in.Approach,
		ApproachLabel:         in.Approach.Label(),
		Rush:                  in.Rush,
		ContingencyPercentage: in.ContingencyPercentage,
		Totals:                totals,
		GeneratedAt:           now,
		Formatted: Formatted{
			OneOffTotal:           f.Currency(totals.OneOffTotal),
			RecurringTotal:        f.Currency(totals.RecurringTotal),
			ContingencyAmount:     f.Currency(totals.ContingencyAmount),
			ContingencyPercentage: f.Percentage(in.ContingencyPercentage),
			GrandTotal:            f.Currency(totals.GrandTotal),
			EffortDays:            f.Days(float64(totals.EffortDays)),
			EstimatedWeeks:        f.Weeks(totals.EstimatedWeeks),
			GeneratedOn:           f.Date(now),
		},
	}

	for _, l := range aggregator.LineItems(cat, in) {
		s.SelectedIDs = append(s.SelectedIDs, l.ItemID)

		line := Line{Line: l, FormattedDays: f.Days(l.Days)}
		if l.Recurring {
			line.FormattedAmount = f.MonthlyCurrency(l.Amount)
		} else {
			line.FormattedAmount = f.Currency(l.Amount)
		}

		if n := len(s.Groups); n == 0 || s.Groups[n-1].CategoryID != l.CategoryID {
			s.Groups = append(s.Groups, Group{CategoryID: l.CategoryID, CategoryName: l.CategoryName})
		}
		g := &s.Groups[len(s.Groups)-1]
		g.Lines = append(g.Lines, line)
	}
	return s
}

// SelectedLabels lists the labels of the selected items in catalog order.
func (s Snapshot) SelectedLabels() []string {
	labels := make([]string, 0, len(s.SelectedIDs))
	for _, g := range s.Groups {
		for _, l := range g.Lines {
			labels = append(labels, l.Label)
		}
	}
	return labels
}

// RestaurantOr returns the restaurant name, or fallback when it is empty.
func (s Snapshot) RestaurantOr(fallback string) string {
	if s.Client.Restaurant == "" {
		return fallback
	}
	return s.Client.Restaurant
}

// ClientOr returns the client name, or fallback when it is empty.
func (s Snapshot) ClientOr(fallback string) string {
	if s.Client.Name == "" {
		return fallback
	}
	return s.Client.Name
}

// Inputs rebuilds the aggregator inputs the snapshot was computed from.
func (s Snapshot) Inputs() aggregator.Inputs {
	selected := make(map[string]bool, len(s.SelectedIDs))
	for _, id := range s.SelectedIDs {
		selected[id] = true
	}
	return aggregator.Inputs{
		Selected:              selected,
		Approach:              s.Approach,
		Rush:                  s.Rush,
		ContingencyPercentage: s.ContingencyPercentage,
	}
}
