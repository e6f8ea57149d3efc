package snapshot

import (
	"testing"
	"time"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/formatter"
	"proposal-workers/internal/proposal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestTake(t *testing.T) {
	state := selection.NewDefault(catalog.Default())
	client := Client{Name: "Sanne de Vries", Restaurant: "De Gouden Lepel", Email: "sanne@example.nl"}

	s := Take(state, client, formatter.Default(), fixedNow)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, client, s.Client)
	assert.Equal(t, catalog.NoCode, s.Approach)
	assert.Equal(t, "No-Code Platform", s.ApproachLabel)
	assert.Equal(t, selection.StarterItems, s.SelectedIDs)
	assert.Equal(t, 4600, s.Totals.GrandTotal)

	assert.Equal(t, "€\u00a04.000", s.Formatted.OneOffTotal)
	assert.Equal(t, "€\u00a0700", s.Formatted.RecurringTotal)
	assert.Equal(t, "€\u00a0600", s.Formatted.ContingencyAmount)
	assert.Equal(t, "15%", s.Formatted.ContingencyPercentage)
	assert.Equal(t, "€\u00a04.600", s.Formatted.GrandTotal)
	assert.Equal(t, "25 days", s.Formatted.EffortDays)
	assert.Equal(t, "6 weeks", s.Formatted.EstimatedWeeks)
	assert.Equal(t, "17-05-2024", s.Formatted.GeneratedOn)
}

func TestTake_Groups(t *testing.T) {
	state := selection.NewDefault(catalog.Default())
	s := Take(state, Client{}, formatter.Default(), fixedNow)

	var names []string
	for _, g := range s.Groups {
		names = append(names, g.CategoryName)
	}
	assert.Equal(t, []string{
		"Core Website Development",
		"E-commerce & Ordering",
		"Payments & Delivery",
		"Marketplace Integration",
		"SEO, Analytics & Compliance",
		"Ongoing Maintenance & Support",
	}, names)

	maint := s.Groups[len(s.Groups)-1]
	require.Len(t, maint.Lines, 2)
	assert.Equal(t, "€\u00a0100/mo", maint.Lines[0].FormattedAmount)

	google := s.Groups[3].Lines[0]
	assert.Equal(t, "google-business", google.ItemID)
	assert.Equal(t, "0.5 days", google.FormattedDays)

	assert.Len(t, s.SelectedLabels(), len(selection.StarterItems))
	assert.Equal(t, "Discovery & Strategy", s.SelectedLabels()[0])
}

func TestTake_IsDetached(t *testing.T) {
	state := selection.NewDefault(catalog.Default())
	s := Take(state, Client{}, formatter.Default(), fixedNow)

	state.SetCategory("ecommerce", true)
	state.SetApproach(catalog.Custom)

	assert.Equal(t, catalog.NoCode, s.Approach)
	assert.Equal(t, 4000, s.Totals.OneOffTotal)
	assert.Len(t, s.SelectedIDs, len(selection.StarterItems))
}

func TestFromRequest(t *testing.T) {
	req := models.ProposalRequest{
		ProposalID:            "prop-1",
		ClientName:            "Jan",
		RestaurantName:        "Bistro Noord",
		Approach:              "CMS",
		SelectedServices:      []string{"core-pages", "hologram", "hosting-platform"},
		RushDelivery:          true,
		ContingencyPercentage: intPtr(10),
	}

	s, unknown, err := FromRequest(catalog.Default(), req, formatter.Default(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"hologram"}, unknown)
	assert.Equal(t, "prop-1", s.ID)
	assert.Equal(t, catalog.CMS, s.Approach)
	assert.Equal(t, []string{"core-pages", "hosting-platform"}, s.SelectedIDs)
	assert.Equal(t, 1400, s.Totals.OneOffTotal)
	assert.Equal(t, 140, s.Totals.ContingencyAmount)
	assert.Equal(t, 100, s.Totals.RecurringTotal)
	// 14 * 0.75 = 10.5
	assert.Equal(t, 11, s.Totals.EffortDays)
	assert.True(t, s.Rush)
}

func TestFromRequest_Defaults(t *testing.T) {
	s, unknown, err := FromRequest(catalog.Default(), models.ProposalRequest{Approach: "nocode"}, formatter.Default(), fixedNow)
	require.NoError(t, err)

	assert.Empty(t, unknown)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 15, s.ContingencyPercentage)
	assert.Empty(t, s.SelectedIDs)
	assert.Equal(t, 1, s.Totals.EstimatedWeeks)
	assert.Equal(t, "N/A", s.ClientOr("N/A"))
	assert.Equal(t, "client", s.RestaurantOr("client"))
}

func TestFromRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  models.ProposalRequest
		code errors.ErrorCode
	}{
		{"unknown approach", models.ProposalRequest{Approach: "wordpress"}, errors.ErrCodeInvalidApproach},
		{"empty approach", models.ProposalRequest{}, errors.ErrCodeInvalidApproach},
		{"negative contingency", models.ProposalRequest{Approach: "cms", ContingencyPercentage: intPtr(-5)}, errors.ErrCodeInvalidProposalInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromRequest(catalog.Default(), tt.req, formatter.Default(), fixedNow)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), err.Error())
		})
	}
}

func TestSnapshot_Inputs(t *testing.T) {
	state := selection.NewDefault(catalog.Default())
	state.SetApproach(catalog.Custom)
	state.SetRush(true)
	state.SetContingencyPercentage(20)

	s := Take(state, Client{}, formatter.Default(), fixedNow)
	in := s.Inputs()

	assert.Equal(t, state.Inputs(), in)
	assert.Equal(t, s.Totals, aggregator.Calculate(catalog.Default(), in))
}
