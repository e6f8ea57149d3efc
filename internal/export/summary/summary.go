// Package summary renders the plain-text proposal recap.
package summary

import (
	"fmt"
	"strings"

	"proposal-workers/internal/export"
	"proposal-workers/internal/proposal/snapshot"
)

const Title = "RESTAURANT DIGITAL PRESENCE PROPOSAL"

func Render(s snapshot.Snapshot) string {
	var b strings.Builder

	b.WriteString(Title + "\n\n")
	b.WriteString(fmt.Sprintf("Client: %s\n", s.ClientOr(export.FallbackNA)))
	b.WriteString(fmt.Sprintf("Restaurant: %s\n", s.RestaurantOr(export.FallbackNA)))
	b.WriteString(fmt.Sprintf("Development Approach: %s\n", s.ApproachLabel))

	b.WriteString("\nTIMELINE:\n")
	b.WriteString(fmt.Sprintf("Project Duration: %s\n", s.Formatted.EstimatedWeeks))
	b.WriteString(fmt.Sprintf("Effort Days: %s\n", s.Formatted.EffortDays))
	if s.Rush {
		b.WriteString("Accelerated Delivery: Yes\n")
	} else {
		b.WriteString("Standard Delivery\n")
	}

	b.WriteString("\nSELECTED SERVICES:\n")
	for _, label := range s.SelectedLabels() {
		b.WriteString("• " + label + "\n")
	}

	b.WriteString("\nCOST BREAKDOWN:\n")
	b.WriteString(fmt.Sprintf("One-time Investment: %s\n", s.Formatted.OneOffTotal))
	b.WriteString(fmt.Sprintf("Contingency (%s): %s\n", s.Formatted.ContingencyPercentage, s.Formatted.ContingencyAmount))
	b.WriteString(fmt.Sprintf("Total Investment: %s\n", s.Formatted.GrandTotal))
	b.WriteString(fmt.Sprintf("Monthly Recurring: %s\n", s.Formatted.RecurringTotal))

	b.WriteString(fmt.Sprintf("\nGenerated on: %s", s.Formatted.GeneratedOn))
	return b.String()
}
