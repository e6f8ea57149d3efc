package calculateproposal

import (
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/snapshot"
)

type Input = models.ProposalRequest

type Output struct {
	ProposalID      string                      `json:"proposalId"`
	Approach        string                      `json:"approach"`
	ApproachLabel   string                      `json:"approachLabel"`
	RushDelivery    bool                        `json:"rushDelivery"`
	Totals          aggregator.Totals           `json:"totals"`
	Formatted       snapshot.Formatted          `json:"formatted"`
	Lines           []snapshot.Line             `json:"lines"`
	Comparison      []aggregator.ApproachTotals `json:"comparison,omitempty"`
	UnknownServices []string                    `json:"unknownServices,omitempty"`
}
