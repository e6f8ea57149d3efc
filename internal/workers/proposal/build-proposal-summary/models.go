package buildproposalsummary

import "proposal-workers/internal/models"

type Input = models.ProposalRequest

type Output struct {
	ProposalID string `json:"proposalId"`
	Summary    string `json:"summary"`
}
