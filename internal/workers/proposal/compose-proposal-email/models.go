package composeproposalemail

import "proposal-workers/internal/models"

type Input = models.ProposalRequest

type Output struct {
	ProposalID string `json:"proposalId"`
	To         string `json:"to"`
	From       string `json:"from"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	MailtoURL  string `json:"mailtoUrl"`
	CopyText   string `json:"copyText"`
}
