package models

// ProposalRequest is the job payload shared by every proposal worker. It
// carries the whole selection so a job never depends on another job's state.
type ProposalRequest struct {
	ProposalID            string   `json:"proposalId,omitempty"`
	ClientName            string   `json:"clientName"`
	RestaurantName        string   `json:"restaurantName"`
	ClientEmail           string   `json:"clientEmail,omitempty"`
	Approach              string   `json:"approach"`
	SelectedServices      []string `json:"selectedServices"`
	RushDelivery          bool     `json:"rushDelivery"`
	ContingencyPercentage *int     `json:"contingencyPercentage,omitempty"`
}

// ExportArtifact describes a file written by an export worker.
type ExportArtifact struct {
	ProposalID  string `json:"proposalId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Location    string `json:"location"`
	Bytes       int    `json:"bytes"`
	Pages       int    `json:"pages,omitempty"`
	Reused      bool   `json:"reused"`
}
