// Package datafile writes a proposal snapshot as a flat JSON record.
package datafile

import (
	"encoding/json"
	"fmt"
	"time"

	"proposal-workers/internal/export"
	"proposal-workers/internal/proposal/snapshot"
)

const ContentType = "application/json"

// TimestampLayout is ISO-8601 in UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is the exported key-value shape.
type Record struct {
	ProposalID            string   `json:"proposalId"`
	ClientName            string   `json:"clientName"`
	RestaurantName        string   `json:"restaurantName"`
	Approach              string   `json:"approach"`
	SelectedServices      []string `json:"selectedServices"`
	RushDelivery          bool     `json:"rushDelivery"`
	ContingencyPercentage int      `json:"contingencyPercentage"`
	OneOffTotal           int      `json:"oneOffTotal"`
	RecurringTotal        int      `json:"recurringTotal"`
	ContingencyAmount     int      `json:"contingencyAmount"`
	TotalDays             int      `json:"totalDays"`
	EstimatedWeeks        int      `json:"estimatedWeeks"`
	GrandTotal            int      `json:"grandTotal"`
	Timestamp             string   `json:"timestamp"`
}

func NewRecord(s snapshot.Snapshot) Record {
	services := append([]string{}, s.SelectedIDs...)
	return Record{
		ProposalID:            s.ID,
		ClientName:            s.Client.Name,
		RestaurantName:        s.Client.Restaurant,
		Approach:              string(s.Approach),
		SelectedServices:      services,
		RushDelivery:          s.Rush,
		ContingencyPercentage: s.ContingencyPercentage,
		OneOffTotal:           s.Totals.OneOffTotal,
		RecurringTotal:        s.Totals.RecurringTotal,
		ContingencyAmount:     s.Totals.ContingencyAmount,
		TotalDays:             s.Totals.EffortDays,
		EstimatedWeeks:        s.Totals.EstimatedWeeks,
		GrandTotal:            s.Totals.GrandTotal,
		Timestamp:             s.GeneratedAt.UTC().Format(TimestampLayout),
	}
}

// Marshal renders the snapshot as indented JSON.
func Marshal(s snapshot.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(NewRecord(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal proposal record: %w", err)
	}
	return data, nil
}

// Unmarshal reads a record back, checking the timestamp format.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("unmarshal proposal record: %w", err)
	}
	if _, err := time.Parse(TimestampLayout, r.Timestamp); err != nil {
		return Record{}, fmt.Errorf("invalid timestamp %q: %w", r.Timestamp, err)
	}
	return r, nil
}

// Filename is restaurant-proposal-data-<restaurant>.json.
func Filename(s snapshot.Snapshot) string {
	return "restaurant-proposal-data-" + export.SafeName(s.Client.Restaurant, export.FallbackFileName) + ".json"
}
