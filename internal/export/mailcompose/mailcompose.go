// Package mailcompose builds the proposal mail: a mailto link for the default
// mail handler and a copy-paste fallback carrying the full addressed message.
package mailcompose

import (
	"fmt"
	"net/url"
	"strings"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/export"
	"proposal-workers/internal/proposal/snapshot"
)

// Sender is the identity signed into the body. A mailto link cannot set From.
type Sender struct {
	Name    string `mapstructure:"name" json:"name"`
	Address string `mapstructure:"address" json:"address"`
}

var DefaultSender = Sender{Name: "Capacity Dey Team", Address: "noreply@capacitydey.org"}

const copyTrailer = "Please copy this content and send it from your email client."

type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Compose builds the message for s. A blank client email blocks composition.
func Compose(s snapshot.Snapshot, sender Sender) (*Message, error) {
	to := strings.TrimSpace(s.Client.Email)
	if to == "" {
		return nil, errors.NewClientEmailRequiredError()
	}
	return &Message{
		To:      to,
		From:    sender.Address,
		Subject: Subject(s),
		Body:    Body(s, sender),
	}, nil
}

func Subject(s snapshot.Snapshot) string {
	return "Digital Presence Proposal - " + s.RestaurantOr(export.FallbackRestaurant)
}

func Body(s snapshot.Snapshot, sender Sender) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Dear %s,\n\n", s.ClientOr(export.FallbackClient)))
	b.WriteString("Thank you for your interest in our restaurant digital presence services.\n\n")

	b.WriteString("PROJECT SUMMARY:\n")
	b.WriteString(fmt.Sprintf("Restaurant: %s\n", s.RestaurantOr("Your Restaurant")))
	b.WriteString(fmt.Sprintf("Development Approach: %s\n", s.ApproachLabel))
	b.WriteString(fmt.Sprintf("Timeline: %s (%s of effort)\n", s.Formatted.EstimatedWeeks, s.Formatted.EffortDays))
	if s.Rush {
		b.WriteString("Accelerated Delivery: Yes (-25% timeline)\n")
	} else {
		b.WriteString("Standard Delivery\n")
	}

	b.WriteString("\nSELECTED SERVICES:\n")
	for _, label := range s.SelectedLabels() {
		b.WriteString("• " + label + "\n")
	}

	b.WriteString("\nCOST BREAKDOWN:\n")
	writeCosts(&b, s)

	b.WriteString("\nThis is a preliminary estimate. A detailed Statement of Work (SOW) will be provided after our discovery phase.\n\n")
	b.WriteString("Best regards,\n")
	b.WriteString(sender.Name + "\n")
	b.WriteString(sender.Address)
	return b.String()
}

func writeCosts(b *strings.Builder, s snapshot.Snapshot) {
	b.WriteString(fmt.Sprintf("One-time Investment: %s\n", s.Formatted.OneOffTotal))
	b.WriteString(fmt.Sprintf("Contingency (%s): %s\n", s.Formatted.ContingencyPercentage, s.Formatted.ContingencyAmount))
	b.WriteString(fmt.Sprintf("Total Investment: %s\n", s.Formatted.GrandTotal))
	b.WriteString(fmt.Sprintf("Monthly Recurring: %s\n", s.Formatted.RecurringTotal))
}

// MailtoURL is the mailto link with percent-encoded subject and body.
func (m *Message) MailtoURL() string {
	return "mailto:" + m.To + "?subject=" + encodeComponent(m.Subject) + "&body=" + encodeComponent(m.Body)
}

// CopyText is the full addressed message for manual pasting.
func (m *Message) CopyText() string {
	return fmt.Sprintf("TO: %s\nFROM: %s\nSUBJECT: %s\n\n%s\n\n---\n%s",
		m.To, m.From, m.Subject, m.Body, copyTrailer)
}

// encodeComponent escapes for a mailto header value; spaces become %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
