// Package export holds what the export adapters share: artifact kinds,
// user-facing notices and file naming.
package export

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindData     Kind = "data"
	KindDocument Kind = "document"
	KindMail     Kind = "mail"
	KindSummary  Kind = "summary"
)

// Notices shown to the user after an export attempt.
const (
	NoticeDataExported   = "Data exported successfully!"
	NoticeDataFailed     = "Error exporting data. Please try again."
	NoticeDocumentSaved  = "PDF generated successfully!"
	NoticeDocumentFailed = "Error generating PDF. Please try again."
	NoticeSummaryCopied  = "Summary copied to clipboard!"
	NoticeMailCopied     = "Email content copied to clipboard! Please paste it into your email client."
	NoticeMailOpened     = "Opening your email client..."
	NoticeMailFailed     = "Could not open email client. Please copy the content manually."
)

// Name fallbacks used when the restaurant or client field is empty.
const (
	FallbackFileName   = "client"
	FallbackClient     = "Client"
	FallbackRestaurant = "Restaurant"
	FallbackNA         = "N/A"
)

var unsafeName = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]+`)

// SafeName makes name usable as part of a file name. Empty results take the
// fallback.
func SafeName(name, fallback string) string {
	n := strings.TrimSpace(unsafeName.ReplaceAllString(name, "-"))
	n = strings.Trim(n, ".")
	if n == "" {
		return fallback
	}
	return n
}
