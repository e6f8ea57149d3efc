package renderproposaldocument

import "proposal-workers/internal/models"

type Input = models.ProposalRequest

// Output is the stored PDF with its page count.
type Output = models.ExportArtifact
