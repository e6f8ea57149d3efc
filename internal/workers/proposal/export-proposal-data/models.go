package exportproposaldata

import "proposal-workers/internal/models"

type Input = models.ProposalRequest

// Output is the stored data file. Reused is set when a redelivered job
// returns the file written the first time.
type Output = models.ExportArtifact
