package render

import (
	"fmt"

	"github.com/google/uuid"
)

// ArtifactKey returns the storage key of a quote's prerendered PDF. The key
// is fixed per quote so a rerender overwrites the stale document.
func ArtifactKey(quoteID uuid.UUID) string {
	return fmt.Sprintf("quotes/%s.pdf", quoteID)
}
