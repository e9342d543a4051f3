package ingest

import (
	"strings"

	"github.com/nconklindev/journeyload/internal/types"
)

// IsArtifact reports whether a column name is a reader placeholder for a blank header cell.
func IsArtifact(name string) bool {
	return strings.HasPrefix(name, ArtifactPrefix)
}

// PruneArtifacts returns a copy of t without artifact columns, and the names it removed.
func PruneArtifacts(t *types.Table) (*types.Table, []string) {
	return t.Drop(IsArtifact)
}
