package ports

import (
	"context"

	"github.com/kirillkom/docintake/internal/core/domain"
)

// ProcessResult is what one processing request hands back to the boundary:
// the classifier verdict plus the routed agent's record and the history
// entry created for it.
type ProcessResult struct {
	Classification domain.Classification
	Record         domain.Record
	Entry          domain.HistoryEntry
}

// DocumentProcessor is the inbound contract for the classify-route-store
// pipeline.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, filename string, content []byte) (*ProcessResult, error)
	ProcessText(ctx context.Context, content string) (*ProcessResult, error)
}

// HistoryReader is the inbound read model for the processing log.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
