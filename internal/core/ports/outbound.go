package ports

import (
	"context"

	"github.com/kirillkom/docintake/internal/core/domain"
)

// DocumentClassifier assigns a format, a business intent and a confidence to
// raw content. Total: every input receives a result, no error path.
type DocumentClassifier interface {
	Classify(content string, filename string) domain.Classification
}

// ExtractionAgent turns raw content into a structured summary record for one
// format. Agents are pure and total; the JSON agent's parse-failure shape is
// a return value, not an error.
type ExtractionAgent interface {
	Extract(content []byte) domain.Record
}

// HistoryStore is the append-only log of processing records.
type HistoryStore interface {
	Append(ctx context.Context, inputType domain.Format, intent string, rec domain.Record, sourceInfo string) (domain.HistoryEntry, error)
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}

// EventPublisher announces completed processing requests to interested
// observers. Publish failures must never fail the originating request.
type EventPublisher interface {
	PublishDocumentProcessed(ctx context.Context, evt domain.ProcessedEvent) error
}

// EventStream delivers processed-document events to a consumer until the
// context is cancelled.
type EventStream interface {
	SubscribeDocumentProcessed(ctx context.Context, handler func(context.Context, domain.ProcessedEvent) error) error
}
