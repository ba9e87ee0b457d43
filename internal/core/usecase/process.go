package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kirillkom/docintake/internal/core/domain"
	"github.com/kirillkom/docintake/internal/core/ports"
)

// pdfClassifyPlaceholder stands in for binary upload content when the
// classifier runs; the PDF decision is made on the filename alone.
const pdfClassifyPlaceholder = "Binary PDF content"

// ProcessUseCase is the routing step: classify, dispatch to the matching
// extraction agent, append to history, announce the result.
type ProcessUseCase struct {
	classifier ports.DocumentClassifier
	jsonAgent  ports.ExtractionAgent
	emailAgent ports.ExtractionAgent
	pdfAgent   ports.ExtractionAgent
	textAgent  ports.ExtractionAgent
	history    ports.HistoryStore
	events     ports.EventPublisher

	historyLimit int
}

func NewProcessUseCase(
	classifier ports.DocumentClassifier,
	jsonAgent, emailAgent, pdfAgent, textAgent ports.ExtractionAgent,
	history ports.HistoryStore,
	events ports.EventPublisher,
	historyLimit int,
) *ProcessUseCase {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &ProcessUseCase{
		classifier:   classifier,
		jsonAgent:    jsonAgent,
		emailAgent:   emailAgent,
		pdfAgent:     pdfAgent,
		textAgent:    textAgent,
		history:      history,
		events:       events,
		historyLimit: historyLimit,
	}
}

// ProcessFile runs the pipeline for an uploaded file. Non-PDF uploads must
// decode as UTF-8; PDF uploads are classified on the filename and handed to
// the PDF agent as raw bytes.
func (uc *ProcessUseCase) ProcessFile(ctx context.Context, filename string, content []byte) (*ports.ProcessResult, error) {
	classifyInput := string(content)
	if isPDFFilename(filename) {
		classifyInput = pdfClassifyPlaceholder
	} else if !utf8.Valid(content) {
		return nil, domain.WrapError(domain.ErrUnsupportedEncoding, "decode upload", fmt.Errorf("file %q is not valid utf-8", filename))
	}

	cls := uc.classifier.Classify(classifyInput, filename)
	return uc.finish(ctx, cls, content, filename)
}

// ProcessText runs the pipeline for pasted text. Without a filename the
// classifier never yields PDF, so text input cannot reach the PDF agent.
func (uc *ProcessUseCase) ProcessText(ctx context.Context, content string) (*ports.ProcessResult, error) {
	cls := uc.classifier.Classify(content, "")
	return uc.finish(ctx, cls, []byte(content), domain.SourceDirectText)
}

// Recent serves the history listing, clamping the limit to the configured
// ceiling.
func (uc *ProcessUseCase) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > uc.historyLimit {
		limit = uc.historyLimit
	}
	entries, err := uc.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

func (uc *ProcessUseCase) finish(ctx context.Context, cls domain.Classification, content []byte, sourceInfo string) (*ports.ProcessResult, error) {
	rec := uc.dispatch(cls.Format, content)

	entry, err := uc.history.Append(ctx, cls.Format, cls.Intent, rec, sourceInfo)
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	uc.announce(ctx, cls, entry)

	return &ports.ProcessResult{
		Classification: cls,
		Record:         rec,
		Entry:          entry,
	}, nil
}

// dispatch routes by format tag. The format set is closed; anything not
// claimed by a specific agent falls through to the text agent.
func (uc *ProcessUseCase) dispatch(format domain.Format, content []byte) domain.Record {
	switch format {
	case domain.FormatJSON:
		return uc.jsonAgent.Extract(content)
	case domain.FormatEmail:
		return uc.emailAgent.Extract(content)
	case domain.FormatPDF:
		return uc.pdfAgent.Extract(content)
	default:
		return uc.textAgent.Extract(content)
	}
}

// announce publishes the processed event best-effort: a queue outage must
// not fail the originating request.
func (uc *ProcessUseCase) announce(ctx context.Context, cls domain.Classification, entry domain.HistoryEntry) {
	evt := domain.ProcessedEvent{
		EntryID:    entry.ID,
		Format:     cls.Format,
		Intent:     cls.Intent,
		SourceInfo: entry.SourceInfo,
		Timestamp:  time.Now().UTC(),
	}
	if err := uc.events.PublishDocumentProcessed(ctx, evt); err != nil {
		slog.Warn("processed_event_publish_failed", "entry_id", entry.ID, "error", err)
	}
}

func isPDFFilename(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
