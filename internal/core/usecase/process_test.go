package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/docintake/internal/core/domain"
)

type classifierFake struct {
	cls  domain.Classification
	last struct {
		content  string
		filename string
	}
}

func (f *classifierFake) Classify(content, filename string) domain.Classification {
	f.last.content = content
	f.last.filename = filename
	return f.cls
}

type agentFake struct {
	name    string
	calls   int
	lastRaw []byte
}

func (f *agentFake) Extract(content []byte) domain.Record {
	f.calls++
	f.lastRaw = append([]byte(nil), content...)
	return domain.TextRecord{
		Summary: domain.RecordSummary{Status: domain.StatusProcessed, DocumentType: f.name},
	}
}

type historyFake struct {
	appendErr error
	appended  []domain.HistoryEntry
	recentErr error
	lastLimit int
}

func (f *historyFake) Append(_ context.Context, inputType domain.Format, intent string, _ domain.Record, sourceInfo string) (domain.HistoryEntry, error) {
	if f.appendErr != nil {
		return domain.HistoryEntry{}, f.appendErr
	}
	entry := domain.HistoryEntry{
		ID:         int64(len(f.appended)) + 1,
		InputType:  inputType,
		Intent:     intent,
		SourceInfo: sourceInfo,
	}
	f.appended = append(f.appended, entry)
	return entry, nil
}

func (f *historyFake) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return []domain.HistoryEntry{}, nil
}

type publisherFake struct {
	err    error
	events []domain.ProcessedEvent
}

func (f *publisherFake) PublishDocumentProcessed(_ context.Context, evt domain.ProcessedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

type fixture struct {
	uc         *ProcessUseCase
	classifier *classifierFake
	jsonAgent  *agentFake
	emailAgent *agentFake
	pdfAgent   *agentFake
	textAgent  *agentFake
	history    *historyFake
	publisher  *publisherFake
}

func newFixture(cls domain.Classification) *fixture {
	f := &fixture{
		classifier: &classifierFake{cls: cls},
		jsonAgent:  &agentFake{name: "json"},
		emailAgent: &agentFake{name: "email"},
		pdfAgent:   &agentFake{name: "pdf"},
		textAgent:  &agentFake{name: "text"},
		history:    &historyFake{},
		publisher:  &publisherFake{},
	}
	f.uc = NewProcessUseCase(
		f.classifier,
		f.jsonAgent, f.emailAgent, f.pdfAgent, f.textAgent,
		f.history, f.publisher, 20,
	)
	return f
}

func TestProcessTextDispatchesByFormat(t *testing.T) {
	tests := []struct {
		format domain.Format
		agent  func(f *fixture) *agentFake
	}{
		{domain.FormatJSON, func(f *fixture) *agentFake { return f.jsonAgent }},
		{domain.FormatEmail, func(f *fixture) *agentFake { return f.emailAgent }},
		{domain.FormatText, func(f *fixture) *agentFake { return f.textAgent }},
	}
	for _, tt := range tests {
		f := newFixture(domain.Classification{Format: tt.format, Intent: "x", Confidence: domain.ConfidenceHigh})
		if _, err := f.uc.ProcessText(context.Background(), "content"); err != nil {
			t.Fatalf("ProcessText() error = %v", err)
		}
		if tt.agent(f).calls != 1 {
			t.Fatalf("format %s: expected matching agent call", tt.format)
		}
	}
}

func TestProcessTextRecordsDirectInputSource(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatText, Intent: domain.IntentUnknown})
	res, err := f.uc.ProcessText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if res.Entry.SourceInfo != domain.SourceDirectText {
		t.Fatalf("source info = %q", res.Entry.SourceInfo)
	}
	if f.classifier.last.filename != "" {
		t.Fatalf("text input must classify without a filename")
	}
}

func TestProcessFilePDFUsesPlaceholderContentAndRawBytes(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatPDF, Intent: domain.IntentDocument})
	raw := []byte{0x25, 0x50, 0x44, 0x46, 0xff, 0xfe}

	if _, err := f.uc.ProcessFile(context.Background(), "scan.pdf", raw); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if f.classifier.last.content != pdfClassifyPlaceholder {
		t.Fatalf("classifier saw %q", f.classifier.last.content)
	}
	if f.pdfAgent.calls != 1 {
		t.Fatalf("pdf agent not called")
	}
	if string(f.pdfAgent.lastRaw) != string(raw) {
		t.Fatalf("pdf agent must receive the raw bytes")
	}
}

func TestProcessFileRejectsInvalidEncoding(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatText})
	_, err := f.uc.ProcessFile(context.Background(), "data.bin", []byte{0xff, 0xfe, 0xfd})
	if err == nil {
		t.Fatalf("expected encoding error")
	}
	if !domain.IsKind(err, domain.ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
	if len(f.history.appended) != 0 {
		t.Fatalf("rejected upload must not reach history")
	}
}

func TestProcessAppendsHistoryAndPublishes(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatEmail, Intent: domain.IntentProcurement})
	res, err := f.uc.ProcessFile(context.Background(), "mail.txt", []byte("Subject: order"))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if len(f.history.appended) != 1 {
		t.Fatalf("history appends = %d", len(f.history.appended))
	}
	got := f.history.appended[0]
	if got.InputType != domain.FormatEmail || got.Intent != domain.IntentProcurement || got.SourceInfo != "mail.txt" {
		t.Fatalf("history entry = %+v", got)
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("published events = %d", len(f.publisher.events))
	}
	evt := f.publisher.events[0]
	if evt.EntryID != res.Entry.ID || evt.Format != domain.FormatEmail {
		t.Fatalf("event = %+v", evt)
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatText, Intent: domain.IntentUnknown})
	f.publisher.err = errors.New("queue down")

	if _, err := f.uc.ProcessText(context.Background(), "hello"); err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if len(f.history.appended) != 1 {
		t.Fatalf("history append missing")
	}
}

func TestProcessSurfacesHistoryAppendError(t *testing.T) {
	f := newFixture(domain.Classification{Format: domain.FormatText, Intent: domain.IntentUnknown})
	f.history.appendErr = errors.New("log full")

	if _, err := f.uc.ProcessText(context.Background(), "hello"); err == nil {
		t.Fatalf("expected append error to surface")
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("no event may be published when append fails")
	}
}

func TestRecentClampsLimit(t *testing.T) {
	f := newFixture(domain.Classification{})

	if _, err := f.uc.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if f.history.lastLimit != 20 {
		t.Fatalf("limit 0 should clamp to default, got %d", f.history.lastLimit)
	}

	if _, err := f.uc.Recent(context.Background(), 500); err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if f.history.lastLimit != 20 {
		t.Fatalf("limit above ceiling should clamp, got %d", f.history.lastLimit)
	}

	if _, err := f.uc.Recent(context.Background(), 5); err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if f.history.lastLimit != 5 {
		t.Fatalf("in-range limit should pass through, got %d", f.history.lastLimit)
	}
}
