package domain

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record status markers shared by every extraction agent.
const (
	StatusProcessed = "✅ PROCESSED SUCCESSFULLY"
	StatusFailed    = "❌ PROCESSING FAILED"
)

// RecordTimeLayout is the human-facing timestamp format stamped into
// extraction records. History entries use RFC 3339 instead.
const RecordTimeLayout = "2006-01-02 15:04:05"

// Record is the closed set of extraction results. The format vocabulary is
// fixed, so the variants are sealed: exactly one implementation per format
// tag plus the shared failure shape.
type Record interface {
	sealedRecord()
}

func (EmailRecord) sealedRecord()   {}
func (JSONRecord) sealedRecord()    {}
func (PDFRecord) sealedRecord()     {}
func (TextRecord) sealedRecord()    {}
func (FailureRecord) sealedRecord() {}

// EmailRecord is the email agent output.
type EmailRecord struct {
	Summary         EmailSummary `json:"summary"`
	Details         EmailDetails `json:"details"`
	SuggestedAction string       `json:"suggested_action"`
}

type EmailSummary struct {
	Status       string `json:"status"`
	DocumentType string `json:"document_type"`
	Intent       string `json:"intent"`
	Sender       string `json:"sender"`
	Urgency      string `json:"urgency"`
	Timestamp    string `json:"timestamp"`
}

type EmailDetails struct {
	Subject     string   `json:"subject"`
	KeyRequests []string `json:"key_requests"`
	ContactInfo []string `json:"contact_info"`
	BodyPreview string   `json:"body_preview"`
}

// JSONRecord is the JSON agent output. Metrics keep the discovery order of
// the source object's keys, so they live in an insertion-ordered map.
type JSONRecord struct {
	Summary         RecordSummary                       `json:"summary"`
	Structure       JSONStructure                       `json:"structure"`
	Metrics         *orderedmap.OrderedMap[string, any] `json:"metrics"`
	SuggestedAction string                              `json:"suggested_action"`
}

type RecordSummary struct {
	Status       string `json:"status"`
	DocumentType string `json:"document_type"`
	Timestamp    string `json:"timestamp"`
	Size         string `json:"size,omitempty"`
}

type JSONStructure struct {
	TotalFields int      `json:"total_fields"`
	DataType    string   `json:"data_type"`
	KeyFields   []string `json:"key_fields"`
}

// PDFRecord is the PDF agent output. No text extraction happens here, only
// structural metadata over the raw bytes.
type PDFRecord struct {
	Summary         RecordSummary `json:"summary"`
	Details         PDFDetails    `json:"details"`
	Metrics         PDFMetrics    `json:"metrics"`
	SuggestedAction string        `json:"suggested_action"`
}

type PDFDetails struct {
	PreviewAvailable bool   `json:"preview_available"`
	ContentType      string `json:"content_type"`
	Base64Preview    string `json:"base64_preview"`
}

type PDFMetrics struct {
	SizeBytes int `json:"size_bytes"`
	// Pages is the parsed page count, or a placeholder string when the
	// bytes do not parse as a PDF.
	Pages any `json:"pages"`
}

// TextRecord is the fallback for content no other agent claims.
type TextRecord struct {
	Summary RecordSummary `json:"summary"`
	Details TextDetails   `json:"details"`
}

type TextDetails struct {
	ContentPreview string `json:"content_preview"`
}

// FailureRecord is the degraded shape returned when extraction itself fails,
// currently only for malformed JSON reaching the JSON agent.
type FailureRecord struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// NewFailureRecord stamps a failure shape with the current time.
func NewFailureRecord(message string) FailureRecord {
	return FailureRecord{
		Status:    StatusFailed,
		Error:     message,
		Timestamp: time.Now().Format(RecordTimeLayout),
	}
}
