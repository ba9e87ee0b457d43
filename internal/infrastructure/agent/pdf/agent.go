// Package pdf reports structural metadata for PDF uploads: byte size, a
// base64 preview and the page count read from the document catalog. It
// never extracts text.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"time"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/kirillkom/docintake/internal/core/domain"
)

const (
	previewChars = 100

	// pagesPlaceholder is reported when the bytes do not parse as a PDF.
	pagesPlaceholder = "Preview Only"

	suggestedAction = "📄 Review Document"
)

type Agent struct{}

func New() *Agent {
	return &Agent{}
}

func (a *Agent) Extract(content []byte) domain.Record {
	if content == nil {
		return domain.NewFailureRecord("PDF processing error: invalid byte buffer")
	}

	var pages any = pagesPlaceholder
	if n, ok := pageCount(content); ok {
		pages = n
	}

	return domain.PDFRecord{
		Summary: domain.RecordSummary{
			Status:       domain.StatusProcessed,
			DocumentType: string(domain.FormatPDF),
			Timestamp:    time.Now().Format(domain.RecordTimeLayout),
			Size:         humanSize(len(content)),
		},
		Details: domain.PDFDetails{
			PreviewAvailable: true,
			ContentType:      "application/pdf",
			Base64Preview:    preview(base64.StdEncoding.EncodeToString(content)),
		},
		Metrics: domain.PDFMetrics{
			SizeBytes: len(content),
			Pages:     pages,
		},
		SuggestedAction: suggestedAction,
	}
}

// pageCount parses the PDF catalog for the page total. The reader panics
// on some malformed inputs, so the parse is recover-guarded; any failure
// falls back to the placeholder.
func pageCount(content []byte) (n int, ok bool) {
	defer func() {
		if recover() != nil {
			n, ok = 0, false
		}
	}()

	reader, err := pdfreader.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, false
	}
	total := reader.NumPage()
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// humanSize renders a byte count with binary-prefixed units, dividing by
// 1024 per step.
func humanSize(size int) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f TB", value)
}

func preview(s string) string {
	if len(s) > previewChars {
		s = s[:previewChars]
	}
	return s + "..."
}
