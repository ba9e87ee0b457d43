// Package text is the fallback agent for content no format-specific agent
// claims. It produces a preview-only record.
package text

import (
	"time"

	"github.com/kirillkom/docintake/internal/core/domain"
)

const previewChars = 200

type Agent struct{}

func New() *Agent {
	return &Agent{}
}

func (a *Agent) Extract(content []byte) domain.Record {
	return domain.TextRecord{
		Summary: domain.RecordSummary{
			Status:       domain.StatusProcessed,
			DocumentType: string(domain.FormatText),
			Timestamp:    time.Now().Format(domain.RecordTimeLayout),
		},
		Details: domain.TextDetails{
			ContentPreview: preview(string(content)),
		},
	}
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) > previewChars {
		runes = runes[:previewChars]
	}
	return string(runes) + "..."
}
