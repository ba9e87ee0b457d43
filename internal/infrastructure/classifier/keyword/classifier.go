// Package keyword classifies raw content into a format and a business
// intent using ordered keyword rule tables, evaluated top to bottom with
// first-match-wins semantics.
package keyword

import (
	"encoding/json"
	"strings"

	"github.com/kirillkom/docintake/internal/core/domain"
)

type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// intentRule maps a keyword set to the intent assigned when any keyword
// occurs in the (lowercased) haystack.
type intentRule struct {
	keywords []string
	intent   string
}

var pdfFilenameRules = []intentRule{
	{keywords: []string{"invoice", "bill", "payment"}, intent: domain.IntentBilling},
	{keywords: []string{"contract", "agreement"}, intent: domain.IntentLegal},
}

var emailMarkers = []string{"from:", "to:", "subject:", "dear", "sincerely", "regards"}

// Procurement outranks billing when an email matches both keyword sets.
var emailIntentRules = []intentRule{
	{keywords: []string{"order", "purchase", "buy", "quote"}, intent: domain.IntentProcurement},
	{keywords: []string{"invoice", "payment", "amount", "due"}, intent: domain.IntentBilling},
}

// Classify determines the format and intent of content. Decision order:
// PDF filename extension, then valid JSON, then email markers, then the
// TEXT fallback. It never fails; a JSON parse error simply falls through.
func (c *Classifier) Classify(content string, filename string) domain.Classification {
	if filename != "" && strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return domain.Classification{
			Format:     domain.FormatPDF,
			Intent:     firstMatch(pdfFilenameRules, strings.ToLower(filename), domain.IntentDocument),
			Confidence: domain.ConfidenceHigh,
		}
	}

	if json.Valid([]byte(content)) {
		return domain.Classification{
			Format:     domain.FormatJSON,
			Intent:     domain.IntentDataProcessing,
			Confidence: domain.ConfidenceHigh,
		}
	}

	lower := strings.ToLower(content)
	if containsAny(lower, emailMarkers) {
		return domain.Classification{
			Format:     domain.FormatEmail,
			Intent:     firstMatch(emailIntentRules, lower, domain.IntentCommunication),
			Confidence: domain.ConfidenceMedium,
		}
	}

	return domain.Classification{
		Format:     domain.FormatText,
		Intent:     domain.IntentUnknown,
		Confidence: domain.ConfidenceLow,
	}
}

func firstMatch(rules []intentRule, haystack, fallback string) string {
	for _, rule := range rules {
		if containsAny(haystack, rule.keywords) {
			return rule.intent
		}
	}
	return fallback
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
