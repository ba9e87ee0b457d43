// Package email extracts a structured summary from email-like content: a
// contiguous header block, body lines, contact details and a business
// sub-intent independent of the outer classification intent.
package email

import (
	"regexp"
	"strings"
	"time"

	"github.com/kirillkom/docintake/internal/core/domain"
)

const (
	previewChars = 200

	urgencyHigh   = "HIGH"
	urgencyNormal = "NORMAL"

	noContactPlaceholder = "No contact information found"
	noItemsPlaceholder   = "No specific items listed"
)

var (
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

var urgentKeywords = []string{"urgent", "asap", "emergency", "immediate", "priority"}

type keywordRule struct {
	keywords []string
	value    string
}

// Sub-intent and action tables are evaluated top to bottom, first match wins.
var intentRules = []keywordRule{
	{keywords: []string{"quote", "price", "cost", "rfq"}, value: "REQUEST FOR QUOTE"},
	{keywords: []string{"order", "purchase", "buy"}, value: "PURCHASE ORDER"},
	{keywords: []string{"invoice", "payment", "bill"}, value: "BILLING INQUIRY"},
	{keywords: []string{"support", "help", "issue"}, value: "SUPPORT REQUEST"},
}

const intentFallback = "GENERAL INQUIRY"

var actionRules = []keywordRule{
	{keywords: []string{"quote", "price"}, value: "📋 Forward to Sales Team"},
	{keywords: []string{"order", "purchase"}, value: "🛒 Process Purchase Order"},
	{keywords: []string{"support", "help"}, value: "🔧 Create Support Ticket"},
	{keywords: []string{"invoice", "payment"}, value: "💰 Forward to Accounting"},
}

const actionFallback = "📥 Review and Assign"

type Agent struct{}

func New() *Agent {
	return &Agent{}
}

func (a *Agent) Extract(content []byte) domain.Record {
	text := string(content)
	headers, bodyLines := splitHeadersAndBody(text)
	lower := strings.ToLower(text)

	urgency := urgencyNormal
	if containsAny(lower, urgentKeywords) {
		urgency = urgencyHigh
	}

	sender := headers["from"]
	if sender == "" {
		sender = "Unknown"
	}
	subject := headers["subject"]
	if subject == "" {
		subject = "No Subject"
	}

	return domain.EmailRecord{
		Summary: domain.EmailSummary{
			Status:       domain.StatusProcessed,
			DocumentType: string(domain.FormatEmail),
			Intent:       firstRuleMatch(intentRules, lower, intentFallback),
			Sender:       sender,
			Urgency:      urgency,
			Timestamp:    time.Now().Format(domain.RecordTimeLayout),
		},
		Details: domain.EmailDetails{
			Subject:     subject,
			KeyRequests: keyRequests(bodyLines),
			ContactInfo: contactInfo(text),
			BodyPreview: preview(strings.Join(bodyLines, " ")),
		},
		SuggestedAction: firstRuleMatch(actionRules, lower, actionFallback),
	}
}

// splitHeadersAndBody treats leading "key: value" lines as a single
// contiguous header block. The first non-header line ends the block for
// good: a later body line containing a colon does not resume header
// parsing. Blank lines are skipped entirely and terminate nothing.
func splitHeadersAndBody(text string) (map[string]string, []string) {
	headers := make(map[string]string)
	var bodyLines []string
	inHeaders := true

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if inHeaders && line != "" {
			if key, value, ok := strings.Cut(line, ":"); ok {
				headers[strings.ToLower(key)] = strings.TrimSpace(value)
			} else {
				inHeaders = false
			}
		}
		if !inHeaders && line != "" {
			bodyLines = append(bodyLines, line)
		}
	}
	return headers, bodyLines
}

// contactInfo collects phone numbers first, then email addresses, each
// group in order of appearance.
func contactInfo(text string) []string {
	var contacts []string
	contacts = append(contacts, phonePattern.FindAllString(text, -1)...)
	contacts = append(contacts, emailPattern.FindAllString(text, -1)...)
	if len(contacts) == 0 {
		return []string{noContactPlaceholder}
	}
	return contacts
}

func keyRequests(bodyLines []string) []string {
	var items []string
	for _, line := range bodyLines {
		for _, marker := range []string{"-", "•"} {
			if strings.HasPrefix(line, marker) {
				items = append(items, strings.TrimSpace(strings.TrimPrefix(line, marker)))
				break
			}
		}
	}
	if len(items) == 0 {
		return []string{noItemsPlaceholder}
	}
	return items
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) > previewChars {
		runes = runes[:previewChars]
	}
	return string(runes) + "..."
}

func firstRuleMatch(rules []keywordRule, haystack, fallback string) string {
	for _, rule := range rules {
		if containsAny(haystack, rule.keywords) {
			return rule.value
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
