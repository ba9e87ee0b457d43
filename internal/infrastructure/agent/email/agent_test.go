package email

import (
	"strings"
	"testing"

	"github.com/kirillkom/docintake/internal/core/domain"
)

func extract(t *testing.T, content string) domain.EmailRecord {
	t.Helper()
	rec, ok := New().Extract([]byte(content)).(domain.EmailRecord)
	if !ok {
		t.Fatalf("expected EmailRecord, got %T", New().Extract([]byte(content)))
	}
	return rec
}

func TestExtractHeadersAndDefaults(t *testing.T) {
	rec := extract(t, "From: alice@example.com\nSubject: Greetings\n\nHello there")
	if rec.Summary.Sender != "alice@example.com" {
		t.Fatalf("sender = %q", rec.Summary.Sender)
	}
	if rec.Details.Subject != "Greetings" {
		t.Fatalf("subject = %q", rec.Details.Subject)
	}
	if rec.Summary.Status != domain.StatusProcessed {
		t.Fatalf("status = %q", rec.Summary.Status)
	}

	bare := extract(t, "Dear someone,\njust words")
	if bare.Summary.Sender != "Unknown" {
		t.Fatalf("default sender = %q", bare.Summary.Sender)
	}
	if bare.Details.Subject != "No Subject" {
		t.Fatalf("default subject = %q", bare.Details.Subject)
	}
}

func TestHeaderParsingStopsPermanently(t *testing.T) {
	// A colon in a body line must not be re-read as a header.
	rec := extract(t, "From: bob\nThis is the body\nSubject: not a header")
	if rec.Details.Subject != "No Subject" {
		t.Fatalf("subject = %q, colon line after body start leaked into headers", rec.Details.Subject)
	}
	if !strings.Contains(rec.Details.BodyPreview, "Subject: not a header") {
		t.Fatalf("body preview should keep the colon line, got %q", rec.Details.BodyPreview)
	}
}

func TestBlankLinesDoNotEndHeaders(t *testing.T) {
	rec := extract(t, "From: bob\n\nSubject: still a header\nbody starts here")
	if rec.Details.Subject != "still a header" {
		t.Fatalf("subject = %q", rec.Details.Subject)
	}
}

func TestUrgencyAndContactInfo(t *testing.T) {
	rec := extract(t, "From: c@d.com\nThis is urgent, call 555-123-4567 or mail help@vendor.io")
	if rec.Summary.Urgency != urgencyHigh {
		t.Fatalf("urgency = %q", rec.Summary.Urgency)
	}

	var hasPhone bool
	for _, c := range rec.Details.ContactInfo {
		if c == "555-123-4567" {
			hasPhone = true
		}
	}
	if !hasPhone {
		t.Fatalf("contact info missing phone: %v", rec.Details.ContactInfo)
	}

	// Phones come before emails regardless of position in the text.
	swapped := extract(t, "From: x\nmail help@vendor.io then call 555-123-4567")
	if swapped.Details.ContactInfo[0] != "555-123-4567" {
		t.Fatalf("expected phone first, got %v", swapped.Details.ContactInfo)
	}
}

func TestContactInfoPlaceholder(t *testing.T) {
	rec := extract(t, "Dear sir,\nnothing to reach me by")
	if len(rec.Details.ContactInfo) != 1 || rec.Details.ContactInfo[0] != noContactPlaceholder {
		t.Fatalf("contact info = %v", rec.Details.ContactInfo)
	}
}

func TestKeyRequestsBullets(t *testing.T) {
	rec := extract(t, "Subject: items\nplease send:\n- first widget\n• second widget\nno bullet line")
	want := []string{"first widget", "second widget"}
	if len(rec.Details.KeyRequests) != len(want) {
		t.Fatalf("key requests = %v", rec.Details.KeyRequests)
	}
	for i, w := range want {
		if rec.Details.KeyRequests[i] != w {
			t.Fatalf("key request %d = %q, want %q", i, rec.Details.KeyRequests[i], w)
		}
	}

	none := extract(t, "Dear sir,\nplain body")
	if none.Details.KeyRequests[0] != noItemsPlaceholder {
		t.Fatalf("placeholder missing: %v", none.Details.KeyRequests)
	}
}

func TestSubIntentPriority(t *testing.T) {
	tests := []struct {
		content string
		intent  string
	}{
		{"Subject: rfq\nplease quote this order", "REQUEST FOR QUOTE"},
		{"Subject: x\nwe want to purchase and also pay an invoice", "PURCHASE ORDER"},
		{"Subject: x\ninvoice payment overdue", "BILLING INQUIRY"},
		{"Subject: x\nwe have an issue, need support", "SUPPORT REQUEST"},
		{"Subject: x\nnothing special", "GENERAL INQUIRY"},
	}
	for _, tt := range tests {
		rec := extract(t, tt.content)
		if rec.Summary.Intent != tt.intent {
			t.Fatalf("content %q: intent = %q, want %q", tt.content, rec.Summary.Intent, tt.intent)
		}
	}
}

func TestSuggestedActionPriority(t *testing.T) {
	tests := []struct {
		content string
		action  string
	}{
		{"Subject: x\nquote please", "📋 Forward to Sales Team"},
		{"Subject: x\nprocess this order", "🛒 Process Purchase Order"},
		{"Subject: x\nneed help", "🔧 Create Support Ticket"},
		{"Subject: x\npayment attached", "💰 Forward to Accounting"},
		{"Subject: x\nhello", "📥 Review and Assign"},
	}
	for _, tt := range tests {
		rec := extract(t, tt.content)
		if rec.SuggestedAction != tt.action {
			t.Fatalf("content %q: action = %q, want %q", tt.content, rec.SuggestedAction, tt.action)
		}
	}
}

func TestBodyPreviewTruncation(t *testing.T) {
	long := "Dear sir,\n" + strings.Repeat("a", 500)
	rec := extract(t, long)
	if !strings.HasSuffix(rec.Details.BodyPreview, "...") {
		t.Fatalf("preview missing ellipsis: %q", rec.Details.BodyPreview)
	}
	if got := len([]rune(rec.Details.BodyPreview)); got != previewChars+3 {
		t.Fatalf("preview length = %d, want %d", got, previewChars+3)
	}
}
