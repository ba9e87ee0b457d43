// Package jsondata extracts a structured summary from JSON content: a
// document subtype derived from top-level keys, key metrics (monetary,
// status and date fields) and a structure report.
//
// Metric discovery follows the source object's own key order, so the
// top-level scan runs on the raw bytes with an order-preserving parser
// instead of a Go map.
package jsondata

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kirillkom/docintake/internal/core/domain"
)

// Document subtypes and their suggested actions.
const (
	docTypeInvoice  = "INVOICE"
	docTypePurchase = "PURCHASE ORDER"
	docTypeProduct  = "PRODUCT DATA"
	docTypeCustomer = "CUSTOMER DATA"
	docTypeGeneral  = "GENERAL DATA"
)

// docTypeRule matches when any of its keys is present among the lowercased
// top-level keys. Evaluated in order, first match wins.
type docTypeRule struct {
	keys    []string
	docType string
}

var docTypeRules = []docTypeRule{
	{keys: []string{"invoice", "bill", "payment"}, docType: docTypeInvoice},
	{keys: []string{"order", "purchase"}, docType: docTypePurchase},
	{keys: []string{"product", "item", "sku"}, docType: docTypeProduct},
	{keys: []string{"user", "customer", "client"}, docType: docTypeCustomer},
}

var suggestedActions = map[string]string{
	docTypeInvoice:  "💰 Process Payment",
	docTypePurchase: "📦 Fulfill Order",
	docTypeProduct:  "📝 Update Inventory",
	docTypeCustomer: "👤 Update CRM",
	docTypeGeneral:  "📋 Review Data",
}

var moneyTerms = []string{"total", "amount", "price", "cost"}
var dateTerms = []string{"date", "time", "created", "updated"}

// numberPrinter groups thousands the way the original formatted currency
// and byte counts.
var numberPrinter = message.NewPrinter(language.English)

type Agent struct{}

func New() *Agent {
	return &Agent{}
}

func (a *Agent) Extract(content []byte) domain.Record {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return domain.NewFailureRecord(fmt.Sprintf("Invalid JSON: %v", err))
	}

	keys := topLevelKeys(content, data)
	docType := determineDocType(keys)

	return domain.JSONRecord{
		Summary: domain.RecordSummary{
			Status:       domain.StatusProcessed,
			DocumentType: fmt.Sprintf("JSON (%s)", docType),
			Timestamp:    time.Now().Format(domain.RecordTimeLayout),
			Size:         numberPrinter.Sprintf("%d bytes", len(content)),
		},
		Structure:       structureOf(data, keys),
		Metrics:         extractMetrics(data, keys),
		SuggestedAction: suggestedActions[docType],
	}
}

// topLevelKeys returns the keys of a top-level object in source order, or
// nil for non-object values.
func topLevelKeys(content []byte, data any) []string {
	if _, ok := data.(map[string]any); !ok {
		return nil
	}
	var keys []string
	_ = jsonparser.ObjectEach(content, func(key []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	})
	return keys
}

func determineDocType(keys []string) string {
	lowered := make(map[string]bool, len(keys))
	for _, k := range keys {
		lowered[strings.ToLower(k)] = true
	}
	for _, rule := range docTypeRules {
		for _, k := range rule.keys {
			if lowered[k] {
				return rule.docType
			}
		}
	}
	return docTypeGeneral
}

func structureOf(data any, keys []string) domain.JSONStructure {
	keyFields := keys
	if keyFields == nil {
		keyFields = []string{}
	}
	switch v := data.(type) {
	case map[string]any:
		return domain.JSONStructure{TotalFields: len(v), DataType: "object", KeyFields: keyFields}
	case []any:
		return domain.JSONStructure{TotalFields: len(v), DataType: "array", KeyFields: keyFields}
	default:
		return domain.JSONStructure{TotalFields: 1, DataType: scalarTypeName(data), KeyFields: keyFields}
	}
}

func scalarTypeName(data any) string {
	switch data.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", data)
	}
}

// extractMetrics surfaces monetary values (in key order), then the first
// status key, then the first date-like key.
func extractMetrics(data any, keys []string) *orderedmap.OrderedMap[string, any] {
	metrics := orderedmap.New[string, any]()
	obj, ok := data.(map[string]any)
	if !ok {
		return metrics
	}

	for _, key := range keys {
		value, isNumber := obj[key].(float64)
		if isNumber && containsAnyTerm(key, moneyTerms) {
			metrics.Set(key, numberPrinter.Sprintf("$%.2f", value))
		}
	}

	for _, key := range keys {
		if strings.Contains(strings.ToLower(key), "status") {
			metrics.Set("Status", obj[key])
			break
		}
	}

	for _, key := range keys {
		if containsAnyTerm(key, dateTerms) {
			metrics.Set("Date", obj[key])
			break
		}
	}

	return metrics
}

func containsAnyTerm(key string, terms []string) bool {
	lower := strings.ToLower(key)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
