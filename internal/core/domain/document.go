package domain

// Format is the top-level content kind assigned by the classifier.
type Format string

const (
	FormatJSON  Format = "JSON"
	FormatEmail Format = "EMAIL"
	FormatPDF   Format = "PDF"
	FormatText  Format = "TEXT"
)

// Confidence expresses how certain the classifier is about a format decision.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the classifier verdict for one input. Produced once per
// input, never mutated afterwards.
type Classification struct {
	Format     Format     `json:"format"`
	Intent     string     `json:"intent"`
	Confidence Confidence `json:"confidence"`
}

// Intent vocabulary of the outer classification pass. The email agent keeps
// its own, independent sub-intent vocabulary layered on top of this one.
const (
	IntentDocument       = "document"
	IntentBilling        = "billing"
	IntentLegal          = "legal"
	IntentDataProcessing = "data_processing"
	IntentCommunication  = "communication"
	IntentProcurement    = "procurement"
	IntentUnknown        = "unknown"
)
