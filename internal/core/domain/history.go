package domain

import "encoding/json"

// SourceDirectText marks history entries created from pasted text rather
// than an uploaded file.
const SourceDirectText = "Direct text input"

// HistoryEntry is one immutable record of a past processing event. IDs are
// strictly increasing in creation order, starting at 1, unique within a
// store. Entries are never updated or deleted.
type HistoryEntry struct {
	ID            int64           `json:"id"`
	InputType     Format          `json:"input_type"`
	Intent        string          `json:"intent"`
	ExtractedData json.RawMessage `json:"extracted_data"`
	Timestamp     string          `json:"timestamp"`
	SourceInfo    string          `json:"source_info"`
}
