package models

// ExtractionResult is the document returned by the extraction service.
type ExtractionResult struct {
	// Tables holds the extracted tables in document order.
	Tables []Table `json:"tables"`
	// Warnings carries extractor messages for the user.
	Warnings []string `json:"warnings,omitempty"`
}
