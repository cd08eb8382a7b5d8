// internal/model/decoded.go
package model

// DecodedToken is one matched (or stranded) chunk of an encoded identifier.
type DecodedToken struct {
	Raw   string `json:"raw"`
	Label string `json:"label"`
}

// DecodedBMID is the decoder output: a display string for the enriched
// context plus the structured signals the router consumes directly, so
// nothing downstream has to scrape rendered text.
type DecodedBMID struct {
	Dialect string         `json:"dialect"`
	Display string         `json:"display"`
	Tokens  []DecodedToken `json:"tokens"`

	// Stranded holds input chunks no dictionary entry matched.
	Stranded []string `json:"stranded,omitempty"`

	// EmployeeSize is the EE-size bracket ("<= 99", ">= 100", "Any")
	// parsed out of matched dictionary labels, empty when absent.
	EmployeeSize string `json:"employee_size,omitempty"`

	// IntegratedTags are integrated-marketing campaign tags parsed out of
	// matched dictionary labels.
	IntegratedTags []string `json:"integrated_tags,omitempty"`

	// CustomerKeywords are the existing-customer keywords found in the
	// identifier; non-empty means the customer override fired.
	CustomerKeywords []string `json:"customer_keywords,omitempty"`
}

// Recommendation is one outreach sequence a sales rep should apply.
type Recommendation struct {
	SequenceName string `json:"sequence_name"`
	SequenceURL  string `json:"sequence_url"`
}
