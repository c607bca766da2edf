package model

// Decision is the permit-free verdict for one address
type Decision string

const (
	DecisionYes         Decision = "Yes"
	DecisionNo          Decision = "No"
	DecisionConditional Decision = "Conditional"
)

// Valid reports whether the decision is one of the three known values
func (d Decision) Valid() bool {
	switch d {
	case DecisionYes, DecisionNo, DecisionConditional:
		return true
	}
	return false
}

// Evidence is one citation in an assessment. Excerpts must come verbatim
// from the context handed to the reasoning call.
type Evidence struct {
	SourceDocument string `json:"source_document"`
	Article        string `json:"article,omitempty"`
	Excerpt        string `json:"excerpt"`
	Relevance      string `json:"relevance"`
}

// Assessment is the assessment for one address. Produced by the reasoning
// call; after that only the guardrail may touch it, and only to downgrade
// the decision and append risk flags.
type Assessment struct {
	PermitFree         Decision   `json:"permit_free"`
	Summary            string     `json:"summary"`
	CitedEvidence      []Evidence `json:"cited_evidence"`
	SuggestedChanges   string     `json:"suggested_changes,omitempty"`
	Assumptions        []string   `json:"assumptions,omitempty"`
	MissingInformation []string   `json:"missing_information,omitempty"`
	RiskFlags          []string   `json:"risk_flags,omitempty"`
}
