package model

import (
	"strings"
	"time"
)

// DocumentType classifies a zoning document
type DocumentType string

const (
	DocTypeBestemmingsplan DocumentType = "Bestemmingsplan" // Binding municipal zoning plan (pre-Omgevingswet)
	DocTypeOmgevingsplan   DocumentType = "Omgevingsplan"   // Binding municipal environment plan (Omgevingswet)
	DocTypeOther           DocumentType = "Other"           // Anything else; excluded from analysis
)

// ParseDocumentType maps a raw type string onto a known document type
func ParseDocumentType(raw string) DocumentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bestemmingsplan":
		return DocTypeBestemmingsplan
	case "omgevingsplan":
		return DocTypeOmgevingsplan
	default:
		return DocTypeOther
	}
}

// Address identifies the plot under assessment
type Address struct {
	DisplayAddress string `json:"display_address"`
	Postcode       string `json:"postcode"`
	Municipality   string `json:"municipality"`
	Province       string `json:"province"`
	Country        string `json:"country"`
}

// Maatvoering is a dimensional rule attached to the plot (e.g. max bouwhoogte)
type Maatvoering struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ZoningMetadata carries the plot-level zoning designations
type ZoningMetadata struct {
	Bestemmingsvlakken []string      `json:"bestemmingsvlakken"`
	Maatvoeringen      []Maatvoering `json:"maatvoeringen,omitempty"`
}

// Document is one zoning document as loaded from a plan file.
// Immutable once loaded; consumed by a single address run.
type Document struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Text               string           `json:"text"`
	TemporaryParts     []map[string]any `json:"temporaryParts,omitempty"`
	RawType            string           `json:"document_type"`
	TypeDescription    string           `json:"document_type_description,omitempty"`
	EstablishedDate    string           `json:"established_date,omitempty"`
	Bestemmingsvlakken []string         `json:"bestemmingsvlakken,omitempty"`
}

// Type returns the parsed document type
func (d *Document) Type() DocumentType {
	return ParseDocumentType(d.RawType)
}

// EstablishedTime parses the established date. The source data mixes
// RFC 3339 timestamps and bare dates.
func (d *Document) EstablishedTime() (time.Time, bool) {
	raw := strings.TrimSpace(d.EstablishedDate)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(raw, "Z", "+00:00", 1)); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// PlanFile is one address worth of input: the address, its zoning documents
// and the plot metadata. Schema validation happens at the loading boundary.
type PlanFile struct {
	Address   Address        `json:"address"`
	Documents []Document     `json:"zoning_documents"`
	Metadata  ZoningMetadata `json:"zoning_metadata"`
}
