// Package goldenthread assembles, validates and exports the Golden
// Thread compliance package for a project: every quote, product,
// regulation link, file and audit record cross-referenced into one
// normalized data model.
package goldenthread

import "time"

// Project is the minimal project identity the compiler works from.
type Project struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`

	// BuildingReference is the HRB or UPRN reference, when recorded.
	BuildingReference string `json:"building_reference,omitempty"`
}

// QuoteLineItem is one line of a quote. ProductID is empty for
// free-text lines that do not reference a catalog product.
type QuoteLineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	ProductID   string  `json:"product_id,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CompiledQuote is one quote with its line items.
type CompiledQuote struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	ClientName string          `json:"client_name"`
	Status     string          `json:"status"`
	Total      float64         `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	LineItems  []QuoteLineItem `json:"line_items"`
}

// RegulationLink joins a product to a regulation, with any compliance
// evidence recorded on the link itself.
type RegulationLink struct {
	RegulationID    string `json:"regulation_id"`
	Reference       string `json:"reference"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	ComplianceNotes string `json:"compliance_notes,omitempty"`
	TestEvidenceRef string `json:"test_evidence_ref,omitempty"`
}

// ProductFile is a document attached to a product.
type ProductFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FileType  string `json:"file_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// FileTypeCertificate marks files that count as certification evidence.
const FileTypeCertificate = "certificate"

// CompiledProduct is one product with its full compliance context.
type CompiledProduct struct {
	ID             string            `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Pillar         string            `json:"pillar"`
	Manufacturer   string            `json:"manufacturer"`
	Specifications map[string]string `json:"specifications"`
	Certifications []string          `json:"certifications"`
	Regulations    []RegulationLink  `json:"regulations"`
	Files          []ProductFile     `json:"files"`
}

// HasCertificationEvidence reports whether the product carries a
// certification or an attached certificate-type file.
func (p CompiledProduct) HasCertificationEvidence() bool {
	if len(p.Certifications) > 0 {
		return true
	}
	for _, f := range p.Files {
		if f.FileType == FileTypeCertificate {
			return true
		}
	}
	return false
}

// RegulationSummary is one deduplicated regulation across all products.
type RegulationSummary struct {
	RegulationID string `json:"regulation_id"`
	Reference    string `json:"reference"`
	Name         string `json:"name"`
	Category     string `json:"category"`

	// ProductCount is the number of distinct products citing this
	// regulation.
	ProductCount int `json:"product_count"`
}

// AuditEntry is one chronological record from a prior package
// generation.
type AuditEntry struct {
	ID               string    `json:"id"`
	PackageReference string    `json:"package_reference"`
	Action           string    `json:"action"`
	Actor            string    `json:"actor,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Metadata holds aggregate counts over the compiled package.
type Metadata struct {
	QuoteCount      int `json:"quote_count"`
	ProductCount    int `json:"product_count"`
	RegulationCount int `json:"regulation_count"`
	TotalFiles      int `json:"total_files"`
}

// GoldenThreadData is the compiled package: transient, rebuilt on
// every compile, never persisted as-is.
type GoldenThreadData struct {
	ProjectID         string    `json:"project_id"`
	ProjectName       string    `json:"project_name"`
	OrganizationID    string    `json:"organization_id"`
	PackageReference  string    `json:"package_reference"`
	BuildingReference string    `json:"building_reference,omitempty"`
	GeneratedAt       time.Time `json:"generated_at"`

	Quotes             []CompiledQuote     `json:"quotes"`
	Products           []CompiledProduct   `json:"products"`
	RegulationsSummary []RegulationSummary `json:"regulations_summary"`
	AuditTrail         []AuditEntry        `json:"audit_trail"`
	Metadata           Metadata            `json:"metadata"`
}
