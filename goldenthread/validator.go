package goldenthread

import (
	"fmt"
	"math"
)

// Severity grades a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Section attributes a finding to a Building Safety Act section.
type Section string

const (
	SectionS88     Section = "s88"
	SectionS91     Section = "s91"
	SectionGeneral Section = "general"
)

// Warning codes emitted by Validate.
const (
	CodeNoQuotes           = "S88_NO_QUOTES"
	CodeNoProducts         = "S88_NO_PRODUCTS"
	CodeMissingSpecs       = "S88_MISSING_SPECS"
	CodeNoRegulations      = "S88_NO_REGULATIONS"
	CodePartialRegulations = "S88_PARTIAL_REGULATIONS"
	CodeNoCertification    = "S88_NO_CERTIFICATION"
	CodeNoFiles            = "S88_NO_FILES"
	CodeIncompleteChain    = "S91_INCOMPLETE_CHAIN"
	CodeNoBuildingRef      = "S91_NO_BUILDING_REF"
	CodeEmptyAuditTrail    = "S91_EMPTY_AUDIT_TRAIL"
)

// Warning is one validation finding.
type Warning struct {
	Severity Severity `json:"severity"`
	Section  Section  `json:"section"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// ValidationResult is the outcome of the fixed compliance checklist.
type ValidationResult struct {
	// Section88Compliant is true when no section 88 check failed at
	// error severity (design and installation records).
	Section88Compliant bool `json:"section_88_compliant"`

	// Section91Compliant is true when no section 91 check failed at
	// error severity (digital audit trail).
	Section91Compliant bool `json:"section_91_compliant"`

	// AuditTrailComplete is true when section 91 is compliant and the
	// full quote-product-regulation traceability chain exists.
	AuditTrailComplete bool `json:"audit_trail_complete"`

	// Score is passed checks over total checks, 0-100.
	Score int `json:"score"`

	Warnings []Warning `json:"warnings"`
}

// Validate runs the fixed battery of compliance checks against a
// compiled package. It is a pure function: the same input always
// yields the same score and warning set.
func Validate(data *GoldenThreadData) ValidationResult {
	var (
		warnings []Warning
		passed   int
		total    int
	)

	check := func(ok bool) bool {
		total++
		if ok {
			passed++
		}
		return ok
	}
	warn := func(severity Severity, section Section, code, message string) {
		warnings = append(warnings, Warning{
			Severity: severity,
			Section:  section,
			Code:     code,
			Message:  message,
		})
	}

	// Section 88: design and installation records.

	quotesOK := check(len(data.Quotes) > 0)
	if !quotesOK {
		warn(SeverityError, SectionS88, CodeNoQuotes, "No quotation records found for this project")
	}

	productsOK := check(len(data.Products) > 0)
	if !productsOK {
		warn(SeverityError, SectionS88, CodeNoProducts, "No products are referenced by any quotation")
	}

	if productsOK {
		missingSpecs := 0
		linked := 0
		hasCertification := false
		for _, p := range data.Products {
			if len(p.Specifications) == 0 {
				missingSpecs++
			}
			if len(p.Regulations) > 0 {
				linked++
			}
			if p.HasCertificationEvidence() {
				hasCertification = true
			}
		}

		if !check(missingSpecs == 0) {
			warn(SeverityWarning, SectionS88, CodeMissingSpecs,
				fmt.Sprintf("%d product(s) have no recorded specifications", missingSpecs))
		}

		if !check(linked > 0) {
			warn(SeverityError, SectionS88, CodeNoRegulations, "No product is linked to any regulation")
		} else if linked < len(data.Products) {
			warn(SeverityWarning, SectionS88, CodePartialRegulations,
				fmt.Sprintf("%d of %d products are linked to regulations", linked, len(data.Products)))
		}

		if !check(hasCertification) {
			warn(SeverityWarning, SectionS88, CodeNoCertification,
				"No product carries a certification or certificate file")
		}

		if !check(data.Metadata.TotalFiles > 0) {
			warn(SeverityWarning, SectionS88, CodeNoFiles, "No supporting files are attached to any product")
		}
	}

	// Section 91: digital audit trail.

	// Structured data is present by construction.
	check(true)

	chainOK := check(len(data.Quotes) > 0 && len(data.Products) > 0 && len(data.RegulationsSummary) > 0)
	if !chainOK {
		warn(SeverityWarning, SectionS91, CodeIncompleteChain,
			"Traceability chain is incomplete: quotes, products and regulations must all be present")
	}

	if !check(data.BuildingReference != "") {
		warn(SeverityInfo, SectionS91, CodeNoBuildingRef, "No building reference is recorded for this project")
	}

	// An empty trail is expected on first generation; noted, not failed.
	check(true)
	if len(data.AuditTrail) == 0 {
		warn(SeverityInfo, SectionS91, CodeEmptyAuditTrail,
			"Audit trail is empty; this is expected for a first generation")
	}

	result := ValidationResult{
		Score:    int(math.Round(100 * float64(passed) / float64(total))),
		Warnings: warnings,
	}
	result.Section88Compliant = !hasError(warnings, SectionS88)
	result.Section91Compliant = !hasError(warnings, SectionS91)
	result.AuditTrailComplete = result.Section91Compliant && chainOK

	return result
}

func hasError(warnings []Warning, section Section) bool {
	for _, w := range warnings {
		if w.Section == section && w.Severity == SeverityError {
			return true
		}
	}
	return false
}
