package goldenthread

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// CompileRequest identifies the project to compile and the reference
// the generated package is filed under.
type CompileRequest struct {
	ProjectID        string
	OrganizationID   string
	PackageReference string

	// BuildingReference optionally overrides the project's stored
	// building reference.
	BuildingReference string
}

// Compiler aggregates a project's records into one GoldenThreadData.
// It only reads; any fetch error aborts the whole compile.
type Compiler struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithClock sets the time source for GeneratedAt.
func WithClock(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		c.now = now
	}
}

// NewCompiler creates a compiler over the given store.
func NewCompiler(store Store, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile assembles the full golden-thread data model for a project.
// The result is never partial: the first fetch error fails the whole
// compile.
func (c *Compiler) Compile(ctx context.Context, req CompileRequest) (*GoldenThreadData, error) {
	project, err := c.store.Project(ctx, req.ProjectID, req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("fetch project %s: %w", req.ProjectID, err)
	}

	quotes, err := c.store.QuotesByProject(ctx, req.ProjectID, req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}

	products, err := c.store.ProductsByIDs(ctx, distinctProductIDs(quotes))
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	auditTrail, err := c.store.AuditTrail(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch audit trail: %w", err)
	}

	buildingRef := req.BuildingReference
	if buildingRef == "" {
		buildingRef = project.BuildingReference
	}

	totalFiles := 0
	for _, p := range products {
		totalFiles += len(p.Files)
	}

	summary := summarizeRegulations(products)

	data := &GoldenThreadData{
		ProjectID:          project.ID,
		ProjectName:        project.Name,
		OrganizationID:     req.OrganizationID,
		PackageReference:   req.PackageReference,
		BuildingReference:  buildingRef,
		GeneratedAt:        c.now(),
		Quotes:             quotes,
		Products:           products,
		RegulationsSummary: summary,
		AuditTrail:         auditTrail,
		Metadata: Metadata{
			QuoteCount:      len(quotes),
			ProductCount:    len(products),
			RegulationCount: len(summary),
			TotalFiles:      totalFiles,
		},
	}

	c.logger.Debug("Golden thread compiled",
		"project_id", project.ID,
		"quotes", len(quotes),
		"products", len(products),
		"regulations", len(summary),
		"audit_entries", len(auditTrail))

	return data, nil
}

// distinctProductIDs collects the distinct non-empty product ids
// referenced across all quote line items, in first-seen order.
func distinctProductIDs(quotes []CompiledQuote) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range quotes {
		for _, item := range q.LineItems {
			if item.ProductID == "" || seen[item.ProductID] {
				continue
			}
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// summarizeRegulations deduplicates regulation links across products:
// one entry per distinct regulation, counting the distinct products
// that cite it. The first occurrence records name, reference and
// category.
func summarizeRegulations(products []CompiledProduct) []RegulationSummary {
	byID := make(map[string]int)
	var summary []RegulationSummary

	for _, p := range products {
		countedForProduct := make(map[string]bool)
		for _, link := range p.Regulations {
			if countedForProduct[link.RegulationID] {
				continue
			}
			countedForProduct[link.RegulationID] = true

			if i, found := byID[link.RegulationID]; found {
				summary[i].ProductCount++
				continue
			}
			byID[link.RegulationID] = len(summary)
			summary = append(summary, RegulationSummary{
				RegulationID: link.RegulationID,
				Reference:    link.Reference,
				Name:         link.Name,
				Category:     link.Category,
				ProductCount: 1,
			})
		}
	}

	return summary
}
