package goldenthread

import (
	"context"
	"errors"
	"time"
)

// ErrProjectNotFound is returned when the requested project does not
// exist for the organization.
var ErrProjectNotFound = errors.New("project not found")

// Store is the read side the compiler depends on, plus the single
// write used to record a generated package so the audit trail grows
// across generations.
type Store interface {
	// Project fetches one project scoped to an organization. Returns
	// ErrProjectNotFound when absent.
	Project(ctx context.Context, projectID, organizationID string) (*Project, error)

	// QuotesByProject returns the project's quotes with their line
	// items, newest first.
	QuotesByProject(ctx context.Context, projectID, organizationID string) ([]CompiledQuote, error)

	// ProductsByIDs batch-fetches products with manufacturer name,
	// regulation links and attached files. Order follows ids; unknown
	// ids are omitted.
	ProductsByIDs(ctx context.Context, ids []string) ([]CompiledProduct, error)

	// AuditTrail returns audit entries from prior package generations
	// for the project, chronologically ascending. Empty on first
	// generation.
	AuditTrail(ctx context.Context, projectID string) ([]AuditEntry, error)

	// RecordPackage persists a generated package and its audit entry.
	RecordPackage(ctx context.Context, rec PackageRecord) error
}

// PackageRecord is the persisted trace of one package generation.
type PackageRecord struct {
	ID               string
	ProjectID        string
	OrganizationID   string
	PackageReference string
	Score            int
	GeneratedAt      time.Time

	// Action describes the generation event for the audit trail.
	Action string

	// Actor is who triggered the generation.
	Actor string
}
