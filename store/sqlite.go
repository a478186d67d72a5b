// Package store provides the SQLite-backed implementation of the
// golden thread data access layer.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/buildsafe/firecore/goldenthread"
)

// SQLite implements goldenthread.Store over a sqlite3 database.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// DB exposes the underlying connection for seeding and maintenance.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Project fetches one project scoped to an organization.
func (s *SQLite) Project(ctx context.Context, projectID, organizationID string) (*goldenthread.Project, error) {
	var p goldenthread.Project
	var buildingRef sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, organization_id, name, building_reference
		 FROM projects WHERE id = ? AND organization_id = ?`,
		projectID, organizationID,
	).Scan(&p.ID, &p.OrganizationID, &p.Name, &buildingRef)
	if err == sql.ErrNoRows {
		return nil, goldenthread.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	p.BuildingReference = buildingRef.String
	return &p, nil
}

// QuotesByProject returns the project's quotes with line items, newest
// first.
func (s *SQLite) QuotesByProject(ctx context.Context, projectID, organizationID string) ([]goldenthread.CompiledQuote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, number, COALESCE(client_name, ''), status, total, created_at
		 FROM quotes WHERE project_id = ? AND organization_id = ?
		 ORDER BY created_at DESC, id`,
		projectID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []goldenthread.CompiledQuote
	for rows.Next() {
		var q goldenthread.CompiledQuote
		if err := rows.Scan(&q.ID, &q.Number, &q.ClientName, &q.Status, &q.Total, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	for i := range quotes {
		items, err := s.lineItems(ctx, quotes[i].ID)
		if err != nil {
			return nil, err
		}
		quotes[i].LineItems = items
	}
	return quotes, nil
}

func (s *SQLite) lineItems(ctx context.Context, quoteID string) ([]goldenthread.QuoteLineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, COALESCE(product_id, ''), quantity, unit_price
		 FROM quote_line_items WHERE quote_id = ? ORDER BY position, id`,
		quoteID)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	var items []goldenthread.QuoteLineItem
	for rows.Next() {
		var item goldenthread.QuoteLineItem
		if err := rows.Scan(&item.ID, &item.Description, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ProductsByIDs batch-fetches products with manufacturer name,
// regulation links and files. Order follows ids; unknown ids are
// omitted.
func (s *SQLite) ProductsByIDs(ctx context.Context, ids []string) ([]goldenthread.CompiledProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT p.id, p.code, p.name, COALESCE(p.pillar, ''), COALESCE(m.name, ''),
		        p.specifications, p.certifications
		 FROM products p
		 LEFT JOIN manufacturers m ON m.id = p.manufacturer_id
		 WHERE p.id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]goldenthread.CompiledProduct)
	for rows.Next() {
		var p goldenthread.CompiledProduct
		var specsJSON, certsJSON string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Pillar, &p.Manufacturer, &specsJSON, &certsJSON); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if err := json.Unmarshal([]byte(specsJSON), &p.Specifications); err != nil {
			return nil, fmt.Errorf("decode specifications for %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(certsJSON), &p.Certifications); err != nil {
			return nil, fmt.Errorf("decode certifications for %s: %w", p.ID, err)
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	var products []goldenthread.CompiledProduct
	for _, id := range ids {
		p, found := byID[id]
		if !found {
			continue
		}
		if p.Regulations, err = s.productRegulations(ctx, id); err != nil {
			return nil, err
		}
		if p.Files, err = s.productFiles(ctx, id); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *SQLite) productRegulations(ctx context.Context, productID string) ([]goldenthread.RegulationLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.reference, r.name, COALESCE(r.category, ''),
		        COALESCE(pr.compliance_notes, ''), COALESCE(pr.test_evidence_ref, '')
		 FROM product_regulations pr
		 JOIN regulations r ON r.id = pr.regulation_id
		 WHERE pr.product_id = ? ORDER BY r.reference`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("query product regulations: %w", err)
	}
	defer rows.Close()

	var links []goldenthread.RegulationLink
	for rows.Next() {
		var link goldenthread.RegulationLink
		if err := rows.Scan(&link.RegulationID, &link.Reference, &link.Name,
			&link.Category, &link.ComplianceNotes, &link.TestEvidenceRef); err != nil {
			return nil, fmt.Errorf("scan regulation link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (s *SQLite) productFiles(ctx context.Context, productID string) ([]goldenthread.ProductFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, file_type, size_bytes
		 FROM product_files WHERE product_id = ? ORDER BY name`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("query product files: %w", err)
	}
	defer rows.Close()

	var files []goldenthread.ProductFile
	for rows.Next() {
		var f goldenthread.ProductFile
		if err := rows.Scan(&f.ID, &f.Name, &f.FileType, &f.SizeBytes); err != nil {
			return nil, fmt.Errorf("scan product file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// AuditTrail returns audit entries for the project, chronologically
// ascending.
func (s *SQLite) AuditTrail(ctx context.Context, projectID string) ([]goldenthread.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, package_reference, action, COALESCE(actor, ''), timestamp
		 FROM golden_thread_audit WHERE project_id = ? ORDER BY timestamp, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", err)
	}
	defer rows.Close()

	var entries []goldenthread.AuditEntry
	for rows.Next() {
		var e goldenthread.AuditEntry
		if err := rows.Scan(&e.ID, &e.PackageReference, &e.Action, &e.Actor, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordPackage persists a generated package and its audit entry in one
// transaction.
func (s *SQLite) RecordPackage(ctx context.Context, rec goldenthread.PackageRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO golden_thread_packages (id, project_id, organization_id, package_reference, score, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectID, rec.OrganizationID, rec.PackageReference, rec.Score, rec.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO golden_thread_audit (id, project_id, package_reference, action, actor, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID+"-audit", rec.ProjectID, rec.PackageReference, rec.Action, rec.Actor, rec.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
