package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsafe/firecore/goldenthread"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *SQLite) {
	t.Helper()
	db := s.DB()

	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO projects (id, organization_id, name, building_reference) VALUES (?, ?, ?, ?)`,
			[]any{"proj-1", "org-1", "Harbour Point", "HRB-0042"}},
		{`INSERT INTO manufacturers (id, name) VALUES (?, ?)`,
			[]any{"m1", "Acme Doors"}},
		{`INSERT INTO products (id, code, name, pillar, manufacturer_id, specifications, certifications) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]any{"p1", "FD30-S", "FD30 Fire Door", "passive", "m1", `{"fire_rating":"30 min"}`, `["Certifire CF123"]`}},
		{`INSERT INTO products (id, code, name, pillar) VALUES (?, ?, ?, ?)`,
			[]any{"p2", "SD-1", "Smoke Detector", "detection"}},
		{`INSERT INTO regulations (id, reference, name, category) VALUES (?, ?, ?, ?)`,
			[]any{"r1", "BS EN 1634-1", "Fire resistance tests", "testing"}},
		{`INSERT INTO product_regulations (product_id, regulation_id, compliance_notes) VALUES (?, ?, ?)`,
			[]any{"p1", "r1", "Tested to 34 minutes"}},
		{`INSERT INTO product_files (id, product_id, name, file_type, size_bytes) VALUES (?, ?, ?, ?, ?)`,
			[]any{"f1", "p1", "cert.pdf", "certificate", 20480}},
		{`INSERT INTO quotes (id, project_id, organization_id, number, client_name, status, total, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"q1", "proj-1", "org-1", "Q-100", "Harbour Point Ltd", "accepted", 9600.0, "2026-01-10 10:00:00"}},
		{`INSERT INTO quotes (id, project_id, organization_id, number, status, total, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]any{"q2", "proj-1", "org-1", "Q-101", "draft", 2800.0, "2026-02-01 10:00:00"}},
		{`INSERT INTO quote_line_items (id, quote_id, description, product_id, quantity, unit_price, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]any{"li1", "q1", "Fire door FD30", "p1", 12, 800, 0}},
		{`INSERT INTO quote_line_items (id, quote_id, description, quantity, unit_price, position) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"li2", "q1", "Labour", 8, 0, 1}},
		{`INSERT INTO quote_line_items (id, quote_id, description, product_id, quantity, unit_price, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]any{"li3", "q2", "Smoke detector", "p2", 40, 70, 0}},
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt.sql, stmt.args...)
		require.NoError(t, err)
	}
}

func TestProject(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	p, err := s.Project(context.Background(), "proj-1", "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Harbour Point", p.Name)
	assert.Equal(t, "HRB-0042", p.BuildingReference)
}

func TestProject_NotFound(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	_, err := s.Project(context.Background(), "proj-1", "other-org")
	assert.True(t, errors.Is(err, goldenthread.ErrProjectNotFound))

	_, err = s.Project(context.Background(), "nope", "org-1")
	assert.True(t, errors.Is(err, goldenthread.ErrProjectNotFound))
}

func TestQuotesByProject(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	quotes, err := s.QuotesByProject(context.Background(), "proj-1", "org-1")
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	// Newest first.
	assert.Equal(t, "Q-101", quotes[0].Number)
	assert.Equal(t, "Q-100", quotes[1].Number)

	require.Len(t, quotes[1].LineItems, 2)
	assert.Equal(t, "Fire door FD30", quotes[1].LineItems[0].Description)
	assert.Equal(t, "p1", quotes[1].LineItems[0].ProductID)
	assert.Empty(t, quotes[1].LineItems[1].ProductID)
}

func TestProductsByIDs(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	products, err := s.ProductsByIDs(context.Background(), []string{"p2", "p1", "missing"})
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Order follows the requested ids; unknown ids are omitted.
	assert.Equal(t, "p2", products[0].ID)
	assert.Equal(t, "p1", products[1].ID)

	door := products[1]
	assert.Equal(t, "Acme Doors", door.Manufacturer)
	assert.Equal(t, map[string]string{"fire_rating": "30 min"}, door.Specifications)
	assert.Equal(t, []string{"Certifire CF123"}, door.Certifications)
	require.Len(t, door.Regulations, 1)
	assert.Equal(t, "BS EN 1634-1", door.Regulations[0].Reference)
	assert.Equal(t, "Tested to 34 minutes", door.Regulations[0].ComplianceNotes)
	require.Len(t, door.Files, 1)
	assert.Equal(t, "certificate", door.Files[0].FileType)
}

func TestProductsByIDs_Empty(t *testing.T) {
	s := openTestStore(t)

	products, err := s.ProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRecordPackageAndAuditTrail(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	ctx := context.Background()
	trail, err := s.AuditTrail(ctx, "proj-1")
	require.NoError(t, err)
	assert.Empty(t, trail)

	first := goldenthread.PackageRecord{
		ID: "pkg-1", ProjectID: "proj-1", OrganizationID: "org-1",
		PackageReference: "GT-2026-001", Score: 85,
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Action:      "generated", Actor: "j.carver",
	}
	require.NoError(t, s.RecordPackage(ctx, first))

	second := first
	second.ID = "pkg-2"
	second.PackageReference = "GT-2026-002"
	second.GeneratedAt = first.GeneratedAt.Add(48 * time.Hour)
	require.NoError(t, s.RecordPackage(ctx, second))

	trail, err = s.AuditTrail(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "GT-2026-001", trail[0].PackageReference)
	assert.Equal(t, "GT-2026-002", trail[1].PackageReference)
	assert.Equal(t, "j.carver", trail[0].Actor)
}

func TestCompileAgainstSQLite(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	c := goldenthread.NewCompiler(s)
	data, err := c.Compile(context.Background(), goldenthread.CompileRequest{
		ProjectID:        "proj-1",
		OrganizationID:   "org-1",
		PackageReference: "GT-2026-001",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, data.Metadata.QuoteCount)
	assert.Equal(t, 2, data.Metadata.ProductCount)
	assert.Equal(t, 1, data.Metadata.RegulationCount)
	assert.Equal(t, 1, data.Metadata.TotalFiles)
}
