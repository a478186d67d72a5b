package goldenthread

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for compiler tests.
type fakeStore struct {
	project    *Project
	projectErr error
	quotes     []CompiledQuote
	quotesErr  error
	products   map[string]CompiledProduct
	audit      []AuditEntry
	auditErr   error

	requestedProductIDs []string
	recorded            []PackageRecord
}

func (s *fakeStore) Project(ctx context.Context, projectID, organizationID string) (*Project, error) {
	if s.projectErr != nil {
		return nil, s.projectErr
	}
	return s.project, nil
}

func (s *fakeStore) QuotesByProject(ctx context.Context, projectID, organizationID string) ([]CompiledQuote, error) {
	if s.quotesErr != nil {
		return nil, s.quotesErr
	}
	return s.quotes, nil
}

func (s *fakeStore) ProductsByIDs(ctx context.Context, ids []string) ([]CompiledProduct, error) {
	s.requestedProductIDs = ids
	var out []CompiledProduct
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) AuditTrail(ctx context.Context, projectID string) ([]AuditEntry, error) {
	if s.auditErr != nil {
		return nil, s.auditErr
	}
	return s.audit, nil
}

func (s *fakeStore) RecordPackage(ctx context.Context, rec PackageRecord) error {
	s.recorded = append(s.recorded, rec)
	return nil
}

func testStore() *fakeStore {
	return &fakeStore{
		project: &Project{ID: "proj-1", OrganizationID: "org-1", Name: "Harbour Point", BuildingReference: "HRB-0042"},
		quotes: []CompiledQuote{
			{ID: "q1", Number: "Q-100", LineItems: []QuoteLineItem{
				{ID: "li1", ProductID: "p1", Quantity: 2},
				{ID: "li2", ProductID: "p2", Quantity: 1},
				{ID: "li3", Description: "Labour", Quantity: 8},
			}},
			{ID: "q2", Number: "Q-101", LineItems: []QuoteLineItem{
				{ID: "li4", ProductID: "p1", Quantity: 5},
			}},
		},
		products: map[string]CompiledProduct{
			"p1": {ID: "p1", Name: "FD30 Fire Door",
				Files: []ProductFile{{ID: "f1", FileType: FileTypeCertificate}, {ID: "f2", FileType: "datasheet"}},
				Regulations: []RegulationLink{
					{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests", Category: "testing"},
				}},
			"p2": {ID: "p2", Name: "Smoke Detector",
				Regulations: []RegulationLink{
					{RegulationID: "r1", Reference: "BS EN 1634-1", Name: "Fire resistance tests", Category: "testing"},
					{RegulationID: "r2", Reference: "BS 5839-1", Name: "Fire detection systems", Category: "design"},
				}},
		},
		audit: []AuditEntry{{ID: "ae1", Action: "generated"}},
	}
}

func TestCompile_AssemblesPackage(t *testing.T) {
	store := testStore()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	c := NewCompiler(store, WithClock(func() time.Time { return at }))

	data, err := c.Compile(context.Background(), CompileRequest{
		ProjectID:        "proj-1",
		OrganizationID:   "org-1",
		PackageReference: "GT-2026-001",
	})
	require.NoError(t, err)

	assert.Equal(t, "proj-1", data.ProjectID)
	assert.Equal(t, "Harbour Point", data.ProjectName)
	assert.Equal(t, "HRB-0042", data.BuildingReference)
	assert.Equal(t, at, data.GeneratedAt)

	// p1 appears on two quotes but is fetched once; the free-text line
	// contributes nothing.
	assert.Equal(t, []string{"p1", "p2"}, store.requestedProductIDs)

	assert.Equal(t, 2, data.Metadata.QuoteCount)
	assert.Equal(t, 2, data.Metadata.ProductCount)
	assert.Equal(t, 2, data.Metadata.RegulationCount)
	assert.Equal(t, 2, data.Metadata.TotalFiles)
}

func TestCompile_DeduplicatesRegulations(t *testing.T) {
	c := NewCompiler(testStore())

	data, err := c.Compile(context.Background(), CompileRequest{ProjectID: "proj-1", OrganizationID: "org-1"})
	require.NoError(t, err)

	require.Len(t, data.RegulationsSummary, 2)
	assert.Equal(t, "r1", data.RegulationsSummary[0].RegulationID)
	assert.Equal(t, 2, data.RegulationsSummary[0].ProductCount)
	assert.Equal(t, "r2", data.RegulationsSummary[1].RegulationID)
	assert.Equal(t, 1, data.RegulationsSummary[1].ProductCount)
}

func TestCompile_BuildingReferenceOverride(t *testing.T) {
	c := NewCompiler(testStore())

	data, err := c.Compile(context.Background(), CompileRequest{
		ProjectID:         "proj-1",
		OrganizationID:    "org-1",
		BuildingReference: "UPRN-9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "UPRN-9000", data.BuildingReference)
}

func TestCompile_ProjectNotFound(t *testing.T) {
	store := testStore()
	store.projectErr = ErrProjectNotFound
	c := NewCompiler(store)

	_, err := c.Compile(context.Background(), CompileRequest{ProjectID: "missing", OrganizationID: "org-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestCompile_FetchErrorAbortsWhole(t *testing.T) {
	store := testStore()
	store.quotesErr = errors.New("connection reset")
	c := NewCompiler(store)

	data, err := c.Compile(context.Background(), CompileRequest{ProjectID: "proj-1", OrganizationID: "org-1"})
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "fetch quotes")
}

func TestSummarizeRegulations_DistinctPerProduct(t *testing.T) {
	// A product listing the same regulation twice counts once.
	products := []CompiledProduct{
		{ID: "p1", Regulations: []RegulationLink{
			{RegulationID: "r1", Reference: "BS EN 1634-1"},
			{RegulationID: "r1", Reference: "BS EN 1634-1"},
		}},
	}
	summary := summarizeRegulations(products)
	require.Len(t, summary, 1)
	assert.Equal(t, 1, summary[0].ProductCount)
}
