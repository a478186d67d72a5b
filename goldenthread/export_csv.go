package goldenthread

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExportCSVs renders the package as a set of flat CSV files keyed by
// filename, one per record type. Every file carries a header row even
// when empty.
func ExportCSVs(data *GoldenThreadData) (map[string]string, error) {
	files := map[string]func(*GoldenThreadData) ([][]string, error){
		"products.csv":    productRows,
		"regulations.csv": regulationRows,
		"quotations.csv":  quotationRows,
		"audit_trail.csv": auditRows,
	}

	out := make(map[string]string, len(files))
	for name, rows := range files {
		records, err := rows(data)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(records); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		out[name] = buf.String()
	}
	return out, nil
}

func productRows(data *GoldenThreadData) ([][]string, error) {
	rows := [][]string{{
		"id", "code", "name", "pillar", "manufacturer",
		"specifications", "certifications", "regulation_count", "file_count",
	}}
	for _, p := range data.Products {
		rows = append(rows, []string{
			p.ID,
			p.Code,
			p.Name,
			p.Pillar,
			p.Manufacturer,
			flattenSpecs(p.Specifications),
			strings.Join(p.Certifications, "; "),
			strconv.Itoa(len(p.Regulations)),
			strconv.Itoa(len(p.Files)),
		})
	}
	return rows, nil
}

func regulationRows(data *GoldenThreadData) ([][]string, error) {
	rows := [][]string{{"regulation_id", "reference", "name", "category", "product_count"}}
	for _, r := range data.RegulationsSummary {
		rows = append(rows, []string{
			r.RegulationID, r.Reference, r.Name, r.Category, strconv.Itoa(r.ProductCount),
		})
	}
	return rows, nil
}

func quotationRows(data *GoldenThreadData) ([][]string, error) {
	rows := [][]string{{"id", "number", "client_name", "status", "total", "created_at", "line_item_count"}}
	for _, q := range data.Quotes {
		rows = append(rows, []string{
			q.ID,
			q.Number,
			q.ClientName,
			q.Status,
			strconv.FormatFloat(q.Total, 'f', 2, 64),
			q.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			strconv.Itoa(len(q.LineItems)),
		})
	}
	return rows, nil
}

func auditRows(data *GoldenThreadData) ([][]string, error) {
	rows := [][]string{{"id", "package_reference", "action", "actor", "timestamp"}}
	for _, e := range data.AuditTrail {
		rows = append(rows, []string{
			e.ID,
			e.PackageReference,
			e.Action,
			e.Actor,
			e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return rows, nil
}

// flattenSpecs renders a spec map as "key: value; key: value" in key
// order so output is stable.
func flattenSpecs(specs map[string]string) string {
	if len(specs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+specs[k])
	}
	return strings.Join(parts, "; ")
}
