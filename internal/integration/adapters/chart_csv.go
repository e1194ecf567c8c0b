package adapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/accounting-office/backend/internal/domain/entity"
)

// ChartCSVHeader is the header of a chart-of-accounts CSV file.
const ChartCSVHeader = "code,name,business_type"

const (
	chartNumFields   = 3
	chartColCode     = 0
	chartColName     = 1
	chartColBusiness = 2
)

// ReadChartNodes reads chart nodes from a CSV reader whose first row is
// ChartCSVHeader. Values are trimmed; business types are lower-cased.
func ReadChartNodes(r io.Reader) ([]*entity.ChartNode, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chartNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := strings.Join(records[0], ",")
	if !strings.EqualFold(strings.TrimPrefix(header, "\ufeff"), ChartCSVHeader) {
		return nil, fmt.Errorf("unexpected chart CSV header %q, want %q", header, ChartCSVHeader)
	}

	nodes := make([]*entity.ChartNode, 0, len(records)-1)
	for _, rec := range records[1:] {
		nodes = append(nodes, entity.NewChartNode(
			strings.TrimSpace(rec[chartColCode]),
			strings.TrimSpace(rec[chartColName]),
			entity.BusinessType(strings.ToLower(strings.TrimSpace(rec[chartColBusiness]))),
		))
	}
	return nodes, nil
}
