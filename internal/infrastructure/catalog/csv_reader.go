// Package catalog importa el catálogo inicial de materiales desde CSV.
// Las planillas exportadas de Excel suelen venir en ISO-8859-1.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
)

// Columns orden esperado; la primera fila es encabezado.
var Columns = []string{"code", "name", "unit", "daily_rate", "replacement_cost", "total", "minimum_stock", "location"}

// ReadMaterials parsea el CSV. latin1 decodifica ISO-8859-1 antes de leer.
func ReadMaterials(r io.Reader, latin1 bool) ([]dto.CreateMaterialRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(Columns)

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("catálogo: encabezado: %w", err)
	}
	var out []dto.CreateMaterialRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("catálogo: línea %d: %w", line, err)
		}
		m, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("catálogo: línea %d: %w", line, err)
		}
		out = append(out, m)
	}
}

func parseRecord(rec []string) (dto.CreateMaterialRequest, error) {
	var (
		m   dto.CreateMaterialRequest
		err error
	)
	m.Code = strings.TrimSpace(rec[0])
	m.Name = strings.TrimSpace(rec[1])
	m.UnitOfMeasure = strings.ToUpper(strings.TrimSpace(rec[2]))
	if m.DailyHireRate, err = decimal.NewFromString(strings.TrimSpace(rec[3])); err != nil {
		return m, fmt.Errorf("daily_rate %q: %w", rec[3], err)
	}
	if m.ReplacementCost, err = decimal.NewFromString(strings.TrimSpace(rec[4])); err != nil {
		return m, fmt.Errorf("replacement_cost %q: %w", rec[4], err)
	}
	if m.TotalQuantity, err = strconv.Atoi(strings.TrimSpace(rec[5])); err != nil {
		return m, fmt.Errorf("total %q: %w", rec[5], err)
	}
	if m.MinimumStockLevel, err = strconv.Atoi(strings.TrimSpace(rec[6])); err != nil {
		return m, fmt.Errorf("minimum_stock %q: %w", rec[6], err)
	}
	m.Location = strings.TrimSpace(rec[7])
	return m, nil
}
