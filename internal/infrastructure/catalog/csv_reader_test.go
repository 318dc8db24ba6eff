package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/Chrisx-39/FormMaster/internal/infrastructure/catalog"
)

const sample = `code,name,unit,daily_rate,replacement_cost,total,minimum_stock,location
TUB-6M,Tubo 6m,piece,5.00,120,400,50,Patio A
CLA-01, Abrazadera giratoria ,PIECE,0.80,12.5,2000,300,
`

func TestReadMaterials(t *testing.T) {
	list, err := catalog.ReadMaterials(strings.NewReader(sample), false)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "TUB-6M", list[0].Code)
	assert.Equal(t, "PIECE", list[0].UnitOfMeasure)
	assert.Equal(t, "5", list[0].DailyHireRate.String())
	assert.Equal(t, 400, list[0].TotalQuantity)
	assert.Equal(t, 50, list[0].MinimumStockLevel)
	assert.Equal(t, "Patio A", list[0].Location)

	assert.Equal(t, "Abrazadera giratoria", list[1].Name)
	assert.Equal(t, "12.5", list[1].ReplacementCost.String())
	assert.Empty(t, list[1].Location)
}

func TestReadMaterials_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String(
		"code,name,unit,daily_rate,replacement_cost,total,minimum_stock,location\n" +
			"ESC-01,Escalera de aluminio 3m con protección,PIECE,2,90,10,2,Bodega Norte\n")
	require.NoError(t, err)

	list, err := catalog.ReadMaterials(bytes.NewReader([]byte(raw)), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Escalera de aluminio 3m con protección", list[0].Name)
}

func TestReadMaterials_LineaInvalida(t *testing.T) {
	bad := "code,name,unit,daily_rate,replacement_cost,total,minimum_stock,location\n" +
		"TUB-6M,Tubo,PIECE,cinco,120,400,50,\n"
	_, err := catalog.ReadMaterials(strings.NewReader(bad), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
	assert.Contains(t, err.Error(), "daily_rate")
}

func TestReadMaterials_Vacio(t *testing.T) {
	list, err := catalog.ReadMaterials(strings.NewReader(""), false)
	require.NoError(t, err)
	assert.Empty(t, list)
}
