package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accounting-office/backend/internal/domain/entity"
)

func TestReadChartNodes(t *testing.T) {
	input := "\ufeffcode,name,business_type\n" +
		"1,Ativo,asset\n" +
		"1.2.2, (-) Depreciação Acumulada ,ASSET\n" +
		"\"3.1.2\",\"Deduções, Abatimentos\",revenue\n"

	nodes, err := ReadChartNodes(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "1", nodes[0].Code)
	assert.Equal(t, "(-) Depreciação Acumulada", nodes[1].Name)
	assert.Equal(t, entity.BusinessTypeAsset, nodes[1].BusinessType)
	assert.Equal(t, "Deduções, Abatimentos", nodes[2].Name)
	assert.NotEqual(t, nodes[0].ID, nodes[1].ID)
}

func TestReadChartNodes_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong header", "codigo,nome,tipo\n1,Ativo,asset\n"},
		{"missing column", "code,name,business_type\n1,Ativo\n"},
		{"unterminated quote", "code,name,business_type\n1,\"Ativo,asset\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadChartNodes(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadChartNodes_Empty(t *testing.T) {
	nodes, err := ReadChartNodes(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
