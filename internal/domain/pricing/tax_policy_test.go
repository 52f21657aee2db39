package pricing

import (
	"testing"

	"autoshop_billing/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaxPolicy(t *testing.T) {
	p, err := ParseTaxPolicy(" PARTS_ONLY ")
	require.NoError(t, err)
	assert.Equal(t, TaxPolicyPartsOnly, p)

	p, err = ParseTaxPolicy("parts_labor")
	require.NoError(t, err)
	assert.Equal(t, TaxPolicyPartsAndLabor, p)

	_, err = ParseTaxPolicy("everything")
	assert.ErrorIs(t, err, ErrInvalidTaxPolicy)
}

func TestIsTaxable(t *testing.T) {
	kinds := []entities.LineItemKind{
		entities.LineItemKindLabor,
		entities.LineItemKindPart,
		entities.LineItemKindFee,
		entities.LineItemKindDiscount,
		entities.LineItemKindMileage,
		entities.LineItemKindCallout,
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			assert.False(t, IsTaxable(kind, false, TaxPolicyPartsAndLabor), "unchecked flag never taxes")
			assert.False(t, IsTaxable(kind, false, TaxPolicyPartsOnly), "unchecked flag never taxes")
			assert.True(t, IsTaxable(kind, true, TaxPolicyPartsAndLabor), "parts_labor taxes any flagged line")
			assert.Equal(t, kind == entities.LineItemKindPart, IsTaxable(kind, true, TaxPolicyPartsOnly))
		})
	}
}
