package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartialUpdate_Empty(t *testing.T) {
	_, _, err := buildPartialUpdate("catalog", 1, map[string]interface{}{})
	require.ErrorIs(t, err, ErrEmptyUpdate)

	_, _, err = buildPartialUpdate("catalog", 1, nil)
	require.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestBuildPartialUpdate_UnknownField(t *testing.T) {
	_, _, err := buildPartialUpdate("catalog", 1, map[string]interface{}{
		"quantity":  5,
		"productID": 7,
	})
	var unknownField *UnknownFieldError
	require.ErrorAs(t, err, &unknownField)
	assert.Equal(t, "productID", unknownField.Field)

	// injection attempts in field names must never reach the statement
	_, _, err = buildPartialUpdate("catalog", 1, map[string]interface{}{
		`price = 0 WHERE "productID" = 1; --`: 0,
	})
	require.ErrorAs(t, err, &unknownField)
}

func TestBuildPartialUpdate_SingleField(t *testing.T) {
	query, args, err := buildPartialUpdate("catalog", 42, map[string]interface{}{
		"quantity": 5,
	})
	require.NoError(t, err)
	assert.Equal(t, `UPDATE catalog.products SET quantity = $1 WHERE "productID" = $2;`, query)
	assert.Equal(t, []interface{}{5, 42}, args)
}

func TestBuildPartialUpdate_AllFields(t *testing.T) {
	query, args, err := buildPartialUpdate("catalog", 7, map[string]interface{}{
		"productName": "X",
		"description": "d",
		"quantity":    1,
		"price":       9.99,
	})
	require.NoError(t, err)

	// fields are sorted, the id is always the last parameter
	assert.Equal(t, `UPDATE catalog.products SET description = $1, price = $2, `+
		`"productName" = $3, quantity = $4 WHERE "productID" = $5;`, query)
	assert.Equal(t, []interface{}{"d", 9.99, "X", 1, 7}, args)
}
