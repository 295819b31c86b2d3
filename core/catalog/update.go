package catalog

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptyUpdate is returned when a partial update contains no fields.
var ErrEmptyUpdate = errors.New("at least one field must be provided for update")

// UnknownFieldError is returned when a partial update names a field outside
// the allow-list of updatable fields.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unknown field: " + e.Field
}

// updatableColumns maps the JSON property names of the mutable product
// fields to their column expressions. Column names only ever come from
// this table, caller input merely selects entries.
var updatableColumns = map[string]string{
	"productName": `"productName"`,
	"description": `description`,
	"quantity":    `quantity`,
	"price":       `price`,
}

// buildPartialUpdate assembles a parameterized update statement for the
// given subset of fields. Fields are sorted so the statement text is
// deterministic. The record id is the last parameter.
func buildPartialUpdate(schema string, id int, fields map[string]interface{}) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, ErrEmptyUpdate
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := updatableColumns[name]; !ok {
			return "", nil, &UnknownFieldError{Field: name}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names)+1)
	for i, name := range names {
		sets = append(sets, updatableColumns[name]+" = $"+strconv.Itoa(i+1))
		args = append(args, fields[name])
	}
	args = append(args, id)

	query := `UPDATE ` + schema + `.products SET ` + strings.Join(sets, ", ") +
		` WHERE "productID" = $` + strconv.Itoa(len(args)) + `;`
	return query, args, nil
}
