package schema

import (
	"testing"
)

const testSchema = `{
  "$id": "product",
  "type": "object",
  "properties": {
    "productName": {"type": "string", "minLength": 1},
    "quantity": {"type": "integer"}
  },
  "required": ["productName", "quantity"]
}`

func TestValidator(t *testing.T) {
	validator, err := NewValidator([]string{testSchema})
	if err != nil {
		t.Fatal(err)
	}

	if !validator.HasSchema("product") {
		t.Fatal("schema product not found")
	}
	if validator.HasSchema("something") {
		t.Fatal("unexpected schema something")
	}

	testCases := []struct {
		name  string
		json  string
		valid bool
	}{
		{"all fields", `{"productName": "X", "quantity": 1}`, true},
		{"zero quantity", `{"productName": "X", "quantity": 0}`, true},
		{"extra field", `{"productName": "X", "quantity": 1, "color": "red"}`, true},
		{"missing quantity", `{"productName": "X"}`, false},
		{"empty name", `{"productName": "", "quantity": 1}`, false},
		{"string quantity", `{"productName": "X", "quantity": "1"}`, false},
		{"fractional quantity", `{"productName": "X", "quantity": 1.5}`, false},
		{"not an object", `[]`, false},
		{"broken json", `{"productName": `, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.ValidateString(tc.json, "product")
			if tc.valid && err != nil {
				t.Fatalf("expected valid document, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidator_MissingID(t *testing.T) {
	if _, err := NewValidator([]string{`{"type": "object"}`}); err == nil {
		t.Fatal("expected error for schema without $id")
	}
}

func TestValidator_UnknownSchema(t *testing.T) {
	validator, err := NewValidator([]string{testSchema})
	if err != nil {
		t.Fatal(err)
	}
	if err := validator.ValidateString(`{}`, "something"); err == nil {
		t.Fatal("expected error for unknown schema")
	}
}
