package pinata

import (
	"encoding/json"
	"testing"
)

func TestMetadataValueMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value MetadataValue
		want  string
	}{
		{name: "string", value: MetadataString("hello"), want: `"hello"`},
		{name: "number", value: MetadataNumber(5.5), want: `5.5`},
		{name: "integer number", value: MetadataNumber(42), want: `42`},
		{name: "delete marker", value: MetadataDelete(), want: `null`},
		{name: "zero value", value: MetadataValue{}, want: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, string(data))
			}
		})
	}
}

func TestMetadataValueUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		want       any
		wantDelete bool
	}{
		{name: "string", json: `"hello"`, want: "hello"},
		{name: "number", json: `5.5`, want: 5.5},
		{name: "null", json: `null`, want: nil, wantDelete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var value MetadataValue
			if err := json.Unmarshal([]byte(tt.json), &value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value.Value() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, value.Value())
			}
			if value.IsDelete() != tt.wantDelete {
				t.Errorf("expected IsDelete %v, got %v", tt.wantDelete, value.IsDelete())
			}
		})
	}
}

func TestMetadataValueUnmarshalRejectsOtherTypes(t *testing.T) {
	for _, input := range []string{`true`, `["a"]`, `{"a": 1}`} {
		var value MetadataValue
		if err := json.Unmarshal([]byte(input), &value); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	original := Metadata{
		Name: "N",
		KeyValues: map[string]MetadataValue{
			"key": MetadataString("value"),
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded Metadata
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.Name != "N" {
		t.Errorf("expected name 'N', got '%s'", decoded.Name)
	}
	if len(decoded.KeyValues) != 1 {
		t.Fatalf("expected 1 keyvalue, got %d", len(decoded.KeyValues))
	}
	if decoded.KeyValues["key"].Value() != "value" {
		t.Errorf("expected 'value', got %v", decoded.KeyValues["key"].Value())
	}
}

func TestMetadataOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Metadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{}` {
		t.Errorf("expected empty object, got %s", string(data))
	}
}
