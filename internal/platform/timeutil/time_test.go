package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestTimeMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    Time
		expected string
	}{
		{"zero milliseconds", NewTime(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)), `"2024-01-15T10:30:00.000Z"`},
		{"with milliseconds", NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)), `"2024-01-15T10:30:00.123Z"`},
		{
			"non-UTC timezone converted",
			NewTime(time.Date(2024, 1, 15, 12, 30, 0, 0, time.FixedZone("CET", 2*60*60))),
			`"2024-01-15T10:30:00.000Z"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, data)
			}
		})
	}
}

func TestTimeUnmarshalJSONNullPreservesValue(t *testing.T) {
	original := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	tm := NewTime(original)
	if err := json.Unmarshal([]byte("null"), &tm); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tm.Equal(original) {
		t.Fatalf("expected value to be preserved, got %v", tm.Time)
	}
}

func TestTimeUnmarshalJSONRejectsGarbage(t *testing.T) {
	var tm Time
	if err := json.Unmarshal([]byte(`"not-a-time"`), &tm); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestTimeCBORUsesTextForm(t *testing.T) {
	in := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 5_000_000, time.UTC))
	data, err := cbor.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		t.Fatalf("expected a CBOR text string: %v", err)
	}
	if s != "2024-01-15T10:30:00.005Z" {
		t.Fatalf("unexpected text %q", s)
	}
	var out Time
	if err := cbor.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equal(in.Time) {
		t.Fatalf("round trip mismatch: %v != %v", out.Time, in.Time)
	}
}
