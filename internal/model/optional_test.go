package model

import (
	"encoding/json"
	"testing"
)

func TestOptionalDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantNull bool
		wantVal  string
	}{
		{"absent", `{}`, false, false, ""},
		{"null", `{"notes": null}`, true, true, ""},
		{"value", `{"notes": "gassy"}`, true, false, "gassy"},
		{"empty string", `{"notes": ""}`, true, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u DiaperUpdate
			if err := json.Unmarshal([]byte(tt.body), &u); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if u.Notes.Set != tt.wantSet || u.Notes.Null != tt.wantNull || u.Notes.Value != tt.wantVal {
				t.Errorf("got %+v", u.Notes)
			}
		})
	}
}

func TestOptionalPtr(t *testing.T) {
	if p := (Optional[int]{}).Ptr(); p != nil {
		t.Errorf("absent: expected nil, got %v", *p)
	}
	if p := Null[int]().Ptr(); p != nil {
		t.Errorf("null: expected nil, got %v", *p)
	}
	if p := Some(4).Ptr(); p == nil || *p != 4 {
		t.Errorf("some: expected 4, got %v", p)
	}
}

func TestOptionalBadValue(t *testing.T) {
	var u FeedingUpdate
	if err := json.Unmarshal([]byte(`{"amount_oz": "lots"}`), &u); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}
