package models

import (
	"encoding/json"
	"testing"
)

func TestJSONBFromAndGetString(t *testing.T) {
	j := JSONBFrom(map[string]any{"user_role": "employee", "full_name": "Jane Doe", "n": 3})

	if got := j.GetString("user_role"); got != "employee" {
		t.Errorf("GetString(user_role) = %q", got)
	}
	if got := j.GetString("missing"); got != "" {
		t.Errorf("GetString(missing) = %q, want empty", got)
	}
	if got := j.GetString("n"); got != "" {
		t.Errorf("GetString(n) = %q, want empty for non-string value", got)
	}
	if got := string(JSONBFrom(nil)); got != "{}" {
		t.Errorf("JSONBFrom(nil) = %q", got)
	}
}

func TestJSONBMarshalsVerbatim(t *testing.T) {
	type envelope struct {
		Metadata JSONB `json:"metadata"`
	}
	out, err := json.Marshal(envelope{Metadata: JSONBFrom(map[string]any{"user_role": "admin"})})
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	want := `{"metadata":{"user_role":"admin"}}`
	if string(out) != want {
		t.Errorf("marshal = %s, want %s", out, want)
	}

	var empty envelope
	out, err = json.Marshal(empty)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if string(out) != `{"metadata":{}}` {
		t.Errorf("marshal of empty = %s", out)
	}
}

func TestJSONBScan(t *testing.T) {
	var j JSONB
	if err := j.Scan([]byte(`{"a":"b"}`)); err != nil {
		t.Fatalf("scan bytes error = %v", err)
	}
	if got := j.GetString("a"); got != "b" {
		t.Errorf("after scan GetString(a) = %q", got)
	}

	if err := j.Scan(nil); err != nil {
		t.Fatalf("scan nil error = %v", err)
	}
	if string(j) != "{}" {
		t.Errorf("scan nil = %q", string(j))
	}
}
