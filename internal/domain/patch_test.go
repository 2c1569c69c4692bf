package domain

import (
	"encoding/json"
	"testing"
)

func TestOptionalString_AbsentKeyStaysUnset(t *testing.T) {
	var p UserPatch
	if err := json.Unmarshal([]byte(`{"first_name":"Ann"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.GroupID.Set {
		t.Fatalf("group_id was absent, Set must be false: %+v", p.GroupID)
	}
	if p.FirstName == nil || *p.FirstName != "Ann" {
		t.Fatalf("first_name not decoded: %+v", p.FirstName)
	}
}

func TestOptionalString_ExplicitNullClearsValue(t *testing.T) {
	var p UserPatch
	if err := json.Unmarshal([]byte(`{"group_id":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.GroupID.Set {
		t.Fatalf("group_id was present, Set must be true")
	}
	if p.GroupID.Value != nil {
		t.Fatalf("null group_id must leave Value nil, got %q", *p.GroupID.Value)
	}
}

func TestOptionalString_StringValue(t *testing.T) {
	var p UserPatch
	if err := json.Unmarshal([]byte(`{"group_id":"flat-7b"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.GroupID.Set || p.GroupID.Value == nil || *p.GroupID.Value != "flat-7b" {
		t.Fatalf("group_id not decoded: %+v", p.GroupID)
	}
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var p UserPatch
	if err := json.Unmarshal([]byte(`{"group_id":42}`), &p); err == nil {
		t.Fatalf("expected decode error for numeric group_id")
	}
}

func TestUserPatch_Empty(t *testing.T) {
	var p UserPatch
	if !p.Empty() {
		t.Fatalf("zero patch should be empty")
	}

	if err := json.Unmarshal([]byte(`{"group_id":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Empty() {
		t.Fatalf("patch with explicit null group_id is not empty")
	}

	name := "X"
	p = UserPatch{Color: &name}
	if p.Empty() {
		t.Fatalf("patch with color is not empty")
	}
}
