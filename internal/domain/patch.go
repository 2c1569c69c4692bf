// Package domain: sparse update structures.
//
// Partial updates carry one nullable slot per updatable attribute; only the
// populated slots are ever applied by the store. For group membership the
// distinction between "field absent" and "field explicitly null" matters
// (null removes the user from their group), which plain pointers cannot
// express after JSON decoding; OptionalString keeps that distinction.
package domain

import "encoding/json"

// OptionalString is a string field that records whether it was present in
// the request at all. UnmarshalJSON only runs for keys that appear in the
// payload, so Set is true exactly when the field was supplied; a JSON null
// leaves Value nil.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UserPatch is the sparse field set for a partial user update. Nil pointers
// (and an unset GroupID) mean "leave unchanged".
type UserPatch struct {
	FirstName *string        `json:"first_name"`
	LastName  *string        `json:"last_name"`
	Color     *string        `json:"color"`
	GroupID   OptionalString `json:"group_id"`
}

// Empty reports whether the patch carries no field at all.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Color == nil && !p.GroupID.Set
}
