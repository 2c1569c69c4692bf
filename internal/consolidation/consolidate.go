// Package consolidation implements the grouping algorithm that merges every
// member's outstanding list items into one shared shopping list. It is a pure
// in-memory transformation over a snapshot of unfulfilled items, independent
// of the storage engine, so it can be tested without a database.
package consolidation

import "sort"

// Row is one unfulfilled list item in the input snapshot.
type Row struct {
	// ItemID is the list item's primary key.
	ItemID int64
	// ItemName is the item's free-text name. Grouping is byte-exact on this
	// string: "milk" and "Milk" form separate entries.
	ItemName string
	// OwnerUsername is the username of the member whose list the item is on.
	OwnerUsername string
}

// Entry is one line of the consolidated shopping list: a distinct item name
// together with every contributing list item and its owner.
//
// ItemIDs and NeededBy are aligned: NeededBy[i] owns ItemIDs[i]. NeededBy is
// deliberately not deduplicated: a user with two open "Milk" items appears
// twice, signalling quantity.
type Entry struct {
	Item     string   `json:"item"`
	ItemIDs  []int64  `json:"item_ids"`
	NeededBy []string `json:"needed_by"`
}

// Consolidate groups the snapshot rows by exact item name.
//
// The result contains one entry per distinct name, sorted ascending by name;
// within each entry, item ids are ascending with owners aligned. Every input
// row lands in exactly one entry. The input is never mutated.
func Consolidate(rows []Row) []Entry {
	byName := make(map[string][]Row, len(rows))
	for _, r := range rows {
		byName[r.ItemName] = append(byName[r.ItemName], r)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		group := byName[name]
		sort.Slice(group, func(i, j int) bool { return group[i].ItemID < group[j].ItemID })

		e := Entry{
			Item:     name,
			ItemIDs:  make([]int64, len(group)),
			NeededBy: make([]string, len(group)),
		}
		for i, r := range group {
			e.ItemIDs[i] = r.ItemID
			e.NeededBy[i] = r.OwnerUsername
		}
		out = append(out, e)
	}
	return out
}
