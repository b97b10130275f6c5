package models

// RowHint is the row-banding color a table uses for a record
type RowHint string

const (
	HintEven RowHint = "oldlace"
	HintOdd  RowHint = "white"
)

// HintFor returns the hint of the row at index. Hints are never stored apart from
// the position that produced them.
func HintFor(index int) RowHint {
	if index%2 == 0 {
		return HintEven
	}
	return HintOdd
}

// AssignInstanceHints recomputes the hint of every instance from its position
func AssignInstanceHints(instances []Instance) {
	for idx := range instances {
		instances[idx].Hint = HintFor(idx)
	}
}

// AssignSnapshotHints recomputes the hint of every snapshot from its position
func AssignSnapshotHints(snapshots []Snapshot) {
	for idx := range snapshots {
		snapshots[idx].Hint = HintFor(idx)
	}
}
