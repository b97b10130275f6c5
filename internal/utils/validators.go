package utils

import (
	"fmt"

	"rds-restore/internal/selection"
)

const (
	// MinIdentifierLength and MaxIdentifierLength bound an RDS DB instance identifier
	MinIdentifierLength = 3
	MaxIdentifierLength = 63
)

// Reason is the outcome of validating a restore request
type Reason int

const (
	Approved Reason = iota
	NoSnapshotsAvailable
	NameRequired
	NoSnapshotSelected
	SnapshotNotAvailable
	NameAlreadyExists
	NameLengthInvalid
	NameCharsetInvalid
)

var reasonNames = map[Reason]string{
	Approved:             "Approved",
	NoSnapshotsAvailable: "NoSnapshotsAvailable",
	NameRequired:         "NameRequired",
	NoSnapshotSelected:   "NoSnapshotSelected",
	SnapshotNotAvailable: "SnapshotNotAvailable",
	NameAlreadyExists:    "NameAlreadyExists",
	NameLengthInvalid:    "NameLengthInvalid",
	NameCharsetInvalid:   "NameCharsetInvalid",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Approved reports whether the request may be submitted
func (r Reason) Approved() bool {
	return r == Approved
}

// Message returns the text shown to the operator for a rejection
func (r Reason) Message(name string) string {
	switch r {
	case NoSnapshotsAvailable:
		return "No snapshots available to restore from. Choose a different DB instance or create a snapshot first"
	case NameRequired:
		return "Please enter a new DB name to restore to"
	case NoSnapshotSelected:
		return "Please choose a snapshot"
	case SnapshotNotAvailable:
		return `Please choose a snapshot with a status of "available"`
	case NameAlreadyExists:
		return fmt.Sprintf("A database with the name '%s' already exists. Please choose a different name", name)
	case NameLengthInvalid:
		return fmt.Sprintf("DB name must be between %d and %d characters", MinIdentifierLength, MaxIdentifierLength)
	case NameCharsetInvalid:
		return "DB name must contain only lowercase letters, numbers, and hyphens"
	default:
		return ""
	}
}

// ValidateRestore checks whether a restore into name may be issued from the current
// selection. Checks run in a fixed order and the first failing one wins.
func ValidateRestore(st *selection.State, name string) Reason {
	switch {
	case len(st.Snapshots()) == 0:
		return NoSnapshotsAvailable
	case name == "":
		return NameRequired
	case st.SelectedSnapshot() == nil:
		return NoSnapshotSelected
	case !st.SelectedSnapshot().IsRestorable():
		return SnapshotNotAvailable
	case st.HasInstance(name):
		return NameAlreadyExists
	case len(name) < MinIdentifierLength || len(name) > MaxIdentifierLength:
		return NameLengthInvalid
	case !isIdentifierCharset(name):
		return NameCharsetInvalid
	}
	return Approved
}

// ValidateDBIdentifier checks the length and charset rules of a new instance identifier
func ValidateDBIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("DB identifier cannot be empty")
	}
	if len(name) < MinIdentifierLength || len(name) > MaxIdentifierLength {
		return fmt.Errorf("invalid DB identifier %q: %s", name, NameLengthInvalid.Message(name))
	}
	if !isIdentifierCharset(name) {
		return fmt.Errorf("invalid DB identifier %q: %s", name, NameCharsetInvalid.Message(name))
	}
	return nil
}

// ValidateRegion checks that region is one of the known regions
func ValidateRegion(region string, known []string) error {
	if region == "" {
		return fmt.Errorf("region cannot be empty")
	}
	for _, r := range known {
		if r == region {
			return nil
		}
	}
	return fmt.Errorf("unknown region: %s", region)
}

// isIdentifierCharset accepts lowercase ASCII letters, digits and hyphens only
func isIdentifierCharset(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
