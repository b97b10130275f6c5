package selection

import "rds-restore/pkg/models"

// Region returns the current region
func (s *State) Region() string { return s.region }

// Regions returns the known regions. The slice must not be modified.
func (s *State) Regions() []string { return s.regions }

// Instances returns the instances of the current region. The slice must not be modified.
func (s *State) Instances() []models.Instance { return s.instances }

// Snapshots returns the snapshots of the selected instance. The slice must not be modified.
func (s *State) Snapshots() []models.Snapshot { return s.snapshots }

// SelectedInstance returns the selected instance or nil
func (s *State) SelectedInstance() *models.Instance { return s.selectedInstance }

// SelectedSnapshot returns the selected snapshot or nil
func (s *State) SelectedSnapshot() *models.Snapshot { return s.selectedSnapshot }

// ProposedName returns the name typed for the instance to restore into
func (s *State) ProposedName() string { return s.proposedName }

// SetProposedName records the name typed for the instance to restore into
func (s *State) SetProposedName(name string) { s.proposedName = name }

// ClearProposedName empties the name input after a restore was submitted
func (s *State) ClearProposedName() { s.proposedName = "" }

// HasInstance reports whether an instance of the current region uses identifier
func (s *State) HasInstance(identifier string) bool {
	return s.InstanceIndex(identifier) >= 0
}

// InstanceIndex returns the row of the instance with identifier, or -1
func (s *State) InstanceIndex(identifier string) int {
	for i := range s.instances {
		if s.instances[i].Identifier == identifier {
			return i
		}
	}
	return -1
}

// SnapshotIndex returns the row of the snapshot with identifier, or -1
func (s *State) SnapshotIndex(identifier string) int {
	for i := range s.snapshots {
		if s.snapshots[i].Identifier == identifier {
			return i
		}
	}
	return -1
}

// View is a copy of the state made for rendering
type View struct {
	Region           string            `json:"region"`
	Regions          []string          `json:"regions"`
	Instances        []models.Instance `json:"instances"`
	Snapshots        []models.Snapshot `json:"snapshots"`
	SelectedInstance int               `json:"selected_instance"`
	SelectedSnapshot int               `json:"selected_snapshot"`
	ProposedName     string            `json:"proposed_name"`
}

// View copies the state. Selections are reported as row indexes, -1 meaning none.
func (s *State) View() View {
	v := View{
		Region:           s.region,
		Regions:          append([]string{}, s.regions...),
		Instances:        append([]models.Instance{}, s.instances...),
		Snapshots:        append([]models.Snapshot{}, s.snapshots...),
		SelectedInstance: -1,
		SelectedSnapshot: -1,
		ProposedName:     s.proposedName,
	}
	for i := range s.instances {
		if &s.instances[i] == s.selectedInstance {
			v.SelectedInstance = i
		}
	}
	for i := range s.snapshots {
		if &s.snapshots[i] == s.selectedSnapshot {
			v.SelectedSnapshot = i
		}
	}
	return v
}
