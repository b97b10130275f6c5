// Package selection holds the cascading region → instance → snapshot selection of the
// restore console and the transitions that keep it consistent.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"
)

// DefaultRegion is selected when a session starts without a configured region
const DefaultRegion = "us-east-1"

// ErrIndexOutOfRange is returned when a row or region index does not exist.
// Callers that produce indexes from the rendered lists never see it.
var ErrIndexOutOfRange = errors.New("index out of range")

// State is the only mutable aggregate of a session. It is not safe for concurrent use.
//
// selectedInstance and selectedSnapshot always point into the current instances and
// snapshots slices, or are nil.
type State struct {
	gateway cloud.Gateway

	region  string
	regions []string

	instances []models.Instance
	snapshots []models.Snapshot

	selectedInstance *models.Instance
	selectedSnapshot *models.Snapshot

	proposedName string
}

// New creates an empty state for region. Nothing is fetched until a transition runs.
func New(gateway cloud.Gateway, region string) *State {
	if region == "" {
		region = DefaultRegion
	}
	return &State{
		gateway: gateway,
		region:  region,
	}
}

// LoadRegions fetches the region list. On failure the list is left empty.
func (s *State) LoadRegions() error {
	s.regions = nil

	regions, err := s.gateway.ListRegions()
	if err != nil {
		return err
	}
	s.regions = regions
	return nil
}

// ChangeRegion drops every list and selection, switches to region and fetches its instances
func (s *State) ChangeRegion(region string) error {
	if region == "" {
		return errors.New("region is required")
	}
	s.clearInstances()
	s.region = region
	return s.loadInstances()
}

// ChangeRegionIndex switches to the region at index of the known regions
func (s *State) ChangeRegionIndex(index int) error {
	if index < 0 || index >= len(s.regions) {
		return fmt.Errorf("region %d of %d: %w", index, len(s.regions), ErrIndexOutOfRange)
	}
	return s.ChangeRegion(s.regions[index])
}

// Refresh drops every list and selection and fetches the instances of the current region again
func (s *State) Refresh() error {
	s.clearInstances()
	return s.loadInstances()
}

// SelectInstance selects the instance at index and fetches its snapshots, newest first.
// Snapshots sharing a creation time keep the order the gateway returned them in.
func (s *State) SelectInstance(index int) error {
	if index < 0 || index >= len(s.instances) {
		return fmt.Errorf("instance row %d of %d: %w", index, len(s.instances), ErrIndexOutOfRange)
	}

	s.clearSnapshots()
	s.selectedInstance = &s.instances[index]

	snapshots, err := s.gateway.ListSnapshots(s.selectedInstance.Identifier, s.region)
	if err != nil {
		return err
	}

	snapshots = uniqueSnapshots(snapshots)
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	models.AssignSnapshotHints(snapshots)

	s.snapshots = snapshots
	return nil
}

// SelectSnapshot selects the snapshot at index. Nothing is fetched.
func (s *State) SelectSnapshot(index int) error {
	if index < 0 || index >= len(s.snapshots) {
		return fmt.Errorf("snapshot row %d of %d: %w", index, len(s.snapshots), ErrIndexOutOfRange)
	}
	s.selectedSnapshot = &s.snapshots[index]
	return nil
}

func (s *State) clearInstances() {
	s.instances = nil
	s.snapshots = nil
	s.selectedInstance = nil
	s.selectedSnapshot = nil
}

func (s *State) clearSnapshots() {
	s.snapshots = nil
	s.selectedSnapshot = nil
}

func (s *State) loadInstances() error {
	instances, err := s.gateway.ListInstances(s.region)
	if err != nil {
		return err
	}

	instances = uniqueInstances(instances)
	models.AssignInstanceHints(instances)

	s.instances = instances
	return nil
}

// uniqueInstances keeps the first instance of each identifier
func uniqueInstances(in []models.Instance) []models.Instance {
	seen := make(map[string]bool, len(in))
	out := make([]models.Instance, 0, len(in))
	for _, inst := range in {
		if seen[inst.Identifier] {
			continue
		}
		seen[inst.Identifier] = true
		out = append(out, inst)
	}
	return out
}

// uniqueSnapshots keeps the first snapshot of each identifier
func uniqueSnapshots(in []models.Snapshot) []models.Snapshot {
	seen := make(map[string]bool, len(in))
	out := make([]models.Snapshot, 0, len(in))
	for _, snap := range in {
		if seen[snap.Identifier] {
			continue
		}
		seen[snap.Identifier] = true
		out = append(out, snap)
	}
	return out
}
