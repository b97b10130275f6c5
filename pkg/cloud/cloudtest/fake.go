// Package cloudtest provides an in-memory cloud.Gateway for tests.
package cloudtest

import (
	"errors"
	"sync"

	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"
)

// ErrInjected is returned by FakeGateway calls configured to fail
var ErrInjected = errors.New("injected gateway failure")

// FakeGateway implements cloud.Gateway over fixed data
type FakeGateway struct {
	mu sync.Mutex

	Regions   []string
	Instances map[string][]models.Instance // by region
	Snapshots map[string][]models.Snapshot // by instance identifier

	FailRegions   bool
	FailInstances bool
	FailSnapshots bool
	FailRestore   bool

	InstanceCalls []string
	SnapshotCalls []string
	RestoreCalls  []models.RestoreRequest
}

var _ cloud.Gateway = (*FakeGateway)(nil)

// NewFakeGateway creates an empty fake with a few regions
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Regions:   []string{"eu-west-1", "us-east-1", "us-west-2"},
		Instances: make(map[string][]models.Instance),
		Snapshots: make(map[string][]models.Snapshot),
	}
}

func (f *FakeGateway) ListRegions() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailRegions {
		return nil, cloud.NewGatewayError("describe regions", "", ErrInjected)
	}
	return append([]string(nil), f.Regions...), nil
}

func (f *FakeGateway) ListInstances(region string) ([]models.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InstanceCalls = append(f.InstanceCalls, region)
	if f.FailInstances {
		return nil, cloud.NewGatewayError("describe DB instances", region, ErrInjected)
	}
	return append([]models.Instance(nil), f.Instances[region]...), nil
}

func (f *FakeGateway) ListSnapshots(instanceID, region string) ([]models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SnapshotCalls = append(f.SnapshotCalls, instanceID)
	if f.FailSnapshots {
		return nil, cloud.NewGatewayError("describe DB snapshots", region, ErrInjected)
	}
	return append([]models.Snapshot(nil), f.Snapshots[instanceID]...), nil
}

func (f *FakeGateway) RestoreFromSnapshot(req models.RestoreRequest) (*models.RestoreAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RestoreCalls = append(f.RestoreCalls, req)
	if f.FailRestore {
		return nil, cloud.NewGatewayError("restore DB instance", req.Region, ErrInjected)
	}
	return &models.RestoreAck{InstanceIdentifier: req.InstanceIdentifier, Status: "creating"}, nil
}

func (f *FakeGateway) ValidateCredentials() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailRegions {
		return cloud.NewGatewayError("validate credentials", "", ErrInjected)
	}
	return nil
}

// Restores returns a copy of the restore requests received so far
func (f *FakeGateway) Restores() []models.RestoreRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RestoreRequest(nil), f.RestoreCalls...)
}

// SetFailures toggles the failure switches under the lock
func (f *FakeGateway) SetFailures(instances, snapshots, restore bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailInstances = instances
	f.FailSnapshots = snapshots
	f.FailRestore = restore
}
