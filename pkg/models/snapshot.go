package models

import "time"

const (
	// StatusAvailable is the only snapshot status a restore can start from
	StatusAvailable = "available"

	// SecurityGroupActive marks a VPC security group membership that is carried into a restore
	SecurityGroupActive = "active"
)

// Snapshot represents a manual or automated snapshot of an RDS instance
type Snapshot struct {
	Identifier         string    `json:"identifier"`
	InstanceIdentifier string    `json:"instance_identifier"`
	CreatedAt          time.Time `json:"created_at"`
	AllocatedStorage   int64     `json:"allocated_storage"`
	Status             string    `json:"status"`
	AvailabilityZone   string    `json:"availability_zone"`
	Type               string    `json:"type"`
	Hint               RowHint   `json:"hint"`
}

// IsRestorable checks if a new instance can be restored from the snapshot
func (s *Snapshot) IsRestorable() bool {
	return s.Status == StatusAvailable
}
