package models

import "fmt"

// RestoreRequest holds the parameters of a restore-from-snapshot call
type RestoreRequest struct {
	Region                string   `json:"region"`
	InstanceIdentifier    string   `json:"instance_identifier"`
	SnapshotIdentifier    string   `json:"snapshot_identifier"`
	MultiAZ               bool     `json:"multi_az"`
	CertificateIdentifier string   `json:"certificate_identifier"`
	SubnetGroupName       string   `json:"subnet_group_name"`
	ParameterGroupName    string   `json:"parameter_group_name,omitempty"`
	SecurityGroupIDs      []string `json:"security_group_ids"`
}

// RestoreAck is what the cloud returns once it accepted a restore request.
// Acceptance says nothing about completion.
type RestoreAck struct {
	InstanceIdentifier string `json:"instance_identifier"`
	Status             string `json:"status"`
}

// Confirmation is shown to the operator after a restore was submitted
type Confirmation struct {
	SnapshotIdentifier string `json:"snapshot_identifier"`
	InstanceIdentifier string `json:"instance_identifier"`
	Region             string `json:"region"`
}

// Message returns the operator-facing confirmation text
func (c Confirmation) Message() string {
	return fmt.Sprintf("Request to restore snapshot '%s' as '%s' in region '%s' has been sent.",
		c.SnapshotIdentifier, c.InstanceIdentifier, c.Region)
}
