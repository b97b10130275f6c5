package models

// Endpoint is the connection descriptor of a DB instance
type Endpoint struct {
	Address      string `json:"address,omitempty"`
	Port         int64  `json:"port,omitempty"`
	HostedZoneID string `json:"hosted_zone_id,omitempty"`
}

// SubnetGroup references the DB subnet group an instance lives in
type SubnetGroup struct {
	Name   string `json:"name"`
	VpcID  string `json:"vpc_id,omitempty"`
	Status string `json:"status,omitempty"`
}

// SecurityGroup is a VPC security group membership of an instance
type SecurityGroup struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ParameterGroup references a DB parameter group attached to an instance
type ParameterGroup struct {
	Name        string `json:"name"`
	ApplyStatus string `json:"apply_status,omitempty"`
}

// Instance represents an RDS database instance in one region
type Instance struct {
	Identifier            string           `json:"identifier"`
	Status                string           `json:"status"`
	Engine                string           `json:"engine,omitempty"`
	MultiAZ               bool             `json:"multi_az"`
	AllocatedStorage      int64            `json:"allocated_storage"`
	MaxAllocatedStorage   int64            `json:"max_allocated_storage"`
	Endpoint              Endpoint         `json:"endpoint"`
	SubnetGroup           SubnetGroup      `json:"subnet_group"`
	SecurityGroups        []SecurityGroup  `json:"security_groups"`
	CertificateIdentifier string           `json:"certificate_identifier"`
	ParameterGroups       []ParameterGroup `json:"parameter_groups"`
	Hint                  RowHint          `json:"hint"`
}

// ActiveSecurityGroupIDs returns the ids of the security groups whose status is "active",
// in their original order
func (i *Instance) ActiveSecurityGroupIDs() []string {
	ids := make([]string, 0, len(i.SecurityGroups))
	for _, sg := range i.SecurityGroups {
		if sg.Status == SecurityGroupActive {
			ids = append(ids, sg.ID)
		}
	}
	return ids
}

// PrimaryParameterGroup returns the name of the first parameter group.
// RDS restores accept a single parameter group, so the rest are ignored.
func (i *Instance) PrimaryParameterGroup() (string, bool) {
	if len(i.ParameterGroups) == 0 {
		return "", false
	}
	return i.ParameterGroups[0].Name, true
}

// IsAvailable checks if the instance reports the "available" status
func (i *Instance) IsAvailable() bool {
	return i.Status == StatusAvailable
}
