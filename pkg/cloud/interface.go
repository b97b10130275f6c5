package cloud

import (
	"fmt"

	"rds-restore/pkg/models"
)

// Gateway defines the calls the restore console makes against the cloud.
// Every call blocks until the cloud answered.
type Gateway interface {
	// ListRegions returns the names of the regions the account can use, sorted
	ListRegions() ([]string, error)

	// ListInstances returns the DB instances of a region in the order the cloud reports them
	ListInstances(region string) ([]models.Instance, error)

	// ListSnapshots returns the snapshots of one instance in no particular order
	ListSnapshots(instanceID, region string) ([]models.Snapshot, error)

	// RestoreFromSnapshot submits a restore request; it does not wait for the new instance
	RestoreFromSnapshot(req models.RestoreRequest) (*models.RestoreAck, error)

	// ValidateCredentials checks if the provider credentials are valid
	ValidateCredentials() error
}

// ProviderConfig represents configuration common to all cloud providers
type ProviderConfig struct {
	Region    string
	Profile   string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// GatewayError reports a failed gateway call
type GatewayError struct {
	Op     string
	Region string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s in %s: %v", e.Op, e.Region, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError wraps err as a GatewayError, or returns nil when err is nil
func NewGatewayError(op, region string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Region: region, Err: err}
}
