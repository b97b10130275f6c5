// Package restore builds restore requests from the current selection and submits them.
package restore

import (
	"errors"
	"fmt"

	"rds-restore/internal/selection"
	"rds-restore/internal/utils"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"

	"github.com/sirupsen/logrus"
)

// ErrNotApproved is returned when Restore is called with a rejected validation result
var ErrNotApproved = errors.New("restore request was not approved")

// BuildRequest derives the restore parameters from the source instance and snapshot.
// The new instance is always single-AZ and takes only the first parameter group.
func BuildRequest(inst *models.Instance, snap *models.Snapshot, name, region string) models.RestoreRequest {
	req := models.RestoreRequest{
		Region:                region,
		InstanceIdentifier:    name,
		SnapshotIdentifier:    snap.Identifier,
		MultiAZ:               false,
		CertificateIdentifier: inst.CertificateIdentifier,
		SubnetGroupName:       inst.SubnetGroup.Name,
		SecurityGroupIDs:      inst.ActiveSecurityGroupIDs(),
	}
	if pg, ok := inst.PrimaryParameterGroup(); ok {
		req.ParameterGroupName = pg
	}
	return req
}

// Orchestrator submits approved restore requests through the gateway
type Orchestrator struct {
	gateway cloud.Gateway
	logger  *logrus.Logger
}

// NewOrchestrator creates an orchestrator. A nil logger discards output.
func NewOrchestrator(gateway cloud.Gateway, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Orchestrator{
		gateway: gateway,
		logger:  logger,
	}
}

// Restore issues a single restore request for the selected instance and snapshot.
// It does not wait for the new instance. On success the proposed name is cleared;
// on failure it is kept so the operator can retry.
func (o *Orchestrator) Restore(reason utils.Reason, st *selection.State, name string) (*models.Confirmation, error) {
	if !reason.Approved() {
		return nil, fmt.Errorf("%w: %s", ErrNotApproved, reason)
	}

	inst, snap := st.SelectedInstance(), st.SelectedSnapshot()
	if inst == nil || snap == nil {
		return nil, fmt.Errorf("%w: nothing selected", ErrNotApproved)
	}

	req := BuildRequest(inst, snap, name, st.Region())
	logger := o.logger.WithFields(logrus.Fields{
		"region":          req.Region,
		"source_instance": inst.Identifier,
		"snapshot":        req.SnapshotIdentifier,
		"new_instance":    req.InstanceIdentifier,
	})
	logger.Info("Submitting restore request")

	ack, err := o.gateway.RestoreFromSnapshot(req)
	if err != nil {
		logger.WithError(err).Warn("Restore request failed")
		return nil, err
	}

	st.ClearProposedName()
	logger.WithField("status", ack.Status).Info("Restore request accepted")

	return &models.Confirmation{
		SnapshotIdentifier: req.SnapshotIdentifier,
		InstanceIdentifier: req.InstanceIdentifier,
		Region:             req.Region,
	}, nil
}
