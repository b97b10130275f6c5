// Package controller turns presentation events into selection transitions, validation
// and restore submissions, and reports the outcome of each event.
package controller

import (
	"errors"
	"fmt"

	"rds-restore/internal/restore"
	"rds-restore/internal/selection"
	"rds-restore/internal/utils"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"
	"rds-restore/pkg/storage"

	"github.com/sirupsen/logrus"
)

// ErrUnknownEvent is reported as a defect for an event kind the controller does not handle
var ErrUnknownEvent = errors.New("unknown event")

// EventKind identifies what the operator did
type EventKind int

const (
	SelectRegion EventKind = iota
	ClickRefresh
	ClickInstanceRow
	ClickSnapshotRow
	ClickRestore
	WindowClosing
)

var eventNames = map[EventKind]string{
	SelectRegion:     "SelectRegion",
	ClickRefresh:     "ClickRefresh",
	ClickInstanceRow: "ClickInstanceRow",
	ClickSnapshotRow: "ClickSnapshotRow",
	ClickRestore:     "ClickRestore",
	WindowClosing:    "WindowClosing",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one operator action. Index is used by the row and region events,
// Name by ClickRestore.
type Event struct {
	Kind  EventKind
	Index int
	Name  string
}

// Outcome is what the presentation shows after an event.
//
// Message is the text of a message box, empty when none is needed. Defect marks an
// event the presentation should never have produced; it carries no message.
type Outcome struct {
	Message      string
	Err          error
	Defect       bool
	Closed       bool
	Confirmation *models.Confirmation
}

// Controller owns the selection state of one session. It is not safe for
// concurrent use; see Loop.
type Controller struct {
	state        *selection.State
	orchestrator *restore.Orchestrator
	activity     *storage.ActivityLog
	logger       *logrus.Logger
	closed       bool
}

// New creates a controller for a session starting in region
func New(gateway cloud.Gateway, region string, activity *storage.ActivityLog, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	if activity == nil {
		activity = storage.NewActivityLog()
	}
	return &Controller{
		state:        selection.New(gateway, region),
		orchestrator: restore.NewOrchestrator(gateway, logger),
		activity:     activity,
		logger:       logger,
	}
}

// Activity returns the activity log of the session
func (c *Controller) Activity() *storage.ActivityLog {
	return c.activity
}

// View returns a render copy of the selection state
func (c *Controller) View() selection.View {
	return c.state.View()
}

// Closed reports whether WindowClosing was received
func (c *Controller) Closed() bool {
	return c.closed
}

// Open loads the region list and the instances of the starting region
func (c *Controller) Open() Outcome {
	c.logger.WithField("region", c.state.Region()).Info("Opening restore session")
	c.activity.Append(storage.KindSession, c.state.Region(), "Session started")

	if err := c.state.LoadRegions(); err != nil {
		return c.fail(err)
	}
	if err := c.state.Refresh(); err != nil {
		return c.fail(err)
	}

	c.logger.WithFields(logrus.Fields{
		"regions":   len(c.state.Regions()),
		"instances": len(c.state.Instances()),
	}).Debug("Session opened")
	return Outcome{}
}

// Dispatch handles one event to completion
func (c *Controller) Dispatch(ev Event) Outcome {
	if c.closed {
		return Outcome{Closed: true}
	}

	c.logger.WithFields(logrus.Fields{
		"event": ev.Kind,
		"index": ev.Index,
	}).Debug("Dispatching event")

	switch ev.Kind {
	case SelectRegion:
		return c.selectRegion(ev.Index)
	case ClickRefresh:
		return c.refresh()
	case ClickInstanceRow:
		return c.selectInstance(ev.Index)
	case ClickSnapshotRow:
		return c.selectSnapshot(ev.Index)
	case ClickRestore:
		return c.restore(ev.Name)
	case WindowClosing:
		c.logger.Info("User requested exit")
		c.activity.Append(storage.KindSession, c.state.Region(), "Session ended")
		c.closed = true
		return Outcome{Closed: true}
	default:
		return c.fail(fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind))
	}
}

func (c *Controller) selectRegion(index int) Outcome {
	if err := c.state.ChangeRegionIndex(index); err != nil {
		return c.fail(err)
	}

	region := c.state.Region()
	c.logger.WithFields(logrus.Fields{
		"region":    region,
		"instances": len(c.state.Instances()),
	}).Info("Switched region")
	c.activity.Append(storage.KindRegion, region, fmt.Sprintf("Switched to region %s", region))
	return Outcome{}
}

func (c *Controller) refresh() Outcome {
	if err := c.state.Refresh(); err != nil {
		return c.fail(err)
	}

	c.logger.WithFields(logrus.Fields{
		"region":    c.state.Region(),
		"instances": len(c.state.Instances()),
	}).Info("Refreshed instances")
	c.activity.Append(storage.KindRegion, c.state.Region(),
		fmt.Sprintf("Refreshed %d instances", len(c.state.Instances())))
	return Outcome{}
}

func (c *Controller) selectInstance(index int) Outcome {
	if err := c.state.SelectInstance(index); err != nil {
		return c.fail(err)
	}

	inst := c.state.SelectedInstance()
	c.logger.WithFields(logrus.Fields{
		"instance":  inst.Identifier,
		"snapshots": len(c.state.Snapshots()),
	}).Info("Selected instance")
	c.activity.Append(storage.KindSelection, c.state.Region(),
		fmt.Sprintf("Selected instance %s (%d snapshots)", inst.Identifier, len(c.state.Snapshots())))
	return Outcome{}
}

func (c *Controller) selectSnapshot(index int) Outcome {
	if err := c.state.SelectSnapshot(index); err != nil {
		return c.fail(err)
	}

	snap := c.state.SelectedSnapshot()
	c.logger.WithFields(logrus.Fields{
		"snapshot": snap.Identifier,
		"status":   snap.Status,
	}).Info("Selected snapshot")
	c.activity.Append(storage.KindSelection, c.state.Region(),
		fmt.Sprintf("Selected snapshot %s", snap.Identifier))
	return Outcome{}
}

func (c *Controller) restore(name string) Outcome {
	c.state.SetProposedName(name)

	reason := utils.ValidateRestore(c.state, name)
	if !reason.Approved() {
		msg := reason.Message(name)
		c.logger.WithFields(logrus.Fields{
			"reason": reason,
			"name":   name,
		}).Info("Restore request rejected")
		c.activity.Append(storage.KindRejection, c.state.Region(), msg)
		return Outcome{Message: msg}
	}

	conf, err := c.orchestrator.Restore(reason, c.state, name)
	if err != nil {
		return c.fail(err)
	}

	msg := conf.Message()
	c.activity.Append(storage.KindRestore, conf.Region, msg)
	return Outcome{Message: msg, Confirmation: conf}
}

// fail turns an error into an outcome. Index and unknown-event errors are defects
// and are not shown to the operator.
func (c *Controller) fail(err error) Outcome {
	if errors.Is(err, selection.ErrIndexOutOfRange) || errors.Is(err, ErrUnknownEvent) {
		c.logger.WithError(err).WithField("defect", true).Error("Rejected event from presentation")
		c.activity.Append(storage.KindDefect, c.state.Region(), err.Error())
		return Outcome{Err: err, Defect: true}
	}

	c.logger.WithError(err).WithField("region", c.state.Region()).Error("Gateway call failed")
	c.activity.Append(storage.KindGateway, c.state.Region(), err.Error())
	return Outcome{Message: err.Error(), Err: err}
}
