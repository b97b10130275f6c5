package selection_test

import (
	"testing"
	"time"

	"rds-restore/internal/selection"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/cloud/cloudtest"
	"rds-restore/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 = t1.Add(24 * time.Hour)
	t3 = t2.Add(24 * time.Hour)
)

func newGateway() *cloudtest.FakeGateway {
	gw := cloudtest.NewFakeGateway()
	gw.Instances["us-east-1"] = []models.Instance{
		{Identifier: "db-a", Status: "available"},
		{Identifier: "db-b", Status: "available"},
		{Identifier: "db-c", Status: "stopped"},
	}
	gw.Instances["eu-west-1"] = []models.Instance{
		{Identifier: "db-eu", Status: "available"},
	}
	gw.Snapshots["db-a"] = []models.Snapshot{
		{Identifier: "snap-t1", InstanceIdentifier: "db-a", CreatedAt: t1, Status: "available"},
		{Identifier: "snap-t3", InstanceIdentifier: "db-a", CreatedAt: t3, Status: "available"},
		{Identifier: "snap-t2", InstanceIdentifier: "db-a", CreatedAt: t2, Status: "creating"},
	}
	gw.Snapshots["db-b"] = []models.Snapshot{
		{Identifier: "snap-b", InstanceIdentifier: "db-b", CreatedAt: t1, Status: "available"},
	}
	return gw
}

// assertNoDangling checks that both selections point into the current lists
func assertNoDangling(t *testing.T, st *selection.State) {
	t.Helper()

	if sel := st.SelectedInstance(); sel != nil {
		found := false
		for i := range st.Instances() {
			if &st.Instances()[i] == sel {
				found = true
			}
		}
		assert.True(t, found, "selected instance %s is not in the instance list", sel.Identifier)
	}
	if sel := st.SelectedSnapshot(); sel != nil {
		found := false
		for i := range st.Snapshots() {
			if &st.Snapshots()[i] == sel {
				found = true
			}
		}
		assert.True(t, found, "selected snapshot %s is not in the snapshot list", sel.Identifier)
	}
}

func selectedState(t *testing.T, gw *cloudtest.FakeGateway) *selection.State {
	t.Helper()
	st := selection.New(gw, "us-east-1")
	require.NoError(t, st.Refresh())
	require.NoError(t, st.SelectInstance(0))
	require.NoError(t, st.SelectSnapshot(1))
	assertNoDangling(t, st)
	return st
}

func TestNew_DefaultRegion(t *testing.T) {
	st := selection.New(cloudtest.NewFakeGateway(), "")
	assert.Equal(t, "us-east-1", st.Region())
	assert.Nil(t, st.SelectedInstance())
	assert.Nil(t, st.SelectedSnapshot())
}

func TestLoadRegions(t *testing.T) {
	gw := newGateway()
	st := selection.New(gw, "")

	require.NoError(t, st.LoadRegions())
	assert.Equal(t, []string{"eu-west-1", "us-east-1", "us-west-2"}, st.Regions())

	gw.FailRegions = true
	err := st.LoadRegions()
	var gwErr *cloud.GatewayError
	assert.ErrorAs(t, err, &gwErr)
	assert.Empty(t, st.Regions())
}

func TestChangeRegion_ClearsEverything(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	require.NoError(t, st.ChangeRegion("eu-west-1"))

	assert.Equal(t, "eu-west-1", st.Region())
	assert.Empty(t, st.Snapshots())
	assert.Nil(t, st.SelectedSnapshot())
	assert.Nil(t, st.SelectedInstance())
	require.Len(t, st.Instances(), 1)
	assert.Equal(t, "db-eu", st.Instances()[0].Identifier)
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, gw.InstanceCalls)
	assertNoDangling(t, st)
}

func TestChangeRegionIndex(t *testing.T) {
	gw := newGateway()
	st := selection.New(gw, "")
	require.NoError(t, st.LoadRegions())

	require.NoError(t, st.ChangeRegionIndex(0))
	assert.Equal(t, "eu-west-1", st.Region())

	err := st.ChangeRegionIndex(7)
	assert.ErrorIs(t, err, selection.ErrIndexOutOfRange)
	assert.Equal(t, "eu-west-1", st.Region())
}

func TestRefresh_KeepsRegionAndClearsSelections(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	require.NoError(t, st.Refresh())

	assert.Equal(t, "us-east-1", st.Region())
	assert.Len(t, st.Instances(), 3)
	assert.Empty(t, st.Snapshots())
	assert.Nil(t, st.SelectedSnapshot())
	assert.Nil(t, st.SelectedInstance())
	assertNoDangling(t, st)
}

func TestRefresh_FailureLeavesListsEmpty(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	gw.SetFailures(true, false, false)
	err := st.Refresh()

	var gwErr *cloud.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Empty(t, st.Instances())
	assert.Empty(t, st.Snapshots())
	assert.Nil(t, st.SelectedInstance())
	assert.Nil(t, st.SelectedSnapshot())
}

func TestSelectInstance_SortsNewestFirstWithHints(t *testing.T) {
	gw := newGateway()
	st := selection.New(gw, "us-east-1")
	require.NoError(t, st.Refresh())

	require.NoError(t, st.SelectInstance(0))

	snaps := st.Snapshots()
	require.Len(t, snaps, 3)
	assert.Equal(t, []time.Time{t3, t2, t1}, []time.Time{snaps[0].CreatedAt, snaps[1].CreatedAt, snaps[2].CreatedAt})
	assert.Equal(t, []models.RowHint{models.HintEven, models.HintOdd, models.HintEven},
		[]models.RowHint{snaps[0].Hint, snaps[1].Hint, snaps[2].Hint})
	assert.Equal(t, "db-a", st.SelectedInstance().Identifier)
	assert.Nil(t, st.SelectedSnapshot())
	assert.Equal(t, []string{"db-a"}, gw.SnapshotCalls)
}

func TestSelectInstance_EqualTimestampsKeepGatewayOrder(t *testing.T) {
	gw := newGateway()
	gw.Snapshots["db-a"] = []models.Snapshot{
		{Identifier: "first", CreatedAt: t1},
		{Identifier: "newest", CreatedAt: t2},
		{Identifier: "second", CreatedAt: t1},
		{Identifier: "third", CreatedAt: t1},
	}
	st := selection.New(gw, "us-east-1")
	require.NoError(t, st.Refresh())
	require.NoError(t, st.SelectInstance(0))

	var ids []string
	for _, s := range st.Snapshots() {
		ids = append(ids, s.Identifier)
	}
	assert.Equal(t, []string{"newest", "first", "second", "third"}, ids)
}

func TestSelectInstance_SwitchDropsPreviousSnapshot(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	require.NoError(t, st.SelectInstance(1))

	assert.Equal(t, "db-b", st.SelectedInstance().Identifier)
	assert.Nil(t, st.SelectedSnapshot())
	require.Len(t, st.Snapshots(), 1)
	assert.Equal(t, "snap-b", st.Snapshots()[0].Identifier)
	assertNoDangling(t, st)
}

func TestSelectInstance_FetchFailure(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	gw.SetFailures(false, true, false)
	err := st.SelectInstance(1)

	require.Error(t, err)
	assert.Equal(t, "db-b", st.SelectedInstance().Identifier)
	assert.Empty(t, st.Snapshots())
	assert.Nil(t, st.SelectedSnapshot())
	assertNoDangling(t, st)
}

func TestSelectInstance_OutOfRange(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)

	for _, idx := range []int{-1, 3} {
		err := st.SelectInstance(idx)
		assert.ErrorIs(t, err, selection.ErrIndexOutOfRange)
	}
	// a rejected index leaves the state untouched
	assert.Equal(t, "db-a", st.SelectedInstance().Identifier)
	assert.NotNil(t, st.SelectedSnapshot())
}

func TestSelectSnapshot(t *testing.T) {
	gw := newGateway()
	st := selection.New(gw, "us-east-1")
	require.NoError(t, st.Refresh())
	require.NoError(t, st.SelectInstance(0))

	require.NoError(t, st.SelectSnapshot(2))
	assert.Equal(t, "snap-t1", st.SelectedSnapshot().Identifier)
	assert.Len(t, gw.SnapshotCalls, 1)

	assert.ErrorIs(t, st.SelectSnapshot(3), selection.ErrIndexOutOfRange)
	assertNoDangling(t, st)
}

func TestDuplicateIdentifiersAreDropped(t *testing.T) {
	gw := newGateway()
	gw.Instances["us-east-1"] = []models.Instance{
		{Identifier: "db-a", Status: "available"},
		{Identifier: "db-a", Status: "stopped"},
		{Identifier: "db-b"},
	}
	st := selection.New(gw, "us-east-1")
	require.NoError(t, st.Refresh())

	require.Len(t, st.Instances(), 2)
	assert.Equal(t, "available", st.Instances()[0].Status)
	assert.Equal(t, models.HintOdd, st.Instances()[1].Hint)
}

func TestView(t *testing.T) {
	gw := newGateway()
	st := selectedState(t, gw)
	st.SetProposedName("restored-db")

	v := st.View()
	assert.Equal(t, "us-east-1", v.Region)
	assert.Equal(t, 0, v.SelectedInstance)
	assert.Equal(t, 1, v.SelectedSnapshot)
	assert.Equal(t, "restored-db", v.ProposedName)

	// the view is a copy
	v.Instances[0].Identifier = "changed"
	assert.Equal(t, "db-a", st.Instances()[0].Identifier)

	require.NoError(t, st.Refresh())
	v = st.View()
	assert.Equal(t, -1, v.SelectedInstance)
	assert.Equal(t, -1, v.SelectedSnapshot)
	assert.NotNil(t, v.Snapshots)
}

func TestIndexLookups(t *testing.T) {
	st := selectedState(t, newGateway())

	assert.Equal(t, 1, st.InstanceIndex("db-b"))
	assert.Equal(t, -1, st.InstanceIndex("nope"))
	assert.True(t, st.HasInstance("db-c"))
	assert.Equal(t, 0, st.SnapshotIndex("snap-t3"))
	assert.Equal(t, -1, st.SnapshotIndex("snap-b"))
}
