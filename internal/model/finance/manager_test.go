package finance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/storage"
)

type filesConfig struct {
	users   string
	records string
}

func (c filesConfig) UsersFile() string   { return c.users }
func (c filesConfig) RecordsFile() string { return c.records }

func newTestManager(t *testing.T) *Manager {
	dir := t.TempDir()
	store := storage.NewFileStorage(filesConfig{
		users:   filepath.Join(dir, "users.json"),
		records: filepath.Join(dir, "finance.json"),
	})
	return NewManager(store)
}

func loggedInManager(t *testing.T) *Manager {
	ctx := context.Background()
	m := newTestManager(t)
	require.NoError(t, m.Register(ctx, "alice", "s3cret"))
	require.NoError(t, m.Authenticate(ctx, "alice", "s3cret"))
	return m
}

func Test_OnSecondRegister_ShouldFailAndKeepFirstPassword(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	require.NoError(t, m.Register(ctx, "alice", "first"))
	err := m.Register(ctx, "alice", "second")
	assert.ErrorIs(t, err, customerr.ErrDuplicateUser)

	assert.NoError(t, m.Authenticate(ctx, "alice", "first"))
}

func Test_OnAuthenticate_ShouldSetSessionOnlyOnExactMatch(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	require.NoError(t, m.Register(ctx, "alice", "s3cret"))

	err := m.Authenticate(ctx, "alice", "S3CRET")
	assert.ErrorIs(t, err, customerr.ErrInvalidCredential)
	_, err = m.CurrentUser()
	assert.ErrorIs(t, err, customerr.ErrAuthRequired)

	err = m.Authenticate(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, customerr.ErrInvalidCredential)

	require.NoError(t, m.Authenticate(ctx, "alice", "s3cret"))
	u, err := m.CurrentUser()
	assert.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func Test_OnLogout_ShouldClearSession(t *testing.T) {
	m := loggedInManager(t)

	m.Logout()

	_, err := m.CurrentUser()
	assert.ErrorIs(t, err, customerr.ErrAuthRequired)
}

func Test_WithoutSession_ShouldRejectRecordOperations(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	assert.ErrorIs(t, m.Add(ctx, "salary", 100, "work", record.Income), customerr.ErrAuthRequired)
	assert.ErrorIs(t, m.Delete(ctx, 0), customerr.ErrAuthRequired)
	assert.ErrorIs(t, m.Update(ctx, 0, record.Patch{}), customerr.ErrAuthRequired)
	_, err := m.List(ctx)
	assert.ErrorIs(t, err, customerr.ErrAuthRequired)
}

func Test_OnAdd_ShouldListInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := loggedInManager(t)

	require.NoError(t, m.Add(ctx, "salary", 100, "work", record.Income))
	require.NoError(t, m.Add(ctx, "groceries", 30, "food", record.Expense))
	require.NoError(t, m.Add(ctx, "rent", 50, "housing", record.Expense))

	recs, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "salary", recs[0].Description)
	assert.Equal(t, "groceries", recs[1].Description)
	assert.Equal(t, "rent", recs[2].Description)
}

func Test_OnDelete_ShouldShiftLaterIndicesDown(t *testing.T) {
	ctx := context.Background()
	m := loggedInManager(t)

	require.NoError(t, m.Add(ctx, "a", 1, "c", record.Expense))
	require.NoError(t, m.Add(ctx, "b", 2, "c", record.Expense))
	require.NoError(t, m.Add(ctx, "c", 3, "c", record.Expense))

	require.NoError(t, m.Delete(ctx, 1))

	recs, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Description)
	assert.Equal(t, "c", recs[1].Description)
}

func Test_OnOutOfRangeDelete_ShouldFailAndKeepRecords(t *testing.T) {
	ctx := context.Background()
	m := loggedInManager(t)

	require.NoError(t, m.Add(ctx, "a", 1, "c", record.Expense))

	assert.ErrorIs(t, m.Delete(ctx, 1), customerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.Delete(ctx, -1), customerr.ErrIndexOutOfRange)

	recs, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func Test_OnPartialUpdate_ShouldKeepOtherFields(t *testing.T) {
	ctx := context.Background()
	m := loggedInManager(t)

	require.NoError(t, m.Add(ctx, "groceries", 30, "food", record.Expense))
	before, err := m.List(ctx)
	require.NoError(t, err)

	amount := 45.0
	require.NoError(t, m.Update(ctx, 0, record.Patch{Amount: &amount}))

	after, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 45.0, after[0].Amount)
	assert.Equal(t, before[0].Description, after[0].Description)
	assert.Equal(t, before[0].Category, after[0].Category)
	assert.Equal(t, before[0].Type, after[0].Type)
	assert.Equal(t, before[0].Date, after[0].Date)
}

func Test_OnOutOfRangeUpdate_ShouldFail(t *testing.T) {
	ctx := context.Background()
	m := loggedInManager(t)

	amount := 45.0
	assert.ErrorIs(t, m.Update(ctx, 0, record.Patch{Amount: &amount}), customerr.ErrIndexOutOfRange)
}
