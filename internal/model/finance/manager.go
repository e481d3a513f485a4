// Package finance implements the tracker core: user registration and login,
// the single-user session, and session-gated record CRUD. Every mutation
// persists the full record set through the storage backend.
package finance

import (
	"context"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

type userStorage interface {
	GetUser(ctx context.Context, username string) (user.User, bool, error)
	SaveUser(ctx context.Context, u user.User) error
}

type recordStorage interface {
	GetRecords(ctx context.Context, username string) ([]record.FinancialRecord, error)
	SaveRecords(ctx context.Context, username string, recs []record.FinancialRecord) error
}

type trackerStorage interface {
	userStorage
	recordStorage
}

type Manager struct {
	storage trackerStorage
	session Session
}

func NewManager(storage trackerStorage) *Manager {
	return &Manager{storage: storage}
}

// Register creates a new user. It does not touch the session; the caller
// still has to log in.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	_, exists, err := m.storage.GetUser(ctx, username)
	if err != nil {
		return errors.Wrap(err, "register")
	}
	if exists {
		return customerr.ErrDuplicateUser
	}
	u := user.User{Username: username, Password: password}
	return errors.Wrap(m.storage.SaveUser(ctx, u), "register")
}

// Authenticate compares the supplied password with the stored one and binds
// the session to the user on success. The comparison is exact and
// case-sensitive.
func (m *Manager) Authenticate(ctx context.Context, username, password string) error {
	u, exists, err := m.storage.GetUser(ctx, username)
	if err != nil {
		return errors.Wrap(err, "authenticate")
	}
	if !exists || u.Password != password {
		return customerr.ErrInvalidCredential
	}
	m.session.Set(u)
	return nil
}

func (m *Manager) Logout() {
	m.session.Clear()
}

// CurrentUser returns the logged-in user or ErrAuthRequired.
func (m *Manager) CurrentUser() (user.User, error) {
	u, ok := m.session.Current()
	if !ok {
		return user.User{}, customerr.ErrAuthRequired
	}
	return u, nil
}

// CurrentUsername is a convenience for callers that only need the name.
func (m *Manager) CurrentUsername() (string, error) {
	u, err := m.CurrentUser()
	return u.Username, err
}

// Add appends a record dated now to the current user's sequence.
func (m *Manager) Add(ctx context.Context, description string, amount float64, category string, t record.Type) error {
	u, err := m.CurrentUser()
	if err != nil {
		return err
	}
	recs, err := m.storage.GetRecords(ctx, u.Username)
	if err != nil {
		return errors.Wrap(err, "add record")
	}
	recs = append(recs, record.New(description, amount, category, t))
	return errors.Wrap(m.storage.SaveRecords(ctx, u.Username, recs), "add record")
}

// Delete removes the record at index; later records shift down by one.
func (m *Manager) Delete(ctx context.Context, index int) error {
	u, err := m.CurrentUser()
	if err != nil {
		return err
	}
	recs, err := m.storage.GetRecords(ctx, u.Username)
	if err != nil {
		return errors.Wrap(err, "delete record")
	}
	if index < 0 || index >= len(recs) {
		return customerr.ErrIndexOutOfRange
	}
	recs = append(recs[:index], recs[index+1:]...)
	return errors.Wrap(m.storage.SaveRecords(ctx, u.Username, recs), "delete record")
}

// Update overwrites the patch's non-nil fields on the record at index.
// The record's date is never touched.
func (m *Manager) Update(ctx context.Context, index int, patch record.Patch) error {
	u, err := m.CurrentUser()
	if err != nil {
		return err
	}
	recs, err := m.storage.GetRecords(ctx, u.Username)
	if err != nil {
		return errors.Wrap(err, "update record")
	}
	if index < 0 || index >= len(recs) {
		return customerr.ErrIndexOutOfRange
	}
	patch.Apply(&recs[index])
	return errors.Wrap(m.storage.SaveRecords(ctx, u.Username, recs), "update record")
}

// List returns the current user's records in insertion order.
func (m *Manager) List(ctx context.Context) ([]record.FinancialRecord, error) {
	u, err := m.CurrentUser()
	if err != nil {
		return nil, err
	}
	recs, err := m.storage.GetRecords(ctx, u.Username)
	return recs, errors.Wrap(err, "list records")
}
