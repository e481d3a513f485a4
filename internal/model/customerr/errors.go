// Package customerr holds the typed errors of the tracker core. Callers
// match them with errors.Is and translate them into user-facing messages.
package customerr

import "github.com/pkg/errors"

var (
	// ErrAuthRequired is returned when an operation needs a logged-in user.
	ErrAuthRequired = errors.New("no user is logged in")

	// ErrDuplicateUser is returned when registering an existing username.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredential is returned when login fails. Unknown username
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredential = errors.New("invalid username or password")

	// ErrIndexOutOfRange is returned when a record index does not address
	// an existing record of the current user.
	ErrIndexOutOfRange = errors.New("invalid record index")

	// ErrInvalidPeriod is returned for report periods other than
	// monthly and weekly.
	ErrInvalidPeriod = errors.New("invalid report period")

	// ErrCorruptStore marks a persisted file that could not be parsed.
	// Loading degrades to an empty store instead of failing startup.
	ErrCorruptStore = errors.New("store file is corrupted")
)
