package user

// User is an account in the tracker. The password is stored and compared
// as plain text, matching the persisted users file format.
type User struct {
	Username string
	Password string
}
