package finance

import "max.ks1230/finance-tracker/internal/entity/user"

// Session holds at most one authenticated user. The zero value is the
// unauthenticated state.
type Session struct {
	current *user.User
}

func (s *Session) Set(u user.User) {
	s.current = &u
}

func (s *Session) Clear() {
	s.current = nil
}

func (s *Session) Current() (user.User, bool) {
	if s.current == nil {
		return user.User{}, false
	}
	return *s.current, true
}
