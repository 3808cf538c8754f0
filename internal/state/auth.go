package state

import "github.com/mfcruz/gestor/internal/model"

// SetUser installs the logged-in user.
func (s State) SetUser(u model.User) State {
	next := s
	next.Auth.User = &u

	return next
}

// ClearUser drops the session user.
func (s State) ClearUser() State {
	next := s
	next.Auth.User = nil

	return next
}

// UpdateProfile replaces the user's mutable profile fields. No-op when
// nobody is logged in.
func (s State) UpdateProfile(u model.User) State {
	if s.Auth.User == nil {
		return s
	}

	return s.SetUser(u)
}

// UpdateFiscalInfo changes the user's fiscal classification. No-op when
// nobody is logged in.
func (s State) UpdateFiscalInfo(businessType model.BusinessType, regime model.FiscalRegime) State {
	if s.Auth.User == nil {
		return s
	}

	u := *s.Auth.User
	u.BusinessType = businessType
	u.FiscalRegime = regime

	next := s
	next.Auth.User = &u

	return next
}
