package session

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mode is the session type chosen at login.
type Mode int

const (
	None Mode = iota
	Standard
	Admin
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Admin:
		return "admin"
	default:
		return "none"
	}
}

// ParseMode maps the session type entered at the login prompt to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "standard":
		return Standard, true
	case "admin":
		return Admin, true
	default:
		return None, false
	}
}

// State remembers what state the front end is in: whether anyone is logged
// in, in which mode, as which user, and how much has been withdrawn,
// transferred and paid in bills so far this session.
type State struct {
	LoggedIn    bool
	Mode        Mode
	CurrentUser string

	// ID identifies the session in diagnostics; minted on every Start.
	ID uuid.UUID

	WithdrawalTotal decimal.Decimal
	TransferTotal   decimal.Decimal
	PaybillTotal    decimal.Decimal
}

// New returns a State in the logged-out state with zero totals.
func New() *State {
	s := &State{}
	s.resetTotals()
	return s
}

// Start begins a new session and resets all totals. The caller must already
// have verified that nobody is logged in.
func (s *State) Start(mode Mode, user string) {
	s.LoggedIn = true
	s.Mode = mode
	s.CurrentUser = user
	s.ID = uuid.New()
	s.resetTotals()
}

// End returns the state to logged out and zeroes the totals.
func (s *State) End() {
	s.LoggedIn = false
	s.Mode = None
	s.CurrentUser = ""
	s.resetTotals()
}

func (s *State) IsAdmin() bool {
	return s.Mode == Admin
}

// CanPerform decides whether a transaction kind is allowed in the current
// state. When logged out only "login" is allowed; the privileged kinds
// require admin mode; everything else is allowed in both modes. Pure
// decision, no side effects.
func (s *State) CanPerform(kind string) bool {
	if !s.LoggedIn {
		return kind == "login"
	}
	switch kind {
	case "create", "delete", "disable", "changeplan":
		return s.IsAdmin()
	}
	return true
}

// AddTotal adds amount to the named running total. It does not enforce the
// session limits; the engine checks those before accepting a transaction.
func (s *State) AddTotal(kind string, amount decimal.Decimal) {
	switch kind {
	case "withdrawal":
		s.WithdrawalTotal = s.WithdrawalTotal.Add(amount)
	case "transfer":
		s.TransferTotal = s.TransferTotal.Add(amount)
	case "paybill":
		s.PaybillTotal = s.PaybillTotal.Add(amount)
	}
}

func (s *State) resetTotals() {
	s.WithdrawalTotal = decimal.Zero
	s.TransferTotal = decimal.Zero
	s.PaybillTotal = decimal.Zero
}
