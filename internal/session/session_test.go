package session

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
		ok    bool
	}{
		{"standard", Standard, true},
		{"admin", Admin, true},
		{"", None, false},
		{"root", None, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanPerformLoggedOut(t *testing.T) {
	s := New()
	if !s.CanPerform("login") {
		t.Error("login should be allowed when logged out")
	}
	for _, kind := range []string{"logout", "withdrawal", "deposit", "transfer", "paybill", "create", "delete", "disable", "changeplan"} {
		if s.CanPerform(kind) {
			t.Errorf("%s should not be allowed when logged out", kind)
		}
	}
}

func TestCanPerformStandard(t *testing.T) {
	s := New()
	s.Start(Standard, "Alice")

	for _, kind := range []string{"withdrawal", "deposit", "transfer", "paybill", "logout"} {
		if !s.CanPerform(kind) {
			t.Errorf("%s should be allowed in standard mode", kind)
		}
	}
	for _, kind := range []string{"create", "delete", "disable", "changeplan"} {
		if s.CanPerform(kind) {
			t.Errorf("%s should require admin mode", kind)
		}
	}
}

func TestCanPerformAdmin(t *testing.T) {
	s := New()
	s.Start(Admin, "")

	for _, kind := range []string{"withdrawal", "deposit", "transfer", "paybill", "create", "delete", "disable", "changeplan"} {
		if !s.CanPerform(kind) {
			t.Errorf("%s should be allowed in admin mode", kind)
		}
	}
}

func TestStartResetsTotals(t *testing.T) {
	s := New()
	s.Start(Standard, "Alice")
	s.AddTotal("withdrawal", decimal.NewFromInt(200))
	s.AddTotal("transfer", decimal.NewFromInt(300))
	s.AddTotal("paybill", decimal.NewFromInt(400))

	s.Start(Standard, "Alice")
	if !s.WithdrawalTotal.IsZero() || !s.TransferTotal.IsZero() || !s.PaybillTotal.IsZero() {
		t.Errorf("totals not reset on Start: %v %v %v", s.WithdrawalTotal, s.TransferTotal, s.PaybillTotal)
	}
}

func TestEnd(t *testing.T) {
	s := New()
	s.Start(Admin, "")
	s.AddTotal("withdrawal", decimal.NewFromInt(50))
	s.End()

	if s.LoggedIn {
		t.Error("still logged in after End")
	}
	if s.Mode != None || s.CurrentUser != "" {
		t.Errorf("session state not cleared: mode=%v user=%q", s.Mode, s.CurrentUser)
	}
	if !s.WithdrawalTotal.IsZero() {
		t.Errorf("withdrawal total not cleared: %v", s.WithdrawalTotal)
	}
}

func TestAddTotalAccumulates(t *testing.T) {
	s := New()
	s.Start(Standard, "Alice")
	s.AddTotal("withdrawal", decimal.NewFromInt(100))
	s.AddTotal("withdrawal", decimal.NewFromInt(250))

	if want := decimal.NewFromInt(350); !s.WithdrawalTotal.Equal(want) {
		t.Errorf("WithdrawalTotal = %v, want %v", s.WithdrawalTotal, want)
	}
	if !s.TransferTotal.IsZero() {
		t.Errorf("TransferTotal changed: %v", s.TransferTotal)
	}
}

func TestSessionIDChangesPerLogin(t *testing.T) {
	s := New()
	s.Start(Standard, "Alice")
	first := s.ID
	s.End()
	s.Start(Standard, "Alice")
	if s.ID == first {
		t.Error("session id should be minted fresh on every Start")
	}
}
