// Package store loads the current accounts file into memory and answers the
// account questions the validation pipeline asks: does this account exist,
// is it disabled, who owns it, and how much of it is still spendable this
// session.
package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"atm-frontend/internal/domain"
)

// endOfFileName is the sentinel record name that terminates the accounts
// file; anything after it is ignored.
const endOfFileName = "END_OF_FILE"

// Fixed column positions in the current accounts file: account number in
// 0-4, holder name in 6-25, status flag at 27, balance from 29 to end of
// line.
const (
	numberEnd   = 5
	nameStart   = 6
	nameEnd     = 26
	statusPos   = 27
	balanceFrom = 29
)

// Snapshot is the in-memory view of the accounts file for one session. The
// available map tracks the session-local spendable amount per account: it is
// seeded from the loaded balances and only ever reduced by accepted debits.
// Deposits do not touch it. The deleted set records accounts deleted this
// session; their records stay loaded but are refused by validation.
type Snapshot struct {
	accounts  map[string]domain.Account
	available map[string]decimal.Decimal
	deleted   map[string]struct{}
	log       *log.Logger
}

// NewSnapshot returns an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		accounts:  map[string]domain.Account{},
		available: map[string]decimal.Decimal{},
		deleted:   map[string]struct{}{},
		log:       log.NewWithOptions(os.Stderr, log.Options{Prefix: "accounts"}),
	}
}

// Load reads the current accounts file at path, replacing any previously
// loaded state. Blank lines are skipped and reading stops at the
// END_OF_FILE sentinel record. Any error leaves the caller's login attempt
// to roll back; Load itself only reports it.
func (s *Snapshot) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer f.Close()

	s.accounts = map[string]domain.Account{}
	s.available = map[string]decimal.Decimal{}
	s.deleted = map[string]struct{}{}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if nameField(line) == endOfFileName {
			break
		}

		acct, err := parseRecord(line)
		if err != nil {
			return fmt.Errorf("failed to parse accounts file line %d: %w", lineNo, err)
		}
		s.accounts[acct.Number] = acct
		s.available[acct.Number] = acct.Balance
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read accounts file: %w", err)
	}

	s.log.Info("accounts loaded", "path", path, "count", len(s.accounts))
	return nil
}

func nameField(line string) string {
	if len(line) <= nameStart {
		return ""
	}
	end := nameEnd
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[nameStart:end])
}

func parseRecord(line string) (domain.Account, error) {
	if len(line) <= statusPos {
		return domain.Account{}, fmt.Errorf("record too short (%d chars)", len(line))
	}

	number := strings.TrimSpace(line[:numberEnd])
	name := nameField(line)

	status := domain.Active
	if line[statusPos] == 'D' {
		status = domain.Disabled
	}

	balance := decimal.Zero
	if len(line) > balanceFrom {
		text := strings.TrimSpace(line[balanceFrom:])
		if text != "" {
			var err error
			balance, err = decimal.NewFromString(text)
			if err != nil {
				return domain.Account{}, fmt.Errorf("bad balance %q: %w", text, err)
			}
		}
	}

	return domain.Account{Number: number, Holder: name, Status: status, Balance: balance}, nil
}

// Exists reports whether the account number was loaded.
func (s *Snapshot) Exists(number string) bool {
	_, ok := s.accounts[number]
	return ok
}

// IsDisabled reports whether the account is disabled. Unknown accounts are
// treated as disabled.
func (s *Snapshot) IsDisabled(number string) bool {
	acct, ok := s.accounts[number]
	if !ok {
		return true
	}
	return acct.Status == domain.Disabled
}

// OwnerName returns the holder name for an account; ok is false when the
// account is unknown.
func (s *Snapshot) OwnerName(number string) (string, bool) {
	acct, ok := s.accounts[number]
	if !ok {
		return "", false
	}
	return acct.Holder, true
}

// IsOwner reports whether the account exists and belongs to user.
func (s *Snapshot) IsOwner(user, number string) bool {
	acct, ok := s.accounts[number]
	if !ok {
		return false
	}
	return acct.Holder == user
}

// Balance returns the raw loaded balance, distinct from the session's
// available balance.
func (s *Snapshot) Balance(number string) (decimal.Decimal, bool) {
	acct, ok := s.accounts[number]
	if !ok {
		return decimal.Zero, false
	}
	return acct.Balance, true
}

// SetBalance updates the in-memory balance. No effect for unknown accounts.
func (s *Snapshot) SetBalance(number string, v decimal.Decimal) {
	acct, ok := s.accounts[number]
	if !ok {
		return
	}
	acct.Balance = v
	s.accounts[number] = acct
}

// Available returns the session-local spendable amount for an account.
func (s *Snapshot) Available(number string) (decimal.Decimal, bool) {
	v, ok := s.available[number]
	return v, ok
}

// SetAvailable updates the session-local spendable amount.
func (s *Snapshot) SetAvailable(number string, v decimal.Decimal) {
	s.available[number] = v
}

// MarkDeleted records that the account was deleted this session. The record
// stays loaded but validation refuses it from now on.
func (s *Snapshot) MarkDeleted(number string) {
	s.deleted[number] = struct{}{}
}

// IsDeleted reports whether the account was deleted this session.
func (s *Snapshot) IsDeleted(number string) bool {
	_, ok := s.deleted[number]
	return ok
}
