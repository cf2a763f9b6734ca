// Package engine decides whether a command is accepted. Every money or
// admin command runs an ordered rejection pipeline; the first failing check
// rejects the command with no mutation, and an accepted command applies all
// of its side effects together.
package engine

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"atm-frontend/internal/domain"
	"atm-frontend/internal/record"
	"atm-frontend/internal/session"
	"atm-frontend/internal/store"
)

// Per-session limits for standard mode. Admin sessions are uncapped.
var (
	withdrawalLimit = decimal.NewFromInt(500)
	transferLimit   = decimal.NewFromInt(1000)
	paybillLimit    = decimal.NewFromInt(2000)
)

// billCompanies is the fixed set of accepted paybill company codes.
var billCompanies = map[string]struct{}{
	"EC": {},
	"CQ": {},
	"FI": {},
}

// Engine owns all session state: the session itself, the account snapshot,
// and the ordered list of accepted transactions waiting to be written at
// logout. One Engine serves one operator; nothing here is safe for
// concurrent use and nothing needs to be.
type Engine struct {
	session  *session.State
	accounts *store.Snapshot
	pending  []domain.Transaction
	log      *log.Logger
}

// New returns an Engine in the logged-out state.
func New() *Engine {
	return &Engine{
		session:  session.New(),
		accounts: store.NewSnapshot(),
		log:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine"}),
	}
}

// Session exposes the session state, mainly so the command loop can decide
// what to prompt for and so tests can assert on totals.
func (e *Engine) Session() *session.State { return e.session }

// Accounts exposes the account snapshot.
func (e *Engine) Accounts() *store.Snapshot { return e.accounts }

// Pending returns the accepted transactions not yet written.
func (e *Engine) Pending() []domain.Transaction { return e.pending }

// Login starts a session and loads the accounts file. A load failure is
// fatal to the login attempt only: the session rolls back to logged out and
// the engine keeps accepting commands.
func (e *Engine) Login(mode session.Mode, user, accountsPath string) error {
	if e.session.LoggedIn {
		return ErrAlreadyLoggedIn
	}
	if mode != session.Standard && mode != session.Admin {
		return ErrInvalidSession
	}

	e.session.Start(mode, user)
	if err := e.accounts.Load(accountsPath); err != nil {
		e.log.Error("accounts load failed, rolling back login", "path", accountsPath, "err", err)
		e.session.End()
		return ErrAccountsLoad
	}

	e.log.Info("session started", "session_id", e.session.ID, "mode", mode, "user", user)
	return nil
}

// Logout writes the daily transaction file (all accepted transactions plus
// the end-of-session record, fully rewriting the file), clears the pending
// list, and ends the session.
func (e *Engine) Logout(outputPath string) error {
	if !e.session.LoggedIn {
		return ErrNotLoggedIn
	}

	if err := record.Write(outputPath, e.pending); err != nil {
		e.log.Error("transaction file write failed", "path", outputPath, "err", err)
		return ErrRecordWrite
	}

	e.log.Info("session ended", "session_id", e.session.ID, "transactions", len(e.pending))
	e.pending = nil
	e.session.End()
	return nil
}

// Withdrawal validates and records a withdrawal. The per-session limit is
// checked before the account, so a limit rejection can surface even for an
// account that would itself be invalid.
func (e *Engine) Withdrawal(holder, acct string, amount decimal.Decimal) error {
	if !e.session.CanPerform("withdrawal") {
		return ErrNotAllowed
	}
	if err := e.checkLimit(e.session.WithdrawalTotal, amount, withdrawalLimit, ErrWithdrawalLimit); err != nil {
		return err
	}
	if err := e.checkAccountForUser(holder, acct); err != nil {
		return err
	}
	if err := e.checkAvailable(acct, amount); err != nil {
		return err
	}

	e.accept(domain.Transaction{
		Code:          domain.CodeWithdrawal,
		Holder:        holder,
		SourceAccount: acct,
		Amount:        amount,
	})
	e.debit(acct, amount)
	if !e.session.IsAdmin() {
		e.session.AddTotal("withdrawal", amount)
	}
	return nil
}

// Deposit validates and records a deposit. The deposited funds are not
// available within this session, so the available balance is left alone.
func (e *Engine) Deposit(holder, acct string, amount decimal.Decimal) error {
	if !e.session.CanPerform("deposit") {
		return ErrNotAllowed
	}
	if err := e.checkAccountForUser(holder, acct); err != nil {
		return err
	}

	e.accept(domain.Transaction{
		Code:          domain.CodeDeposit,
		Holder:        holder,
		SourceAccount: acct,
		Amount:        amount,
	})
	return nil
}

// Transfer validates and records a transfer. The destination only has to
// exist; it is not checked for deleted or disabled status the way the
// source is.
func (e *Engine) Transfer(holder, from, to string, amount decimal.Decimal) error {
	if !e.session.CanPerform("transfer") {
		return ErrNotAllowed
	}
	if err := e.checkLimit(e.session.TransferTotal, amount, transferLimit, ErrTransferLimit); err != nil {
		return err
	}
	if err := e.checkAccountForUser(holder, from); err != nil {
		return err
	}
	if !e.accounts.Exists(to) {
		return ErrNoSuchDestination
	}
	if err := e.checkAvailable(from, amount); err != nil {
		return err
	}

	e.accept(domain.Transaction{
		Code:               domain.CodeTransfer,
		Holder:             holder,
		SourceAccount:      from,
		DestinationAccount: to,
		Amount:             amount,
	})
	e.debit(from, amount)
	if !e.session.IsAdmin() {
		e.session.AddTotal("transfer", amount)
	}
	return nil
}

// PayBill validates and records a bill payment. The company code is checked
// before the session limit.
func (e *Engine) PayBill(holder, acct, company string, amount decimal.Decimal) error {
	if !e.session.CanPerform("paybill") {
		return ErrNotAllowed
	}
	if _, ok := billCompanies[company]; !ok {
		return ErrInvalidCompany
	}
	if err := e.checkLimit(e.session.PaybillTotal, amount, paybillLimit, ErrPaybillLimit); err != nil {
		return err
	}
	if err := e.checkAccountForUser(holder, acct); err != nil {
		return err
	}
	if err := e.checkAvailable(acct, amount); err != nil {
		return err
	}

	e.accept(domain.Transaction{
		Code:          domain.CodePaybill,
		Holder:        holder,
		SourceAccount: acct,
		Amount:        amount,
		Misc:          company,
	})
	e.debit(acct, amount)
	if !e.session.IsAdmin() {
		e.session.AddTotal("paybill", amount)
	}
	return nil
}

// Create records a new-account request. Admin only. The account itself is
// created by the downstream batch run, so no balances change here.
func (e *Engine) Create(holder string, initial decimal.Decimal) error {
	if !e.session.CanPerform("create") {
		return ErrNotAllowed
	}

	e.accept(domain.Transaction{
		Code:   domain.CodeCreate,
		Holder: holder,
		Amount: initial,
	})
	return nil
}

// Delete records an account deletion. Admin only. The account also goes
// into the session's deleted set so nothing else can use it for the rest of
// the session, even though the record stays loaded.
func (e *Engine) Delete(holder, acct string) error {
	if !e.session.CanPerform("delete") {
		return ErrNotAllowed
	}

	e.accept(domain.Transaction{
		Code:          domain.CodeDelete,
		Holder:        holder,
		SourceAccount: acct,
	})
	e.accounts.MarkDeleted(acct)
	return nil
}

// Disable records an account disable request. Admin only.
func (e *Engine) Disable(holder, acct string) error {
	if !e.session.CanPerform("disable") {
		return ErrNotAllowed
	}

	e.accept(domain.Transaction{
		Code:          domain.CodeDisable,
		Holder:        holder,
		SourceAccount: acct,
	})
	return nil
}

// ChangePlan records a payment-plan change request. Admin only.
func (e *Engine) ChangePlan(holder, acct string) error {
	if !e.session.CanPerform("changeplan") {
		return ErrNotAllowed
	}

	e.accept(domain.Transaction{
		Code:          domain.CodeChangePlan,
		Holder:        holder,
		SourceAccount: acct,
	})
	return nil
}

// checkLimit rejects when the category's running total plus amount would
// exceed the standard-mode limit. Admin sessions are never capped.
func (e *Engine) checkLimit(total, amount, limit decimal.Decimal, reject error) error {
	if e.session.IsAdmin() {
		return nil
	}
	if total.Add(amount).GreaterThan(limit) {
		return reject
	}
	return nil
}

// checkAccountForUser is the shared account-validity check: the account
// must exist, must not have been deleted this session, must not be
// disabled, and in standard mode must belong to the current user. In admin
// mode the supplied holder name must match the owner when the owner is
// known; for an account with no known owner the check is skipped.
func (e *Engine) checkAccountForUser(holder, acct string) error {
	if !e.accounts.Exists(acct) {
		return ErrNoSuchAccount
	}
	if e.accounts.IsDeleted(acct) {
		return ErrAccountDeleted
	}
	if e.accounts.IsDisabled(acct) {
		return ErrAccountDisabled
	}

	if !e.session.IsAdmin() {
		if !e.accounts.IsOwner(e.session.CurrentUser, acct) {
			return ErrNotOwner
		}
		return nil
	}

	if owner, ok := e.accounts.OwnerName(acct); ok && owner != holder {
		return ErrHolderMismatch
	}
	return nil
}

// checkAvailable rejects a debit that would take the session's available
// balance below zero. Deposits made this session are not part of that
// balance.
func (e *Engine) checkAvailable(acct string, amount decimal.Decimal) error {
	avail, ok := e.accounts.Available(acct)
	if !ok {
		return ErrNoSuchAccount
	}
	if avail.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

func (e *Engine) accept(tx domain.Transaction) {
	e.pending = append(e.pending, tx)
	e.log.Info("transaction accepted",
		"session_id", e.session.ID,
		"code", tx.Code,
		"account", tx.SourceAccount,
		"amount", tx.Amount)
}

func (e *Engine) debit(acct string, amount decimal.Decimal) {
	if avail, ok := e.accounts.Available(acct); ok {
		e.accounts.SetAvailable(acct, avail.Sub(amount))
	}
}
