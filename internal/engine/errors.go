package engine

import "errors"

// Every rejection the engine can produce is one of these values. They are
// surfaced to the operator as messages, never as failures of the command
// loop, and a rejected command mutates nothing.
var (
	ErrAlreadyLoggedIn = errors.New("already logged in")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrInvalidSession  = errors.New("invalid session type")

	ErrNotAllowed = errors.New("not allowed")

	ErrWithdrawalLimit = errors.New("standard withdrawal limit exceeded")
	ErrTransferLimit   = errors.New("standard transfer limit exceeded")
	ErrPaybillLimit    = errors.New("standard paybill limit exceeded")

	ErrNoSuchAccount     = errors.New("account does not exist")
	ErrAccountDeleted    = errors.New("account was deleted this session")
	ErrAccountDisabled   = errors.New("account is disabled")
	ErrNotOwner          = errors.New("account does not belong to the logged in user")
	ErrHolderMismatch    = errors.New("account holder name does not match that account")
	ErrNoSuchDestination = errors.New("destination account does not exist")

	ErrInsufficientFunds = errors.New("insufficient funds (would go negative)")
	ErrInvalidCompany    = errors.New("invalid bill company")

	ErrAccountsLoad = errors.New("could not load accounts file")
	ErrRecordWrite  = errors.New("could not write transaction file")
)
