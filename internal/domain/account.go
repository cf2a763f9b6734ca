package domain

import "github.com/shopspring/decimal"

// Status is the account status flag from the current accounts file.
type Status int

const (
	Active Status = iota
	Disabled
)

// Account is one record loaded from the current accounts file. Balance is
// the balance as loaded; it is only ever mutated in memory and never written
// back.
type Account struct {
	Number  string
	Holder  string
	Status  Status
	Balance decimal.Decimal
}
