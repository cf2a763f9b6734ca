package domain

import "github.com/shopspring/decimal"

// Transaction codes as they appear in the first field of the daily
// transaction file. Code 00 marks the end of a session's output.
const (
	CodeEndOfSession = "00"
	CodeWithdrawal   = "01"
	CodeTransfer     = "02"
	CodePaybill      = "03"
	CodeDeposit      = "04"
	CodeCreate       = "05"
	CodeDelete       = "06"
	CodeDisable      = "07"
	CodeChangePlan   = "08"
)

// Transaction is one accepted command. Transactions accumulate in memory
// during a session and become one record each in the daily transaction file
// at logout.
type Transaction struct {
	Code               string
	Holder             string
	SourceAccount      string
	DestinationAccount string
	Amount             decimal.Decimal
	Misc               string
}
