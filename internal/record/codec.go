// Package record renders accepted transactions as the fixed-width records
// of the daily transaction file. Each record is exactly 40 characters:
// code(2) space name(20) space account(5) space amount(8) misc(2), with no
// separator between the amount and misc fields.
package record

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"atm-frontend/internal/domain"
)

// LineWidth is the exact width of every record, excluding the terminator.
const LineWidth = 40

// Write renders the transactions and rewrites the file at path: one line
// per transaction in original order, then the end-of-session line. The file
// is fully rewritten, never appended to.
func Write(path string, txs []domain.Transaction) error {
	var b strings.Builder
	for _, line := range Encode(txs) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write transaction file: %w", err)
	}
	return nil
}

// Encode returns one 40-character line per transaction plus exactly one
// trailing end-of-session line, which is present even for an empty list.
func Encode(txs []domain.Transaction) []string {
	lines := make([]string, 0, len(txs)+1)
	for _, tx := range txs {
		lines = append(lines, encodeOne(tx))
	}
	lines = append(lines, formatLine(domain.CodeEndOfSession, "", "00000", decimal.Zero, ""))
	return lines
}

func encodeOne(tx domain.Transaction) string {
	misc := tx.Misc

	// Transfer records carry the last two digits of the normalized
	// destination account in the misc field.
	if tx.Code == domain.CodeTransfer && tx.DestinationAccount != "" {
		dest := padAccount(tx.DestinationAccount)
		misc = dest[len(dest)-2:]
	}

	acct := tx.SourceAccount
	if acct == "" {
		acct = "00000"
	}

	return formatLine(tx.Code, tx.Holder, acct, tx.Amount, misc)
}

func formatLine(code, name, acct string, amount decimal.Decimal, misc string) string {
	return fmt.Sprintf("%s %s %s %s%s",
		padCode(code),
		padName(name),
		padAccount(acct),
		padAmount(amount),
		padMisc(misc))
}

// padCode zero-pads the transaction code to 2 characters.
func padCode(code string) string {
	if len(code) > 2 {
		code = code[:2]
	}
	return strings.Repeat("0", 2-len(code)) + code
}

// padName left-justifies the holder name, space-padded and truncated to 20.
func padName(name string) string {
	return fmt.Sprintf("%-20.20s", name)
}

// padAccount keeps only the digits of the account identifier, zero-pads to
// 5, and truncates to 5 when longer.
func padAccount(acct string) string {
	var digits strings.Builder
	for _, r := range acct {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 5 {
		d = strings.Repeat("0", 5-len(d)) + d
	}
	return d[:5]
}

// padAmount renders the amount as a fixed 8-character field with 2 decimal
// places, zero-padded on the left, e.g. 00500.00.
func padAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	for len(sign)+len(s) < 8 {
		s = "0" + s
	}
	return sign + s
}

// padMisc space-pads and truncates the misc field to 2 characters.
func padMisc(misc string) string {
	return fmt.Sprintf("%-2.2s", misc)
}
