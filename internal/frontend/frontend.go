// Package frontend runs the line-oriented command loop: it reads one
// command per line, prompts for the command's fields in a fixed order,
// hands the input to the engine, and prints the outcome. Prompts and
// results go to the output writer; diagnostics go to the logger.
package frontend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"atm-frontend/internal/engine"
	"atm-frontend/internal/session"
)

// Frontend wires the command loop to one engine instance and the two file
// paths the session needs: the accounts file read at login and the
// transaction file written at logout.
type Frontend struct {
	engine       *engine.Engine
	accountsPath string
	outputPath   string

	in  *bufio.Scanner
	out io.Writer
	log *log.Logger
}

// New returns a Frontend reading commands from in and writing prompts and
// messages to out.
func New(accountsPath, outputPath string, in io.Reader, out io.Writer) *Frontend {
	return &Frontend{
		engine:       engine.New(),
		accountsPath: accountsPath,
		outputPath:   outputPath,
		in:           bufio.NewScanner(in),
		out:          out,
		log:          log.NewWithOptions(os.Stderr, log.Options{Prefix: "frontend"}),
	}
}

// Engine returns the engine driven by this front end.
func (f *Frontend) Engine() *engine.Engine { return f.engine }

// Run reads one command per line until end of input. Blank lines are
// skipped; unknown commands consume no further input.
func (f *Frontend) Run() {
	for {
		line, ok := f.readLine()
		if !ok {
			return
		}
		cmd := strings.ToLower(strings.TrimSpace(line))
		if cmd == "" {
			continue
		}
		f.dispatch(cmd)
	}
}

func (f *Frontend) dispatch(cmd string) {
	switch cmd {
	case "login":
		f.handleLogin()
	case "logout":
		f.handleLogout()
	case "withdrawal":
		f.handleWithdrawal()
	case "deposit":
		f.handleDeposit()
	case "transfer":
		f.handleTransfer()
	case "paybill":
		f.handlePayBill()
	case "create":
		f.handleCreate()
	case "delete":
		f.handleDelete()
	case "disable":
		f.handleDisable()
	case "changeplan":
		f.handleChangePlan()
	default:
		fmt.Fprintln(f.out, "ERROR: Unknown transaction.")
	}
}

// handleLogin prompts for the session type, then for the holder name in
// standard mode, and asks the engine to start the session. The session-type
// value is validated only after the name prompt, so a standard login always
// consumes both lines.
func (f *Frontend) handleLogin() {
	if f.engine.Session().LoggedIn {
		f.reject(engine.ErrAlreadyLoggedIn)
		return
	}

	f.printf("Enter session type (standard/admin):")
	modeText := strings.ToLower(f.read())

	user := ""
	if modeText == "standard" {
		f.printf("Enter account holder name:")
		user = f.read()
	}

	mode, ok := session.ParseMode(modeText)
	if !ok {
		f.reject(engine.ErrInvalidSession)
		return
	}

	if err := f.engine.Login(mode, user, f.accountsPath); err != nil {
		f.reject(err)
		return
	}
	f.printf("Login successful.")
}

func (f *Frontend) handleLogout() {
	if err := f.engine.Logout(f.outputPath); err != nil {
		f.reject(err)
		return
	}
	f.printf("Logged out.")
}

func (f *Frontend) handleWithdrawal() {
	if !f.engine.Session().CanPerform("withdrawal") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	name := f.holderName()
	f.printf("Enter account number:")
	acct := f.read()
	f.printf("Enter amount:")
	amount := f.readAmount()

	if err := f.engine.Withdrawal(name, acct, amount); err != nil {
		f.reject(err)
		return
	}
	f.printf("Withdrawal recorded.")
}

func (f *Frontend) handleDeposit() {
	if !f.engine.Session().CanPerform("deposit") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	name := f.holderName()
	f.printf("Enter account number:")
	acct := f.read()
	f.printf("Enter amount:")
	amount := f.readAmount()

	if err := f.engine.Deposit(name, acct, amount); err != nil {
		f.reject(err)
		return
	}
	f.printf("Deposit recorded.")
}

func (f *Frontend) handleTransfer() {
	if !f.engine.Session().CanPerform("transfer") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	name := f.holderName()
	f.printf("Enter from account number:")
	from := f.read()
	f.printf("Enter to account number:")
	to := f.read()
	f.printf("Enter amount:")
	amount := f.readAmount()

	if err := f.engine.Transfer(name, from, to, amount); err != nil {
		f.reject(err)
		return
	}
	f.printf("Transfer recorded.")
}

func (f *Frontend) handlePayBill() {
	if !f.engine.Session().CanPerform("paybill") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	name := f.holderName()
	f.printf("Enter account number:")
	acct := f.read()
	f.printf("Enter company code (EC/CQ/FI):")
	company := strings.ToUpper(f.read())
	f.printf("Enter amount:")
	amount := f.readAmount()

	if err := f.engine.PayBill(name, acct, company, amount); err != nil {
		f.reject(err)
		return
	}
	f.printf("Paybill recorded.")
}

func (f *Frontend) handleCreate() {
	if !f.engine.Session().CanPerform("create") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	f.printf("Enter new account holder name:")
	name := f.read()
	f.printf("Enter initial balance:")
	amount := f.readAmount()

	if err := f.engine.Create(name, amount); err != nil {
		f.reject(err)
		return
	}
	f.printf("Create recorded.")
}

func (f *Frontend) handleDelete() {
	if !f.engine.Session().CanPerform("delete") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	f.printf("Enter account holder name:")
	name := f.read()
	f.printf("Enter account number:")
	acct := f.read()

	if err := f.engine.Delete(name, acct); err != nil {
		f.reject(err)
		return
	}
	f.printf("Delete recorded.")
}

func (f *Frontend) handleDisable() {
	if !f.engine.Session().CanPerform("disable") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	f.printf("Enter account holder name:")
	name := f.read()
	f.printf("Enter account number:")
	acct := f.read()

	if err := f.engine.Disable(name, acct); err != nil {
		f.reject(err)
		return
	}
	f.printf("Disable recorded.")
}

func (f *Frontend) handleChangePlan() {
	if !f.engine.Session().CanPerform("changeplan") {
		f.reject(engine.ErrNotAllowed)
		return
	}

	f.printf("Enter account holder name:")
	name := f.read()
	f.printf("Enter account number:")
	acct := f.read()

	if err := f.engine.ChangePlan(name, acct); err != nil {
		f.reject(err)
		return
	}
	f.printf("Changeplan recorded.")
}

// holderName resolves the holder name for a transaction: admins are
// prompted for it, standard users are the name they logged in with.
func (f *Frontend) holderName() string {
	if f.engine.Session().IsAdmin() {
		f.printf("Enter account holder name:")
		return f.read()
	}
	return f.engine.Session().CurrentUser
}

// readAmount reads an amount line and coerces anything unparseable to 0.00
// rather than failing the command.
func (f *Frontend) readAmount() decimal.Decimal {
	text := f.read()
	amount, err := decimal.NewFromString(text)
	if err != nil {
		f.log.Warn("unparseable amount, using 0.00", "input", text)
		return decimal.Zero
	}
	return amount
}

func (f *Frontend) read() string {
	line, _ := f.readLine()
	return strings.TrimSpace(line)
}

func (f *Frontend) readLine() (string, bool) {
	if !f.in.Scan() {
		return "", false
	}
	return f.in.Text(), true
}

func (f *Frontend) printf(format string, args ...any) {
	fmt.Fprintf(f.out, format+"\n", args...)
}

// reject prints a rejection as the operator sees it: "ERROR: <Message>."
func (f *Frontend) reject(err error) {
	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	fmt.Fprintf(f.out, "ERROR: %s.\n", msg)
}
