package frontend

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func acctLine(number, name, status, balance string) string {
	return fmt.Sprintf("%-5s %-20s %s %s", number, name, status, balance)
}

func accountsFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	lines := []string{
		acctLine("00123", "Alice", "A", "1000.00"),
		acctLine("00456", "Bob", "A", "500.00"),
		acctLine("00000", "END_OF_FILE", "A", "0.00"),
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run drives a full scripted session and returns everything printed to the
// user plus the transaction file path.
func run(t *testing.T, script string) (string, string) {
	t.Helper()
	outPath := filepath.Join(t.TempDir(), "transactions.txt")
	var out bytes.Buffer

	f := New(accountsFixture(t), outPath, strings.NewReader(script), &out)
	f.Run()
	return out.String(), outPath
}

func TestStandardSession(t *testing.T) {
	script := strings.Join([]string{
		"login",
		"standard",
		"Alice",
		"withdrawal",
		"00123",
		"200.00",
		"logout",
	}, "\n") + "\n"

	out, outPath := run(t, script)

	for _, want := range []string{
		"Enter session type (standard/admin):",
		"Enter account holder name:",
		"Login successful.",
		"Enter account number:",
		"Enter amount:",
		"Withdrawal recorded.",
		"Logged out.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "01 Alice                00123 00200.00  \n" +
		"00 " + strings.Repeat(" ", 20) + " 00000 00000.00  \n"
	if string(data) != want {
		t.Errorf("transaction file = %q, want %q", data, want)
	}
}

func TestWithdrawalLimitMessage(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"withdrawal", "00123", "200.00",
		"withdrawal", "00123", "350.00",
		"logout",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Standard withdrawal limit exceeded.") {
		t.Errorf("output missing limit error:\n%s", out)
	}
}

func TestAdminHolderPromptAndMismatch(t *testing.T) {
	script := strings.Join([]string{
		"login", "admin",
		"withdrawal", "Bob", "00123", "10.00",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Account holder name does not match that account.") {
		t.Errorf("output missing mismatch error:\n%s", out)
	}
}

func TestPayBillCompanyUppercased(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"paybill", "00123", "ec", "75.50",
		"logout",
	}, "\n") + "\n"

	out, outPath := run(t, script)
	if !strings.Contains(out, "Paybill recorded.") {
		t.Errorf("lowercase company code should be accepted:\n%s", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "00075.50EC") {
		t.Errorf("record should carry the uppercased company code:\n%s", data)
	}
}

func TestTransferRecordMisc(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"transfer", "00123", "00456", "100.00",
		"logout",
	}, "\n") + "\n"

	out, outPath := run(t, script)
	if !strings.Contains(out, "Transfer recorded.") {
		t.Fatalf("transfer not accepted:\n%s", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "02 Alice                00123 00100.0056") {
		t.Errorf("transfer record missing or misc wrong:\n%s", data)
	}
}

func TestUnknownCommandConsumesNothing(t *testing.T) {
	script := strings.Join([]string{
		"frobnicate",
		"login", "standard", "Alice",
		"logout",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Unknown transaction.") {
		t.Errorf("output missing unknown-transaction error:\n%s", out)
	}
	// The login right after must still succeed, proving the unknown command
	// swallowed no extra lines.
	if !strings.Contains(out, "Login successful.") {
		t.Errorf("login after unknown command failed:\n%s", out)
	}
}

func TestInvalidSessionType(t *testing.T) {
	script := strings.Join([]string{
		"login", "root",
		"logout",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Invalid session type.") {
		t.Errorf("output missing invalid-session error:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: Not logged in.") {
		t.Errorf("logout after failed login should report not logged in:\n%s", out)
	}
}

func TestAlreadyLoggedIn(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"login",
		"logout",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Already logged in.") {
		t.Errorf("output missing already-logged-in error:\n%s", out)
	}
}

func TestNotAllowedBeforeLogin(t *testing.T) {
	out, _ := run(t, "withdrawal\n")
	if !strings.Contains(out, "ERROR: Not allowed.") {
		t.Errorf("output missing not-allowed error:\n%s", out)
	}
	// No prompts either; the command is refused before any input is read.
	if strings.Contains(out, "Enter account number:") {
		t.Errorf("refused command must not prompt:\n%s", out)
	}
}

func TestAdminOnlyCommandInStandardMode(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"create",
		"logout",
	}, "\n") + "\n"

	out, _ := run(t, script)
	if !strings.Contains(out, "ERROR: Not allowed.") {
		t.Errorf("standard-mode create should be refused:\n%s", out)
	}
	if strings.Contains(out, "Enter new account holder name:") {
		t.Errorf("refused create must not prompt:\n%s", out)
	}
}

func TestUnparseableAmountCoercesToZero(t *testing.T) {
	script := strings.Join([]string{
		"login", "standard", "Alice",
		"withdrawal", "00123", "lots",
		"logout",
	}, "\n") + "\n"

	out, outPath := run(t, script)
	if !strings.Contains(out, "Withdrawal recorded.") {
		t.Fatalf("coerced-amount withdrawal should be accepted:\n%s", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "00123 00000.00") {
		t.Errorf("record should carry a zero amount:\n%s", data)
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	script := "\n\nlogin\nstandard\nAlice\n\nlogout\n"
	out, _ := run(t, script)
	if strings.Contains(out, "ERROR: Unknown transaction.") {
		t.Errorf("blank lines must not be treated as commands:\n%s", out)
	}
	if !strings.Contains(out, "Logged out.") {
		t.Errorf("session did not complete:\n%s", out)
	}
}

func TestLoadFailureKeepsLoopAlive(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "transactions.txt")
	var out bytes.Buffer

	script := strings.Join([]string{
		"login", "standard", "Alice",
		"logout",
	}, "\n") + "\n"

	f := New(filepath.Join(t.TempDir(), "missing.txt"), outPath, strings.NewReader(script), &out)
	f.Run()

	if !strings.Contains(out.String(), "ERROR: Could not load accounts file.") {
		t.Errorf("output missing load error:\n%s", out.String())
	}
	// The failed login rolled back, so the logout is refused, not a crash.
	if !strings.Contains(out.String(), "ERROR: Not logged in.") {
		t.Errorf("output missing not-logged-in error:\n%s", out.String())
	}
}
