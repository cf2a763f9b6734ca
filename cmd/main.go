package main

import (
	"fmt"
	"os"

	"atm-frontend/internal/frontend"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "atm"})

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn("could not load .env file", "err", err)
	}

	// The accounts and transaction file paths come from the two positional
	// arguments, falling back to the environment.
	accountsPath := os.Getenv("ACCOUNTS_FILE")
	outputPath := os.Getenv("TRANSACTION_FILE")
	args := os.Args[1:]
	if len(args) >= 1 {
		accountsPath = args[0]
	}
	if len(args) >= 2 {
		outputPath = args[1]
	}

	if accountsPath == "" || outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s <current_accounts_file> <output_transaction_file>\n", os.Args[0])
		os.Exit(1)
	}

	logger.Info("starting front end", "accounts", accountsPath, "output", outputPath)

	f := frontend.New(accountsPath, outputPath, os.Stdin, os.Stdout)
	f.Run()
}
