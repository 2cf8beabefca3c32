package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	csvadapter "github.com/mxb-1/transactions/internal/adapter/csv"
	"github.com/mxb-1/transactions/internal/engine"
	"github.com/mxb-1/transactions/internal/usecase"
)

var (
	baseURL  string
	timeout  time.Duration
	strict   bool
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "txengine",
		Short: "Transaction replay engine CLI",
		Long:  `Replays transaction streams into per-client account balances, either from CSV files or against a running txengine server.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the txengine API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	processCmd := &cobra.Command{
		Use:   "process <file.csv>",
		Short: "Replay a CSV transaction file and print the account report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			processFile(args[0])
		},
	}
	processCmd.Flags().BoolVar(&strict, "strict", false, "Abort on the first malformed record instead of skipping it")
	processCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Fetch the account snapshot from a running server",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAccounts()
		},
	}

	rootCmd.AddCommand(processCmd, accountsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func processFile(path string) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}

	// Logs go to stderr so the report on stdout stays clean.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	processor := usecase.NewProcessor(engine.New(), logger, nil, strict)

	if _, err := processor.Run(context.Background(), csvadapter.NewReader(file)); err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}

	if err := processor.Report(csvadapter.NewWriter(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Writing report failed: %v\n", err)
		os.Exit(1)
	}
}

type accountRow struct {
	ClientID  uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

type listAccountsResponse struct {
	Accounts []accountRow `json:"accounts"`
	Total    int64        `json:"total"`
}

func fetchAccounts() {
	client := &http.Client{Timeout: timeout}

	var result listAccountsResponse

	operation := func() error {
		resp, err := client.Get(baseURL + "/api/v1/accounts")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		// Server errors are worth retrying; anything else is not.
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("server error (status %d)", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		return json.NewDecoder(resp.Body).Decode(&result)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(operation, b); err != nil {
		fmt.Printf("Error fetching accounts: %v\n", err)
		os.Exit(1)
	}

	printReport(result.Accounts)
}

func printReport(accounts []accountRow) {
	fmt.Println("client,available,held,total,locked")
	for _, a := range accounts {
		fmt.Printf("%d,%s,%s,%s,%v\n", a.ClientID, a.Available, a.Held, a.Total, a.Locked)
	}
}
