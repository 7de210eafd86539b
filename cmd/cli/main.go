package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/infrastructure/config"
	"github.com/iho/walletd/internal/infrastructure/logger"
	"github.com/iho/walletd/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration

	osExit        = os.Exit
	retryInterval = 500 * time.Millisecond
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walletctl",
		Short: "Wallet service CLI tool",
		Long:  `A command line interface for interacting with the wallet service API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet service API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(createWalletCmd(), getWalletCmd(), getBalanceCmd(), listWalletsCmd(), deleteWalletCmd(), recomputeCmd())

	// Transaction commands
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}
	txCmd.AddCommand(postTransactionCmd(), getTransactionCmd(), listTransactionsCmd())

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(reconcileCmd())

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.AddCommand(migrateUpCmd(), migrateDownCmd())

	rootCmd.AddCommand(walletCmd, txCmd, ledgerCmd, migrateCmd)

	return rootCmd
}

func createWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <label>",
		Short: "Create a new wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createWallet(args[0])
		},
	}
}

func getWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a wallet by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallets/" + args[0])
		},
	}
}

func getBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <id>",
		Short: "Get a wallet's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallets/" + args[0] + "/balance")
		},
	}
}

func listWalletsCmd() *cobra.Command {
	var (
		limit  int
		offset int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets",
		Run: func(cmd *cobra.Command, args []string) {
			listWallets(limit, offset, search)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of wallets to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of wallets to skip")
	cmd.Flags().StringVar(&search, "search", "", "Filter wallets by label substring")
	return cmd
}

func deleteWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a wallet and its transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteWallet(args[0])
		},
	}
}

func recomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute <id>",
		Short: "Recompute a wallet's balance from its transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			recomputeBalance(args[0])
		},
	}
}

func postTransactionCmd() *cobra.Command {
	var txid string
	cmd := &cobra.Command{
		Use:   "post <wallet-id> <amount>",
		Short: "Post a signed amount to a wallet",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postTransaction(args[0], args[1], txid)
		},
	}
	cmd.Flags().StringVar(&txid, "txid", "", "External transaction ID (generated by the server when empty)")
	return cmd
}

func getTransactionCmd() *cobra.Command {
	var byTxid bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a transaction by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if byTxid {
				getJSON("/api/v1/transactions/txid/" + args[0])
				return
			}
			getJSON("/api/v1/transactions/" + args[0])
		},
	}
	cmd.Flags().BoolVar(&byTxid, "txid", false, "Look up by external txid instead of internal ID")
	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		walletID string
		limit    int
		offset   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(walletID, limit, offset)
		},
	}
	cmd.Flags().StringVar(&walletID, "wallet", "", "Only transactions for this wallet")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Verify stored balances against transaction history",
		Run: func(cmd *cobra.Command, args []string) {
			runReconcile()
		},
	}
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	}
}

func createWallet(label string) {
	body, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		osExit(1)
		return
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/wallets/", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		osExit(1)
		return
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	printJSON(result)
}

func listWallets(limit, offset int, search string) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if search != "" {
		params.Set("search", search)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/wallets/?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		osExit(1)
		return
	}

	var result dto.ListWalletsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("%-28s %-24s %s\n", "ID", "LABEL", "BALANCE")
	for _, w := range result.Wallets {
		fmt.Printf("%-28s %-24s %s\n", w.ID, truncate(w.Label, 24), w.Balance)
	}
	fmt.Printf("Total: %d\n", result.Total)
}

func deleteWallet(walletID string) {
	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/v1/wallets/"+walletID, nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		osExit(1)
		return
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		osExit(1)
		return
	}

	fmt.Printf("Wallet %s deleted\n", walletID)
}

func recomputeBalance(walletID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/wallets/"+walletID+"/recompute", "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		osExit(1)
		return
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	printJSON(result)
}

func postTransaction(walletID, amount, txid string) {
	payload := map[string]any{"amount": amount}
	if txid != "" {
		payload["txid"] = txid
	}
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		osExit(1)
		return
	}

	// One key across all attempts so a retry after a transient failure
	// can never double-post.
	key := uuid.NewString()
	client := &http.Client{Timeout: timeout}

	var resp *http.Response
	operation := func() error {
		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/wallets/"+walletID+"/transactions", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)

		r, err := client.Do(req)
		if err != nil {
			return err
		}
		if r.StatusCode == http.StatusServiceUnavailable {
			_ = r.Body.Close()
			return fmt.Errorf("service unavailable")
		}
		resp = r
		return nil
	}

	if err := backoff.Retry(operation, newRetryPolicy()); err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusConflict {
		fmt.Printf("Transaction REJECTED, txid already used\nResponse: %s\n", string(respBody))
		osExit(1)
		return
	}
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		osExit(1)
		return
	}

	var result dto.PostTransactionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("Transaction posted\n")
	fmt.Printf("ID: %s\nTxID: %s\nBalance: %s\n", result.Transaction.ID, result.Transaction.TxID, result.Balance)
}

func listTransactions(walletID string, limit, offset int) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if walletID != "" {
		params.Set("wallet_id", walletID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/transactions/?" + params.Encode())
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		osExit(1)
		return
	}

	var result dto.ListTransactionsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("%-28s %-28s %-38s %s\n", "ID", "WALLET", "TXID", "AMOUNT")
	for _, tx := range result.Transactions {
		fmt.Printf("%-28s %-28s %-38s %s\n", tx.ID, tx.WalletID, truncate(tx.TxID, 38), tx.Amount)
	}
	fmt.Printf("Total: %d\n", result.Total)
}

func runReconcile() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/reconciliation")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusConflict {
		fmt.Printf("Reconciliation FAILED, balance drift detected\nResponse: %s\n", string(body))
		osExit(1)
		return
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Reconciliation request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		osExit(1)
		return
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("Reconciliation PASSED\n")
	if total, ok := result["total_wallets"].(float64); ok {
		fmt.Printf("Wallets checked: %d\n", int(total))
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		osExit(1)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		osExit(1)
		return
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		osExit(1)
		return
	}

	printJSON(result)
}

func newRetryPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInterval

	return backoff.WithMaxRetries(policy, 4)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
