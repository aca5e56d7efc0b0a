package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "esusu-cli",
		Short: "Esusu CLI tool",
		Long:  `A command line interface for interacting with the Esusu API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Esusu API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(consistencyCmd())

	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Deposit policy operations",
	}
	policyCmd.AddCommand(effectivePolicyCmd())

	fundsCmd := &cobra.Command{
		Use:   "funds",
		Short: "Fund operations",
	}
	fundsCmd.AddCommand(listFundsCmd())

	rootCmd.AddCommand(ledgerCmd, policyCmd, fundsCmd, transferCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check that fund balances add up to verified deposits",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := doRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
			if err != nil {
				return err
			}

			if status != http.StatusOK {
				fmt.Printf("Consistency check FAILED (Status: %d)\n", status)
				printRaw(body)
				os.Exit(1)
			}

			fmt.Println("Consistency check PASSED")
			printRaw(body)
			return nil
		},
	}
}

func effectivePolicyCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "effective",
		Short: "Show the policy governing a month (current month by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/policies/effective"
			if month != "" {
				path += "?month=" + month
			}

			status, body, err := doRequest(http.MethodGet, path, nil)
			if err != nil {
				return err
			}

			if status != http.StatusOK {
				return fmt.Errorf("request failed (status %d): %s", status, body)
			}

			printRaw(body)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to resolve, formatted YYYY-MM")

	return cmd
}

func listFundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List funds",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := doRequest(http.MethodGet, "/api/v1/funds/", nil)
			if err != nil {
				return err
			}

			if status != http.StatusOK {
				return fmt.Errorf("request failed (status %d): %s", status, body)
			}

			printRaw(body)
			return nil
		},
	}
}

func transferCmd() *cobra.Command {
	var (
		from        string
		to          string
		amount      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between two funds",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"from_fund_id": from,
				"to_fund_id":   to,
				"amount":       amount,
				"description":  description,
			}

			status, body, err := doRequest(http.MethodPost, "/api/v1/transfers/", payload)
			if err != nil {
				return err
			}

			if status != http.StatusCreated {
				return fmt.Errorf("transfer failed (status %d): %s", status, body)
			}

			fmt.Println("Transfer created")
			printRaw(body)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source fund ID")
	cmd.Flags().StringVar(&to, "to", "", "Destination fund ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to move")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func doRequest(method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, data, nil
}

// printRaw re-indents a JSON body for the terminal, falling back to
// printing it verbatim.
func printRaw(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}
