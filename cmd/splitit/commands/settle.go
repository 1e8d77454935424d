package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bolophil/SplitIt/internal/calculator"
	"github.com/bolophil/SplitIt/internal/ledger"
	"github.com/bolophil/SplitIt/internal/models"
)

var (
	receiptPath  string
	paymentsPath string
)

// settleCmd runs the settlement engine on local JSON files. It demonstrates
// the engine's purely functional surface: value data in, value data out,
// no storage or network anywhere.
var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Compute settlement for a receipt JSON file",
	Long: `Settle loads a receipt (and optionally a payment list) from JSON files,
validates the receipt, and prints each participant's owed/paid balance along
with the receipt's overall settlement status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettle(cmd)
	},
}

func init() {
	settleCmd.Flags().StringVar(&receiptPath, "receipt", "", "path to the receipt JSON file (required)")
	settleCmd.Flags().StringVar(&paymentsPath, "payments", "", "path to a payments JSON file")
	settleCmd.MarkFlagRequired("receipt")
	rootCmd.AddCommand(settleCmd)
}

func runSettle(cmd *cobra.Command) error {
	receipt, err := loadReceipt(receiptPath)
	if err != nil {
		return err
	}

	var payments []models.PaymentRecord
	if paymentsPath != "" {
		payments, err = loadPayments(paymentsPath, receipt)
		if err != nil {
			return err
		}
	}

	result, err := calculator.ComputeSettlement(receipt, payments)
	if err != nil {
		return fmt.Errorf("failed to compute settlement: %w", err)
	}

	printSettlement(cmd, receipt, result)
	return nil
}

func loadReceipt(path string) (*models.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt file: %w", err)
	}
	receipt := &models.Receipt{}
	if err := json.Unmarshal(data, receipt); err != nil {
		return nil, fmt.Errorf("failed to parse receipt file: %w", err)
	}
	receipt.Normalize()
	if err := receipt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt: %w", err)
	}
	return receipt, nil
}

// loadPayments replays the payment file through a ledger so the same append
// rules apply offline as on the server.
func loadPayments(path string, receipt *models.Receipt) ([]models.PaymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payments file: %w", err)
	}
	var records []models.PaymentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse payments file: %w", err)
	}

	book := ledger.New(receipt.ID, receipt.Total.Cur())
	for _, rec := range records {
		if err := book.Append(rec); err != nil {
			return nil, fmt.Errorf("invalid payment: %w", err)
		}
	}
	return book.Snapshot(), nil
}

func printSettlement(cmd *cobra.Command, receipt *models.Receipt, result *models.SettlementResult) {
	out := cmd.OutOrStdout()

	names := make(map[string]string, len(receipt.Participants))
	for _, p := range receipt.Participants {
		names[p.ID] = p.Name
	}

	ids := make([]string, 0, len(result.Balances))
	for id := range result.Balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "%s: total %s, received %s, status %s\n\n",
		receipt.Vendor, result.Total, result.Received, result.Status)
	fmt.Fprintf(out, "%-20s %10s %8s %8s %10s %10s  %s\n",
		"participant", "subtotal", "tax", "tip", "owed", "paid", "status")
	for _, id := range ids {
		b := result.Balances[id]
		name := names[id]
		if name == "" {
			name = id
		}
		fmt.Fprintf(out, "%-20s %10s %8s %8s %10s %10s  %s\n",
			name, b.Subtotal, b.Tax, b.Tip, b.Owed, b.Paid, b.Status)
	}
}
