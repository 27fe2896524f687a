package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

// transactionOutput is printed for every transaction command
type transactionOutput struct {
	Result *domain.TransactionResult `json:"result"`
	Error  string                    `json:"error,omitempty"`
}

func chargeCmd() *cobra.Command {
	var (
		customer string
		amount   string
		currency string
		invoices []string
	)

	cmd := &cobra.Command{
		Use:   "charge [payment-method]",
		Short: "Charge a stored card",
		Long: `Charge a stored card immediately.

Examples:
  gatewayctl charge pm_1Nx --customer cus_9Q --amount 19.99
  gatewayctl charge pm_1Nx --customer cus_9Q --amount 1500 --currency jpy --invoice inv_1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil || !value.IsPositive() {
				return fmt.Errorf("amount %q must be a positive decimal", amount)
			}
			if currency != "" && !gateway.IsSupportedCurrency(currency) {
				return fmt.Errorf("currency %q is not supported", currency)
			}

			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			acct := gw.Account
			if currency != "" {
				acct.Currency = currency
			}

			lines := make([]gateway.InvoiceAmount, 0, len(invoices))
			for _, id := range invoices {
				lines = append(lines, gateway.InvoiceAmount{InvoiceID: id})
			}

			result, err := gw.Service.ProcessStoredCC(ctx, acct, customer, args[0], value, lines)
			return printTransaction(cmd, result, err)
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer reference the card is attached to")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in major units, e.g. 19.99")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency (defaults to DEFAULT_CURRENCY)")
	cmd.Flags().StringSliceVar(&invoices, "invoice", nil, "invoice id paid by this charge (repeatable)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func refundCmd() *cobra.Command {
	var (
		reference string
		amount    string
		currency  string
	)

	cmd := &cobra.Command{
		Use:   "refund [charge-id]",
		Short: "Refund a captured charge, in full unless --amount is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value *decimal.Decimal
			if amount != "" {
				parsed, err := decimal.NewFromString(amount)
				if err != nil || !parsed.IsPositive() {
					return fmt.Errorf("amount %q must be a positive decimal", amount)
				}
				value = &parsed
			}

			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			acct := gw.Account
			if currency != "" {
				acct.Currency = currency
			}

			result, err := gw.Service.RefundStoredCC(ctx, acct, reference, args[0], value)
			return printTransaction(cmd, result, err)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "payment intent the charge belongs to")
	cmd.Flags().StringVar(&amount, "amount", "", "partial refund amount in major units")
	cmd.Flags().StringVar(&currency, "currency", "", "currency of the original charge")

	return cmd
}

func voidCmd() *cobra.Command {
	var transactionID string

	cmd := &cobra.Command{
		Use:   "void [payment-intent]",
		Short: "Cancel an authorization, or refund a captured charge in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			result, err := gw.Service.VoidStoredCC(ctx, gw.Account, args[0], transactionID)
			return printTransaction(cmd, result, err)
		},
	}

	cmd.Flags().StringVar(&transactionID, "transaction", "", "captured charge id; refunds instead of cancelling")

	return cmd
}

func printTransaction(cmd *cobra.Command, result *domain.TransactionResult, err error) error {
	out := transactionOutput{Result: result}
	if err != nil {
		out.Error = err.Error()
	}
	if printErr := printJSON(cmd.OutOrStdout(), out); printErr != nil {
		return printErr
	}
	if err != nil {
		return fmt.Errorf("transaction %s", result.Status)
	}
	return nil
}
