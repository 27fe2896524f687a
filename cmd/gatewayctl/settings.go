package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevin07696/stripe-gateway/internal/domain"
	"github.com/kevin07696/stripe-gateway/internal/services/gateway"
)

func validateCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configured keys, and that the secret key reaches the processor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			cfg := gw.Account.Config
			if err := gw.Service.ValidateSettings(ctx, cfg, !offline); err != nil {
				if gwErr, ok := domain.AsGatewayError(err); ok {
					_ = printJSON(cmd.OutOrStdout(), gwErr.Fields)
				}
				return fmt.Errorf("settings invalid for %s", cfg)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "settings valid for %s\n", cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "skip the connectivity check")

	return cmd
}

func migrateCmd() *cobra.Command {
	var maxCount int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rebind one batch of legacy accounts to this gateway",
		Long: `Rebind legacy accounts to this gateway. Each account's processor
customer is looked up and its default card becomes the new reference.

Examples:
  gatewayctl migrate
  gatewayctl migrate --max 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			if gw.DB == nil {
				return fmt.Errorf("migration needs DATABASE_URL")
			}

			report, err := gw.Service.MigrateBatch(ctx, gw.Account, maxCount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&maxCount, "max", 0, "accounts to migrate (defaults to MIGRATION_BATCH_SIZE)")

	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the gateway tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, cfg, logger, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			if gw.DB == nil {
				return fmt.Errorf("schema needs DATABASE_URL")
			}
			if err := gw.DB.EnsureSchema(ctx); err != nil {
				return err
			}

			logger.Info("Schema ready", zap.Bool("auto_migrate", cfg.Database.AutoMigrate))
			return nil
		},
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies the processor accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range gateway.SupportedCurrencies() {
				mark := ""
				if gateway.IsZeroDecimalCurrency(code) {
					mark = " (zero-decimal)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), code+mark)
			}
			return nil
		},
	}
}
