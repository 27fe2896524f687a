package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevin07696/stripe-gateway/internal/adapters/postgres"
)

// auditRow is one printed audit entry; payloads are masked before storage
type auditRow struct {
	CreatedAt time.Time       `json:"created_at"`
	URL       string          `json:"url"`
	Direction string          `json:"direction"`
	Success   bool            `json:"success"`
	Payload   json.RawMessage `json:"payload"`
}

func auditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit log entries for this gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw, _, _, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			if gw.DB == nil {
				return fmt.Errorf("audit needs DATABASE_URL")
			}

			entries, err := postgres.NewAuditLogRepository(gw.DB).ListByGateway(ctx, gw.Account.GatewayID, limit)
			if err != nil {
				return err
			}

			rows := make([]auditRow, len(entries))
			for i, e := range entries {
				rows[i] = auditRow{
					CreatedAt: e.CreatedAt,
					URL:       e.URL,
					Direction: string(e.Direction),
					Success:   e.Success,
					Payload:   json.RawMessage(e.Payload),
				}
			}
			return printJSON(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries to show")

	return cmd
}
