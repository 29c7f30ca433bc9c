package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/service"
)

func newTokenCmd() *cobra.Command {
	var (
		tenant string
		user   string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			tok, err := service.NewAuthService(cfg.JWT).IssueToken(service.TokenInput{
				TenantID: tenantID,
				UserID:   userID,
				Role:     domain.UserRole(role),
				TTL:      ttl,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tok)
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant ID (UUID)")
	cmd.Flags().StringVar(&user, "user", "", "User ID (UUID)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleMember), "Role: admin or member")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: PROCURA_JWT_ACCESS_EXPIRY)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
