package main

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/utils"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		userID   string
		tenantID string
		email    string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validation.New()
			v.Required("user", userID)
			v.In("role", role, models.RoleAdmin, models.RoleCustomer)
			if tenantID != "" {
				_, err := uuid.Parse(tenantID)
				v.Check(err == nil, "tenant", "must be a tenant id")
			}
			if err := v.Err(); err != nil {
				return err
			}

			token, err := utils.GenerateToken(config.Load().JWTSecret, &models.UserClaims{
				UserID:   userID,
				TenantID: tenantID,
				Email:    email,
				Role:     role,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the token")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant id the user belongs to")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "Role (admin, customer)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
