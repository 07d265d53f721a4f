package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services/paymentconfig"
	"storefront/internal/validation"

	"github.com/spf13/cobra"
)

var planStatuses = []string{models.PlanStatusActive, models.PlanStatusTrial, models.PlanStatusExpired}

func seedTenantCmd() *cobra.Command {
	var (
		name         string
		plan         string
		trialDays    int
		primaryColor string
		whatsapp     string
	)

	cmd := &cobra.Command{
		Use:   "seed-tenant [subdomain]",
		Short: "Create a tenant with its site config and the default payment methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subdomain := strings.ToLower(strings.TrimSpace(args[0]))

			v := validation.New()
			v.Required("subdomain", subdomain)
			v.Check(!strings.Contains(subdomain, "."), "subdomain", "must be a single label")
			v.In("plan", plan, planStatuses...)
			if err := v.Err(); err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			ctx := context.Background()

			if name == "" {
				name = subdomain
			}
			tenant := &models.Tenant{
				Subdomain:  subdomain,
				Name:       name,
				Config:     models.JSON{models.ConfigStoreName: name},
				PlanStatus: plan,
			}
			if plan == models.PlanStatusTrial {
				ends := time.Now().AddDate(0, 0, trialDays)
				tenant.TrialEndsAt = &ends
			}
			if err := e.tenants().Create(ctx, tenant); err != nil {
				return fmt.Errorf("failed to create tenant: %w", err)
			}

			settings := models.JSON{}
			if primaryColor != "" {
				settings[models.ConfigPrimaryColor] = primaryColor
			}
			if whatsapp != "" {
				settings[models.ConfigWhatsAppNumber] = whatsapp
			}
			err = repositories.NewSiteConfigRepository(e.db).Upsert(ctx, &models.SiteConfig{
				TenantID: tenant.ID,
				Settings: settings,
			})
			if err != nil {
				return fmt.Errorf("failed to create site config: %w", err)
			}

			err = repositories.NewPaymentConfigRepository(e.db).ReplaceMethods(ctx, tenant.ID, paymentconfig.DefaultMethods())
			if err != nil {
				return fmt.Errorf("failed to create payment methods: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tenant %s created (id %s, plan %s)\n", subdomain, tenant.ID, plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Store display name (defaults to the subdomain)")
	cmd.Flags().StringVar(&plan, "plan", models.PlanStatusTrial, "Plan status (active, trial, expired)")
	cmd.Flags().IntVar(&trialDays, "trial-days", 14, "Trial length in days when --plan=trial")
	cmd.Flags().StringVar(&primaryColor, "primary-color", "", "Branding primary color")
	cmd.Flags().StringVar(&whatsapp, "whatsapp", "", "WhatsApp number that receives cash orders")

	return cmd
}

func setPlanCmd() *cobra.Command {
	var trialEnds string

	cmd := &cobra.Command{
		Use:   "set-plan [subdomain] [status]",
		Short: "Change the plan status of a tenant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subdomain, status := strings.ToLower(args[0]), strings.ToLower(args[1])

			v := validation.New()
			v.In("status", status, planStatuses...)
			var endsAt *time.Time
			if trialEnds != "" {
				t, err := time.Parse(time.RFC3339, trialEnds)
				v.Check(err == nil, "trial-ends", "must be an RFC 3339 timestamp")
				endsAt = &t
			}
			v.Check(status != models.PlanStatusTrial || endsAt != nil, "trial-ends", "is required for a trial")
			if err := v.Err(); err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			ctx := context.Background()

			tenants := e.tenants()
			tenant, err := tenants.GetBySubdomain(ctx, subdomain)
			if err != nil {
				return err
			}
			if err := tenants.UpdatePlan(ctx, tenant.ID, status, endsAt); err != nil {
				return fmt.Errorf("failed to update plan: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tenant %s is now %s\n", subdomain, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&trialEnds, "trial-ends", "", "Trial end as RFC 3339, e.g. 2025-01-31T23:59:59Z")

	return cmd
}
