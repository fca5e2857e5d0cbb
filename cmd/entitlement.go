package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fincalc/cli"
	"fincalc/domain"
	"fincalc/service"
)

var entitlementCmd = &cobra.Command{
	Use:   "entitlement",
	Short: "Subscription tier and daily AI tip quota",
}

func init() {
	entitlementCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the current plan and today's usage",
			RunE: withEntitlements(func(cmd *cobra.Command, svc *service.EntitlementService) error {
				return printStatus(cmd, svc.CheckStatus(cmd.Context()))
			}),
		},
		&cobra.Command{
			Use:   "start-trial",
			Short: "Start the one-time 7-day trial",
			RunE: withEntitlements(func(cmd *cobra.Command, svc *service.EntitlementService) error {
				st, err := svc.StartTrial(cmd.Context())
				if errors.Is(err, service.ErrTrialAlreadyUsed) {
					fmt.Fprintln(cmd.OutOrStdout(), "\n  The trial has already been used.")
				}
				if perr := printStatus(cmd, st); perr != nil {
					return perr
				}
				return err
			}),
		},
		&cobra.Command{
			Use:   "upgrade",
			Short: "Upgrade to Pro",
			RunE: withEntitlements(func(cmd *cobra.Command, svc *service.EntitlementService) error {
				return printStatus(cmd, svc.UpgradeToPro(cmd.Context()))
			}),
		},
		&cobra.Command{
			Use:   "quota",
			Short: "Show today's AI tip usage",
			RunE: withEntitlements(func(cmd *cobra.Command, svc *service.EntitlementService) error {
				q := svc.Quota(cmd.Context())
				if flagJSON {
					return printJSON(cmd.OutOrStdout(), q)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n  AI tips today: %s\n\n", cli.RenderQuota(q))
				return nil
			}),
		},
	)
	rootCmd.AddCommand(entitlementCmd)
}

func withEntitlements(fn func(*cobra.Command, *service.EntitlementService) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openLocalStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		return fn(cmd, service.NewEntitlementService(st, cliLogger(cfg)))
	}
}

func printStatus(cmd *cobra.Command, st domain.EntitlementStatus) error {
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), st)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderEntitlement(st))
	return nil
}
