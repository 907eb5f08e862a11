package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/reglet-dev/permflow"
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/errors"
	"github.com/reglet-dev/permflow/domain/flow"
	"github.com/reglet-dev/permflow/domain/ports"
	"github.com/reglet-dev/permflow/infrastructure/device"
	grant_store "github.com/reglet-dev/permflow/infrastructure/grantstore"
	"github.com/reglet-dev/permflow/infrastructure/parser"
	"github.com/reglet-dev/permflow/infrastructure/prompter"
	"github.com/reglet-dev/permflow/log"
	"github.com/spf13/cobra"
)

// runReport is the --json output of the run command.
type runReport struct {
	FlowID  string                `json:"flow_id"`
	Outcome *entities.Outcome     `json:"outcome,omitempty"`
	Error   *entities.ErrorDetail `json:"error,omitempty"`
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Request the configured permissions on the simulated device",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFromFlags(cmd)
			if err != nil {
				return err
			}
			cfgPath, _ := cmd.Flags().GetString("config")
			devicePath, _ := cmd.Flags().GetString("device")
			grantsPath, _ := cmd.Flags().GetString("grants")
			asJSON, _ := cmd.Flags().GetBool("json")
			requireTTY, _ := cmd.Flags().GetBool("require-tty")
			override, _ := cmd.Flags().GetStringSlice("capability")

			cfg, err := permflow.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if len(override) > 0 {
				cfg.Capabilities = entities.Capabilities(override...)
				if err := permflow.ValidateConfig(*cfg); err != nil {
					return err
				}
			}
			profile, err := loadProfile(devicePath, cfg.SubjectID)
			if err != nil {
				return err
			}

			ui := prompter.NewCliPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if requireTTY && !ui.IsInteractive() {
				return ui.FormatNonInteractiveError(*cfg)
			}
			dev, err := device.New(*profile, storeFor(grantsPath), ui, device.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ctrl := permflow.NewController(dev, ui,
				flow.WithLogger(logger),
				flow.WithOutcomeHandler(&flow.SlogOutcomeHandler{Logger: logger}),
			)
			f, err := ctrl.Start(ctx, *cfg)
			if err != nil {
				return err
			}
			outcome, err := f.Wait(context.WithoutCancel(ctx))

			if asJSON {
				report := runReport{FlowID: f.ID(), Error: errors.ToErrorDetail(err)}
				if err == nil {
					report.Outcome = &outcome
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(report); encErr != nil {
					return encErr
				}
			}
			if err != nil {
				return err
			}
			if !asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "\nResult: %s\n", outcome)
			}
			if !outcome.IsGranted() {
				return errDenied
			}
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "permflow.yaml", "Flow configuration (YAML, JSON or JSONC)")
	cmd.Flags().StringP("device", "d", "", "Simulated device profile; default has the app installed and generic settings")
	cmd.Flags().String("grants", "", "Grants file of the simulated device; empty keeps grants in memory")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().StringSlice("capability", nil, "Request these capabilities instead of the configured list")
	cmd.Flags().Bool("require-tty", false, "Fail unless stdin is a terminal")
	return cmd
}

func loadProfile(path, subjectID string) (*entities.DeviceProfile, error) {
	if path == "" {
		return &entities.DeviceProfile{Installed: []string{subjectID}, GenericSettings: true}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read device profile: %w", err)
	}
	return parser.ForPath(path).ParseDevice(data)
}

func storeFor(path string) ports.GrantStore {
	if path == "" {
		return grant_store.NewMemoryStore(nil)
	}
	return grant_store.NewFileStore(grant_store.WithPath(path))
}

func loggerFromFlags(cmd *cobra.Command) (*slog.Logger, error) {
	levelText, _ := cmd.Flags().GetString("log-level")
	formatText, _ := cmd.Flags().GetString("log-format")
	level, err := log.ParseLevel(levelText)
	if err != nil {
		return nil, err
	}
	format, err := log.ParseFormat(formatText)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(cmd.ErrOrStderr(), log.WithLevel(level), log.WithFormat(format)), nil
}
