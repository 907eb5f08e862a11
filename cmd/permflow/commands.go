package main

import (
	"fmt"
	"sort"

	"github.com/reglet-dev/permflow"
	"github.com/reglet-dev/permflow/application/schema"
	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
	grant_store "github.com/reglet-dev/permflow/infrastructure/grantstore"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>...",
		Short: "Validate flow configuration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				if _, err := permflow.LoadConfig(path); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d configurations invalid", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [flow|device]",
		Short:     "Print the JSON schema of flow configurations or device profiles",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"flow", "device"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "flow"
			if len(args) == 1 {
				kind = args[0]
			}
			var (
				out []byte
				err error
			)
			switch kind {
			case "flow":
				out, err = schema.FlowConfigSchema()
			case "device":
				out, err = schema.DeviceProfileSchema()
			default:
				return fmt.Errorf("unknown schema %q (want flow or device)", kind)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func grantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grants",
		Short: "Inspect or reset the simulated device's grants",
	}
	cmd.PersistentFlags().String("grants", "", "Grants file (default ~/.permflow/grants.yaml)")

	show := &cobra.Command{
		Use:   "show",
		Short: "List stored grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := grantStoreFromFlags(cmd)
			table, err := store.Load()
			if err != nil {
				return err
			}
			if len(table.Grants) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no grants in %s\n", store.ConfigPath())
				return nil
			}
			caps := make([]string, 0, len(table.Grants))
			for c := range table.Grants {
				caps = append(caps, string(c))
			}
			sort.Strings(caps)
			for _, c := range caps {
				entry := table.Grants[entities.Capability(c)]
				suffix := ""
				if entry.NeverAsk {
					suffix = " (never ask)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s%s\n", c, entry.Status, suffix)
			}
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget all stored grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := grantStoreFromFlags(cmd)
			if err := store.Save(entities.NewGrantTable()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "grants reset in %s\n", store.ConfigPath())
			return nil
		},
	}

	cmd.AddCommand(show, reset)
	return cmd
}

func grantStoreFromFlags(cmd *cobra.Command) ports.GrantStore {
	path, _ := cmd.Flags().GetString("grants")
	var opts []grant_store.FileStoreOption
	if path != "" {
		opts = append(opts, grant_store.WithPath(path))
	}
	return grant_store.NewFileStore(opts...)
}
