// FILE: lixenwraith/unicfg/cmd/unicfg/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/unicfg"
	"github.com/lixenwraith/unicfg/camunda"
)

type resolveRow struct {
	Subsystem string `json:"subsystem" toml:"subsystem"`
	Key       string `json:"key" toml:"key"`
	Winner    string `json:"winner,omitempty" toml:"winner,omitempty"`
	Origin    string `json:"origin" toml:"origin"`
	Source    string `json:"source,omitempty" toml:"source,omitempty"`
	Raw       string `json:"raw,omitempty" toml:"raw,omitempty"`
}

type gateRow struct {
	Gate   string `json:"gate" toml:"gate"`
	Key    string `json:"key" toml:"key"`
	State  string `json:"state" toml:"state"`
	Origin string `json:"origin" toml:"origin"`
	Winner string `json:"winner,omitempty" toml:"winner,omitempty"`
}

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [-- property overrides]",
		Short: "Show which key and source supplies every mapped property",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.properties(cmd, args)
			if err != nil {
				return err
			}
			resolver := unicfg.NewResolver(props, unicfg.WithLogger(a.logger))

			var rows []resolveRow
			for _, s := range camunda.Subsystems() {
				for _, m := range s.Table {
					outcome := resolver.ResolveMapping(m)
					rows = append(rows, resolveRow{
						Subsystem: s.Name,
						Key:       m.Key,
						Winner:    outcome.Key,
						Origin:    outcome.Origin.String(),
						Source:    outcome.Source,
						Raw:       m.Redact(outcome.Raw),
					})
				}
			}

			switch a.format {
			case "json":
				return writeJSON(cmd, rows)
			case "toml":
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"property": rows})
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tORIGIN\tWINNER\tSOURCE\tVALUE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Key, r.Origin, dash(r.Winner), dash(r.Source), dash(r.Raw))
			}
			return tw.Flush()
		},
	}
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [-- property overrides]",
		Short: "Bind every subsystem and report all invalid values",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.properties(cmd, args)
			if err != nil {
				return err
			}
			_, report, err := camunda.Load(props, unicfg.WithLogger(a.logger))
			if err != nil {
				failures := unicfg.BindingErrors(err)
				for _, be := range failures {
					fmt.Fprintf(cmd.OutOrStdout(), "INVALID %s = %q: %v\n", be.Key, be.Raw, be.Err)
				}
				if len(failures) == 0 {
					return err
				}
				return fmt.Errorf("%d invalid properties", len(failures))
			}
			for _, res := range report.Legacy() {
				fmt.Fprintf(cmd.OutOrStdout(), "DEPRECATED %s, use %s\n", res.Outcome.Key, res.Mapping.Key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newGatesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gates [-- property overrides]",
		Short: "Show the state of every conditional activation gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.properties(cmd, args)
			if err != nil {
				return err
			}
			resolver := unicfg.NewResolver(props, unicfg.WithLogger(a.logger))

			var rows []gateRow
			for _, g := range camunda.Gates() {
				state, outcome, err := resolver.GateOutcome(g)
				if err != nil {
					return err
				}
				rows = append(rows, gateRow{
					Gate:   g.Name,
					Key:    g.Key,
					State:  state.String(),
					Origin: outcome.Origin.String(),
					Winner: outcome.Key,
				})
			}

			switch a.format {
			case "json":
				return writeJSON(cmd, rows)
			case "toml":
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{"gate": rows})
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GATE\tSTATE\tORIGIN\tKEY")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Gate, r.State, r.Origin, dash(r.Winner))
			}
			return tw.Flush()
		},
	}
}

func newDumpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [-- property overrides]",
		Short: "Print the bound configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.properties(cmd, args)
			if err != nil {
				return err
			}
			cfg, _, err := camunda.Load(props, unicfg.WithLogger(a.logger))
			if err != nil {
				return err
			}
			redacted := cfg.Redacted()
			if a.format == "json" {
				return writeJSON(cmd, redacted)
			}
			return unicfg.Dump(cmd.OutOrStdout(), redacted)
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
