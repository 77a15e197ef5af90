package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"retail-dashboard/internal/data"
	"retail-dashboard/internal/model"
	"retail-dashboard/internal/render"
	"retail-dashboard/internal/simulator"
	"retail-dashboard/internal/ui"
	"retail-dashboard/internal/upload"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	savePath     string
	snapshotPath string
	simParams    map[string]string
	outPath      string
	scenario     string
)

func newTerminal(cmd *cobra.Command) *terminal {
	return &terminal{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analytics backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend %s: %w", cfg.Backend.BaseURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "backend %s: %s\n", cfg.Backend.BaseURL, h.Status)
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products with their risk level",
	Long: `Lists the product catalogue. --save writes the listing to a JSON snapshot;
--snapshot reads a saved snapshot instead of calling the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var snap *data.ProductSnapshot
		if snapshotPath != "" {
			s, err := data.LoadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			snap = s
		} else {
			list, err := client.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			snap = data.NewProductSnapshot(cfg.Backend.BaseURL, list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tRISK\tDAYS OF STOCK\tTREND\tPRICE")
		for _, p := range snap.Products {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t$%.2f\n", p.ProductName, p.RiskLevel, p.DaysOfStock, render.SignedPct(p.DemandTrendPct), p.CurrentPrice)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if savePath != "" {
			if err := data.SaveSnapshot(snap, savePath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d products to %s\n", len(snap.Products), savePath)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [product]",
	Short: "Show the full analysis of one product",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product := strings.Join(args, " ")
		res, err := client.AnalyzeProduct(cmd.Context(), product)
		if err != nil {
			if data.IsNotFound(err) {
				return fmt.Errorf("product %q not found", product)
			}
			return err
		}
		out, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var tabsCmd = &cobra.Command{
	Use:   "tabs [tab]",
	Short: "Show the simulator tabs, optionally switching to one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panels := ui.NewPanels()
		if len(args) == 1 {
			tab, err := model.ParseTab(args[0])
			if err != nil {
				return err
			}
			if err := panels.SwitchTab(tab); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatTabs(panels.States()))
		active := panels.Active()
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s (%s)\n", active, active.SimType(), strings.Join(active.SimType().Params(), ", "))
		return nil
	},
}

// parseSimArg accepts a simulation type or a tab id.
func parseSimArg(s string) (model.SimType, error) {
	if t, err := model.ParseSimType(s); err == nil {
		return t, nil
	}
	tab, err := model.ParseTab(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrUnknownSimType, s)
	}
	return tab.SimType(), nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [heading] [type]",
	Short: "Run one what-if simulation for a product",
	Long: `Runs one simulation. heading is the product heading as shown on the
product page (the marker prefix is optional). type is a simulation type or a
tab id.

Example:
  dashboard simulate "📦 Fresh Milk" promotion -p discount_pct=20 -p duration_days=7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := parseSimArg(args[1])
		if err != nil {
			return err
		}
		term := newTerminal(cmd)
		ctrl := simulator.NewController(client, term, simulator.Options{
			HeadingPrefix: cfg.UI.HeadingPrefix,
			Logger:        logger,
		})
		if tab, ok := model.TabFor(st); ok {
			if err := ctrl.SwitchTab(tab); err != nil {
				return err
			}
		}
		btn := ui.NewButton("Run Simulation")
		if err := ctrl.Run(cmd.Context(), btn, args[0], st, model.Fields(simParams)); err != nil {
			if errors.Is(err, model.ErrMissingField) {
				return fmt.Errorf("%w (needs %s)", err, strings.Join(st.Params(), ", "))
			}
			return err
		}
		return nil
	},
}

var simulateAllCmd = &cobra.Command{
	Use:   "simulate-all [heading]",
	Short: "Run every simulation type for a product concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := simulator.NewController(client, newTerminal(cmd), simulator.Options{
			HeadingPrefix: cfg.UI.HeadingPrefix,
			Logger:        logger,
		})
		rows := ctrl.RunAll(cmd.Context(), args[0], model.Fields(simParams))

		failed := 0
		for _, row := range rows {
			if row.Err != "" {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", row.Panel.Type, alertStyle.Render(row.Err))
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatPanel(row.Panel))
			fmt.Fprintln(cmd.OutOrStdout())
		}

		if outPath != "" {
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return err
			}
			if err := render.WriteResultsCSV(outPath, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		}
		if failed == len(rows) {
			return errors.New(simulator.AlertMessage)
		}
		return nil
	},
}

var storeSimCmd = &cobra.Command{
	Use:   "store-sim",
	Short: "Run a store-wide scenario across every product",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client.SimulateStore(cmd.Context(), scenario, simParams)
		if err != nil {
			return err
		}
		s := out.Summary
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Products impacted:"), out.ProductsImpacted)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Revenue change:"), render.SignedUSD(s.TotalRevenueChange))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Revenue change %:"), render.SignedPct(s.RevenueChangePct))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Demand change:"), render.SignedPct(s.DemandChangePct))
		if s.NetProfitImpact != nil {
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Net profit impact:"), render.SignedUSD(*s.NetProfitImpact))
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Action:"), s.Action)
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload an inventory spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := newTerminal(cmd)
		var file *upload.File
		if len(args) == 1 {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			file = &upload.File{Name: filepath.Base(args[0]), Content: content}
		}
		ctrl := upload.NewController(client, term, term, upload.Options{
			DashboardRoute: cfg.UI.DashboardRoute,
			Logger:         logger,
			OnSuccess:      client.Cache.Clear,
		})
		_, err := ctrl.Upload(cmd.Context(), ui.NewButton("Upload"), file)
		return err
	},
}

var copilotCmd = &cobra.Command{
	Use:   "copilot [question...]",
	Short: "Ask the retail copilot a question",
	Long:  `Without a question, lists suggested questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return printSuggestions(cmd.Context(), cmd)
		}
		answer, err := client.CopilotQuery(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return err
		}
		out, err := renderer.Render(answer.Response)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		for _, s := range answer.Suggestions {
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("→ "+s))
		}
		return nil
	},
}

func printSuggestions(ctx context.Context, cmd *cobra.Command) error {
	sugg, err := client.CopilotSuggestions(ctx)
	if err != nil {
		return err
	}
	for _, s := range sugg.Suggestions {
		fmt.Fprintln(cmd.OutOrStdout(), "• "+s)
	}
	return nil
}

func init() {
	productsCmd.Flags().StringVar(&savePath, "save", "", "Save the listing to a JSON snapshot")
	productsCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Read a saved snapshot instead of the backend")

	for _, c := range []*cobra.Command{simulateCmd, simulateAllCmd, storeSimCmd} {
		c.Flags().StringToStringVarP(&simParams, "param", "p", nil, "Simulation parameter as name=value (repeatable)")
	}
	simulateAllCmd.Flags().StringVar(&outPath, "out", "", "Write results to this CSV file")
	storeSimCmd.Flags().StringVar(&scenario, "scenario", "price_change", "Scenario: price_change, promotion or marketing")
}
