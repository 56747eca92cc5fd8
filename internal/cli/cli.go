// Package cli is the brandctl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/400brands/brand-doctor/internal/bootstrap"
	"github.com/400brands/brand-doctor/internal/config"
	"github.com/400brands/brand-doctor/internal/infra/report"
)

// Loader builds the wired application for a config path.
type Loader func(ctx context.Context, path string) (*bootstrap.App, error)

// Options contain configuration for the CLI
type Options struct {
	Load   Loader
	Output io.Writer
}

type CLI struct {
	load    Loader
	out     io.Writer
	cfgPath string
	rootCmd *cobra.Command
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Load == nil {
		opts.Load = LoadFromFile
	}
	cli := &CLI{load: opts.Load, out: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// LoadFromFile reads the YAML config and wires every enabled adapter.
func LoadFromFile(ctx context.Context, path string) (*bootstrap.App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := bootstrap.NewLogger(cfg, os.Stderr)
	return bootstrap.Build(logger.WithContext(ctx), cfg)
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "brandctl",
		Short:         "Brand Doctor operations tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)
	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", envOr("CONFIG_PATH", "config.yaml"), "Path to config.yaml")

	cmd.AddCommand(cli.newAnalyzeCmd())
	cmd.AddCommand(cli.newIndustriesCmd())
	cmd.AddCommand(cli.newWaitlistCmd())
	cmd.AddCommand(cli.newRegistryCmd())
	cmd.AddCommand(cli.newMigrateCmd())
	return cmd
}

// withApp loads the app for one command run and closes it afterwards.
func (cli *CLI) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
		ctx = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).WithContext(ctx)
	}
	app, err := cli.load(ctx, cli.cfgPath)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func (cli *CLI) newAnalyzeCmd() *cobra.Command {
	var industry, ip string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <brand name>",
		Short: "Run a brand analysis and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				a, err := app.Brand.Analyze(ctx, args[0], industry, ip)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cli.out, a)
				}
				_, err = io.WriteString(cli.out, report.Markdown(a))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&industry, "industry", "i", "", "Industry key or label")
	cmd.Flags().StringVar(&ip, "ip", "", "Client IP used for location lookup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	return cmd
}

func (cli *CLI) newIndustriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List selectable industries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withApp(cmd, func(_ context.Context, app *bootstrap.App) error {
				tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
				for _, ind := range app.Brand.Industries() {
					fmt.Fprintf(tw, "%s\t%s\n", ind.Key, ind.Label)
				}
				return tw.Flush()
			})
		},
	}
}

func (cli *CLI) newWaitlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect and manage the waitlist",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.Waitlist.List(ctx, page, limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "EMAIL\tSTATUS\tJOINED")
				for _, e := range p.Data {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Email, e.Status, e.CreatedAt.Format("2006-01-02 15:04"))
				}
				fmt.Fprintf(tw, "\npage %d/%d, %d total\n", p.Page, p.TotalPages, p.Total)
				return tw.Flush()
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&limit, "limit", 20, "Entries per page (max 100)")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				st, err := app.Waitlist.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cli.out, "total: %d\npending: %d\nnotified: %d\nlaunched: %d\n",
					st.Total, st.Pending, st.Notified, st.Launched)
				return nil
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <email>",
		Short: "Add an address to the waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				e, err := app.Waitlist.Join(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cli.out, "added %s (%s)\n", e.Email, e.ID)
				return nil
			})
		},
	}

	cmd.AddCommand(list, stats, add)
	return cmd
}

func (cli *CLI) newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry <business name>",
		Short: "Search the company registry for a business name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if app.Registry == nil {
					return fmt.Errorf("search is not configured (search.apiKey, search.engineID)")
				}
				results, err := app.Registry.Search(ctx, args[0])
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(cli.out, "%s\n  %s\n", r.Title, r.Link)
				}
				if len(results) == 0 {
					fmt.Fprintln(cli.out, "no results")
				}
				return nil
			})
		},
	}
}

func (cli *CLI) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the waitlist schema in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// connecting applies the schema
			return cli.withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Health["database"].Check(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cli.out, "schema up to date")
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
