package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ironsheep/image-list-mcp/internal/config"
	"github.com/ironsheep/image-list-mcp/internal/logging"
	"github.com/ironsheep/image-list-mcp/internal/order"
	"github.com/ironsheep/image-list-mcp/internal/selection"
	"github.com/ironsheep/image-list-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-list-mcp",
		Short: "MCP server for image list ordering and selection geometry",
		Long: `image-list-mcp exposes the ordering and selection core of an image viewer
over the Model Context Protocol: natural-order image list sorting with
directory grouping, and drag-selection geometry with crop and preview
rendering.

Without a subcommand it serves MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runServe,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.image-list-mcp.yaml or $HOME/.image-list-mcp.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or console")
	bindFlag(rootCmd.PersistentFlags().Lookup("log-level"), "log.level")
	bindFlag(rootCmd.PersistentFlags().Lookup("log-format"), "log.format")

	rootCmd.AddCommand(newServeCmd(), newSortCmd(), newSelectCmd(), newVersionCmd())
	return rootCmd
}

func bindFlag(f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// initConfig resolves the configuration and the global logger before any
// command runs.
func initConfig(cmd *cobra.Command, _ []string) error {
	home, _ := os.UserHomeDir()
	if err := config.ReadFile(v, cfgFile, home); err != nil {
		return err
	}

	c, err := config.Decode(v)
	if err != nil {
		return err
	}
	cfg = c

	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		logging.L().Debug("using config file", zap.String("path", used))
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	defer logging.Sync()

	logger := logging.L()
	logger.Info("starting image-list-mcp",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	ctx, cancel := signalContext()
	defer cancel()

	server.Version = Version
	srv := server.New(cfg, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

func newSortCmd() *cobra.Command {
	var exts []string

	cmd := &cobra.Command{
		Use:   "sort [paths...]",
		Short: "Print image paths in viewer order",
		Long: `Sort files, and the image files of directories given on the command line,
the way the viewer orders its image list. Paths are printed one per line.
Files whose metadata cannot be read are printed last in their group and
reported on stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Sync()

			if len(exts) == 0 {
				exts = nil
			}
			paths, err := order.Expand(args, exts)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			sorter := order.NewSorter(cfg.Sort.Workers, logging.L().Named("order"))
			res, err := sorter.Sort(ctx, paths, cfg.Sort.Options)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for p := range res.All() {
				fmt.Fprintln(out, p)
			}
			for _, e := range res.Unavailable {
				logging.L().Warn("metadata unavailable", zap.String("path", e.Path), zap.Error(e.Err))
			}
			return nil
		},
	}

	cmd.Flags().String("order-by", "", "sort key: name, file_size, creation_time, last_access_time, last_write_time, extension, random, exif_date_taken")
	cmd.Flags().String("order-type", "", "sort direction: asc or desc")
	cmd.Flags().Bool("group-by-dir", false, "keep files of the same directory together")
	cmd.Flags().Int("workers", 0, "goroutines used to read file metadata")
	cmd.Flags().StringSliceVar(&exts, "ext", nil, "image extensions to list in directories (default: common image formats)")
	bindFlag(cmd.Flags().Lookup("order-by"), "sort.order_by")
	bindFlag(cmd.Flags().Lookup("order-type"), "sort.order_type")
	bindFlag(cmd.Flags().Lookup("group-by-dir"), "sort.group_by_dir")
	bindFlag(cmd.Flags().Lookup("workers"), "sort.workers")

	return cmd
}

type selectOutput struct {
	Selection selection.Rect      `json:"selection"`
	Rect      string              `json:"rect"`
	Empty     bool                `json:"empty"`
	Resizers  []selection.Resizer `json:"resizers,omitempty"`
}

func newSelectCmd() *cobra.Command {
	var from, to, bounds string

	cmd := &cobra.Command{
		Use:     "select",
		Short:   "Compute a selection rectangle and its resize handles",
		Example: `  image-list-mcp select --from 80,90 --to 20,60 --bounds "0;0;100;100"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p1, err := selection.ParsePoint(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			p2, err := selection.ParsePoint(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			b, err := selection.ParseRect(bounds)
			if err != nil {
				return fmt.Errorf("--bounds: %w", err)
			}

			sel := selection.Compute(p1, p2, b)
			out, err := json.MarshalIndent(selectOutput{
				Selection: sel,
				Rect:      selection.FormatRect(sel),
				Empty:     sel.IsEmpty(),
				Resizers:  selection.Resizers(sel, cfg.Selection.HandleSize),
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "drag start corner as x,y")
	cmd.Flags().StringVar(&to, "to", "", "drag end corner as x,y")
	cmd.Flags().StringVar(&bounds, "bounds", "", "clip bounds as left;top;width;height")
	cmd.Flags().Float64("handle-size", 0, "side of the square resize handles")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("bounds")
	bindFlag(cmd.Flags().Lookup("handle-size"), "selection.handle_size")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-list-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
