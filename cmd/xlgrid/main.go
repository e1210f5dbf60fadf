// Package main provides the xlgrid command: a drag-to-aggregate grid in the
// terminal, over HTTP, or replayed from a script.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/config"
	"github.com/javajack/xlgrid/internal/script"
	"github.com/javajack/xlgrid/internal/server"
	"github.com/javajack/xlgrid/internal/tui"
)

var (
	configPath string
	rows       int
	cols       int
	writeBack  string
	port       int
	devMode    bool
	force      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlgrid",
		Short: "Select a block of cells and write its aggregate back into the grid",
		Long: `xlgrid keeps a grid of text cells. Dragging across a rectangle shows the
sum, product, simple and compound interest of its cells; releasing writes
one of them into the last cell of the drag.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: xlgrid.toml next to the executable)")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", 0, "Grid rows (overrides config)")
	rootCmd.PersistentFlags().IntVar(&cols, "cols", 0, "Grid columns (overrides config)")
	rootCmd.PersistentFlags().StringVar(&writeBack, "write-back", "", "Aggregate written on release: sum, product, simple-interest, compound-interest")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal grid (default)",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid as a JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "Development mode (request logging)")

	replayCmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Replay a gesture script and print the resulting grid",
		Long: `Replay reads one event per line from the script, or from stdin when no
file is given:

  edit A1 1000
  down A1
  enter C1
  up`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReplay,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config (default: --config or xlgrid.toml next to the executable)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(tuiCmd, serveCmd, replayCmd, configCmd)
	return rootCmd
}

// setup loads the config, applies flag overrides, validates the result and
// builds the controller.
func setup(logOut io.Writer) (*config.AppConfig, *xlgrid.Controller, *slog.Logger, error) {
	cfg, info, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if rows > 0 {
		cfg.Grid.Rows = rows
	}
	if cols > 0 {
		cfg.Grid.Cols = cols
	}
	if writeBack != "" {
		cfg.Grid.WriteBack = writeBack
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config %s: %w", info.Path, err)
	}

	logger, err := cfg.Log.Logger(logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("config loaded", slog.String("path", info.Path), slog.Bool("found", info.Found))

	ctrl, err := xlgrid.NewController(cfg.Grid.Rows, cfg.Grid.Cols,
		xlgrid.WithWriteBack(cfg.Grid.Aggregate()),
		xlgrid.WithLogger(logger),
		xlgrid.WithCommitListener(xlgrid.CommitListenerFunc(func(c xlgrid.Commit, _ xlgrid.State) {
			logger.Info("commit", slog.String("cell", c.Sink.String()), slog.String("value", c.Value))
		})),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ctrl, logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the grid; logs would corrupt the screen.
	_, ctrl, _, err := setup(io.Discard)
	if err != nil {
		return err
	}
	return tui.Run(ctrl)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, ctrl, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	srv := server.New(ctrl, cfg.Server, logger)
	return srv.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}

func runReplay(cmd *cobra.Command, args []string) error {
	_, ctrl, _, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	res, err := script.Replay(ctrl, in)
	out := cmd.OutOrStdout()
	for _, c := range res.Commits {
		fmt.Fprintln(out, c)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, ctrl.State().Describe())
	sum := ctrl.Summary()
	fmt.Fprintf(out, "\nsum %s  product %s  simple-interest %s  compound-interest %s\n",
		sum.Sum, sum.Product, sum.SimpleInterest, sum.CompoundInterest)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Save(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
