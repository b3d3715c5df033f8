package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/fenilsonani/folder-organizer/internal/category"
	"github.com/fenilsonani/folder-organizer/internal/config"
	"github.com/fenilsonani/folder-organizer/internal/filelock"
	"github.com/fenilsonani/folder-organizer/internal/logger"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/fenilsonani/folder-organizer/internal/reporter"
	"github.com/fenilsonani/folder-organizer/internal/security"
	"github.com/fenilsonani/folder-organizer/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	dryRun     bool
	noColor    bool
	outputFmt  string
	outputFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "Sort the files of a folder into category subfolders",
	Long: `Organize moves every file directly inside a folder into a subfolder named
after its category (Images, Documents, Videos, Audios, Archives, Programs,
Executables, Others). Name clashes get a numeric suffix, nothing is overwritten.

When no directory is given you are asked for one.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceErrors: true,
	RunE:          runOrganize,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the config file path and the effective configuration values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfgPath := configPath
		if cfgPath == "" {
			var err error
			cfgPath, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(out, "Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
			fmt.Fprintln(out, "Run 'organize config init' to create one.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		fmt.Fprintf(out, "\n%s", data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file if none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.EnsureConfigExists()
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories and their extensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, c := range category.All() {
			fmt.Fprintf(out, "%-12s %s\n", c.Name, strings.Join(c.Extensions, " "))
		}
		fmt.Fprintf(out, "%-12s %s\n", category.Others, "everything else")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output (debug logging)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be moved without moving anything")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored progress output")
	rootCmd.Flags().StringVar(&outputFmt, "output", "summary", "report format (summary, table, json, yaml)")
	rootCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFmt
	}
	if noColor {
		cfg.Color = false
	}

	format, err := reporter.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.EffectiveLogLevel(), cfg.LogFile); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()
	log := logger.Get()

	validator := security.NewPathValidator()
	for _, p := range cfg.ProtectedPaths {
		validator.AddProtectedPath(p)
	}

	var dir string
	if len(args) == 1 {
		dir, err = validator.ValidateTarget(security.CleanInput(args[0]))
		if err != nil {
			return err
		}
	} else {
		dir, err = ui.PromptForDirectory(validator.ValidateTarget)
		if errors.Is(err, ui.ErrCancelled) {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
		if err != nil {
			return err
		}
	}

	lock, err := filelock.ForDirectory(dir)
	if err != nil {
		return err
	}
	if err := lock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Str("lock", lock.Path()).Msg("failed to release run lock")
		}
	}()

	// Machine-readable reports own stdout; progress goes to stderr instead
	status := out
	if outputFile == "" && (format == reporter.FormatJSON || format == reporter.FormatYAML) {
		status = cmd.ErrOrStderr()
	}

	printBanner(status, dir, cfg.DryRun)

	useColor := cfg.Color && !color.NoColor
	org := organizer.New(organizer.Options{
		DryRun:   cfg.DryRun,
		Listener: progress.NewPrinter(status, useColor),
		Logger:   log,
		Ignore:   []string{lock.Path()},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, runErr := org.Organize(ctx, dir)
	if run != nil && (runErr == nil || errors.Is(runErr, context.Canceled)) {
		if err := writeReport(out, run, format); err != nil {
			return err
		}
	}
	return runErr
}

func writeReport(out io.Writer, run *organizer.Run, format reporter.OutputFormat) error {
	if outputFile != "" {
		if err := reporter.SaveToFile(run, outputFile, format); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(out, "Report saved to: %s\n", outputFile)
		return nil
	}

	if err := reporter.New(out, format).Report(run); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

func printBanner(out io.Writer, dir string, dry bool) {
	fmt.Fprintln(out, "🚀 Folder organizer")
	fmt.Fprintf(out, "📂 Organizing: %s\n", dir)
	if dry {
		fmt.Fprintln(out, "[DRY RUN MODE] No files will be moved.")
	}
	fmt.Fprintln(out)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}
