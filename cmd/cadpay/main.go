package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/config"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/rgehrsitz/cadpay/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile  string
	v        = viper.New()
	settings config.Settings
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// slogLogger implements calculation.Logger on top of slog
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cadpay %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "cadpay",
	Short: "Canadian payroll deduction calculator",
	Long: `Computes federal and provincial income tax, CPP/QPP contributions and
EI/QPIP premiums for an annual taxable income in any Canadian province or
territory.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initSettings,
}

// initSettings resolves flags, CADPAY_* environment variables and the config
// file into settings, then configures logging
func initSettings(cmd *cobra.Command, args []string) error {
	s, err := config.ReadSettings(v, cfgFile)
	if err != nil {
		return err
	}
	level, err := s.SlogLevel()
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(s.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text", "":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return fmt.Errorf("invalid log format: %s", s.LogFormat)
	}
	logger = slog.New(handler)
	slog.SetDefault(logger)

	settings = s
	return nil
}

// newEngine loads the configured tables and attaches the CLI logger
func newEngine() (*calculation.Engine, error) {
	tables, err := settings.Tables()
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngine(tables)
	engine.SetLogger(slogLogger{l: logger})
	return engine, nil
}

// jurisdictionAndYear resolves the configured jurisdiction and tax year
func jurisdictionAndYear(engine *calculation.Engine) (domain.Jurisdiction, domain.TaxYear, error) {
	j, err := domain.ParseJurisdiction(settings.Jurisdiction)
	if err != nil {
		return "", 0, err
	}
	return j, settings.TaxYear(engine.Tables), nil
}

func formatter() (output.Formatter, error) {
	f := output.GetFormatterByName(settings.Format)
	if f == nil {
		return nil, fmt.Errorf("unknown format %q (valid: %s)", settings.Format, strings.Join(output.FormatterNames, ", "))
	}
	return f, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/cadpay/config.yaml)")
	pf.StringP("jurisdiction", "j", "ON", "province or territory code or name")
	pf.IntP("year", "y", 0, "tax year (default: latest in the tables)")
	pf.StringP("format", "f", "console", "output format: "+strings.Join(output.FormatterNames, ", "))
	pf.String("tables", "", "tax table file overriding the built-in tables")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	_ = v.BindPFlag(config.KeyJurisdiction, pf.Lookup("jurisdiction"))
	_ = v.BindPFlag(config.KeyYear, pf.Lookup("year"))
	_ = v.BindPFlag(config.KeyFormat, pf.Lookup("format"))
	_ = v.BindPFlag(config.KeyTables, pf.Lookup("tables"))
	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
