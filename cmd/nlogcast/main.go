package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogcast/config"
	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/logger"
)

var (
	// Version is injected at build time with -ldflags "-X main.Version=..."
	Version = "dev"
	// BuildDate is injected at build time with -ldflags "-X main.BuildDate=..."
	BuildDate = ""
)

const (
	appName  = "nlogcast"
	appShort = "broadcast leveled log messages to the configured receivers"
	appLong  = `nlogcast sends log messages through an nlogcast logger.

	The logger is configured from NLOG_* environment variables (an optional
	.env file in the working directory is read first) or from a YAML file
	passed with --config. Every message that passes the level threshold is
	delivered to the enabled console and file receivers.`

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"
	configFlagName        = "config"
	configFlagUsage       = "path to a YAML configuration file, replaces the NLOG_* environment"

	versionCmdName = "version"
	versionShort   = "Display the " + appName + " version"
)

var logLevelFlagUsage = func() string {
	names := make([]string, 0, len(core.AllLevels()))
	for _, l := range core.AllLevels() {
		names = append(names, l.String())
	}
	return "override the configured threshold (possible values: " + strings.Join(names, ", ") + ")"
}()

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel   string
	configPath string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, "", logLevelFlagUsage)
	flags.StringVar(&f.configPath, configFlagName, "", configFlagUsage)
}

// loadConfig resolves the logger configuration from the file or the
// environment and applies the --log-level override.
func (f *rootFlags) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if f.logLevel != "" {
		level, err := core.ParseLevel(f.logLevel)
		if err != nil {
			return cfg, err
		}
		cfg.Level = level
	}
	return cfg, nil
}

// newLogger builds the logger used by a command. The console receiver
// writes to the command's output streams so they can be captured.
func (f *rootFlags) newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	var console io.Writer = cmd.OutOrStdout()
	if cfg.Console.Stderr {
		console = cmd.ErrOrStderr()
	}
	return logger.NewFromConfig(cfg, console)
}

func main() {
	cmd := rootCmd()

	exitCode := 0
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),
		Long:  heredoc.Doc(appLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flags.addFlags(cmd)
	cmd.AddCommand(
		emitCmd(flags),
		pipeCmd(flags),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, BuildDate, runtime.Version()))
		},
	}
}

// versionString formats the version metadata for display.
func versionString(version, buildDate, runtimeVersion string) string {
	outputString := version
	if buildDate != "" {
		outputString += " (" + buildDate + ")"
	}

	return outputString + ", Go Version: " + runtimeVersion
}
