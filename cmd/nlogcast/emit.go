package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogcast/core"
)

const (
	emitCmdUsage = "emit [message...]"
	emitCmdShort = "log a single message"
	emitCmdLong  = `Log a single message through a logger built from the configuration.
	The arguments are joined with spaces to form the message text. Nothing is
	printed when the level does not pass the configured threshold.`

	emitCmdExample = `# Log an error from the Mixer component
	nlogcast emit --sender Mixer --level error "Buffer underrun (3)"

	# Log to a file only
	NLOG_CONSOLE_ENABLED=false NLOG_FILE_ENABLED=true nlogcast emit hello`

	senderFlagName   = "sender"
	senderFlagShort  = "s"
	senderFlagUsage  = "sender tag attached to the message"
	defaultSender    = appName
	levelFlagName    = "level"
	levelFlagShort   = "l"
	levelFlagUsage   = "severity of the message"
	defaultEmitLevel = "INFO"
)

var errNoMessage = errors.New("no message provided")

// messageFlags holds the flags shared by the emit and pipe commands.
type messageFlags struct {
	sender string
	level  string
}

// addFlags registers the message flags on cmd.
func (f *messageFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.sender, senderFlagName, senderFlagShort, defaultSender, senderFlagUsage)
	cmd.Flags().StringVarP(&f.level, levelFlagName, levelFlagShort, defaultEmitLevel, levelFlagUsage)
}

// parsedLevel validates the --level flag
func (f *messageFlags) parsedLevel() (core.Level, error) {
	level, err := core.ParseLevel(f.level)
	if err != nil {
		return level, fmt.Errorf("--%s: %w", levelFlagName, err)
	}
	return level, nil
}

// emitCmd returns the Cobra command that logs one message.
func emitCmd(root *rootFlags) *cobra.Command {
	flags := &messageFlags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) == 0 {
				return handleError(cmd, errNoMessage)
			}

			level, err := flags.parsedLevel()
			if err != nil {
				return handleError(cmd, err)
			}

			log, err := root.newLogger(cmd)
			if err != nil {
				if log != nil {
					_ = log.Close()
				}
				return handleError(cmd, err)
			}
			defer func() {
				if closeErr := log.Close(); closeErr != nil {
					err = handleError(cmd, multierr.Append(err, closeErr))
				}
			}()

			log.Log(level, flags.sender, "%s", strings.Join(args, " "))
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// handleError prints err and returns it, adding the usage text for
// argument errors.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	if errors.Is(err, errNoMessage) {
		_ = cmd.Usage() // do not check error as we cannot do much about it
	}
	return err
}
