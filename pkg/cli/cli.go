package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
	writer io.Writer
}

type Option func(*CLI)

// WithWriter replaces stdout of command output. Logs are not affected.
func WithWriter(w io.Writer) Option {
	return func(x *CLI) {
		x.writer = w
	}
}

func New(options ...Option) *CLI {
	x := &CLI{}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *CLI) Run(argv []string) error {
	return x.RunContext(context.Background(), argv)
}

func (x *CLI) RunContext(ctx context.Context, argv []string) error {
	if err := x.command().Run(ctx, argv); err != nil {
		logging.Default().Error("fatal error", "error", err)
		return err
	}

	return nil
}

func (x *CLI) command() *cli.Command {
	var (
		logLevel  string
		logFormat string
		logOutput string
	)

	return &cli.Command{
		Name:   "octorelay",
		Usage:  "Switch GitHub activity delivery between webhooks and polling by App installation",
		Writer: x.writer,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [trace|debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("OCTORELAY_LOG_LEVEL"),
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("OCTORELAY_LOG_FORMAT"),
				Destination: &logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Aliases:     []string{"o"},
				Sources:     cli.EnvVars("OCTORELAY_LOG_OUTPUT"),
				Destination: &logOutput,
				Value:       "-",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			syncCommand(),
			migrateCommand(),
			statusCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := ConfigureLogging(logFormat, logLevel, logOutput); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
	}
}
