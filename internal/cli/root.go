// Package cli implements the docsum command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"docsum/internal/config"
	"docsum/internal/gateway"
	"docsum/internal/logger"
	"docsum/internal/workflow"
)

// GatewayFactory builds the gateway once flags and config are resolved.
type GatewayFactory func(cfg config.ClientConfig, log *zap.Logger) (gateway.Gateway, error)

// TUIRunner runs the interactive UI over a session until the user quits.
type TUIRunner func(ctx context.Context, session *workflow.Session) error

// Options are the collaborators injected into the command tree.
type Options struct {
	NewGateway GatewayFactory
	RunTUI     TUIRunner
}

// HTTPGateway is the default GatewayFactory.
func HTTPGateway(cfg config.ClientConfig, log *zap.Logger) (gateway.Gateway, error) {
	return gateway.NewHTTP(cfg, gateway.WithLogger(log.Named("gateway")))
}

// app carries the state resolved in the root's PersistentPreRunE.
type app struct {
	opts    Options
	v       *viper.Viper
	cfgFile string
	log     *zap.Logger
	session *workflow.Session
}

// NewRootCommand builds the docsum command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.NewGateway == nil {
		opts.NewGateway = HTTPGateway
	}
	a := &app{opts: opts, v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "docsum",
		Short: "Summarize documents and ask the AI assistant",
		Long: `docsum uploads documents to the summarizer service, shows their AI summaries
and answers free-form questions.

Configuration is read from flags, DOCSUM_* environment variables and
$HOME/.docsum.yaml, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	defaults := config.LoadClient()
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.docsum.yaml)")
	flags.String("base-url", defaults.BaseURL, "summarizer service URL")
	flags.Duration("timeout", defaults.Timeout, "per-request timeout")
	flags.BoolP("verbose", "v", false, "log gateway calls to stderr")

	for _, name := range []string{"base-url", "timeout", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.listCommand(),
		a.uploadCommand(),
		a.viewCommand(),
		a.deleteCommand(),
		a.deleteAllCommand(),
		a.askCommand(),
		a.tuiCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.readConfig(); err != nil {
		return err
	}

	a.log = logger.NewVerbose(a.v.GetBool("verbose"))

	cfg := config.ClientConfig{
		BaseURL: a.v.GetString("base-url"),
		Timeout: a.v.GetDuration("timeout"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	gw, err := a.opts.NewGateway(cfg, a.log)
	if err != nil {
		return err
	}
	a.session = workflow.NewSession(gw, a.log)
	a.log.Debug("client_configured", zap.String("base_url", cfg.BaseURL), zap.Duration("timeout", cfg.Timeout))
	return nil
}

func (a *app) readConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(".docsum")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("DOCSUM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && a.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Execute runs the command tree against os.Args and returns the process exit code.
func Execute(ctx context.Context, opts Options) int {
	root := NewRootCommand(opts)
	// cobra prints to stderr unless told otherwise
	root.SetOut(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", message(err))
}

// message prefers the workflow's user-facing wording and falls back to the raw error
// for flag and argument mistakes.
func message(err error) string {
	switch {
	case gateway.KindOf(err) != gateway.KindUnknown,
		workflow.IsPrecondition(err),
		errors.Is(err, workflow.ErrBusy),
		errors.Is(err, workflow.ErrStale):
		return workflow.Describe(err)
	default:
		return err.Error()
	}
}
