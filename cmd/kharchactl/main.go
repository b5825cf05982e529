package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kharcha/internal/cli"
	"kharcha/internal/client"
	"kharcha/internal/log"
)

// app carries what every subcommand needs. Each root command gets its own
// viper instance so tests can build as many as they like.
type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
	logger  *log.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, logger: log.Discard()}

	root := &cobra.Command{
		Use:   "kharchactl",
		Short: "💰 Command-line client for the kharcha expense tracker",
		Long: `kharchactl talks to a running kharcha API server. It lists, adds, edits and
deletes expenses, prints category summaries, exports sheets, mirrors the
collection to Google Sheets and opens a terminal UI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/kharcha/config.yaml)")
	flags.String("api-url", "http://localhost:8081", "base URL of the kharcha API")
	flags.Duration("timeout", 10*time.Second, "HTTP timeout per request")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	_ = a.v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.summaryCmd(),
		a.exportCmd(),
		a.syncCmd(),
		a.tuiCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home + "/.config/kharcha")
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("KHARCHA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	a.logger = log.New(log.Config{
		Level:     log.ParseLevel(a.v.GetString("logging.level")),
		Format:    a.v.GetString("logging.format"),
		Component: log.ComponentApp,
		Output:    cmd.ErrOrStderr(),
	})
	return nil
}

func (a *app) api() *client.APIClient {
	return client.NewAPIClient(a.v.GetString("api_url"), &http.Client{Timeout: a.v.GetDuration("timeout")})
}

func main() {
	cli.LoadEnvFile()

	ctx, cancel := cli.ShutdownContext(context.Background(), log.Discard())
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
