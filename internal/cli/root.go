package cli

import (
	"fmt"
	"io"

	"github.com/Ayash-Bera/highlights/internal/config"
	"github.com/Ayash-Bera/highlights/internal/highlights"
	"github.com/Ayash-Bera/highlights/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

type options struct {
	cfgFile string
	apiBase string
	verbose bool

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCmd builds the highlights command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "highlights",
		Short: "Ask questions about video highlights",
		Long: `highlights is a front-end for the video highlights chat API.

It posts a question to {API_BASE}/chat/query and shows the answer together
with the matched highlight segments, either in the browser (serve) or in
the terminal (ask, chat).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.apiBase, "api-base", "", "highlights API base URL (overrides API_BASE)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newAskCmd(opts),
		newChatCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) load(stderr io.Writer) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.apiBase != "" {
		cfg.API.BaseURL = o.apiBase
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	o.cfg = cfg
	o.logger = utils.NewLogger(cfg.Log.Level, stderr)
	return nil
}

func (o *options) client() *highlights.Client {
	return highlights.NewClient(
		o.cfg.API.BaseURL,
		highlights.WithLogger(o.logger),
		highlights.WithTimeout(o.cfg.API.Timeout),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "highlights %s\n", Version)
		},
	}
}
