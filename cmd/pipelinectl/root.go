package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/clients/pipelineapi"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/config"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/httpclient"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// cli holds the state shared by every command. api is created on first use
// unless a test has already set it.
type cli struct {
	out io.Writer
	api ports.PipelineAPI
	now func() time.Time

	profile   string
	configDir string
	baseURL   string
	output    string
}

func newCLI(out io.Writer) *cli {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		profile = "local"
	}
	return &cli{
		out:       out,
		now:       time.Now,
		profile:   profile,
		configDir: "configs",
		output:    formatTable,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "pipelinectl",
		Short:         "Manage referral sources and clients through the pipeline API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := validateFormat(c.output); err != nil {
				return err
			}
			if c.api != nil {
				return nil
			}
			return c.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.profile, "profile", c.profile, "config profile to load (env APP_PROFILE)")
	flags.StringVar(&c.configDir, "config-dir", c.configDir, "directory holding base.yaml and profile files")
	flags.StringVar(&c.baseURL, "base-url", "", "server URL, overrides client.base_url")
	flags.StringVarP(&c.output, "output", "o", c.output, "output format: table, json or yaml")

	root.AddGroup(
		&cobra.Group{ID: "entities", Title: "Entity commands:"},
		&cobra.Group{ID: "reports", Title: "Report commands:"},
	)
	root.AddCommand(
		newListCmd(c),
		newGetCmd(c),
		newCreateCmd(c),
		newMoveCmd(c),
		newHistoryCmd(c),
		newContactCmd(c),
		newReportCmd(c),
		newStatusCmd(c),
	)
	return root
}

// connect builds the resilient API client from configuration.
func (c *cli) connect() error {
	cfg, err := config.Load(c.profile, config.WithConfigDir(c.configDir))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.baseURL != "" {
		cfg.Client.BaseURL = strings.TrimRight(c.baseURL, "/")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	client := httpclient.New(&cfg.Client, "pipeline-api", nil, logger)
	c.api = pipelineapi.NewClient(client, logger)
	return nil
}

func (c *cli) renderer() *renderer {
	return newRenderer(c.out, c.output)
}

// parseKindArg accepts the storage tag, the URL segment, or a singular
// short form such as "client" or "source".
func parseKindArg(s string) (pipeline.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "clients":
		return pipeline.KindClient, nil
	case "source", "sources", "referral-source", "referral-sources", "referral_source":
		return pipeline.KindReferralSource, nil
	}
	return pipeline.ParseKind(s)
}
