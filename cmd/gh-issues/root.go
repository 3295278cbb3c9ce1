package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swfz/gh-issues/internal/app"
)

// cli carries the state shared by every command
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "gh-issues [organization/repository]",
		Short: "Browse the open issues of a GitHub repository",
		Long: `gh-issues shows a repository's open issues five at a time, with their
latest reactions, and lets you star or unstar the repository.

Without a subcommand it starts an interactive browser.

Example:
  gh issues facebook/react
  gh issues issues facebook/react --output json`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Browse(cmd.Context(), firstArg(args))
		},
	}

	cobra.OnInitialize(c.initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is .gh-issues.yaml)")
	flags.String("token", "", "GitHub personal access token")
	flags.String("endpoint", "", "GraphQL endpoint (default https://api.github.com/graphql)")
	flags.Duration("timeout", 0, "HTTP timeout (default 30s, 0 disables)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-file", "", "write debug logs of the interactive browser to this file")
	flags.StringP("output", "o", "", "output format: table, json or yaml")

	for key, flag := range map[string]string{
		"token":    "token",
		"endpoint": "endpoint",
		"timeout":  "timeout",
		"verbose":  "verbose",
		"log_file": "log-file",
		"output":   "output",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}
	c.v.SetDefault("timeout", "30s")

	rootCmd.AddCommand(
		newIssuesCommand(c),
		newStarCommand(c),
		newQuotaCommand(c),
	)

	return rootCmd
}

func (c *cli) initConfig() {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		c.v.AddConfigPath(cwd)
		c.v.SetConfigType("yaml")
		c.v.SetConfigName(".gh-issues")
	}

	c.v.SetEnvPrefix("GH_ISSUES")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindEnv("token", "GH_ISSUES_TOKEN", "GITHUB_TOKEN", "GH_TOKEN")

	if err := c.v.ReadInConfig(); err == nil {
		if c.v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", c.v.ConfigFileUsed())
		}
	}
}

// newApp loads the configuration and builds the application
func (c *cli) newApp(cmd *cobra.Command) (*app.App, error) {
	config, err := app.LoadConfig(c.v)
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if config.Verbose {
		logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	}

	if source := config.ResolveToken(); source != "" {
		logger.Printf("Using token from %s", source)
	}

	return app.New(config, cmd.OutOrStdout(), logger), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
