// Package cli implements chefctl, the operator tool for inspecting the chef
// directory from a terminal.
package cli

import (
	"context"
	"fmt"
	"time"

	"chefdhundo-backend/internal/domain"
	repo "chefdhundo-backend/internal/repository/notion"
	"chefdhundo-backend/pkg/notion"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "chefctl"

// Actual version can be specified in build command.
var version = "unknown"

// Config is what chefctl reads from flags, env and chefctl.yaml.
type Config struct {
	NotionBaseURL     string `mapstructure:"notion-base-url"`
	NotionVersion     string `mapstructure:"notion-version"`
	NotionUserDBToken string `mapstructure:"notion-userdb-int"`
	NotionUserDBID    string `mapstructure:"notion-userdb-id"`
	NotionResumeToken string `mapstructure:"notion-resumedb-int"`
	NotionResumeDBID  string `mapstructure:"notion-resumedb-id"`
	Timeout           time.Duration
	Debug             bool
	JSON              bool
}

// Sources are the collections a command reads.
type Sources struct {
	Candidates domain.CandidateRepository
	Users      domain.UserRepository
}

// OpenFunc builds the sources from the resolved config.
type OpenFunc func(cfg *Config) (*Sources, error)

// OpenNotion connects to the two Notion databases.
func OpenNotion(cfg *Config) (*Sources, error) {
	opts := []notion.Option{notion.WithBaseURL(cfg.NotionBaseURL), notion.WithVersion(cfg.NotionVersion)}
	resumes := notion.NewClient(cfg.NotionResumeToken, opts...)
	users := notion.NewClient(cfg.NotionUserDBToken, opts...)
	if !resumes.Configured() || !users.Configured() || cfg.NotionResumeDBID == "" || cfg.NotionUserDBID == "" {
		return nil, notion.ErrNotConfigured
	}
	return &Sources{
		Candidates: repo.NewCandidateRepository(resumes, cfg.NotionResumeDBID),
		Users:      repo.NewUserRepository(users, cfg.NotionUserDBID),
	}, nil
}

type runner struct {
	v      *viper.Viper
	open   OpenFunc
	cfg    *Config
	logger *zap.Logger
	src    *Sources
}

// NewRootCommand assembles chefctl. open is called once per command run.
func NewRootCommand(open OpenFunc) *cobra.Command {
	a := &runner{v: viper.New(), open: open}
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "chefctl inspects the chef directory the way the API serves it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cfgFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is chefctl.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.Duration("timeout", 30*time.Second, "timeout for document store calls")
	flags.String("notion-base-url", "https://api.notion.com/v1", "Notion API base URL")
	flags.String("notion-version", "2022-06-28", "Notion API version header")
	for _, name := range []string{"debug", "json", "timeout", "notion-base-url", "notion-version"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	envs := map[string]string{
		"notion-base-url":     "NOTION_API_BASE_URL",
		"notion-version":      "NOTION_VERSION",
		"notion-userdb-int":   "NOTION_USERDB_INT",
		"notion-userdb-id":    "NOTION_USERDB_ID",
		"notion-resumedb-int": "NOTION_RESUMEDBSUB_INT",
		"notion-resumedb-id":  "NOTION_RESUMEDBSUB_ID",
	}
	for key, env := range envs {
		_ = a.v.BindEnv(key, env)
	}

	root.AddCommand(
		newChefsCommand(a),
		newProfessionsCommand(a),
		newUsersCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs chefctl against Notion.
func Execute() error {
	return NewRootCommand(OpenNotion).Execute()
}

func (a *runner) init(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName(app)
		a.v.SetConfigType("yaml")
		// The file is optional.
		if err := a.v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	cfg.Timeout = a.v.GetDuration("timeout")
	cfg.Debug = a.v.GetBool("debug")
	cfg.JSON = a.v.GetBool("json")
	a.cfg = &cfg

	logger, err := NewLogger(cfg.JSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	a.logger = logger

	src, err := a.open(&cfg)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	a.src = src
	return nil
}

func (a *runner) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// NewLogger builds the zap logger chefctl writes diagnostics with.
func NewLogger(json, debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
