package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/proconnect/trust-engine/internal/ai"
	"github.com/proconnect/trust-engine/internal/ai/gemini"
	"github.com/proconnect/trust-engine/internal/logger"
	"github.com/proconnect/trust-engine/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "trust-engine"
)

var errNoGeminiConfig = errors.New("gemini configuration is required when ai is enabled")

type Config struct {
	AI           *AIConfig           `mapstructure:"ai"`
	Verification *VerificationConfig `mapstructure:"verification"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed-model"`
}

type VerificationConfig struct {
	CacheSize int `mapstructure:"cache-size"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "trust-engine scores profiles, signup attempts, and job postings with explainable composite scores",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is trust-engine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The default config file is optional: every engine runs without AI
	// enrichment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// newGeminiClient builds the Gemini adapter when AI enrichment is enabled.
// A disabled or absent AI section returns nil; the engines degrade the AI
// signals to their neutral defaults.
func newGeminiClient(ctx context.Context, config *Config, zl *zap.Logger) (*gemini.Client, error) {
	if config == nil || config.AI == nil || !config.AI.Enabled {
		return nil, nil
	}

	if config.AI.Gemini == nil {
		return nil, errNoGeminiConfig
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.EmbedModel)
	if err != nil {
		return nil, err
	}

	logger.WithCommonFields(zl, "gemini", client.Model()).
		Debug("gemini adapter configured")

	return client, nil
}

// generatorOrNil converts a possibly-nil client into the adapter interface
// without producing a typed-nil interface value.
func generatorOrNil(client *gemini.Client) ai.Generator {
	if client == nil {
		return nil
	}
	return client
}
