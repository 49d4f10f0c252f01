package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/proconnect/trust-engine/internal/jobverify"
	"github.com/proconnect/trust-engine/internal/memo"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptAccept     = "Accept result"
	PromptDumpReport = "Dump report to file"
	PromptExit       = "Exit"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Score a job posting for authenticity",
	Run: func(cmd *cobra.Command, _ []string) {
		runVerify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringP("posting", "i", "", "path to the job posting JSON")
	verifyCmd.Flags().String("poster", "", "path to the poster account JSON")
	verifyCmd.Flags().Bool("interactive", false, "review the result interactively")
	verifyCmd.MarkFlagRequired("posting")
}

func runVerify(cmd *cobra.Command) {
	ctx := context.Background()
	zl := newLogger()

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	posting, err := readPosting(cmd.Flag("posting").Value.String())
	if err != nil {
		zl.Fatal("reading posting", zap.Error(err))
	}

	var poster *jobverify.Poster
	if path := cmd.Flag("poster").Value.String(); path != "" {
		poster, err = readPoster(path)
		if err != nil {
			zl.Fatal("reading poster account", zap.Error(err))
		}
	}

	client, err := newGeminiClient(ctx, config, zl)
	if err != nil {
		zl.Fatal("building gemini adapter", zap.Error(err))
	}

	cacheSize := 0
	if config != nil && config.Verification != nil {
		cacheSize = config.Verification.CacheSize
	}

	generator := generatorOrNil(client)
	company := jobverify.NewCompanyVerifier(
		jobverify.NewHTTPFetcher(),
		jobverify.StaticRegistry{},
		generator,
		memo.NewCache(cacheSize),
		zl,
	)

	verifier := jobverify.NewVerifier(company, generator, zl)

	result, err := verifier.VerifyPosting(ctx, posting, poster)
	if err != nil {
		zl.Fatal("verifying posting", zap.Error(err))
	}

	printJSON(result)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := reviewResult(result, zl); err != nil {
			zl.Fatal("review failed", zap.Error(err))
		}
	}
}

// reviewResult walks the operator through the verification outcome.
func reviewResult(result *jobverify.Result, zl *zap.Logger) error {
	for {
		prompt := promptui.Select{
			Label: "Review verification result",
			Items: []string{PromptAccept, PromptDumpReport, PromptExit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptAccept:
			zl.Info("result accepted",
				zap.Bool("is_verified", result.IsVerified),
				zap.Float64("score", result.Score),
			)
			return nil
		case PromptDumpReport:
			filename, err := dumpReport(result)
			if err != nil {
				return fmt.Errorf("dump report to file: %w", err)
			}
			zl.Info("dumping report to file", zap.String("filename", filename))
		case PromptExit:
			return nil
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func dumpReport(result *jobverify.Result) (string, error) {
	file, err := os.CreateTemp("", "verification_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func readPosting(path string) (*jobverify.Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var posting jobverify.Posting
	if err := json.Unmarshal(data, &posting); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &posting, nil
}

func readPoster(path string) (*jobverify.Poster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var poster jobverify.Poster
	if err := json.Unmarshal(data, &poster); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &poster, nil
}
