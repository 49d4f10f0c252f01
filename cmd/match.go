package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/proconnect/trust-engine/internal/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a candidate profile against a job's requirements",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Rank a set of job postings for a candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runFind(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(findCmd)

	matchCmd.Flags().StringP("profile", "p", "", "path to the candidate profile JSON")
	matchCmd.Flags().String("job", "", "path to the job requirements JSON")
	matchCmd.MarkFlagRequired("profile")
	matchCmd.MarkFlagRequired("job")

	findCmd.Flags().StringP("profile", "p", "", "path to the candidate profile JSON")
	findCmd.Flags().String("jobs", "", "path to a JSON array of {id, job} entries")
	findCmd.MarkFlagRequired("profile")
	findCmd.MarkFlagRequired("jobs")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()
	zl := newLogger()

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	profile, err := readProfile(cmd.Flag("profile").Value.String())
	if err != nil {
		zl.Fatal("reading profile", zap.Error(err))
	}

	job, err := readJob(cmd.Flag("job").Value.String())
	if err != nil {
		zl.Fatal("reading job", zap.Error(err))
	}

	client, err := newGeminiClient(ctx, config, zl)
	if err != nil {
		zl.Fatal("building gemini adapter", zap.Error(err))
	}

	matcher := matching.NewMatcher(generatorOrNil(client), zl)

	result, err := matcher.Evaluate(ctx, profile, job)
	if err != nil {
		zl.Fatal("evaluating match", zap.Error(err))
	}

	printJSON(result)
}

type indexedJobEntry struct {
	ID  string         `json:"id"`
	Job map[string]any `json:"job"`
}

func runFind(cmd *cobra.Command) {
	ctx := context.Background()
	zl := newLogger()

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	client, err := newGeminiClient(ctx, config, zl)
	if err != nil {
		zl.Fatal("building gemini adapter", zap.Error(err))
	}
	if client == nil {
		zl.Fatal("ranking requires embeddings",
			zap.String("hint", "enable the ai section of the configuration file"),
		)
	}

	profile, err := readProfile(cmd.Flag("profile").Value.String())
	if err != nil {
		zl.Fatal("reading profile", zap.Error(err))
	}

	data, err := os.ReadFile(cmd.Flag("jobs").Value.String())
	if err != nil {
		zl.Fatal("reading jobs file", zap.Error(err))
	}

	var entries []indexedJobEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		zl.Fatal("parsing jobs file", zap.Error(err))
	}

	matcher := matching.NewMatcher(client, zl)
	finder := matching.NewFinder(client, matcher, zl)

	for _, entry := range entries {
		job, err := matching.DecodeJob(entry.Job)
		if err != nil {
			zl.Fatal("decoding job", zap.String("job_id", entry.ID), zap.Error(err))
		}
		if err := finder.IndexJob(ctx, entry.ID, job); err != nil {
			zl.Fatal("indexing job", zap.String("job_id", entry.ID), zap.Error(err))
		}
	}

	zl.Info("indexed jobs", zap.Int("count", finder.Len()))

	matches, err := finder.FindMatches(ctx, profile)
	if err != nil {
		zl.Fatal("finding matches", zap.Error(err))
	}

	printJSON(matches)
}

func readProfile(path string) (*matching.Profile, error) {
	raw, err := readRecord(path)
	if err != nil {
		return nil, err
	}
	return matching.DecodeProfile(raw)
}

func readJob(path string) (*matching.Job, error) {
	raw, err := readRecord(path)
	if err != nil {
		return nil, err
	}
	return matching.DecodeJob(raw)
}

func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw, nil
}

func printJSON(v any) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(pretty))
}
