package cmd

import (
	"encoding/json"
	"os"

	"github.com/proconnect/trust-engine/internal/botcheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Score registration and login attempts for bot risk",
}

var screenRegistrationCmd = &cobra.Command{
	Use:   "registration",
	Short: "Score a registration attempt",
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd, screenRegistration)
	},
}

var screenLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Score a login attempt",
	Run: func(cmd *cobra.Command, _ []string) {
		runScreen(cmd, screenLogin)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.AddCommand(screenRegistrationCmd)
	screenCmd.AddCommand(screenLoginCmd)

	screenCmd.PersistentFlags().StringP("input", "i", "", "path to the attempt record JSON")
	screenCmd.MarkPersistentFlagRequired("input")
}

func runScreen(cmd *cobra.Command, analyze func(*botcheck.Detector, []byte) (*botcheck.Analysis, error)) {
	zl := newLogger()

	data, err := os.ReadFile(cmd.Flag("input").Value.String())
	if err != nil {
		zl.Fatal("reading attempt record", zap.Error(err))
	}

	detector := botcheck.NewDetector(zl)

	analysis, err := analyze(detector, data)
	if err != nil {
		zl.Fatal("analyzing attempt", zap.Error(err))
	}

	printJSON(analysis)
}

func screenRegistration(detector *botcheck.Detector, data []byte) (*botcheck.Analysis, error) {
	var reg botcheck.Registration
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return detector.AnalyzeRegistration(&reg)
}

func screenLogin(detector *botcheck.Detector, data []byte) (*botcheck.Analysis, error) {
	var login botcheck.Login
	if err := json.Unmarshal(data, &login); err != nil {
		return nil, err
	}
	return detector.AnalyzeLogin(&login)
}
