package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang-sms-analyzer/cmd/analyzer/config"
	"golang-sms-analyzer/internal/analyzer"
	"golang-sms-analyzer/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the analyze command
var (
	referenceFile string
	outputFormat  string
	preset        string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [message]",
	Short: "Analyze bank notification messages",
	Long: `Analyze parses bank notification messages into structured transaction
records: type, amount, date, merchant, account, and budget category, each
resolved against the reference data file with a confidence score.

The message can be given as an argument; with no argument, messages are
read from stdin, one per line.

Examples:
  # Analyze a single message
  analyzer analyze --reference ref.json "Rs.450 debited from A/c XX1234 at AMAZON on 15-01-2025"

  # Analyze a batch of messages from a file
  cat messages.txt | analyzer analyze --reference ref.json --output-format json

  # Strict preset: drop weakly-scored fields
  analyzer analyze --reference ref.json --preset strict "INR 1,200 spent on HDFC Card xx5678 at SWIGGY"`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&referenceFile, "reference", "r", "", "path to JSON reference data file (required)")
	analyzeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json")
	analyzeCmd.Flags().StringVarP(&preset, "preset", "p", "default", "configuration preset: default, strict, relaxed")

	analyzeCmd.MarkFlagRequired("reference")

	viper.BindPFlag("reference", analyzeCmd.Flags().Lookup("reference"))
	viper.BindPFlag("output-format", analyzeCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("preset", analyzeCmd.Flags().Lookup("preset"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	referenceFile = viper.GetString("reference")
	outputFormat = viper.GetString("output-format")
	preset = viper.GetString("preset")

	if referenceFile == "" {
		return fmt.Errorf("reference is required")
	}

	info, err := os.Stat(referenceFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("reference file does not exist: %s", referenceFile)
	}
	if err != nil {
		return fmt.Errorf("error accessing reference file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("reference file is a directory: %s", referenceFile)
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json", outputFormat)
	}

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	ref, err := config.LoadReferenceFile(referenceFile)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	analyzerConfig, err := config.CreateAnalyzerConfig(preset)
	if err != nil {
		return err
	}

	a, err := analyzer.New(ref, analyzerConfig)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	messages, err := collectMessages(args)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages to analyze")
	}

	for _, message := range messages {
		result := a.Analyze(message)
		if err := printResult(result, outputFormat); err != nil {
			return err
		}
	}

	return nil
}

// collectMessages gathers input messages from the argument or stdin lines
func collectMessages(args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var messages []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages from stdin: %w", err)
	}

	return messages, nil
}

// printResult writes one analysis result in the requested format
func printResult(result models.AnalysisResult, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	if !result.Success {
		fmt.Printf("FAILED: %s\n", strings.Join(result.Errors, "; "))
		return nil
	}

	tx := result.Data
	fmt.Printf("Message:    %s\n", tx.RawMessage)
	if tx.Type != nil {
		fmt.Printf("Type:       %s\n", tx.Type)
	}
	if tx.Amount != nil {
		fmt.Printf("Amount:     %s\n", models.FormatAmount(*tx.Amount))
	}
	if tx.Date != nil {
		fmt.Printf("Date:       %s\n", tx.Date.Format("2006-01-02"))
	}
	if tx.Merchant != "" {
		fmt.Printf("Merchant:   %s\n", tx.Merchant)
	}
	if tx.AccountID != "" {
		fmt.Printf("Account:    %s (%s)\n", tx.AccountID, tx.AccountKind)
	}
	if tx.CategoryID != "" {
		category := tx.CategoryID
		if tx.SubcategoryID != "" {
			category = fmt.Sprintf("%s / %s", tx.CategoryID, tx.SubcategoryID)
		}
		fmt.Printf("Category:   %s\n", category)
	}
	fmt.Printf("Confidence: %.2f\n", tx.Confidence)
	fmt.Println()

	return nil
}
