package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"answer-relay-service/internal/adapters/primary/http/dto"
	"answer-relay-service/internal/adapters/secondary/inference"
	"answer-relay-service/internal/adapters/secondary/ollama"
	"answer-relay-service/internal/config"
	"answer-relay-service/internal/core/domain"
	"answer-relay-service/internal/core/services"
)

var (
	askQuestion string
	askModel    string
	askFile     string
	column      string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question with the configured backend",
	Long: `Run the same pipeline as POST /api/ and print the JSON response.

When --file is given the archive is extracted first; extraction errors stop
the command before the backend is called.`,
	RunE: runAsk,
}

var extractCmd = &cobra.Command{
	Use:   "extract <archive.zip>",
	Short: "Print the answer column from an archive's table",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the default and available models",
	RunE:  runModels,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check whether the configured backend is ready",
	RunE:  runProbe,
}

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question to answer (required)")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Model selector")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "ZIP archive containing a table")
	_ = askCmd.MarkFlagRequired("question")

	extractCmd.Flags().StringVar(&column, "column", "", "Column to read (default from ANSWER_COLUMN)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	req := domain.AnswerRequest{Question: askQuestion, Model: askModel}
	if askFile != "" {
		data, err := os.ReadFile(askFile)
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		req.Archive = data
	}

	svc, err := inference.NewAnswerService(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := svc.Answer(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(cmd, dto.ToAnswerResponse(result))
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	table, err := inference.NewArchiveExtractor(cfg).ExtractTable(data)
	if err != nil {
		return err
	}

	col := column
	if col == "" {
		col = cfg.Inference.AnswerColumn
	}
	value, err := services.LocateAnswer(table, col)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	client, err := inference.NewClient(cfg)
	if err != nil {
		return err
	}
	return printJSON(cmd, dto.ToModelsResponse(client.Models()))
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	client, err := inference.NewClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	available := client.IsAvailable(ctx)
	fmt.Fprintf(out, "backend:   %s\n", client.Name())
	fmt.Fprintf(out, "available: %t\n", available)

	if cfg.Inference.Backend == config.BackendOllama && available {
		installed := ollama.NewProber(&cfg.Ollama).ModelInstalled(ctx, cfg.Ollama.Model)
		fmt.Fprintf(out, "model:     %s (installed: %t)\n", cfg.Ollama.Model, installed)
	}

	if !available {
		return fmt.Errorf("backend %s is not available", client.Name())
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
