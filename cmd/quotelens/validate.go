package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fireproofed/quotelens/internal/config"
	"github.com/fireproofed/quotelens/internal/model"
	"github.com/fireproofed/quotelens/internal/validator"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <quote.json>",
		Short: "Validate an extracted quote",
		Long: `Run the rule-based validator over a previously extracted quote
and report errors, warnings and the resulting confidence score.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().StringP("output", "o", "", "write the validation result to this file (default: stdout)")
	cmd.Flags().Bool("strict", false, "exit with an error when the quote is invalid")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	strict, _ := cmd.Flags().GetBool("strict")

	schema, err := loadQuoteSchema(args[0])
	if err != nil {
		return err
	}

	v := validator.New(config.LoadValidatorConfig())
	result := v.Validate(schema)

	slog.Info("Validation complete",
		"valid", result.IsValid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"confidence", result.ConfidenceScore)

	for _, e := range result.Errors {
		slog.Warn("Validation error",
			"type", e.Type, "field", e.Field, "severity", e.Severity, "message", e.Message)
	}

	if err := writeJSON(output, result); err != nil {
		return err
	}

	if strict && !result.IsValid {
		return fmt.Errorf("quote failed validation with %d critical error(s)",
			result.CountErrors(model.SeverityCritical))
	}
	return nil
}
