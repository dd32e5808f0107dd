package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"knowyourplant/internal/capture"
	"knowyourplant/internal/domain"
	"knowyourplant/internal/predict"
	"knowyourplant/internal/scanner"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "scan <image-file>",
		Short: "Identify the plant in an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			adapter := capture.New(nil)
			declared := mime.TypeByExtension(filepath.Ext(path))
			if err := adapter.AcceptFile(filepath.Base(path), declared, data); err != nil {
				return fmt.Errorf("accept image: %w", err)
			}

			var p predict.Predictor = api
			if offline {
				p = predict.WithFallback(api, predict.NewMock(0))
			}

			orch := scanner.New(p)
			result, err := orch.Submit(cmd.Context(), adapter.Image())
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Fall back to the built-in sample identifier when the server is unreachable")
	return cmd
}

func printResult(r *domain.ScanResult) {
	fmt.Printf("%s\n", r.PlantName)
	if r.ScientificName != "" {
		fmt.Printf("  Scientific name: %s\n", r.ScientificName)
	}
	fmt.Printf("  Confidence:      %.0f%% (%s)\n", r.Confidence*100, domain.ConfidenceBand(r.Confidence))
	if r.IsToxic {
		fmt.Printf("  Toxicity:        toxic to pets\n")
	}
	if r.Description != "" {
		fmt.Printf("  %s\n", r.Description)
	}
	if r.Habitat != "" {
		fmt.Printf("  Habitat:         %s\n", r.Habitat)
	}
	if len(r.Uses) > 0 {
		fmt.Printf("  Uses:            %s\n", strings.Join(r.Uses, ", "))
	}
	if len(r.CareTips) > 0 {
		fmt.Println("  Care:")
		for _, tip := range r.CareTips {
			fmt.Printf("    %-10s %s\n", tip.Label+":", tip.Value)
		}
	}
}
