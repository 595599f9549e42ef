// Command grade runs the grading pipeline on one local image and prints the
// JSON result.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anime-shed/omr-inspector-go/internal/config"
	"github.com/anime-shed/omr-inspector-go/internal/container"
	apperrors "github.com/anime-shed/omr-inspector-go/internal/errors"
	"github.com/anime-shed/omr-inspector-go/internal/logger"
	"github.com/anime-shed/omr-inspector-go/pkg/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var imagePath, sheetID string

	cmd := &cobra.Command{
		Use:          "grade",
		Short:        "Grade one answer sheet photo and print the result as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sheetID == "" {
				sheetID = uuid.NewString()
			}
			return runGrade(cmd.Context(), out, imagePath, sheetID)
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "path to the answer sheet photo")
	cmd.Flags().StringVar(&sheetID, "sheet-id", "", "sheet id used to name artifacts (random when empty)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func runGrade(ctx context.Context, out io.Writer, imagePath, sheetID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer c.Close()

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	result, gradeErr := c.GradingService().GradeSheet(ctx, data, sheetID)
	message := ""
	if gradeErr != nil {
		message = apperrors.GetMessage(gradeErr)
	}

	encoded, err := json.MarshalIndent(models.NewGradeResponse(result, message), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(out, string(encoded))

	return gradeErr
}
