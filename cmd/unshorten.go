package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unshortener/internal/config"
	"unshortener/internal/prompt"
	"unshortener/internal/unshortener"
	"unshortener/pkg/logger"
)

// stdio stands for stdin or stdout in file arguments.
const stdio = "-"

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdio {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("could not read stdin: %w", err)
		}

		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read input file: %w", err)
	}

	return b, nil
}

// outputPath names the result after the input, "unshortened_" prefixed and
// placed next to it, unless an explicit output was requested.
func outputPath(input, output string) string {
	switch {
	case output != "":
		return output
	case input == stdio:
		return stdio
	default:
		return filepath.Join(filepath.Dir(input), "unshortened_"+filepath.Base(input))
	}
}

func writeOutput(stdout io.Writer, path string, out []byte) error {
	if path == stdio {
		if _, err := stdout.Write(out); err != nil {
			return fmt.Errorf("could not write stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(path, out, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("could not write output file: %w", err)
	}

	return nil
}

// chooseColumn picks the URL column from the --column flag, the
// --column-name flag or, when stdin is a terminal not used for the input,
// an interactive prompt.
func chooseColumn(ctx context.Context, cmd *cobra.Command, u unshortener.Unshortener, in []byte, input string) (int, error) {
	column, _ := cmd.Flags().GetInt("column")
	columnName, _ := cmd.Flags().GetString("column-name")

	header, err := u.Header(in)
	if err != nil {
		return 0, fmt.Errorf("could not read header: %w", err)
	}

	switch {
	case cmd.Flags().Changed("column"):
		if column >= len(header) {
			logger.Warn(ctx, "selected column is beyond the header, every row will be marked out of range",
				zap.Int("column", column), zap.Int("headerColumns", len(header)))
		}

		return column, nil
	case columnName != "":
		return unshortener.ColumnByName(header, columnName)
	}

	stdin, ok := cmd.InOrStdin().(*os.File)
	if input == stdio || !ok || !prompt.IsInteractive(stdin) {
		return 0, errors.New("no column selected: use --column or --column-name")
	}

	return prompt.SelectColumn(stdin, cmd.ErrOrStderr(), header)
}

func unshortenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unshorten <input.csv|->",
		Short: "Appends the resolved destination of a URL column to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			input := args[0]
			output, _ := cmd.Flags().GetString("output")
			ctx = logger.WithFields(ctx, zap.String("input", input))

			in, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			u := unshortener.New(newResolver(cfg), unshortener.NewOptions(cfg))

			column, err := chooseColumn(ctx, cmd, u, in, input)
			if err != nil {
				return err
			}

			out, err := u.Transform(ctx, in, column)
			if err != nil {
				logger.Error(ctx, "could not process CSV", zap.Error(err))

				return fmt.Errorf("could not process CSV: %w", err)
			}

			dest := outputPath(input, output)
			if err := writeOutput(cmd.OutOrStdout(), dest, out); err != nil {
				return err
			}

			logger.Info(ctx, "processing complete", zap.String("output", dest))

			return nil
		},
	}

	cmd.Flags().IntP("column", "k", 0, "Zero-based index of the column holding the URLs")
	cmd.Flags().String("column-name", "", "Header name of the column holding the URLs")
	cmd.Flags().StringP("output", "o", "", "Output file (default unshortened_<input> next to the input, - for stdout)")
	cmd.MarkFlagsMutuallyExclusive("column", "column-name")

	return cmd
}
