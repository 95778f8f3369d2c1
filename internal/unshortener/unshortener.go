package unshortener

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unshortener/internal/config"
	"unshortener/pkg/domain"
	"unshortener/pkg/logger"
	"unshortener/pkg/resolver"
	"unshortener/pkg/serrors"
)

// Options configure how a transformation run resolves rows and writes its output.
type Options struct {
	// Concurrency is the maximum number of rows resolved at the same time.
	// Values below 2 keep the run strictly sequential.
	Concurrency int
	// CacheSize enables an in-run cache of resolutions keyed by cell text.
	// The cache is dropped when the run ends.
	CacheSize int
	// UseCRLF terminates output records with \r\n.
	UseCRLF bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Concurrency: cfg.Resolver.Concurrency,
		CacheSize:   cfg.Resolver.CacheSize,
		UseCRLF:     cfg.CSV.UseCRLF,
	}
}

// unshortener is the concrete implementation of the Unshortener interface.
type unshortener struct {
	options  Options
	resolver resolver.Resolver
}

// Header returns the header row of in.
func (u unshortener) Header(in []byte) ([]string, error) {
	return ReadHeader(in)
}

// Transform parses in, resolves the cell at column for every data row and
// returns the rebuilt CSV with the results in a new trailing column. Row order
// is preserved whatever the concurrency. Per-row failures become cell text;
// only structural problems with the input, a negative column or a canceled
// context return an error, and no output is produced in that case.
func (u unshortener) Transform(ctx context.Context, in []byte, column int) ([]byte, error) {
	if column < 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "column index %d is negative", column)
	}

	header, rows, err := readDocument(in)
	if err != nil {
		return nil, fmt.Errorf("could not parse input: %w", err)
	}

	ctx = logger.WithFields(ctx, zap.String("runID", uuid.NewString()), zap.Int("column", column))
	logger.Info(ctx, "starting transformation", zap.Int("rows", len(rows)))

	r, err := resolver.Cached(u.resolver, u.options.CacheSize)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not set up resolver")
	}

	results, err := u.resolveRows(ctx, r, rows, column)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = u.options.UseCRLF

	if err := w.Write(appendCell(header, domain.OutputColumn)); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not write header")
	}
	for i, row := range rows {
		if err := w.Write(appendCell(row, results[i].String())); err != nil {
			return nil, serrors.Wrap(serrors.ErrInternal, err, "could not write row %d", i+1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not flush output")
	}

	logger.Info(ctx, "transformation finished", zap.Int("rows", len(rows)))

	return buf.Bytes(), nil
}

// resolveRows resolves every row with at most options.Concurrency lookups in
// flight. Each goroutine writes only its own slot of results, which keeps the
// output in input order.
func (u unshortener) resolveRows(ctx context.Context,
	r resolver.Resolver,
	rows [][]string,
	column int) ([]domain.Resolution, error) {
	results := make([]domain.Resolution, len(rows))

	var g errgroup.Group
	g.SetLimit(u.options.Concurrency)
	for i, row := range rows {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = resolveRow(logger.WithFields(ctx, zap.Int("row", i+1)), r, row, column)

			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("transformation aborted: %w", err)
	}

	return results, nil
}

func resolveRow(ctx context.Context, r resolver.Resolver, row []string, column int) domain.Resolution {
	if column >= len(row) {
		logger.Warn(ctx, "row is shorter than the selected column", zap.Int("cells", len(row)))

		return domain.OutOfRangeFailure()
	}

	res := r.Resolve(ctx, row[column])
	logger.Info(ctx, "processed row",
		zap.String("input", row[column]),
		zap.String("result", res.String()),
		zap.String("outcome", string(res.Outcome)))

	return res
}

// New creates a new Unshortener backed by the provided resolver and
// configured with the given options.
func New(r resolver.Resolver, options Options) Unshortener {
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}

	return &unshortener{
		options:  options,
		resolver: r,
	}
}
