package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	"github.com/ekaya-inc/ekaya-sampler/pkg/render"
	"github.com/ekaya-inc/ekaya-sampler/pkg/sampling"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// SamplerService draws uniform random samples from a table and either
// renders them or copies them into a new table.
type SamplerService interface {
	// Sample writes the selected rows of req.Source to r in stream order.
	Sample(ctx context.Context, req models.SampleRequest, r render.Renderer) (*models.SampleResult, error)

	// SampleAndMaterialize creates req.Destination with the source's columns
	// and inserts the selected rows into it.
	SampleAndMaterialize(ctx context.Context, req models.MaterializeRequest) (*models.MaterializeResult, error)
}

// SourceFactory returns the randomness for one request.
type SourceFactory func(seed *int64) sampling.Source

type samplerService struct {
	source    datasource.SampleSource
	newSource SourceFactory
	logger    *zap.Logger
}

// NewSamplerService creates a sampler over source. Randomness comes from
// sampling.NewSource.
func NewSamplerService(source datasource.SampleSource, logger *zap.Logger) SamplerService {
	return NewSamplerServiceWithSource(source, sampling.NewSource, logger)
}

// NewSamplerServiceWithSource creates a sampler with a custom randomness factory.
func NewSamplerServiceWithSource(source datasource.SampleSource, newSource SourceFactory, logger *zap.Logger) SamplerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &samplerService{
		source:    source,
		newSource: newSource,
		logger:    logger.Named("sampler"),
	}
}

// samplePlan holds everything derived for one request before the row stream is walked.
type samplePlan struct {
	result    models.SampleResult
	columns   []models.Column
	selection *sampling.Selection
	logger    *zap.Logger
}

func (s *samplerService) Sample(ctx context.Context, req models.SampleRequest, r render.Renderer) (*models.SampleResult, error) {
	plan, err := s.begin(req)
	if err != nil {
		return nil, err
	}

	if err := s.requireSource(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.selectRows(ctx, plan, req); err != nil {
		return nil, err
	}

	if err := r.Header(plan.columns); err != nil {
		return nil, fmt.Errorf("render header: %w", err)
	}

	err = s.walk(ctx, plan, func(row models.Row) error {
		if err := r.Row(row); err != nil {
			return fmt.Errorf("render row: %w", err)
		}
		plan.result.Emitted++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.Flush(); err != nil {
		return nil, fmt.Errorf("render output: %w", err)
	}

	plan.logger.Info("Sample rendered",
		zap.Int64("population", plan.result.Population),
		zap.Int("selected", plan.result.Selected),
		zap.Int("emitted", plan.result.Emitted))

	return &plan.result, nil
}

func (s *samplerService) SampleAndMaterialize(ctx context.Context, req models.MaterializeRequest) (*models.MaterializeResult, error) {
	plan, err := s.begin(req.SampleRequest)
	if err != nil {
		return nil, err
	}
	if req.Destination.Name == "" {
		return nil, errors.New("destination table name is required")
	}

	dialect := s.source.Dialect()
	dest := req.Destination.WithDefaultSchema(dialect.DefaultSchema())
	result := &models.MaterializeResult{Destination: dest}
	plan.logger = plan.logger.With(zap.String("destination", dest.String()))

	if err := s.requireSource(ctx, plan); err != nil {
		return nil, err
	}

	exists, err := s.source.TableExists(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("check destination %s: %w", dest, err)
	}
	if exists {
		plan.logger.Warn("Destination table already exists; choose another name")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDestinationCollision, dest)
	}

	if err := s.selectRows(ctx, plan, req.SampleRequest); err != nil {
		return nil, err
	}

	for _, col := range plan.columns {
		if check := sqlgen.CheckForInjection("column type", col.DataType); check != nil {
			plan.logger.Warn("Declared column type matches an injection pattern",
				zap.String("column", col.Name),
				zap.String("data_type", col.DataType),
				zap.String("fingerprint", check.Fingerprint))
		}
	}

	create, err := sqlgen.CreateTableStatement(dialect, dest, plan.columns)
	if err != nil {
		return nil, fmt.Errorf("build create statement: %w", err)
	}
	result.CreateStatement = create

	plan.logger.Info("Creating destination table", zap.String("schema", dest.Schema))
	if err := s.source.Execute(ctx, create); err != nil {
		plan.logger.Error("Create table failed", zap.Error(err))
		return nil, fmt.Errorf("%w: create %s: %w", apperrors.ErrExecutionFailure, dest, err)
	}

	inserts := make([]string, 0, plan.selection.Len())
	err = s.walk(ctx, plan, func(row models.Row) error {
		stmt, err := sqlgen.InsertStatement(dialect, dest, plan.columns, row)
		if err != nil {
			return err
		}
		inserts = append(inserts, stmt)
		return nil
	})
	if err != nil {
		plan.logger.Error("Reading source rows failed after destination was created", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrExecutionFailure, err)
	}

	for start := 0; start < len(inserts); {
		end := len(inserts)
		if req.BatchSize > 0 && start+req.BatchSize < end {
			end = start + req.BatchSize
		}
		if err := s.source.ExecuteBatch(ctx, inserts[start:end]); err != nil {
			plan.logger.Error("Insert batch failed; destination may be partially populated",
				zap.Int("batch", result.Batches+1),
				zap.Int("inserted", plan.result.Emitted),
				zap.Error(err))
			return nil, fmt.Errorf("%w: insert into %s (batch %d): %w",
				apperrors.ErrExecutionFailure, dest, result.Batches+1, err)
		}
		result.Batches++
		plan.result.Emitted += end - start
		start = end
	}

	result.SampleResult = plan.result
	plan.logger.Info("Sample materialized",
		zap.Int64("population", plan.result.Population),
		zap.Int("selected", plan.result.Selected),
		zap.Int("inserted", plan.result.Emitted),
		zap.Int("batches", result.Batches))

	return result, nil
}

// begin validates the request and opens its log scope.
func (s *samplerService) begin(req models.SampleRequest) (*samplePlan, error) {
	if req.Source.Name == "" {
		return nil, errors.New("source table name is required")
	}
	if req.Size < 0 {
		return nil, fmt.Errorf("sample size %d: %w", req.Size, sampling.ErrNegativeSize)
	}

	requestID := uuid.New()
	plan := &samplePlan{
		result: models.SampleResult{
			RequestID: requestID,
			Source:    req.Source,
			Requested: req.Size,
		},
		logger: s.logger.With(
			zap.String("request_id", requestID.String()),
			zap.String("source", req.Source.String()),
		),
	}
	return plan, nil
}

// requireSource aborts the request when the source table does not exist.
func (s *samplerService) requireSource(ctx context.Context, plan *samplePlan) error {
	exists, err := s.source.TableExists(ctx, plan.result.Source)
	if err != nil {
		return fmt.Errorf("check source %s: %w", plan.result.Source, err)
	}
	if !exists {
		plan.logger.Warn("Source table not found")
		return fmt.Errorf("%w: %s", apperrors.ErrSourceNotFound, plan.result.Source)
	}
	return nil
}

// selectRows counts the population, reads the column metadata and picks the positions to keep.
func (s *samplerService) selectRows(ctx context.Context, plan *samplePlan, req models.SampleRequest) error {
	population, err := s.source.RowCount(ctx, req.Source)
	if err != nil {
		return fmt.Errorf("count rows of %s: %w", req.Source, err)
	}

	columns, err := s.source.Columns(ctx, req.Source)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", req.Source, err)
	}

	selection, err := sampling.Select(population, req.Size, s.newSource(req.Seed))
	if err != nil {
		return fmt.Errorf("select positions: %w", err)
	}

	if selection.Clamped() {
		plan.logger.Info("Sample size exceeds the number of rows; taking every row",
			zap.Int64("requested", req.Size),
			zap.Int64("population", population))
	}

	plan.columns = columns
	plan.selection = selection
	plan.result.Population = population
	plan.result.Selected = selection.Len()
	plan.result.Clamped = selection.Clamped()
	return nil
}

// walk streams the source once and hands every selected row to fn in stream order.
func (s *samplerService) walk(ctx context.Context, plan *samplePlan, fn func(models.Row) error) error {
	var streamed int64
	err := s.source.ScanRows(ctx, plan.result.Source, func(pos int64, row models.Row) error {
		streamed = pos + 1
		if !plan.selection.Contains(pos) {
			return nil
		}
		return fn(row)
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", plan.result.Source, err)
	}

	plan.result.StreamRows = streamed
	if streamed != plan.result.Population {
		plan.logger.Warn("Row stream length differs from counted population; table changed during sampling",
			zap.Int64("population", plan.result.Population),
			zap.Int64("streamed", streamed))
	}
	return nil
}
