package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/logging"
)

// Execute runs a single statement.
func (a *Adapter) Execute(ctx context.Context, statement string) error {
	if _, err := a.pool.Exec(ctx, statement); err != nil {
		a.logger.Debug("Statement failed",
			zap.String("statement", logging.SanitizeStatement(statement)),
			zap.Error(err))
		return fmt.Errorf("execute statement: %w", err)
	}
	return nil
}

// ExecuteBatch pipelines statements in one transaction using pgx.Batch.
// The first failing statement aborts and rolls back the batch.
func (a *Adapter) ExecuteBatch(ctx context.Context, statements []string) error {
	if len(statements) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, stmt := range statements {
			batch.Queue(stmt)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range statements {
			if _, err := results.Exec(); err != nil {
				results.Close()
				a.logger.Debug("Batch statement failed",
					zap.Int("index", i),
					zap.String("statement", logging.SanitizeStatement(statements[i])),
					zap.Error(err))
				return fmt.Errorf("statement %d of %d: %w", i+1, len(statements), err)
			}
		}
		return results.Close()
	})
}
