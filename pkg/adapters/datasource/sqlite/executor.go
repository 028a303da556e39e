package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/logging"
)

// Execute runs a single statement.
func (a *Adapter) Execute(ctx context.Context, statement string) error {
	if _, err := a.db.ExecContext(ctx, statement); err != nil {
		a.logger.Debug("Statement failed",
			zap.String("statement", logging.SanitizeStatement(statement)),
			zap.Error(err))
		return fmt.Errorf("execute statement: %w", err)
	}
	return nil
}

// ExecuteBatch runs statements in one transaction.
func (a *Adapter) ExecuteBatch(ctx context.Context, statements []string) error {
	return datasource.ExecSQLBatch(ctx, a.db, statements)
}
