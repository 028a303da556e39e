package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/logging"
	"github.com/ekaya-inc/ekaya-sampler/pkg/retry"
)

// Open creates a SampleSource for dsType and verifies the connection.
// Transient connection failures (refused, timeout, too many connections) are
// retried with backoff; anything else fails immediately.
func Open(ctx context.Context, dsType string, config map[string]any, retryCfg *retry.Config, logger *zap.Logger) (SampleSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	factory := GetFactory(dsType)
	if factory == nil {
		return nil, fmt.Errorf("unsupported datasource type: %s (not compiled in)", dsType)
	}

	src, err := factory(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	attempt := 0
	err = retry.DoIfRetryable(ctx, retryCfg, func() error {
		attempt++
		err := src.TestConnection(ctx)
		if err != nil {
			logger.Warn("Datasource connection check failed",
				zap.String("type", dsType),
				zap.Int("attempt", attempt),
				zap.String("error", logging.SanitizeError(err)))
		}
		return err
	})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("connect to %s: %w", dsType, err)
	}

	logger.Debug("Datasource connected", zap.String("type", dsType))
	return src, nil
}
