package duckdb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.DatasourceAdapterRegistration{
		Info: datasource.DatasourceAdapterInfo{
			Type:        "duckdb",
			DisplayName: "DuckDB",
			Description: "DuckDB database files and in-memory databases",
		},
		Factory: func(ctx context.Context, config map[string]any, logger *zap.Logger) (datasource.SampleSource, error) {
			cfg, err := FromMap(config)
			if err != nil {
				return nil, err
			}
			return NewAdapter(ctx, cfg, logger)
		},
	})
}
