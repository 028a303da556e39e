package main

import (
	"os"

	"github.com/ekaya-inc/ekaya-sampler/pkg/cli"

	// Datasource adapters register themselves in init().
	_ "github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource/duckdb"
	_ "github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource/mssql"
	_ "github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource/postgres"
	_ "github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource/sqlite"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	os.Exit(cli.Execute())
}
