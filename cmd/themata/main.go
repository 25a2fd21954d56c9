package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meridian-labs/themata/internal/adapters/driven/analysis"
	"github.com/meridian-labs/themata/internal/adapters/driven/config/file"
	"github.com/meridian-labs/themata/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/themata/internal/adapters/driving/cli"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/services"
	"github.com/meridian-labs/themata/internal/logger"
)

// version is overridden at build time with -ldflags.
var version = "0.1.0"

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if configStore.GetBool(file.KeyUIVerbose) {
		logger.SetVerbose(true)
	}

	client := analysis.NewClient(clientConfig(configStore))

	// History is advisory: a broken local database should not block the
	// workflow, so fall back to running without one.
	var history driven.SubmissionStore
	if store, err := sqlite.NewStore(""); err != nil {
		logger.Warn("Submission history disabled: %v", err)
	} else {
		history = store
		defer store.Close()
	}

	workflow := services.NewWorkflow(client, client, history)

	cli.SetVersion(version)
	cli.SetServices(workflow, configStore, history)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// clientConfig builds the analysis client configuration from stored
// settings, leaving zero values for the client defaults.
func clientConfig(cfg driven.ConfigStore) analysis.Config {
	c := analysis.Config{
		BaseURL: cfg.GetString(file.KeyServerBaseURL),
		Burst:   cfg.GetInt(file.KeyServerBurst),
	}
	if secs := cfg.GetInt(file.KeyServerTimeout); secs > 0 {
		c.Timeout = time.Duration(secs) * time.Second
	}
	if rps := cfg.GetInt(file.KeyServerRequestRate); rps > 0 {
		c.RequestsPerSecond = float64(rps)
	}
	return c
}
