// Package main runs the gymstats MCP server over stdio.
// The same server is mounted on the main service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/liftstats/internal/config"
	"github.com/2beens/liftstats/internal/db"
	"github.com/2beens/liftstats/internal/gymstats/events"
	"github.com/2beens/liftstats/internal/gymstats/exercises"
	gymstatsmcp "github.com/2beens/liftstats/internal/gymstats/mcp"
	"github.com/2beens/liftstats/internal/logging"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	// stdout carries the MCP protocol
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if cfg.LogsPath == "" {
		log.SetOutput(os.Stderr)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:   cfg.PostgresHost,
		DBPort:   cfg.PostgresPort,
		DBName:   cfg.PostgresDBName,
		MaxConns: 2,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	analyzer := exercises.NewAnalyzer(exercises.AnalyzerParams{
		Repo:        exercises.NewRepo(dbPool),
		Weights:     events.NewService(events.NewRepo(dbPool)),
		CacheSizeMB: cfg.StatsCacheSizeMB,
		CacheTTL:    time.Duration(cfg.StatsCacheTTLSeconds) * time.Second,
	})
	server := gymstatsmcp.NewServer(
		dbPool,
		analyzer,
		uint32(cfg.DefaultMilestoneSteps),
		uint32(cfg.MaxMilestones),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
