package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/snowflakedb/gosnowflake"

	"github.com/fin-tools/revenue-pulse/pkg/server"
	"github.com/fin-tools/revenue-pulse/pkg/services/account"
	"github.com/fin-tools/revenue-pulse/pkg/services/config"
	"github.com/fin-tools/revenue-pulse/pkg/services/report"
	"github.com/fin-tools/revenue-pulse/pkg/store/ledger"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the revenue reporting web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file (defaults to environment variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	app, err := config.LoadApp(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load application config: %w", err)
	}

	registry, err := config.NewRegistry(app.ProvidersFile)
	if err != nil {
		return fmt.Errorf("failed to create provider registry: %w", err)
	}
	accounts := account.NewExplorer(registry)

	db, err := ledger.NewDB(ledger.Settings{Driver: app.DBDriver, DSN: app.DBDSN})
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer db.Close()

	if app.DBDriver == "sqlite3" {
		if err := ledger.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to prepare ledger schema: %w", err)
		}
	}

	store, err := ledger.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create ledger store: %w", err)
	}

	controller := report.NewController(accounts, store, nil, app.DefaultUnit)

	logger.Info().Msgf("Provider profiles found at `%s` successfully loaded.", app.ProvidersFile)
	providers, _ := registry.GetProviders(ctx)
	for _, provider := range providers {
		logger.Info().Msgf("Name: `%s`, Timezone: `%s`, Unit: `%s`",
			provider.Slug, provider.Timezone, provider.Unit)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Account: accounts,
			Builder: controller,
		},
	})

	return webAPI.Start()
}
