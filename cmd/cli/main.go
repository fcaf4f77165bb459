package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/snowflakedb/gosnowflake"

	"github.com/fin-tools/revenue-pulse/pkg/services/account"
	"github.com/fin-tools/revenue-pulse/pkg/services/config"
	"github.com/fin-tools/revenue-pulse/pkg/services/notify"
	"github.com/fin-tools/revenue-pulse/pkg/services/report"
	"github.com/fin-tools/revenue-pulse/pkg/store/ledger"
	"github.com/fin-tools/revenue-pulse/pkg/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	app, err := config.LoadApp(os.Getenv("REVPULSE_CONFIG"))
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

	notifiers := notify.Multi{notify.NewConsole(os.Stdout)}
	if app.AMQPURL != "" {
		publisher, err := notify.NewAMQPPublisher(app.AMQPURL, app.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}
	if app.SMTPAddr != "" {
		notifiers = append(notifiers, notify.NewMailer(app.SMTPAddr, app.SMTPFrom, app.SMTPTo))
	}

	controller := report.NewController(accounts, store, notifiers, app.DefaultUnit)

	cli := terminal.NewCLI(terminal.Options{
		Controller: controller,
		Accounts:   accounts,
	})

	return cli.Execute(ctx)
}
