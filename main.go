package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/docs"
	"storefront/internal/repositories"
	"storefront/internal/seed"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/supabase"
)

const (
	configFlag    = "config"
	serverURLFlag = "server-url"
)

var configFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Optional config file (for example a .env file); environment variables take precedence",
	},
}

var openapiFlags = map[string]cobraflags.Flag{
	serverURLFlag: &cobraflags.StringFlag{
		Name:  serverURLFlag,
		Value: "http://localhost:3000",
		Usage: "Server URL advertised in the document",
	},
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Product catalogue and authentication API",
		Long:         "Serves the storefront REST API. Without a subcommand it behaves like \"storefront serve\".",
		SilenceUsage: true,
		RunE:         serveCommand,
	}
	cobraflags.RegisterMap(rootCmd, configFlags)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(serveCmd, configFlags)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fake products into an empty product table",
		RunE:  seedCommand,
	}
	cobraflags.RegisterMap(seedCmd, configFlags)

	openapiCmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		RunE:  openapiCommand,
	}
	cobraflags.RegisterMap(openapiCmd, openapiFlags)

	rootCmd.AddCommand(serveCmd, seedCmd, openapiCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlags[configFlag].GetString())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	seeder := seed.NewSeeder(repositories.NewGORMProductRepository(db), 0)
	inserted, err := seeder.Seed(cmd.Context(), seed.DefaultCount)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d products\n", inserted)
	return nil
}

func openapiCommand(cmd *cobra.Command, _ []string) error {
	document, err := docs.JSON(openapiFlags[serverURLFlag].GetString())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(document, '\n'))
	return err
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if cfg.SeedOnStart {
		seeder := seed.NewSeeder(repositories.NewGORMProductRepository(db), 0)
		if _, err := seeder.Seed(cmd.Context(), seed.DefaultCount); err != nil {
			return err
		}
	}

	deps := server.Dependencies{
		Config:       cfg,
		DB:           db,
		AuthProvider: newAuthProvider(cfg, db),
	}

	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			return fmt.Errorf("initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		deps.Publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, product events are disabled")
	}

	app, err := server.New(deps)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %d", cfg.Port)
		listenErr <- app.Listen(cfg.Address())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

func newAuthProvider(cfg *config.Config, db *gorm.DB) services.AuthProvider {
	if cfg.AuthProvider == config.AuthProviderLocal {
		log.Println("Using local auth provider")
		return services.NewLocalAuthProvider(repositories.NewGORMUserRepository(db), cfg.JWTSecret)
	}
	return services.NewSupabaseAuthProvider(supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey))
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
