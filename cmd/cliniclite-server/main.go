package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cliniclite/cliniclite/internal/config"
	"github.com/cliniclite/cliniclite/internal/domain/dashboard"
	"github.com/cliniclite/cliniclite/internal/domain/identity"
	"github.com/cliniclite/cliniclite/internal/domain/patient"
	"github.com/cliniclite/cliniclite/internal/platform/auth"
	"github.com/cliniclite/cliniclite/internal/platform/export"
	"github.com/cliniclite/cliniclite/internal/platform/middleware"
	"github.com/cliniclite/cliniclite/internal/platform/seed"
	"github.com/cliniclite/cliniclite/internal/shell"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cliniclite-server",
		Short: "ClinicLite demo medical system server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a demo patient's medical record to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("patient")
			outDir, _ := cmd.Flags().GetString("out")
			if query == "" {
				return fmt.Errorf("--patient is required")
			}
			if outDir == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				outDir = cfg.ExportDir
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			registry := patient.NewRegistry()
			seed.Patients(registry, logger)

			matches := registry.Filter(query)
			if len(matches) == 0 {
				return fmt.Errorf("no patient matches %q", query)
			}
			p := matches[0]

			saved, err := export.Export(p, export.FixedPath{Dir: outDir})
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("export was cancelled")
			}
			fmt.Printf("Wrote %s\n", export.FileName(p))
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Name, email, phone, or blood type to match")
	cmd.Flags().String("out", "", "Destination directory (default: EXPORT_DIR)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the demo dataset summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Nop()
			store := identity.NewStore()
			registry := patient.NewRegistry()
			users := seed.Users(store, logger)
			patients := seed.Patients(registry, logger)

			fmt.Printf("Demo dataset: %d users, %d patients\n\n", users, patients)
			fmt.Printf("%-12s %-15s %-25s\n", "USERNAME", "ROLE", "NAME")
			for _, u := range store.All() {
				fmt.Printf("%-12s %-15s %-25s\n", u.Username, u.Role, u.FullName())
			}
			fmt.Println()
			fmt.Printf("%-25s %-6s %-12s\n", "PATIENT", "BLOOD", "RECORDS")
			for _, p := range registry.All() {
				fmt.Printf("%-25s %-6s %-12d\n", p.FullName(), p.BloodType, len(p.Records))
			}
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// In-memory state
	store := identity.NewStore()
	identitySvc := identity.NewService(store)
	registry := patient.NewRegistry()
	patientSvc := patient.NewService(registry)
	sh := shell.New(store)

	if cfg.SeedDemoData {
		seed.Users(store, logger)
		seed.Patients(registry, logger)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	secret := []byte(cfg.SessionSecret)
	e.Use(auth.Middleware(secret))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// API routes
	apiV1 := e.Group("/api/v1")

	tokenTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	identityHandler := identity.NewHandler(identitySvc, secret, tokenTTL)
	identityHandler.RegisterRoutes(apiV1)

	patientHandler := patient.NewHandler(patientSvc, export.WriteReport, export.FileName)
	patientHandler.RegisterRoutes(apiV1)

	dashboardHandler := dashboard.NewHandler()
	dashboardHandler.RegisterRoutes(apiV1)

	shellHandler := shell.NewHandler(sh)
	shellHandler.RegisterRoutes(apiV1)

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	return e.Start(":" + cfg.Port)
}
