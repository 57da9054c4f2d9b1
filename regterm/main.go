package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rhystmorgan/regform/internal/address"
	"rhystmorgan/regform/internal/config"
	"rhystmorgan/regform/internal/logging"
	"rhystmorgan/regform/internal/models"
	"rhystmorgan/regform/internal/storage"
	"rhystmorgan/regform/internal/validation"
	"rhystmorgan/regform/internal/views"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LogConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer closeLog()

	store, err := storage.NewStorage(cfg.DataDir, append(cfg.StorageOptions(), storage.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if store.Encrypted() {
		if strength, issues := storage.CheckPassphrase(cfg.Passphrase); strength != storage.PassphraseStrong {
			logger.Warn("storage passphrase is not strong",
				zap.Stringer("strength", strength),
				zap.Strings("issues", issues))
		}
	}

	client, err := address.NewClient(cfg.ToAddressConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize address client: %w", err)
	}
	defer client.Close()

	verifier := validation.NewVerifier(validation.DefaultCatalog(), validation.WithLogger(logger))
	if err := verifier.Catalog().Validate(models.NewRegistrationForm(), verifier.CustomFields()...); err != nil {
		logger.Warn("message catalog is incomplete", zap.Error(err))
	}

	app := views.NewAppModel(store, verifier, address.NewLookup(client, logger), logger)

	logger.Info("starting",
		zap.String("data_dir", cfg.DataDir),
		zap.String("lookup_url", cfg.Lookup.BaseURL),
		zap.Bool("encrypted", store.Encrypted()))

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}
