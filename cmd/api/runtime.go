package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/database"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/logger"
	clock "github.com/saukimart/sauki-backend/internal/infrastructure/adapter/time"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
)

// runtime holds what every subcommand needs before touching a backend
type runtime struct {
	cfg    *config.Config
	logger core.Logger
	clock  core.Clock
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		CallerInfo: cfg.Logger.CallerInfo,
	})

	warnings, err := validateConfig(cfg)
	if err != nil {
		_ = appLogger.Flush()
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	for _, warning := range warnings {
		appLogger.Warn("Configuration warning", map[string]any{"detail": warning})
	}

	return &runtime{
		cfg:    cfg,
		logger: appLogger,
		clock:  clock.NewRealClock(),
	}, nil
}

func (rt *runtime) close() {
	// zap reports an error syncing stdout on some platforms; nothing to do about it
	_ = rt.logger.Flush()
}

func openDatabase(ctx context.Context, rt *runtime) (*database.Manager, error) {
	manager := database.NewManager(rt.cfg.Database, rt.logger, rt.clock)
	if _, err := manager.Connect(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

func listenAddr(cfg config.ServerConfig) string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// validateConfig fails on settings the process cannot run without. Missing
// secrets are fatal in production and only warned about elsewhere, so a
// developer can boot the API without provider accounts.
func validateConfig(cfg *config.Config) ([]string, error) {
	switch cfg.Environment {
	case config.Development, config.Production, config.Test:
	default:
		return nil, fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	var missingConfigs []string
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or SAUKI_DB_HOST)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or SAUKI_DB_NAME)")
	}
	if len(missingConfigs) > 0 {
		return nil, fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	secrets := map[string]string{
		"payment.secretKey (FLW_SECRET_KEY)":             cfg.Payment.SecretKey,
		"payment.webhookSecret (FLW_WEBHOOK_SECRET)":     cfg.Payment.WebhookSecret,
		"delivery.apiKey (AMIGO_API_KEY)":                cfg.Delivery.APIKey,
		"admin.email (SAUKI_ADMIN_EMAIL)":                cfg.Admin.Email,
		"admin.passwordHash (SAUKI_ADMIN_PASSWORD_HASH)": cfg.Admin.PasswordHash,
		"admin.tokenSecret (SAUKI_ADMIN_TOKEN_SECRET)":   cfg.Admin.TokenSecret,
	}
	var missingSecrets []string
	for name, value := range secrets {
		if strings.TrimSpace(value) == "" {
			missingSecrets = append(missingSecrets, name)
		}
	}
	sort.Strings(missingSecrets)

	if cfg.IsProduction() {
		if len(missingSecrets) > 0 {
			return nil, fmt.Errorf("missing required secrets: %v", missingSecrets)
		}
		if len(cfg.Admin.TokenSecret) < 32 {
			return nil, errors.New("admin.tokenSecret must be at least 32 bytes in production")
		}
	}

	var warnings []string
	for _, name := range missingSecrets {
		warnings = append(warnings, "missing secret "+name)
	}
	if cfg.Payment.BVN == "" {
		warnings = append(warnings, "payment.bvn is empty; agents cannot get wallet accounts")
	}
	if cfg.IsProduction() {
		switch strings.ToLower(cfg.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}
	}
	return warnings, nil
}
