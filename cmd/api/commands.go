package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/usecase/catalog"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/database/migration"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/repository"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			db, err := openDatabase(cmd.Context(), rt)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrator().MigrateAll(cmd.Context()); err != nil {
				return fmt.Errorf("migrations failed: %w", err)
			}
			rt.logger.Info("Migrations applied", nil)
			return nil
		},
	}
}

func seedPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-plans",
		Short: "Insert the default data plans when the catalog is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			db, err := openDatabase(cmd.Context(), rt)
			if err != nil {
				return err
			}
			defer db.Close()

			catalogService := catalog.NewService(
				repository.NewPlanRepository(db.DB(), rt.logger),
				repository.NewProductRepository(db.DB(), rt.logger),
				rt.clock,
				rt.logger,
			)
			return migration.CreateDefaultPlans(cmd.Context(), catalogService, rt.logger)
		},
	}
}

func hashSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "Print the bcrypt hash of a secret, e.g. for SAUKI_ADMIN_PASSWORD_HASH",
		Long: `Print the bcrypt hash of a secret.

The secret is read from the first argument, or from stdin when no argument is given:
  sauki hash-secret 'correct horse'
  echo -n 'correct horse' | sauki hash-secret`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, _ := cmd.Flags().GetInt("cost")
			secret, err := readSecret(args)
			if err != nil {
				return err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
			if err != nil {
				return fmt.Errorf("hash secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")

	return cmd
}

func readSecret(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no secret given on the command line or stdin")
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	return secret, nil
}
