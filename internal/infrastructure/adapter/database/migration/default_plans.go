package migration

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// CreateDefaultPlans seeds the starter catalog when no plan exists yet
func CreateDefaultPlans(ctx context.Context, catalog usecase.CatalogUseCase, logger core.Logger) error {
	created, err := catalog.SeedDefaultPlans(ctx)
	if err != nil {
		return err
	}
	if created > 0 {
		logger.Info("Default data plans created", map[string]any{"count": created})
	}
	return nil
}
