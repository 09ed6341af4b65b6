package export_fx

import (
	"go.uber.org/fx"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/services"
)

var Module = fx.Provide(
	services.NewExportService,
	controllers.NewExportController,
)
