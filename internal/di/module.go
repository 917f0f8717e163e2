package di

import (
	"go.uber.org/fx"

	"github.com/evalhub/assessment-orders/internal/app"
	"github.com/evalhub/assessment-orders/internal/config"
	"github.com/evalhub/assessment-orders/internal/logger"
	"github.com/evalhub/assessment-orders/internal/server/http/handlers"
	"github.com/evalhub/assessment-orders/internal/server/http/router"
	"github.com/evalhub/assessment-orders/internal/storage/postgres"
	"github.com/evalhub/assessment-orders/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.OrderQueryFacade) handlers.OrderFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
