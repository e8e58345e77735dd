package merchant

import (
	"github.com/smallbiznis/storefront/internal/merchant/repository"
	"github.com/smallbiznis/storefront/internal/merchant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("merchant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
