package gallery

import (
	"github.com/smallbiznis/storefront/internal/gallery/repository"
	"github.com/smallbiznis/storefront/internal/gallery/service"
	"go.uber.org/fx"
)

var Module = fx.Module("gallery.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
