package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/feed"
	"github.com/funthingsnearme/nearby/internal/location"
	"github.com/funthingsnearme/nearby/internal/pkg/logger"
	"github.com/funthingsnearme/nearby/internal/places"
	"github.com/funthingsnearme/nearby/internal/prefs"
	"github.com/funthingsnearme/nearby/internal/profile"
	"github.com/funthingsnearme/nearby/internal/rest"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Configuration
		fx.Supply(conf),

		// External collaborators
		fx.Provide(
			rest.NewClient,
			auth.NewProvider,
			places.NewClient,
			location.NewProvider,
		),

		// Client components
		fx.Provide(
			auth.NewSession,
			location.NewResolver,
			feed.NewController,
			prefs.NewActions,
			profile.NewAggregator,
			wizard.New,
		),

		// fx Extra Options
		fx.StartTimeout(10 * time.Second),
		fx.StopTimeout(30 * time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
