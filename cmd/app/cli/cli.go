package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/funthingsnearme/nearby/internal/app"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
)

func Start(env appcontext.Env, module fx.Option) {
	if err := app.New(appcontext.Declare(env), module).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start app")
	}
}

// Populate boots the application in the given environment and fills a
// command's dependency struct from the object graph.
func Populate[T any](env appcontext.Env) T {
	var deps T
	Start(env, fx.Populate(&deps))
	return deps
}
