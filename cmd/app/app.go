package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/funthingsnearme/nearby/cmd/app/account"
	"github.com/funthingsnearme/nearby/cmd/app/create"
	"github.com/funthingsnearme/nearby/cmd/app/feed"
	"github.com/funthingsnearme/nearby/cmd/app/locate"
	"github.com/funthingsnearme/nearby/cmd/app/profile"
	"github.com/funthingsnearme/nearby/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "nearby",
		Description: "Discover fun things to do nearby, one card at a time. Built with Go, bubbletea and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			feed.Command(),
			create.Command(),
			profile.Command(),
			account.Command(),
			locate.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
