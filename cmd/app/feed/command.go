package feed

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/funthingsnearme/nearby/cmd/app/cli"
	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/auth"
	feedctl "github.com/funthingsnearme/nearby/internal/feed"
	"github.com/funthingsnearme/nearby/internal/prefs"
	"github.com/funthingsnearme/nearby/internal/profile"
	"github.com/funthingsnearme/nearby/internal/rest"
	"github.com/funthingsnearme/nearby/internal/tui"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

type CommandDeps struct {
	fx.In

	Config  *appconfig.Config
	Session *auth.Session
	API     *rest.Client
	Feed    *feedctl.Controller
	Actions *prefs.Actions
	Profile *profile.Aggregator
	Wizard  *wizard.Wizard
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "browse nearby activities in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "activity",
				Usage: "jump straight to the activity with this id",
			},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvTUI)
			return tui.Run(tui.Deps{
				Config:  deps.Config,
				Session: deps.Session,
				API:     deps.API,
				Feed:    deps.Feed,
				Actions: deps.Actions,
				Profile: deps.Profile,
				Wizard:  deps.Wizard,
			}, c.Int("activity"))
		},
	}
}
