package locate

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/funthingsnearme/nearby/cmd/app/cli"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/location"
)

type CommandDeps struct {
	fx.In

	Resolver *location.Resolver
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "whereami",
		Usage: "print the coordinates the feed would use",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "bypass the cached pair and query the provider again",
			},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)

			resolve := deps.Resolver.Resolve
			if c.Bool("refresh") {
				resolve = deps.Resolver.Refresh
			}

			coords, err := resolve(c.Context)
			if err != nil {
				return err
			}

			fmt.Printf("%.6f, %.6f\n", coords.Latitude, coords.Longitude)
			return nil
		},
	}
}
