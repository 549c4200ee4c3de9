package profile

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/funthingsnearme/nearby/cmd/app/cli"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/model"
	profileagg "github.com/funthingsnearme/nearby/internal/profile"
)

type CommandDeps struct {
	fx.In

	Profile *profileagg.Aggregator
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "list your favorited and created activities",
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)

			overview, err := deps.Profile.Overview(c.Context)
			if err != nil {
				return err
			}

			printSection("Favorites", overview.Favorites)
			printSection("Created", overview.Created)
			return nil
		},
	}
}

func printSection(name string, activities []model.Activity) {
	fmt.Printf("%s (%d)\n", name, len(activities))
	for _, activity := range activities {
		fmt.Printf("  #%-5d %s\n", activity.ID, activity.Title)
	}
}
