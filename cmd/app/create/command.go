package create

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/funthingsnearme/nearby/cmd/app/cli"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

type CommandDeps struct {
	fx.In

	Wizard *wizard.Wizard
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "submit a new activity without the interactive flow",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "url", Required: true},
			&cli.StringFlag{Name: "description", Required: true},
			&cli.StringFlag{
				Name:  "place",
				Usage: "autocomplete query; the first suggestion is selected",
			},
			&cli.StringFlag{Name: "image", Usage: "path to an image file"},
			&cli.BoolFlag{Name: "pets", Usage: "pets allowed"},
			&cli.BoolFlag{Name: "accessible", Usage: "wheelchair accessible"},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)
			wiz := deps.Wizard

			wiz.SetTitle(c.String("title"))
			wiz.SetURL(c.String("url"))
			wiz.SetDescription(c.String("description"))
			if c.Bool("pets") {
				wiz.TogglePetsAllowed()
			}
			if c.Bool("accessible") {
				wiz.ToggleAccessibility()
			}
			if image := c.String("image"); image != "" {
				wiz.AttachImage(image)
			}

			if place := c.String("place"); place != "" {
				suggestions, err := wiz.SuggestLocations(c.Context, place)
				if err != nil {
					return err
				}
				if len(suggestions) == 0 {
					return errors.Errorf("no place matched %q", place)
				}
				if err := wiz.SelectSuggestion(c.Context, suggestions[0]); err != nil {
					return err
				}
				fmt.Println("location:", wiz.Draft().Address)
			}

			activity, err := wiz.Submit(c.Context)
			if err != nil {
				return err
			}

			fmt.Printf("created activity #%d: %s\n", activity.ID, activity.Title)
			return nil
		},
	}
}
