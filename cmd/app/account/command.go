package account

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/funthingsnearme/nearby/cmd/app/cli"
	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/app/appcontext"
	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/rest"
)

type CommandDeps struct {
	fx.In

	Config  *appconfig.Config
	Session *auth.Session
	API     *rest.Client
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "manage the signed-in session",
		Subcommands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			statusCommand(),
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"username"}, Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)

			if deps.Config.LegacyAuth {
				tokens, err := deps.API.LegacyLogin(c.Context, c.String("email"), c.String("password"))
				if err != nil {
					return err
				}
				deps.Session.AdoptLegacy(tokens)
				fmt.Println("signed in")
				return nil
			}

			if err := deps.Session.SignIn(c.Context, c.String("email"), c.String("password")); err != nil {
				return err
			}
			if err := upsertBackendUser(c, deps); err != nil {
				return err
			}
			fmt.Println("signed in as", deps.Session.Email())
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"username"}, Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "city", Usage: "home city (legacy accounts only)"},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)

			if deps.Config.LegacyAuth {
				tokens, err := deps.API.LegacyRegister(c.Context, &rest.LegacyRegisterRequest{
					Username: c.String("email"),
					Email:    c.String("email"),
					Password: c.String("password"),
					City:     c.String("city"),
				})
				if err != nil {
					return err
				}
				deps.Session.AdoptLegacy(tokens)
				fmt.Println("account created")
				return nil
			}

			if err := deps.Session.SignUp(c.Context, c.String("email"), c.String("password")); err != nil {
				return err
			}
			if err := upsertBackendUser(c, deps); err != nil {
				return err
			}
			fmt.Println("account created for", deps.Session.Email())
			return nil
		},
	}
}

// upsertBackendUser binds the backend-side user record to the fresh
// provider token.
func upsertBackendUser(c *cli.Context, deps CommandDeps) error {
	token, err := deps.Session.IDToken(c.Context)
	if err != nil {
		return err
	}
	newUser, err := deps.API.RegisterOrLogin(c.Context, token)
	if err != nil {
		return err
	}
	if newUser {
		fmt.Println("welcome!")
	}
	return nil
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "drop the persisted session",
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)
			deps.Session.SignOut()
			fmt.Println("signed out")
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show whether a session is active",
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[CommandDeps](appcontext.EnvCLI)
			if !deps.Session.Authenticated() {
				fmt.Println("signed out")
				return nil
			}
			if email := deps.Session.Email(); email != "" {
				fmt.Println("signed in as", email)
				return nil
			}
			fmt.Println("signed in")
			return nil
		},
	}
}
