// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles local configuration and storage setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml populated with defaults",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the SQLite store and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Roll back and re-apply the latest migration, wiping stored sessions and favorites",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Register, log in and out",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account on the friend book server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name", Required: true},
					&cli.BoolFlag{Name: "login", Usage: "Log in right after registering"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and remember the account on this device",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the logged-in account",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show who is logged in",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// favoritesCommand handles the logged-in user's favorite entries
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "List and toggle favorite entries",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite entry ids",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "toggle",
				Usage: "Add or remove an entry from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "entry-id"},
				},
				Action: r.FavoritesToggle,
			},
		},
	}
}

// routeCommand reports where navigating to a path would land.
func routeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Resolve an application path through the navigation guard",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path", Value: "/"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Route,
	}
}
