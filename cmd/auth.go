package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/friendbook/internal/router"
	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/ui"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and, with --login, starts a session for it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if _, d := r.guard.Navigate("/register"); !d.Allowed() {
		return r.alreadyLoggedIn()
	}

	email, password, name := cmd.String("email"), cmd.String("password"), cmd.String("name")

	r.logger.Info("registering account", "email", email)
	if err := r.gateway.Register(ctx, email, password, name); err != nil {
		return err
	}
	r.writePlain("%s\n", ui.OK("Registered "+email))

	if !cmd.Bool("login") {
		return r.writePlain("%s\n", ui.Hint("Run 'friendbook auth login' to start a session"))
	}
	return r.login(ctx, email, password)
}

// AuthLogin exchanges credentials for an account and persists it as the current session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if _, d := r.guard.Navigate("/login"); !d.Allowed() {
		return r.alreadyLoggedIn()
	}
	return r.login(ctx, cmd.String("email"), cmd.String("password"))
}

func (r *Runner) login(ctx context.Context, email, password string) error {
	r.logger.Info("logging in", "email", email)

	user, err := r.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := r.session.SetUser(ctx, *user); err != nil {
		return fmt.Errorf("logged in but could not remember the session: %w", err)
	}

	return r.writePlain("%s\n", ui.OK("Logged in as "+user.String()))
}

// AuthLogout ends the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.IsLoggedIn() {
		return r.writePlain("%s\n", ui.Warn("Not logged in"))
	}

	if err := r.session.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.OK("Logged out"))
}

// AuthStatus prints the current session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.session.User()

	if cmd.Bool("json") {
		if !ok {
			return r.writeJSON(map[string]any{"logged_in": false}, false)
		}
		return r.writeJSON(map[string]any{"logged_in": true, "user": user}, false)
	}

	if !ok {
		return r.writePlain("%s\n", ui.Fail("Not logged in"))
	}
	return r.writePlain("%s\n", ui.OK("Logged in as "+user.String()))
}

func (r *Runner) alreadyLoggedIn() error {
	user, _ := r.session.User()
	r.writePlain("%s\n", ui.Warn("Already logged in as "+user.String()))
	return r.writePlain("%s\n", ui.Hint("Run 'friendbook auth logout' first to switch accounts"))
}

// requireLogin applies the navigation guard for a protected view.
func (r *Runner) requireLogin(path string) error {
	if _, d := r.guard.Navigate(path); d.Redirect == router.Login {
		return fmt.Errorf("%w: run 'friendbook auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}
