package main

import (
	"context"

	"github.com/desertthunder/friendbook/internal/ui"
	"github.com/urfave/cli/v3"
)

type routeResult struct {
	Path     string            `json:"path"`
	Route    string            `json:"route"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// Route shows which view a path resolves to and whether the guard lets the current session in.
func (r *Runner) Route(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = "/"
	}

	target, d := r.guard.Navigate(path)
	res := routeResult{Path: path, Route: target.Name, Params: target.Params, Redirect: d.Redirect}

	if cmd.Bool("json") {
		return r.writeJSON(res, false)
	}

	if d.Allowed() {
		return r.writePlain("%s\n", ui.OK(path+" → "+target.Name))
	}
	return r.writePlain("%s\n", ui.Warn(path+" → redirected to "+d.Redirect))
}
