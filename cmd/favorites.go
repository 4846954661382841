package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/ui"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the logged-in user's favorite entry ids.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin("/"); err != nil {
		return err
	}
	user, _ := r.session.User()

	ids := r.favorites.GetFavoriteIDs(ctx, user.ID)
	if cmd.Bool("json") {
		return r.writeJSON(ids, false)
	}

	r.writePlain("%s\n", ui.Title(fmt.Sprintf("Favorites of %s", user.Name)))
	if len(ids) == 0 {
		return r.writePlain("%s\n", ui.Hint("No favorites yet"))
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return r.writePlain("%s\n", strings.Join(parts, ", "))
}

// FavoritesToggle flips one entry in the logged-in user's favorites.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin("/"); err != nil {
		return err
	}

	arg := cmd.StringArg("entry-id")
	if arg == "" {
		return fmt.Errorf("%w: entry-id", shared.ErrMissingArgument)
	}
	entryID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: entry-id %q is not an integer", shared.ErrInvalidArgument, arg)
	}

	user, _ := r.session.User()
	before := r.favorites.GetFavoriteIDs(ctx, user.ID)

	ids, err := r.favorites.ToggleFavoriteID(ctx, user.ID, entryID)
	if err != nil {
		return err
	}

	if len(ids) > len(before) {
		return r.writePlain("%s\n", ui.OK(fmt.Sprintf("Entry %d added to favorites", entryID)))
	}
	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("Entry %d removed from favorites", entryID)))
}
