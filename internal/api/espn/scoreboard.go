package espn

import (
	"context"
	"fmt"
	"time"

	"github.com/golazobot/golazo/internal/logos"
	"github.com/golazobot/golazo/internal/models"
)

// scoreboardDateLayout is the dates query parameter format shared by every
// soccer scoreboard endpoint.
const scoreboardDateLayout = "20060102"

type API struct {
	client *Client
	logos  *logos.Cache
}

func NewAPI(client *Client, logoCache *logos.Cache) *API {
	return &API{client: client, logos: logoCache}
}

// Ping reports whether the upstream API is reachable.
func (a *API) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Scoreboard fetches one league's scoreboard for the given day and returns
// the events that normalized cleanly. Events with missing ids or broken
// competitor data are dropped, not errored.
func (a *API) Scoreboard(ctx context.Context, league string, day time.Time) ([]models.MatchWithScore, error) {
	var response models.ScoreboardResponse
	endpoint := fmt.Sprintf("/%s/scoreboard", league)
	params := map[string]string{
		"dates": day.Format(scoreboardDateLayout),
	}

	if err := a.client.Get(ctx, endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard: %w", league, err)
	}

	var matches []models.MatchWithScore
	for _, event := range response.Events {
		match := NormalizeEvent(event, a.logos)
		if match == nil {
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}
