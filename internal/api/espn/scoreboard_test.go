package espn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golazobot/golazo/internal/api/espn"
	"github.com/golazobot/golazo/internal/config"
	"github.com/stretchr/testify/require"
)

const scoreboardJSON = `{
	"events": [
		{
			"id": "740123",
			"status": {"displayClock": "30'", "type": {"state": "in", "shortDetail": "30'"}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "1", "team": {"id": "359", "displayName": "Arsenal"}},
					{"homeAway": "away", "score": "0", "team": {"id": "363", "displayName": "Chelsea"}}
				]
			}]
		},
		{
			"id": "",
			"status": {"type": {"state": "in"}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "3", "team": {"id": "x"}},
					{"homeAway": "away", "score": "0", "team": {"id": "y"}}
				]
			}]
		}
	]
}`

func newTestAPI(t *testing.T, handler http.Handler) *espn.API {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := espn.NewClient(config.ESPNAPI{
		BaseURL:  server.URL,
		ProbeURL: server.URL,
	})
	return espn.NewAPI(client, nil)
}

func TestScoreboardDropsInvalidEvents(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/eng.1/scoreboard", r.URL.Path)
		require.Regexp(t, `^\d{8}$`, r.URL.Query().Get("dates"))
		w.Write([]byte(scoreboardJSON))
	}))

	matches, err := api.Scoreboard(context.Background(), "eng.1", time.Now())
	require.NoError(t, err)

	// The event without an id never makes it into the output.
	require.Len(t, matches, 1)
	require.Equal(t, "740123", matches[0].MatchID)
	require.Equal(t, 1, matches[0].HomeScore)
}

func TestScoreboardErrorsOnBadStatus(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := api.Scoreboard(context.Background(), "eng.1", time.Now())
	require.Error(t, err)
	require.ErrorContains(t, err, "unexpected status code")
}

func TestScoreboardErrorsOnBadJSON(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := api.Scoreboard(context.Background(), "eng.1", time.Now())
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, api.Ping(context.Background()))

	// A dead endpoint fails the probe.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	deadClient := espn.NewClient(config.ESPNAPI{BaseURL: server.URL, ProbeURL: server.URL})
	deadAPI := espn.NewAPI(deadClient, nil)
	require.Error(t, deadAPI.Ping(context.Background()))
}
