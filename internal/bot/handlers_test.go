package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAddMatch(t *testing.T) {
	match, err := parseAddMatch("eng.1 740123 Arsenal vs Chelsea")
	require.NoError(t, err)
	require.Equal(t, "eng.1", match.League)
	require.Equal(t, "740123", match.ID)
	require.Equal(t, "Arsenal", match.HomeTeam)
	require.Equal(t, "Chelsea", match.AwayTeam)

	// Multi-word team names survive on both sides of the separator.
	match, err = parseAddMatch("esp.1 99 Real Madrid vs Atletico Madrid")
	require.NoError(t, err)
	require.Equal(t, "Real Madrid", match.HomeTeam)
	require.Equal(t, "Atletico Madrid", match.AwayTeam)
}

func TestParseAddMatchRejectsBadInput(t *testing.T) {
	for _, args := range []string{
		"",
		"eng.1",
		"eng.1 740123",
		"eng.1 740123 Arsenal Chelsea",
		"eng.1 740123 vs Chelsea",
	} {
		_, err := parseAddMatch(args)
		require.Error(t, err, "args: %q", args)
	}
}
