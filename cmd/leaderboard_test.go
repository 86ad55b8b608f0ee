package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alex-pricope/hackathon-judging/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLeaderboard(t *testing.T) {
	results := []scoring.FinalScore{
		{TeamID: "t1", TeamName: "Alpha", WeightedScore: 85, Rank: 1},
		{TeamID: "t2", TeamName: "Beta", WeightedScore: 45.56, Rank: 2},
	}

	t.Run("Happy path - table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printLeaderboard(&buf, results, false))

		out := buf.String()
		assert.Contains(t, out, "RANK")
		assert.Contains(t, out, "Alpha")
		assert.Contains(t, out, "85.00")
		assert.Contains(t, out, "45.56")
	})

	t.Run("Happy path - json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printLeaderboard(&buf, results, true))

		var decoded []scoring.FinalScore
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, results, decoded)
	})

	t.Run("Happy path - empty board prints an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printLeaderboard(&buf, []scoring.FinalScore{}, true))
		assert.JSONEq(t, "[]", buf.String())
	})
}
