package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChatCommand(t *testing.T) {
	out, err := execute(t, "chat", "--lang", "en", "--name", "Ravi", "hello", "there")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[greeting/en] "), out)
	assert.Contains(t, out, "Ravi")
}

func TestRecommendJSON(t *testing.T) {
	out, err := execute(t, "recommend", "--crop", "Rice", "--season", "Kharif",
		"--n", "45", "--p", "55", "--k", "60", "--ph", "7.2", "--moisture", "35", "--area", "5",
		"--label", "Urea", "--quantity", "52.4", "--probability", "0.87")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "DAP", rec["fertilizer_type"])
	assert.Equal(t, 262.0, rec["total_quantity"])
}

func TestRecommendTelugu(t *testing.T) {
	out, err := execute(t, "recommend", "--crop", "Rice", "--season", "Kharif", "--n", "45", "--lang", "te")
	require.NoError(t, err)
	assert.Contains(t, out, "వరి")
	assert.Contains(t, out, "Fertilizer:   DAP (overlay)")
}

func TestRecommendRejectsBadReading(t *testing.T) {
	_, err := execute(t, "recommend", "--crop", "Rice", "--season", "Kharif", "--ph", "19")
	assert.Error(t, err)

	_, err = execute(t, "recommend", "--season", "Kharif")
	assert.Error(t, err, "crop is required")
}

func TestCropsCommand(t *testing.T) {
	out, err := execute(t, "crops")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 24)
	assert.True(t, strings.HasPrefix(lines[0], "apple"))
}
