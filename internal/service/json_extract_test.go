package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectBare(t *testing.T) {
	data, err := extractJSONObject(`{"overall_score": 80}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score": 80}`, string(data))
}

func TestExtractJSONObjectFencedBlock(t *testing.T) {
	raw := "Sure, here you go:\n```json\n{\"overall_score\": 80}\n```"
	data, err := extractJSONObject(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score": 80}`, string(data))
}

func TestExtractJSONObjectFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"ok\": true}\n```"
	data, err := extractJSONObject(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
}

func TestExtractJSONObjectSurroundedByProse(t *testing.T) {
	raw := `Based on the conversation, my evaluation is {"overall_score": 75, "feedback": "ok"} and that concludes it.`
	data, err := extractJSONObject(raw)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 75.0, parsed["overall_score"])
}

func TestExtractJSONObjectRepairsAdjacentStringFields(t *testing.T) {
	raw := "{\"feedback\": \"good\"\n\"strengths\": [\"calm\"]}"
	data, err := extractJSONObject(raw)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "good", parsed["feedback"])
}

func TestExtractJSONObjectRepairsMissingCommaAfterNumber(t *testing.T) {
	raw := "{\"overall_score\": 82\n\"feedback\": \"solid\"}"
	data, err := extractJSONObject(raw)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 82.0, parsed["overall_score"])
	assert.Equal(t, "solid", parsed["feedback"])
}

func TestExtractJSONObjectRepairsMissingCommaAfterArray(t *testing.T) {
	raw := "{\"strengths\": [\"calm\"]\n\"feedback\": \"fine\"}"
	data, err := extractJSONObject(raw)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestExtractJSONObjectNoJSONAtAll(t *testing.T) {
	_, err := extractJSONObject("I cannot produce an evaluation for this conversation.")
	assert.Error(t, err)
}

func TestExtractJSONObjectUnrepairableGarbage(t *testing.T) {
	_, err := extractJSONObject("{this is not json at all")
	assert.Error(t, err)
}
