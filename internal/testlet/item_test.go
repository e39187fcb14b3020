package testlet_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

func TestParseItemType(t *testing.T) {
	for in, want := range map[string]testlet.ItemType{
		"pretest":       testlet.Pretest,
		" Pretest ":     testlet.Pretest,
		"OPERATIONAL":   testlet.Operational,
		"operational\n": testlet.Operational,
	} {
		got, err := testlet.ParseItemType(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := testlet.ParseItemType("anchor")
	require.ErrorIs(t, err, testlet.ErrUnknownItemType)
}

func TestItemTypeValid(t *testing.T) {
	require.True(t, testlet.Pretest.Valid())
	require.True(t, testlet.Operational.Valid())
	require.False(t, testlet.ItemType(7).Valid())
	require.Equal(t, "ItemType(7)", testlet.ItemType(7).String())
}

func TestItemJSON(t *testing.T) {
	var it testlet.Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q1","type":"operational"}`), &it))
	require.Equal(t, testlet.Item{ID: "q1", Type: testlet.Operational}, it)

	b, err := json.Marshal(testlet.Item{ID: "q2", Type: testlet.Pretest})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"q2","type":"pretest"}`, string(b))

	require.Error(t, json.Unmarshal([]byte(`{"id":"q3","type":"bonus"}`), &it))
	_, err = json.Marshal(testlet.Item{ID: "q4", Type: testlet.ItemType(9)})
	require.Error(t, err)
}
