package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateSetAdd(t *testing.T) {
	var d DateSet
	assert.True(t, d.Add("2026-03-14"))
	assert.True(t, d.Add("2026-03-12"))
	assert.False(t, d.Add("2026-03-14"))
	assert.True(t, d.Add("2026-03-13"))

	assert.Equal(t, DateSet{"2026-03-12", "2026-03-13", "2026-03-14"}, d)
	assert.True(t, d.Contains("2026-03-13"))
	assert.False(t, d.Contains("2026-03-11"))
}

func TestDateSetDatabaseValue(t *testing.T) {
	var empty DateSet
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = DateSet{"2026-03-12"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2026-03-12"]`, v)
}

func TestDateSetScan(t *testing.T) {
	var d DateSet
	require.NoError(t, d.Scan(`["2026-03-14","2026-03-12","2026-03-14"]`))
	assert.Equal(t, DateSet{"2026-03-12", "2026-03-14"}, d)

	require.NoError(t, d.Scan([]byte(`[]`)))
	assert.Empty(t, d)

	require.NoError(t, d.Scan(nil))
	assert.Empty(t, d)

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not json"))
}

func TestGoalEnums(t *testing.T) {
	assert.True(t, ValidFrequency(FrequencyDaily))
	assert.True(t, ValidFrequency(FrequencyWeekly))
	assert.False(t, ValidFrequency("monthly"))

	for _, p := range []string{"1h", "3h", "6h", "12h", "eod"} {
		assert.True(t, ValidGracePeriod(p), p)
	}
	assert.False(t, ValidGracePeriod("2h"))

	g := &Goal{Frequency: FrequencyWeekly}
	assert.True(t, g.IsWeekly())
}
