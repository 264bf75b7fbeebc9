package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return &Client{barIndex: make(map[string]int)}
}

func TestParseBar(t *testing.T) {
	c := testClient()

	row := []string{"1700000000000", "100.1", "101.2", "99.3", "100.7", "1234.5", "0", "0", "1"}
	bar, ok := c.parseBar("BTC-USDT", row, time.Minute)

	require.True(t, ok)
	assert.Equal(t, "BTC-USDT", bar.Symbol)
	assert.Equal(t, 1, bar.Index)
	assert.Equal(t, 100.1, bar.Open)
	assert.Equal(t, 101.2, bar.High)
	assert.Equal(t, 99.3, bar.Low)
	assert.Equal(t, 100.7, bar.Close)
	assert.Equal(t, 1234.5, bar.Volume)
	assert.Equal(t, time.UnixMilli(1700000000000), bar.Start)
	assert.Equal(t, time.UnixMilli(1700000000000).Add(time.Minute), bar.End)
}

func TestParseBar_IndexGrowsPerSymbol(t *testing.T) {
	c := testClient()
	row := []string{"1700000000000", "1", "1", "1", "1", "1", "1"}

	for i := 1; i <= 3; i++ {
		bar, ok := c.parseBar("ETH-USDT", row, time.Minute)
		require.True(t, ok)
		assert.Equal(t, i, bar.Index)
	}

	bar, ok := c.parseBar("BTC-USDT", row, time.Minute)
	require.True(t, ok)
	assert.Equal(t, 1, bar.Index, "индексы независимы по символам")
}

func TestParseBar_BadRows(t *testing.T) {
	c := testClient()

	cases := [][]string{
		{"not-a-ts", "1", "1", "1", "1", "1"},
		{"1700000000000", "x", "1", "1", "1", "1"},
		{"1700000000000", "1", "1", "1", "1", "oops"},
	}

	for _, row := range cases {
		_, ok := c.parseBar("BTC-USDT", row, time.Minute)
		assert.False(t, ok)
	}
}

func TestTimeframeToDuration(t *testing.T) {
	assert.Equal(t, time.Minute, timeframeToDuration("1m"))
	assert.Equal(t, 5*time.Minute, timeframeToDuration("5m"))
	assert.Equal(t, time.Hour, timeframeToDuration("1H"))
	assert.Equal(t, time.Duration(0), timeframeToDuration("2w"))
}
