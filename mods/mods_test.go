package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []struct {
		mods Modifier
		str  string
	}{
		{None, "NM"},
		{Hidden | DoubleTime, "HDDT"},
		{Easy | HalfTime, "EZHT"},
		{Hidden | Nightcore | DoubleTime, "HDNC"},
		{Relax | Hidden | DoubleTime, "HDDTRX"},
	}

	for _, c := range cases {
		assert.Equal(t, c.str, c.mods.String())
		assert.Equal(t, c.mods, Parse(c.str)|c.mods) // parse is a subset-stable inverse
	}
}

func TestClockRate(t *testing.T) {
	assert.Equal(t, 1.5, (Hidden | DoubleTime).ClockRate())
	assert.Equal(t, 1.5, (Nightcore | DoubleTime).ClockRate())
	assert.Equal(t, 0.75, HalfTime.ClockRate())
	assert.Equal(t, 1.0, Hidden.ClockRate())
}

func TestQueries(t *testing.T) {
	m := Hidden | DoubleTime | Relax

	assert.True(t, m.HD())
	assert.True(t, m.DT())
	assert.True(t, m.RX())
	assert.False(t, m.FL())
	assert.False(t, m.EZ())
}
