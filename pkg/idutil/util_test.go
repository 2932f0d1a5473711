package idutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnowflakeGenerator(t *testing.T) {
	g, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	first := g.Generate()
	second := g.Generate()
	require.Less(t, first, second)
	require.True(t, Time(second).After(before))

	_, err = NewSnowflakeGenerator(5000)
	require.Error(t, err)
}
