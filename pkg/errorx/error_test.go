package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	err := New(QuestNotFound, "Not found quest %s", "QE001")
	require.Equal(t, "Not found quest QE001", err.Error())
	require.True(t, Is(err, QuestNotFound))
	require.False(t, Is(err, NotFound))

	wrapped := fmt.Errorf("accept: %w", err)
	require.True(t, Is(wrapped, QuestNotFound))
	require.True(t, errors.Is(wrapped, Error{Code: QuestNotFound}))
	require.False(t, errors.Is(wrapped, Unknown))

	require.False(t, Is(errors.New("plain"), QuestNotFound))
}
