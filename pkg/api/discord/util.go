package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrRateLimit    = errors.New("rate limit")
	ErrCannotSendDM = errors.New("cannot send messages to this user")
)

// Discord JSON error code of a user who disabled direct messages.
const cannotSendMessagesToUserCode = 50007

func IsRateLimit(err error) (time.Time, bool) {
	if !errors.Is(err, ErrRateLimit) {
		return time.Time{}, false
	}

	_, resetAt, found := strings.Cut(err.Error(), ":")
	if !found {
		return time.Time{}, false
	}

	resetAtInt, err := strconv.ParseInt(resetAt, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(resetAtInt, 0), true
}

func wrapRateLimit(resetAt int64) error {
	return fmt.Errorf("%w:%d", ErrRateLimit, resetAt)
}
