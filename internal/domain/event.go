package domain

import "errors"

// ErrNotSubscribed indicates that the subscriber is not registered on the bus.
var ErrNotSubscribed = errors.New("subscriber is not subscribed")
