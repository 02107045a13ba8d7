package errors

import "fmt"

var (
	ErrDimensionMismatch  = fmt.Errorf("feature vector dimension mismatch")
	ErrEmptyMessage       = fmt.Errorf("message is empty after normalization")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrEmptyWatchlist     = fmt.Errorf("no watchlist phrases have been found")
)
