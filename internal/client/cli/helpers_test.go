package cli

import "time"

const (
	timeoutShort = time.Second
	tick         = 5 * time.Millisecond
	longInterval = time.Hour
)
