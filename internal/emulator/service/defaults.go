package service

import "time"

const (
	defaultHandshakeTimeout = 30 * time.Second

	outcomeSkippedAsleep = "skipped_asleep"
)
