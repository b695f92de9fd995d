package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// connectRetries bounds the pings after the first one.
const connectRetries = 4

func connectPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = 10 * time.Second
	return backoff.WithMaxRetries(policy, connectRetries)
}

// waitReady pings until the store answers, the policy gives up or ctx is done.
func waitReady(ctx context.Context, ping func(context.Context) error, policy backoff.BackOff, logger *zap.Logger) error {
	return backoff.RetryNotify(
		func() error { return ping(ctx) },
		backoff.WithContext(policy, ctx),
		func(err error, wait time.Duration) {
			logger.Warn("clickhouse not ready", zap.Error(err), zap.Duration("retry_in", wait))
		},
	)
}
