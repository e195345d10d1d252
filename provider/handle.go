package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Keeper-Wallet/provider-keeper/keeper"
)

// handle is the memoized readiness future for the wallet API. Polling
// starts at construction and runs exactly once; after the retry budget is
// spent the failure is permanent and every await returns it immediately.
type handle struct {
	done chan struct{}
	api  keeper.API
	err  error
}

func awaitKeeper(locator keeper.Locator, interval time.Duration, maxRetries int) *handle {
	h := &handle{done: make(chan struct{})}
	go h.poll(locator, interval, maxRetries)
	return h
}

func (h *handle) poll(locator keeper.Locator, interval time.Duration, maxRetries int) {
	defer close(h.done)

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(interval)
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval*10)
		api, err := locator.Locate(ctx)
		cancel()

		if err == nil {
			h.api = api
			return
		}

		log.Debug().
			Int("attempt", attempt).
			Err(err).
			Msg("Keeper Wallet not announced yet")
	}

	h.err = newError(ErrCodeNotInstalled, "Keeper Wallet is not installed")
}

// await blocks until polling settled or ctx is done.
func (h *handle) await(ctx context.Context) (keeper.API, error) {
	select {
	case <-h.done:
		return h.api, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
