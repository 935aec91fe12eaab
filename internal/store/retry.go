package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"

	"campaignwiki/internal/entity"
)

const defaultMaxTries = 3

var _ Reader = (*Retrying)(nil)

// Retrying retries failed reads with exponential backoff. ErrNotFound and
// context cancellation are returned immediately.
type Retrying struct {
	next     Reader
	maxTries uint
	newBack  func() backoff.BackOff
}

type RetryOption func(*Retrying)

func WithMaxTries(n uint) RetryOption {
	return func(r *Retrying) {
		if n > 0 {
			r.maxTries = n
		}
	}
}

func WithBackOff(newBack func() backoff.BackOff) RetryOption {
	return func(r *Retrying) {
		if newBack != nil {
			r.newBack = newBack
		}
	}
}

func NewRetrying(next Reader, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:     next,
		maxTries: defaultMaxTries,
		newBack: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func retry[T any](ctx context.Context, r *Retrying, op string, fn func() (T, error)) (T, error) {
	return backoff.Retry(ctx, func() (T, error) {
		v, err := fn()
		if err != nil && (errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(r.newBack()),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Printf("store: %s failed, retrying in %s: %v", op, wait, err)
		}),
	)
}

func (r *Retrying) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	return retry(ctx, r, "list campaigns", func() ([]Campaign, error) {
		return r.next.ListCampaigns(ctx)
	})
}

func (r *Retrying) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	return retry(ctx, r, "get campaign", func() (*Campaign, error) {
		return r.next.GetCampaign(ctx, id)
	})
}

func (r *Retrying) ListEntities(ctx context.Context, filter EntityFilter) ([]entity.Record, error) {
	return retry(ctx, r, "list entities", func() ([]entity.Record, error) {
		return r.next.ListEntities(ctx, filter)
	})
}

func (r *Retrying) GetEntity(ctx context.Context, campaignID, key string) (*entity.Record, error) {
	return retry(ctx, r, "get entity", func() (*entity.Record, error) {
		return r.next.GetEntity(ctx, campaignID, key)
	})
}

func (r *Retrying) ListSessions(ctx context.Context, campaignID string) ([]entity.Record, error) {
	return retry(ctx, r, "list sessions", func() ([]entity.Record, error) {
		return r.next.ListSessions(ctx, campaignID)
	})
}

func (r *Retrying) SearchEntities(ctx context.Context, q SearchQuery) ([]entity.Record, error) {
	return retry(ctx, r, "search entities", func() ([]entity.Record, error) {
		return r.next.SearchEntities(ctx, q)
	})
}

func (r *Retrying) CountEntities(ctx context.Context, campaignID string) (map[string]int, error) {
	return retry(ctx, r, "count entities", func() (map[string]int, error) {
		return r.next.CountEntities(ctx, campaignID)
	})
}
