package distance

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Chain tries providers in order until one answers. The usual arrangement is
// a road provider backed by the offline great-circle provider.
type Chain struct {
	providers []Provider
}

// NewChain creates a Chain over the given providers.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Name implements Provider.
func (c *Chain) Name() string { return "chain" }

// Distance implements Provider by falling through to the next provider on
// error. The Result's Source names the provider that answered.
func (c *Chain) Distance(ctx context.Context, from, to model.Coordinates, mode Mode) (Result, error) {
	var lastErr error
	for _, p := range c.providers {
		r, err := p.Distance(ctx, from, to, mode)
		if err != nil {
			// A cancelled context fails every remaining provider; surface it
			// instead of the last provider error.
			if ctx.Err() != nil {
				return Result{}, eris.Wrap(ctx.Err(), "distance: chain")
			}
			zap.L().Warn("distance provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		return r, nil
	}
	if lastErr != nil {
		return Result{}, lastErr
	}
	return Result{}, eris.New("distance: no providers configured")
}
