// Package replay provides a canned in-memory broker for tests and
// offline demos. Each data source can be scripted to fail so callers'
// degrade-to-default paths are exercisable.
package replay

import (
	"context"
	"errors"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/market"
)

var ErrUnavailable = errors.New("replay: data source unavailable")

// Broker serves fixed market data. The zero value reports zero price,
// no candles, default-ish zero fees and zero balance.
type Broker struct {
	Price   float64
	Series  market.Series
	Fees    broker.FeeSchedule
	Balance float64

	// Fail* make the corresponding call return ErrUnavailable.
	FailTicker  bool
	FailCandles bool
	FailFees    bool
	FailBalance bool

	Calls int
}

var _ broker.Broker = (*Broker)(nil)

func (b *Broker) GetTicker(ctx context.Context, pair string) (float64, error) {
	b.Calls++
	if b.FailTicker {
		return 0, ErrUnavailable
	}
	return b.Price, nil
}

func (b *Broker) GetCandles(ctx context.Context, pair, period string, count int) (market.Series, error) {
	if b.FailCandles {
		return nil, ErrUnavailable
	}
	if count > 0 && len(b.Series) > count {
		return b.Series[len(b.Series)-count:], nil
	}
	return b.Series, nil
}

func (b *Broker) GetFeeSchedule(ctx context.Context, pair string) (broker.FeeSchedule, error) {
	if b.FailFees {
		return broker.FeeSchedule{}, ErrUnavailable
	}
	return b.Fees, nil
}

func (b *Broker) GetAvailableBalance(ctx context.Context, asset string) (float64, error) {
	if b.FailBalance {
		return 0, ErrUnavailable
	}
	return b.Balance, nil
}
