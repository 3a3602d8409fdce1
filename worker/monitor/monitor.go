package monitor

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/number"
	"dsc/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Unhealthy account open to liquidation
type Unhealthy struct {
	User         string
	HealthFactor decimal.Decimal
}

// Worker scan every saved position and report the accounts below the minimum health factor
type Worker struct {
	worker.BaseJob
	engine    core.IEngine
	positions core.PositionStore
}

// New new health monitor running every period
func New(period time.Duration, engine core.IEngine, positions core.PositionStore) (*Worker, error) {
	w := &Worker{
		engine:    engine,
		positions: positions,
	}

	w.Name = "monitor"
	w.Cron = cron.New()
	w.OnWork = w.onWork
	if err := w.Schedule(fmt.Sprintf("@every %s", period)); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	accounts, err := w.unhealthy(ctx)
	if err != nil {
		return err
	}

	for _, a := range accounts {
		log.WithField("user", a.User).Warnln("health factor below minimum:", a.HealthFactor)
	}

	return nil
}

func (w *Worker) unhealthy(ctx context.Context) ([]Unhealthy, error) {
	log := logger.FromContext(ctx)

	users, err := w.positions.Users(ctx)
	if err != nil {
		log.WithError(err).Errorln("positions.Users")
		return nil, err
	}

	var accounts []Unhealthy
	for _, user := range users {
		hf, err := w.engine.HealthFactor(ctx, user)
		if err != nil {
			log.WithError(err).WithField("user", user).Errorln("engine.HealthFactor")
			continue
		}

		if !dsc.IsHealthy(hf) {
			accounts = append(accounts, Unhealthy{
				User:         user,
				HealthFactor: number.FromUnits(hf),
			})
		}
	}

	return accounts, nil
}
