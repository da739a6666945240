package pg

import (
	"context"
	"time"
)

// RunExpirySweeper - запускает периодическое удаление просроченных заказов
func (r *Repository) RunExpirySweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)

	r.stopSweepChan = make(chan struct{})
	r.sweepDone = make(chan struct{})

	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)

		for {
			select {
			case <-ticker.C:
				deleted, err := r.DeleteExpired(r.shutdownCtx, time.Now())
				if err != nil {
					r.lg.Errorf("deleting expired orders error: %v", err)
					continue
				}
				if deleted > 0 {
					r.lg.Infof("expired orders deleted: %d", deleted)
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}(r.stopSweepChan, r.sweepDone)
}

func (r *Repository) StopExpirySweeper() {
	timeout := 4 * time.Second

	if r.stopSweepChan == nil {
		return
	}

	close(r.stopSweepChan)
	r.stopSweepChan = nil

	ctx, cancel := context.WithTimeout(r.shutdownCtx, timeout)
	defer cancel()

	select {
	case <-r.sweepDone:
		r.lg.Info("expiry sweeper stopped")
	case <-ctx.Done():
		r.lg.Warn("force expiry sweeper shutdown after timeout")
		r.shutdownCancel()
	}
}
