package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/gamegeeks/gamegeeks/models/platform"
)

const metricPrefix = "gamegeeks_"

var (
	platformGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: metricPrefix + "platform_total",
		Help: "Number of registered gaming platforms",
	})

	problemCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: metricPrefix + "api_problem_total",
		Help: "Number of problem responses, by status code",
	}, []string{"status"})
)

func collectMetrics(ctx context.Context, store platform.Store) {
	refreshPlatformGauge(store)

	tick := time.NewTicker(5 * time.Second)
	go func() {
		for {
			select {
			case <-tick.C:
				refreshPlatformGauge(store)
			case <-ctx.Done():
				tick.Stop()
				return
			}
		}
	}()
}

func refreshPlatformGauge(store platform.Store) {
	n, err := store.Count()
	if err != nil {
		logrus.Warn(err)
		return
	}
	platformGauge.Set(float64(n))
}
