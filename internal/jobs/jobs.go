// Package jobs runs the console's background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"altura-admin/internal/logger"
	"altura-admin/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// StartAPKProbe probes the APK host once at startup and then every interval.
// A zero interval returns a nil scheduler and schedules nothing.
func StartAPKProbe(proxy *services.APKProxy, interval time.Duration, loc *time.Location) (gocron.Scheduler, error) {
	if interval <= 0 || proxy == nil {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(probeAPK, proxy, interval),
		gocron.WithName("apk-probe"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule apk probe: %w", err)
	}

	s.Start()
	logger.L().WithField("interval", interval.String()).Info("apk probe scheduled")
	return s, nil
}

func probeAPK(proxy *services.APKProxy, interval time.Duration) {
	timeout := interval
	if timeout > 30*time.Second {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res := proxy.Probe(ctx)
	entry := logger.L().WithFields(logrus.Fields{
		"module": "JOBS",
		"action": "apk_probe",
		"status": res.Status,
		"ok":     res.OK,
	})
	if res.Error != "" {
		entry.WithField("error", res.Error).Warn("apk probe failed")
		return
	}
	entry.Info("apk probe done")
}
