package bot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"lecturebot/core/bootstrap"
	coreconfig "lecturebot/core/config"
	"lecturebot/core/telegram/state"
	"lecturebot/internal/export"
	"lecturebot/internal/health"
	"lecturebot/internal/metrics"
	"lecturebot/internal/notify"
	"lecturebot/internal/service/lectures"
	"lecturebot/internal/service/ops"
	"lecturebot/internal/service/registrations"
	"lecturebot/internal/service/users"
	"lecturebot/internal/storage"
)

// Build initializes infrastructure and assembles the application graph.
func Build(cfg *coreconfig.Config, environment string) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	store := storage.New(res.DB)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(promReg)

	gate := ops.NewGate(cfg.Telegram.AdminIDs, store.AdminActions)
	notifier := notify.New(cfg.Telegram.AdminIDs, collector.RecordFanoutFailure)

	userSvc := users.New(store.Users, store.AdminActions, gate.IsAdmin)
	lectureSvc := lectures.New(store.Lectures, store.AdminActions, gate.IsAdmin)
	regSvc := registrations.New(store.Registrations, lectureSvc, notifier)
	exporter := export.New(regSvc, store.AdminActions)

	sessions := state.NewMemoryManager(time.Duration(cfg.Sessions.TTLMinutes) * time.Minute)

	healthSrv := health.NewServer(cfg.Health.Addr(), gate, promReg, environment)

	return NewApp(Deps{
		Config:   cfg,
		Gate:     gate,
		Users:    userSvc,
		Lectures: lectureSvc,
		Regs:     regSvc,
		Exporter: exporter,
		Notifier: notifier,
		Sessions: sessions,
		Metrics:  collector,
		Health:   healthSrv,
	}), nil
}
