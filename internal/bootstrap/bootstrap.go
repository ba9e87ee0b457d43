package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/kirillkom/docintake/internal/config"
	"github.com/kirillkom/docintake/internal/core/ports"
	"github.com/kirillkom/docintake/internal/core/usecase"
	"github.com/kirillkom/docintake/internal/infrastructure/agent/email"
	"github.com/kirillkom/docintake/internal/infrastructure/agent/jsondata"
	"github.com/kirillkom/docintake/internal/infrastructure/agent/pdf"
	"github.com/kirillkom/docintake/internal/infrastructure/agent/text"
	"github.com/kirillkom/docintake/internal/infrastructure/classifier/keyword"
	"github.com/kirillkom/docintake/internal/infrastructure/history/memory"
	natsqueue "github.com/kirillkom/docintake/internal/infrastructure/queue/nats"
	"github.com/kirillkom/docintake/internal/infrastructure/queue/noop"
	"github.com/kirillkom/docintake/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	History   ports.HistoryStore
	Events    ports.EventPublisher
	Stream    ports.EventStream
	ProcessUC ports.DocumentProcessor
	HistoryUC ports.HistoryReader

	closeFn func()
}

// New wires the intake pipeline. NATS is optional: with an empty NATSURL the
// processed-event feed is a no-op and the API runs standalone.
func New(cfg config.Config) (*App, error) {
	history := memory.New()

	var (
		events  ports.EventPublisher
		stream  ports.EventStream
		closeFn = func() {}
	)
	if cfg.NATSURL == "" {
		slog.Info("event_feed_disabled", "reason", "no nats url configured")
		events = noop.New()
	} else {
		queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
			ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		})
		if err != nil {
			return nil, fmt.Errorf("init event feed: %w", err)
		}
		events = queue
		stream = queue
		closeFn = queue.Close
	}

	processUC := usecase.NewProcessUseCase(
		keyword.New(),
		jsondata.New(),
		email.New(),
		pdf.New(),
		text.New(),
		history,
		events,
		cfg.HistoryLimit,
	)

	return &App{
		Config:    cfg,
		History:   history,
		Events:    events,
		Stream:    stream,
		ProcessUC: processUC,
		HistoryUC: processUC,
		closeFn:   closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
