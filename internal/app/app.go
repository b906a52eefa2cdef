// Package app holds process-wide state for the service.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"interview-analysis-service/internal/config"
	"interview-analysis-service/internal/observability/logging"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs a new Application from the provided configuration and
// initializes logging.
func New(cfg *config.Configuration) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		Cfg:    cfg,
		Logger: logging.WithComponent("application"),
	}

	a.Logger.Info().
		Str("sttProvider", cfg.STT.Provider).
		Bool("videoEnabled", cfg.Video.Enabled).
		Bool("kafkaEnabled", cfg.Kafka.Enabled).
		Msg("Interview analysis service application created")
	return a
}

// Start performs any startup work required before serving traffic.
func (a *Application) Start() {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Msg("Interview analysis service starting")
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Interview analysis service shutting down")
}
