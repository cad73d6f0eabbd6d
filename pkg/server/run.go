package server

import (
	"github.com/de-tools/risk-flags/pkg/services/config"
	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/rs/zerolog"
)

// NewWebAPIFromConfig builds the web API with the default indicators and the
// configured thresholds.
func NewWebAPIFromConfig(cfg *config.Config, logger zerolog.Logger) *WebAPI {
	settings := cfg.Rules.Settings()
	logger.Info().
		Float64("iscr_min", settings.ISCRMin).
		Float64("revenue_min", settings.RevenueMin).
		Float64("borrowing_ratio_max", settings.BorrowingRatioMax).
		Msg("rule thresholds loaded")

	return NewWebAPI(Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Upload: UploadLimits{
			MaxBytes:      cfg.Upload.MaxBytes,
			RatePerSecond: cfg.Upload.RatePerSecond,
			Burst:         cfg.Upload.Burst,
		},
		Dependencies: Dependencies{
			Engine: rules.NewDefaultEvaluator(settings),
			Logger: logger,
		},
	})
}
