package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/faceit-stats/external/faceit"
	"github.com/riskibarqy/faceit-stats/internal/config"
	"github.com/riskibarqy/faceit-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
	"github.com/riskibarqy/faceit-stats/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if len(cfg.FaceitAPIKeys) == 0 {
		return nil, fmt.Errorf("at least one faceit api key is required")
	}

	keyRingCfg := resilience.DefaultKeyRingConfig()
	keyRingCfg.Enabled = cfg.FaceitKeyRotationEnabled
	keyRingCfg.MaxFailures = cfg.FaceitMaxRetries
	keyRingCfg.Cooldown = cfg.FaceitKeyCooldown

	client := faceit.NewClient(faceit.ClientConfig{
		BaseURL:       cfg.FaceitBaseURL,
		Keys:          resilience.NewKeyRing(cfg.FaceitAPIKeys, keyRingCfg),
		Timeout:       cfg.FaceitRequestTimeout,
		RetriesPerKey: cfg.FaceitMaxRetries,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FaceitCircuitEnabled,
			FailureThreshold: cfg.FaceitCircuitFailureCount,
			OpenTimeout:      cfg.FaceitCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FaceitCircuitHalfOpenMax,
		},
	})
	source := faceit.NewProvider(client)

	playerSvc := usecase.NewPlayerService(source, usecase.PlayerServiceConfig{
		DefaultGame: cfg.FaceitGame,
		SearchLimit: cfg.FaceitSearchLimit,
	}, logger)
	matchSvc := usecase.NewMatchService(source, usecase.MatchServiceConfig{
		DefaultGame:    cfg.FaceitGame,
		BatchGroupSize: cfg.FaceitBatchGroupSize,
	}, logger)
	systemSvc := usecase.NewSystemService(source)

	handler := httpapi.NewHandler(playerSvc, matchSvc, systemSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.DebugRoutesEnabled)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("faceit client configured",
		"base_url", cfg.FaceitBaseURL,
		"keys", len(cfg.FaceitAPIKeys),
		"key_rotation", cfg.FaceitKeyRotationEnabled,
		"circuit_enabled", cfg.FaceitCircuitEnabled,
	)

	return server, nil
}
