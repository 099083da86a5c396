package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	DebugRoutesEnabled         bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	FaceitBaseURL              string
	FaceitGame                 string
	FaceitAPIKeys              []string
	FaceitRequestTimeout       time.Duration
	FaceitMaxRetries           int
	FaceitKeyCooldown          time.Duration
	FaceitKeyRotationEnabled   bool
	FaceitBatchGroupSize       int
	FaceitSearchLimit          int
	FaceitCircuitEnabled       bool
	FaceitCircuitFailureCount  int
	FaceitCircuitOpenTimeout   time.Duration
	FaceitCircuitHalfOpenMax   int
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	debugDefault := "true"
	if appEnv == EnvProd {
		debugDefault = "false"
	}
	debugRoutesEnabled, err := strconv.ParseBool(getEnv("DEBUG_ROUTES_ENABLED", debugDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEBUG_ROUTES_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	faceitKeys, err := parseAPIKeys(getEnv("FACEIT_API_KEYS", ""), getEnv("FACEIT_API_KEY", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_API_KEYS: %w", err)
	}
	if len(faceitKeys) == 0 {
		return Config{}, fmt.Errorf("FACEIT_API_KEYS or FACEIT_API_KEY is required")
	}

	requestTimeoutMS, err := getEnvAsInt("FACEIT_REQUEST_TIMEOUT_MS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_REQUEST_TIMEOUT_MS: %w", err)
	}
	if requestTimeoutMS == 0 {
		requestTimeoutMS, err = getEnvAsInt("REQUEST_TIMEOUT_MS", 8000)
		if err != nil {
			return Config{}, fmt.Errorf("parse REQUEST_TIMEOUT_MS: %w", err)
		}
	}
	if requestTimeoutMS <= 0 {
		return Config{}, fmt.Errorf("FACEIT_REQUEST_TIMEOUT_MS must be > 0")
	}

	maxRetries, err := getEnvAsInt("FACEIT_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_MAX_RETRIES: %w", err)
	}
	if maxRetries <= 0 {
		return Config{}, fmt.Errorf("FACEIT_MAX_RETRIES must be > 0")
	}

	cooldownMS, err := getEnvAsInt("FACEIT_COOLDOWN_MS", 6000)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_COOLDOWN_MS: %w", err)
	}
	if cooldownMS <= 0 {
		return Config{}, fmt.Errorf("FACEIT_COOLDOWN_MS must be > 0")
	}

	keyRotationEnabled, err := strconv.ParseBool(getEnv("FACEIT_KEY_ROTATION_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_KEY_ROTATION_ENABLED: %w", err)
	}

	batchGroupSize, err := getEnvAsInt("FACEIT_BATCH_GROUP_SIZE", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_BATCH_GROUP_SIZE: %w", err)
	}
	if batchGroupSize <= 0 {
		return Config{}, fmt.Errorf("FACEIT_BATCH_GROUP_SIZE must be > 0")
	}

	searchLimit, err := getEnvAsInt("FACEIT_SEARCH_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_SEARCH_LIMIT: %w", err)
	}
	if searchLimit <= 0 {
		return Config{}, fmt.Errorf("FACEIT_SEARCH_LIMIT must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FACEIT_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FACEIT_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("FACEIT_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FACEIT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	httpAddr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			httpAddr = ":" + port
		}
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "faceit-stats-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   httpAddr,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		DebugRoutesEnabled:         debugRoutesEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		FaceitBaseURL:              strings.TrimRight(strings.TrimSpace(getEnv("FACEIT_API_URL", "https://open.faceit.com/data/v4")), "/"),
		FaceitGame:                 strings.TrimSpace(getEnv("FACEIT_GAME", "cs2")),
		FaceitAPIKeys:              faceitKeys,
		FaceitRequestTimeout:       time.Duration(requestTimeoutMS) * time.Millisecond,
		FaceitMaxRetries:           maxRetries,
		FaceitKeyCooldown:          time.Duration(cooldownMS) * time.Millisecond,
		FaceitKeyRotationEnabled:   keyRotationEnabled,
		FaceitBatchGroupSize:       batchGroupSize,
		FaceitSearchLimit:          searchLimit,
		FaceitCircuitEnabled:       circuitEnabled,
		FaceitCircuitFailureCount:  circuitFailureCount,
		FaceitCircuitOpenTimeout:   circuitOpenTimeout,
		FaceitCircuitHalfOpenMax:   circuitHalfOpenMaxReq,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseAPIKeys accepts a JSON array or a comma separated list, then appends
// the single-key variable. Blank and duplicate keys are dropped.
func parseAPIKeys(multi, single string) ([]string, error) {
	var raw []string
	multi = strings.TrimSpace(multi)
	if strings.HasPrefix(multi, "[") {
		if err := sonic.UnmarshalString(multi, &raw); err != nil {
			return nil, err
		}
	} else {
		raw = splitCSV(multi)
	}
	raw = append(raw, single)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		key := strings.TrimSpace(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
