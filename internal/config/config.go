// README: Config loader with env defaults for HTTP, Redis, model providers, stage routing and pricing styles.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tripmind/internal/ai"
	"tripmind/internal/types"
)

// Stage names used in TRIPMIND_<STAGE>_* variables.
const (
	StageExtract      = "EXTRACT"
	StageDestinations = "DESTINATIONS"
	StageItinerary    = "ITINERARY"
	StageBaseline     = "BASELINE"
	StageSummary      = "SUMMARY"
)

const defaultStyles = "Relaxed:relaxed:0.85,Balanced:balanced:1.0,Packed:packed:1.2"

type ProviderConfig struct {
	APIKey  string
	URL     string
	Timeout time.Duration
	RPS     float64
}

type RoutesConfig struct {
	Extract      ai.Route
	Destinations ai.Route
	Itinerary    ai.Route
	Baseline     ai.Route
	Summary      ai.Route
}

type Config struct {
	Env  string
	HTTP struct {
		Addr        string
		PlanTimeout time.Duration
		// CORSOrigins lists browser origins allowed to call the API; empty disables CORS.
		CORSOrigins []string
	}
	Redis struct {
		Addr string
	}
	RateLimit struct {
		Limit  int
		Window time.Duration
	}
	Providers struct {
		Groq   ProviderConfig
		Cohere ProviderConfig
		Gemini ProviderConfig
	}
	Routes   RoutesConfig
	Planning struct {
		MaxDestinations       int
		ItineraryDestinations int
		Styles                types.StyleSet
		ParallelItineraries   bool
		Currency              string
	}
	Maps struct {
		APIKey string
		Enrich bool
		Region string
	}
}

// defaultRoutes mirrors the provider split the pipeline was tuned with.
var defaultRoutes = RoutesConfig{
	Extract:      ai.Route{Provider: ai.Cohere, Model: "command-r-08-2024", Temperature: 0.7, MaxTokens: 500},
	Destinations: ai.Route{Provider: ai.Groq, Model: "qwen/qwen3-32b", Temperature: 0.3, MaxTokens: 1200},
	Itinerary:    ai.Route{Provider: ai.Groq, Model: "llama-3.3-70b-versatile", Temperature: 0.3, MaxTokens: 1200},
	Baseline:     ai.Route{Provider: ai.Groq, Model: "qwen/qwen3-32b", Temperature: 0.3, MaxTokens: 1200},
	Summary:      ai.Route{Provider: ai.Cohere, Model: "command-r-plus-08-2024", Temperature: 0.7, MaxTokens: 500},
}

// Load reads the process environment. Credentials are not validated here; a
// missing key surfaces on the first call to that provider.
func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("APP_ENV", "prod")
	cfg.HTTP.Addr = envOrDefault("TRIPMIND_HTTP_ADDR", ":8080")
	cfg.HTTP.PlanTimeout = envOrDefaultDuration("TRIPMIND_PLAN_TIMEOUT", 3*time.Minute)
	cfg.HTTP.CORSOrigins = splitList(os.Getenv("TRIPMIND_CORS_ORIGINS"))
	cfg.Redis.Addr = os.Getenv("TRIPMIND_REDIS_ADDR")
	cfg.RateLimit.Limit = envOrDefaultInt("TRIPMIND_RATE_LIMIT", 10)
	cfg.RateLimit.Window = envOrDefaultDuration("TRIPMIND_RATE_WINDOW", time.Minute)

	cfg.Providers.Groq = ProviderConfig{
		APIKey:  os.Getenv("GROQ_API_KEY"),
		URL:     envOrDefault("TRIPMIND_GROQ_URL", ai.DefaultGroqURL),
		Timeout: envOrDefaultDuration("TRIPMIND_GROQ_TIMEOUT", 30*time.Second),
		RPS:     envOrDefaultFloat("TRIPMIND_GROQ_RPS", 0),
	}
	cfg.Providers.Cohere = ProviderConfig{
		APIKey:  os.Getenv("COHERE_API_KEY"),
		URL:     envOrDefault("TRIPMIND_COHERE_URL", ai.DefaultCohereURL),
		Timeout: envOrDefaultDuration("TRIPMIND_COHERE_TIMEOUT", 60*time.Second),
		RPS:     envOrDefaultFloat("TRIPMIND_COHERE_RPS", 0),
	}
	cfg.Providers.Gemini = ProviderConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Timeout: envOrDefaultDuration("TRIPMIND_GEMINI_TIMEOUT", 60*time.Second),
		RPS:     envOrDefaultFloat("TRIPMIND_GEMINI_RPS", 0),
	}

	cfg.Routes = RoutesConfig{
		Extract:      routeFromEnv(StageExtract, defaultRoutes.Extract),
		Destinations: routeFromEnv(StageDestinations, defaultRoutes.Destinations),
		Itinerary:    routeFromEnv(StageItinerary, defaultRoutes.Itinerary),
		Baseline:     routeFromEnv(StageBaseline, defaultRoutes.Baseline),
		Summary:      routeFromEnv(StageSummary, defaultRoutes.Summary),
	}
	for stage, r := range cfg.Routes.byStage() {
		if !knownProvider(r.Provider) {
			return Config{}, fmt.Errorf("config: TRIPMIND_%s_PROVIDER: %w: %q", stage, ai.ErrUnknownProvider, r.Provider)
		}
	}

	cfg.Planning.MaxDestinations = envOrDefaultInt("TRIPMIND_MAX_DESTINATIONS", 5)
	cfg.Planning.ItineraryDestinations = envOrDefaultInt("TRIPMIND_ITINERARY_DESTINATIONS", 3)
	cfg.Planning.ParallelItineraries = envOrDefaultBool("TRIPMIND_PARALLEL_ITINERARIES", true)
	cfg.Planning.Currency = envOrDefault("TRIPMIND_CURRENCY_SYMBOL", types.DefaultCurrency)
	styles, err := types.ParseStyles(envOrDefault("TRIPMIND_STYLES", defaultStyles))
	if err != nil {
		return Config{}, fmt.Errorf("config: TRIPMIND_STYLES: %w", err)
	}
	cfg.Planning.Styles = styles

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Maps.Enrich = envOrDefaultBool("TRIPMIND_ENRICH_DESTINATIONS", false)
	cfg.Maps.Region = envOrDefault("TRIPMIND_MAPS_REGION", "in")
	return cfg, nil
}

func (r RoutesConfig) byStage() map[string]ai.Route {
	return map[string]ai.Route{
		StageExtract:      r.Extract,
		StageDestinations: r.Destinations,
		StageItinerary:    r.Itinerary,
		StageBaseline:     r.Baseline,
		StageSummary:      r.Summary,
	}
}

func knownProvider(name string) bool {
	switch name {
	case ai.Groq, ai.Cohere, ai.Gemini:
		return true
	}
	return false
}

func routeFromEnv(stage string, def ai.Route) ai.Route {
	prefix := "TRIPMIND_" + stage + "_"
	return ai.Route{
		Provider:    strings.ToLower(envOrDefault(prefix+"PROVIDER", def.Provider)),
		Model:       envOrDefault(prefix+"MODEL", def.Model),
		Temperature: envOrDefaultFloat(prefix+"TEMPERATURE", def.Temperature),
		MaxTokens:   envOrDefaultInt(prefix+"MAX_TOKENS", def.MaxTokens),
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
