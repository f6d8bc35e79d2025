package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (TIENDA_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:3001" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL; leave empty to use the JSON file stores" flag:"database-url"`

	OfertasFile string `default:"ofertas.json" usage:"Offer table JSON file (file-store mode)" flag:"ofertas-file"`
	ComprasFile string `default:"compras.json" usage:"Purchase ledger JSON file (file-store mode)" flag:"compras-file"`

	Catalog   CatalogConfig
	Translate TranslateConfig
	Checkout  CheckoutConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// CatalogConfig points at the external product feed.
type CatalogConfig struct {
	URL     string        `default:"https://fakestoreapi.com/products" usage:"Product feed URL"`
	Timeout time.Duration `default:"15s" usage:"Product feed request timeout"`
}

// TranslateConfig controls the machine-translation collaborator.
type TranslateConfig struct {
	Enabled  bool          `default:"true" usage:"Translate catalog text fields"`
	Endpoint string        `default:"" usage:"Override translation endpoint (defaults to the public gtx endpoint)"`
	Source   string        `default:"en" usage:"Source language code"`
	Target   string        `default:"es" usage:"Target language code"`
	Timeout  time.Duration `default:"10s" usage:"Per-call translation timeout"`
}

// CheckoutConfig controls purchase validation behaviour.
type CheckoutConfig struct {
	// TrustClientPrices disables server-side price re-resolution and
	// accepts submitted prices verbatim, as the original server did.
	TrustClientPrices bool `default:"false" usage:"Trust client-submitted prices at checkout" flag:"trust-client-prices"`
}

// RedisConfig enables the Redis-backed cart store when Addr is set;
// otherwise carts live in process memory.
type RedisConfig struct {
	Addr    string        `default:"" usage:"Redis address for the cart store (host:port)"`
	CartTTL time.Duration `default:"168h" usage:"Idle cart retention" flag:"cart-ttl"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "TIENDA",
		Files:     []string{"config.yaml", "/etc/tienda/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and
// PORT to the TIENDA_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.Redis.Addr == "" {
		if v := os.Getenv("REDIS_ADDR"); v != "" {
			c.Redis.Addr = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:3001" {
		c.Addr = "0.0.0.0:" + port
	}
}
