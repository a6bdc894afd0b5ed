package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the risk service configuration.
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	NATS       NATSConfig
	Simulation SimulationConfig
	LogLevel   string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// RedisConfig holds recommendation-store settings. An empty Addr disables
// the store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NATSConfig holds alert-publisher settings. An empty URL disables
// publishing.
type NATSConfig struct {
	URL      string
	ClientID string
}

// SimulationConfig tunes the Monte Carlo engine.
type SimulationConfig struct {
	NumSimulations  int
	BulkSimulations int
	Workers         int
	IncludePending  bool
}

// Load reads configuration from the given file (optional) and RISK_*
// environment variables, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8090")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "15m")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.client_id", "risk-server")
	v.SetDefault("simulation.num_simulations", 10000)
	v.SetDefault("simulation.bulk_simulations", 5000)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.include_pending", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		NATS: NATSConfig{
			URL:      v.GetString("nats.url"),
			ClientID: v.GetString("nats.client_id"),
		},
		Simulation: SimulationConfig{
			NumSimulations:  v.GetInt("simulation.num_simulations"),
			BulkSimulations: v.GetInt("simulation.bulk_simulations"),
			Workers:         v.GetInt("simulation.workers"),
			IncludePending:  v.GetBool("simulation.include_pending"),
		},
		LogLevel: v.GetString("log_level"),
	}

	return cfg, nil
}
