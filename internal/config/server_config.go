package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ModuleName of this repository.
const ModuleName = "github.com/Keeper-Wallet/provider-keeper"

// Build arguments, set via ldflags.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}

// Server is the full CLI/demo configuration, resolved from the environment.
// The provider library itself takes explicit options; this only feeds cmd/.
type Server struct {
	BridgeURL    string        `json:"bridgeUrl"`
	NodeURL      string        `json:"nodeUrl"`
	NetworkByte  string        `json:"networkByte"`
	ListenAddr   string        `json:"listenAddr"`
	PollInterval time.Duration `json:"pollInterval"`
	MaxRetries   int           `json:"maxRetries"`
	LogLevel     string        `json:"logLevel"`
}

// NetworkByteValue is the numeric network byte of the configured network
// code (first character).
func (s Server) NetworkByteValue() byte {
	if s.NetworkByte == "" {
		return 'W'
	}
	return s.NetworkByte[0]
}

// DefaultServiceConfigFromEnv returns the config filled from PROVIDER_*
// environment variables with sane defaults.
func DefaultServiceConfigFromEnv() Server {
	v := viper.New()
	v.SetEnvPrefix("PROVIDER")
	v.AutomaticEnv()

	v.SetDefault("BRIDGE_URL", "http://127.0.0.1:14420")
	v.SetDefault("NODE_URL", "https://nodes.wavesnodes.com")
	v.SetDefault("NETWORK_BYTE", "W")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("POLL_INTERVAL", "100ms")
	v.SetDefault("MAX_RETRIES", 10)
	v.SetDefault("LOG_LEVEL", "info")

	return Server{
		BridgeURL:    v.GetString("BRIDGE_URL"),
		NodeURL:      v.GetString("NODE_URL"),
		NetworkByte:  v.GetString("NETWORK_BYTE"),
		ListenAddr:   v.GetString("LISTEN_ADDR"),
		PollInterval: v.GetDuration("POLL_INTERVAL"),
		MaxRetries:   v.GetInt("MAX_RETRIES"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}
}
