// Package demo runs a local signing playground: a small HTTP surface over
// one provider instance, useful for poking the wallet bridge by hand.
package demo

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Keeper-Wallet/provider-keeper/internal/config"
	"github.com/Keeper-Wallet/provider-keeper/keeper"
	"github.com/Keeper-Wallet/provider-keeper/provider"
	"github.com/Keeper-Wallet/provider-keeper/signer"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Runs the local signing playground server",
		Run: func(_ *cobra.Command, _ []string) {
			runServer(config.DefaultServiceConfigFromEnv())
		},
	}
}

func runServer(cfg config.Server) {
	keeperProvider := provider.New(provider.Config{
		Locator:      keeper.NewHTTPLocator(cfg.BridgeURL, nil),
		PollInterval: cfg.PollInterval,
		MaxRetries:   cfg.MaxRetries,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	registerRoutes(e, keeperProvider, cfg)

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("bridge", cfg.BridgeURL).
		Msg("Starting playground server")

	if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Playground server failed")
	}
}

func registerRoutes(e *echo.Echo, p *provider.Keeper, cfg config.Server) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, playgroundPage)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.POST("/connect", func(c echo.Context) error {
		var req struct {
			NetworkByte string `json:"networkByte"`
			NodeURL     string `json:"nodeUrl"`
		}
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		networkByte := cfg.NetworkByteValue()
		if req.NetworkByte != "" {
			networkByte = req.NetworkByte[0]
		}
		nodeURL := cfg.NodeURL
		if req.NodeURL != "" {
			nodeURL = req.NodeURL
		}

		err := p.Connect(c.Request().Context(), signer.ConnectOptions{
			NetworkByte: networkByte,
			NodeURL:     nodeURL,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	})

	v1.POST("/login", func(c echo.Context) error {
		user, err := p.Login(c.Request().Context())
		if err != nil {
			return providerHTTPError(err)
		}
		return c.JSON(http.StatusOK, user)
	})

	v1.POST("/logout", func(c echo.Context) error {
		if err := p.Logout(c.Request().Context()); err != nil {
			return providerHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	v1.POST("/sign", func(c echo.Context) error {
		var raws []json.RawMessage
		if err := c.Bind(&raws); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		txs := make([]signer.Tx, len(raws))
		for i, raw := range raws {
			tx, err := signer.UnmarshalTx(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			txs[i] = tx
		}

		signed, err := p.Sign(c.Request().Context(), txs)
		if err != nil {
			return providerHTTPError(err)
		}
		return c.JSON(http.StatusOK, signed)
	})

	v1.POST("/sign-message", func(c echo.Context) error {
		var req struct {
			Message string `json:"message"`
		}
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		signature, err := p.SignMessage(c.Request().Context(), req.Message)
		if err != nil {
			return providerHTTPError(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"signature": signature})
	})

	v1.POST("/sign-typed-data", func(c echo.Context) error {
		var data []signer.TypedData
		if err := c.Bind(&data); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		signature, err := p.SignTypedData(c.Request().Context(), data)
		if err != nil {
			return providerHTTPError(err)
		}
		return c.JSON(http.StatusOK, map[string]string{"signature": signature})
	})
}

// providerHTTPError maps the provider taxonomy onto HTTP statuses.
func providerHTTPError(err error) *echo.HTTPError {
	switch {
	case provider.IsCode(err, provider.ErrCodeNotInstalled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case provider.IsCode(err, provider.ErrCodeNotConnected),
		provider.IsCode(err, provider.ErrCodeNetworkMismatch):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}

const playgroundPage = `<!doctype html>
<html>
<head><title>provider-keeper playground</title></head>
<body>
<h1>provider-keeper playground</h1>
<p>POST /api/v1/connect, /login, /logout, /sign, /sign-message,
/sign-typed-data. Metrics at /metrics.</p>
</body>
</html>`
