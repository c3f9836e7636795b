package handler

import (
	"net/http"

	"keyquest/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🗝️")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)

		a := groupAuth{cfg.Container}
		routesAPIv1.POST("/auth/token", a.Token)

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.

		routesAPIv1Rewards := routesAPIv1.Group("/rewards")
		{
			rw := groupReward{cfg.Container}
			routesAPIv1Rewards.GET("/keys", rw.GetKeys)
			routesAPIv1Rewards.POST("/keys", rw.AddKeys)
			routesAPIv1Rewards.GET("/lootboxes", rw.GetLootBoxes)
			routesAPIv1Rewards.POST("/lootboxes/:lootBoxId/open", rw.OpenLootBox)
			routesAPIv1Rewards.GET("/user-rewards", rw.GetUserRewards)
			routesAPIv1Rewards.GET("/active-rewards", rw.GetActiveRewards)
			routesAPIv1Rewards.PUT("/user-rewards/:rewardId/activate", rw.ActivateReward)
		}
	}

	return r, nil
}
