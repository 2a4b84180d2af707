package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muscleuplabs/muscleup/internal/clock"
	"github.com/muscleuplabs/muscleup/internal/config"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	plandomain "github.com/muscleuplabs/muscleup/internal/plan/domain"
	saledomain "github.com/muscleuplabs/muscleup/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	engine *gin.Engine
	log    *zap.Logger
	addr   string

	clock clock.Clock
	loc   *time.Location

	saleSvc    saledomain.Service
	planRepo   plandomain.Repository
	couponRepo coupondomain.Repository
}

type ServerParam struct {
	fx.In

	Engine *gin.Engine
	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Loc    *time.Location

	SaleSvc    saledomain.Service
	PlanRepo   plandomain.Repository
	CouponRepo coupondomain.Repository
}

func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		engine: p.Engine,
		log:    p.Log.Named("server"),
		addr:   p.Config.Server.Addr,

		clock: p.Clock,
		loc:   p.Loc,

		saleSvc:    p.SaleSvc,
		planRepo:   p.PlanRepo,
		couponRepo: p.CouponRepo,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/plans", s.ListPlans)
	api.POST("/coupons/preview", s.PreviewCoupon)
	api.POST("/sales/quote", OperatorOptional(), s.QuoteSale)
	api.POST("/sales", OperatorRequired(), s.CommitSale)
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
