package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swiftprep/swiftprep/internal/auth"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	authoauth "github.com/swiftprep/swiftprep/internal/auth/oauth"
	"github.com/swiftprep/swiftprep/internal/auth/session"
	"github.com/swiftprep/swiftprep/internal/catalog"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	"github.com/swiftprep/swiftprep/internal/config"
	"github.com/swiftprep/swiftprep/internal/discussion"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
	"github.com/swiftprep/swiftprep/internal/observability"
	obsmiddleware "github.com/swiftprep/swiftprep/internal/observability/logger"
	obsmetrics "github.com/swiftprep/swiftprep/internal/observability/metrics"
	obstracing "github.com/swiftprep/swiftprep/internal/observability/tracing"
	"github.com/swiftprep/swiftprep/internal/playback"
	playbackdomain "github.com/swiftprep/swiftprep/internal/playback/domain"
	"github.com/swiftprep/swiftprep/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	catalog.Module,
	discussion.Module,
	playback.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.SSLRedirect {
		r.Use(SSLRedirect())
	}
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	log            *zap.Logger
	cfg            config.Config
	catalogCfg     *config.CatalogConfigHolder
	db             *gorm.DB
	authsvc        authdomain.Service
	oauthsvc       authoauth.Service
	sessions       *session.Manager
	genID          *snowflake.Node
	catalogSvc     catalogdomain.Service
	discussionSvc  discussiondomain.Service
	playbackSvc    playbackdomain.Service
	obsMetrics     *obsmetrics.Metrics
	commentLimiter *ratelimit.CommentLimiter
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Log            *zap.Logger
	Cfg            config.Config
	CatalogCfg     *config.CatalogConfigHolder
	DB             *gorm.DB
	Authsvc        authdomain.Service
	OAuthsvc       authoauth.Service
	Sessions       *session.Manager
	GenID          *snowflake.Node
	CatalogSvc     catalogdomain.Service
	DiscussionSvc  discussiondomain.Service
	PlaybackSvc    playbackdomain.Service
	ObsMetrics     *obsmetrics.Metrics         `optional:"true"`
	CommentLimiter *ratelimit.CommentLimiter   `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		log:            p.Log.Named("http.server"),
		cfg:            p.Cfg,
		catalogCfg:     p.CatalogCfg,
		db:             p.DB,
		authsvc:        p.Authsvc,
		oauthsvc:       p.OAuthsvc,
		sessions:       p.Sessions,
		genID:          p.GenID,
		catalogSvc:     p.CatalogSvc,
		discussionSvc:  p.DiscussionSvc,
		playbackSvc:    p.PlaybackSvc,
		obsMetrics:     p.ObsMetrics,
		commentLimiter: p.CommentLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerCatalogRoutes()
	svc.registerVideoRoutes()
	svc.registerUIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	s.engine.GET("/google", s.GoogleLogin)
	s.engine.GET("/google/redirect", s.GoogleCallback)
	s.engine.GET("/logout", s.Logout)
	s.engine.GET("/me", s.WebAuthRequired(), s.Me)
}

func (s *Server) registerCatalogRoutes() {
	s.engine.GET("/filter", s.FilterOptions)
	s.engine.POST("/filter", s.ListVideos)
}

func (s *Server) registerVideoRoutes() {
	view := s.engine.Group("/view", s.WebAuthRequired())

	view.GET("/:id", s.WatchVideo)
	view.GET("/:id/comment", s.CommentThread)

	// gin cannot mix static and wildcard children under POST /view/:id,
	// so "comment", "play" and "pause" share the comment wildcard and
	// are told apart inside the handler.
	view.POST("/:id/:commentId", s.VideoAction)
	view.POST("/:id/:commentId/reply", s.CreateReply)

	view.DELETE("/:id/:commentId", s.DeleteComment)
	view.DELETE("/:id/:commentId/:replyId", s.DeleteReply)
}

func (s *Server) registerUIRoutes() {
	s.engine.GET("/", serveIndex)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		// static assets
		if fileExists("./public", c.Request.URL.Path) {
			c.File("./public" + c.Request.URL.Path)
			return
		}

		c.File("./public/index.html")
	})
}
