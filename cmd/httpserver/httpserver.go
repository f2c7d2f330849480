// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/mini-bank/internal/accountdelivery"
	"github.com/go-petr/mini-bank/internal/accountrepo"
	"github.com/go-petr/mini-bank/internal/accountservice"
	"github.com/go-petr/mini-bank/internal/bank"
	"github.com/go-petr/mini-bank/internal/eventdelivery"
	"github.com/go-petr/mini-bank/internal/middleware"
	"github.com/go-petr/mini-bank/internal/notifybus"
	"github.com/go-petr/mini-bank/internal/transferdelivery"
	"github.com/go-petr/mini-bank/internal/transferservice"
	"github.com/go-petr/mini-bank/internal/userdelivery"
	"github.com/go-petr/mini-bank/internal/userrepo"
	"github.com/go-petr/mini-bank/internal/userservice"
	"github.com/go-petr/mini-bank/pkg/configpkg"
	"github.com/go-petr/mini-bank/pkg/tokenpkg"
	"github.com/go-petr/mini-bank/pkg/web"
)

// Server holds the bank, its notification bus, handlers router and configuration.
type Server struct {
	Engine    *gin.Engine
	Config    configpkg.Config
	Bank      *bank.Bank
	Bus       *notifybus.Bus
	Analytics *notifybus.AnalyticsSubscriber
	Email     *notifybus.EmailSubscriber
	Registry  *prometheus.Registry

	closers []io.Closer
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the event stream writers.
func (s *Server) Close() error {
	var errs []error

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	server := &Server{
		Config:    config,
		Bus:       notifybus.New(),
		Analytics: notifybus.NewAnalyticsSubscriber(logger),
		Email:     notifybus.NewEmailSubscriber(logger),
		Registry:  prometheus.NewRegistry(),
	}

	server.Registry.MustRegister(collectors.NewGoCollector())

	server.Bus.Subscribe(notifybus.NewLogSubscriber(logger))
	server.Bus.Subscribe(server.Email)
	server.Bus.Subscribe(server.Analytics)
	server.Bus.Subscribe(notifybus.NewMetricsSubscriber(server.Registry))

	if brokers := config.Brokers(); len(brokers) > 0 {
		writer := notifybus.NewKafkaWriter(brokers, config.KafkaTopic)
		server.Bus.Subscribe(notifybus.NewKafkaSubscriber(writer, config.KafkaWriteTimeout))
		server.closers = append(server.closers, writer)
	}

	server.Bank = bank.New(server.Bus, bank.NewLogRecorder(logger))

	userRepo := userrepo.NewRepoMem()
	accountRepo := accountrepo.NewRepoMem()

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, server.Bank)
	transferService := transferservice.New(accountRepo, server.Bank)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	eventHandler := eventdelivery.NewHandler(server.Analytics, server.Bus)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(server.Registry))
	engine.Use(gin.Recovery())

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(server.Registry, promhttp.HandlerOpts{})))

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/analytics", eventHandler.Analytics)

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts/:id/transactions", accountHandler.History)
	authRoutes.POST("/accounts/:id/deposits", accountHandler.Deposit)
	authRoutes.POST("/accounts/:id/withdrawals", accountHandler.Withdraw)

	authRoutes.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accountkind", accountdelivery.ValidAccountKind); err != nil {
			return nil, errors.New("cannot register accountkind validator")
		}

		if err := v.RegisterValidation("decimal", web.ValidDecimal); err != nil {
			return nil, errors.New("cannot register decimal validator")
		}
	}

	server.Engine = engine

	return server, nil
}
