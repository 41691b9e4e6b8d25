package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmiddleware "stayflow/internal/middleware"
	httprouters "stayflow/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	secret  []byte
}

func New(log *slog.Logger, jwtSecret, sessionKey string, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionKey))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz registration failed", slog.String("error", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
		secret:  []byte(jwtSecret),
	}
}

func (s *Server) MustRun() {
	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "httpapp.Server.Start"

	s.log.Info("starting http server", slog.String("addr", s.host+":"+s.port))

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "httpapp.Server.Stop"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("stopping http server")

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session required"})
		}

		userID, ok := sess.Values["user_id"].(string)
		if !ok || userID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		parsedUUID, err := uuid.Parse(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user ID format"})
		}

		isAdmin, err := s.routers.UserService.IsAdmin(c.Request().Context(), parsedUUID)
		if err != nil || !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	api := s.e.Group("/api/v1")
	{
		api.POST("/register", s.routers.Register)
		api.POST("/login", s.routers.Login)
		api.POST("/refresh", s.routers.Refresh)

		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}

		s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		swagger := s.e.Group("/swag")
		{
			swagger.GET("/swagger/*", echoSwagger.WrapHandler)
		}

		auth := appmiddleware.JWTAuth(s.secret)

		authGroup := api.Group("", auth)
		{
			authGroup.POST("/logout", s.routers.Logout)
			authGroup.GET("/me", s.routers.Me)
		}

		propertyGroup := api.Group("/properties", auth)
		{
			propertyGroup.POST("", s.routers.CreateProperty)
			propertyGroup.GET("", s.routers.ListProperties)
			propertyGroup.GET("/:id", s.routers.GetProperty)
			propertyGroup.PUT("/:id", s.routers.UpdateProperty)
			propertyGroup.DELETE("/:id", s.routers.DeleteProperty, s.adminOnlyMiddleware)
			propertyGroup.POST("/:id/rooms", s.routers.CreateRoom)
			propertyGroup.GET("/:id/rooms", s.routers.ListRooms)
		}

		roomGroup := api.Group("/rooms", auth)
		{
			roomGroup.PUT("/:room_id", s.routers.UpdateRoom)
			roomGroup.DELETE("/:room_id", s.routers.DeleteRoom)
			roomGroup.GET("/:room_id/availability", s.routers.GetAvailability)
		}

		reservationGroup := api.Group("/reservations", auth)
		{
			reservationGroup.POST("", s.routers.CreateReservation)
			reservationGroup.GET("", s.routers.ListReservations)
			reservationGroup.GET("/:id", s.routers.GetReservation)
			reservationGroup.PATCH("/:id/status", s.routers.UpdateReservationStatus)
			reservationGroup.POST("/:id/guests", s.routers.AddGuest)
			reservationGroup.GET("/:id/guests", s.routers.ListGuests)
		}

		api.DELETE("/guests/:guest_id", s.routers.RemoveGuest, auth)

		paymentGroup := api.Group("/payments", auth)
		{
			paymentGroup.POST("", s.routers.RecordPayment)
			paymentGroup.GET("", s.routers.ListPayments)
			paymentGroup.PATCH("/:id/capture", s.routers.CapturePayment)
			paymentGroup.PATCH("/:id/refund", s.routers.RefundPayment)
		}

		channelGroup := api.Group("/channels", auth)
		{
			channelGroup.POST("", s.routers.CreateChannel)
			channelGroup.GET("", s.routers.ListChannels)
			channelGroup.GET("/:id", s.routers.GetChannel)
			channelGroup.PUT("/:id", s.routers.UpdateChannel)
			channelGroup.DELETE("/:id", s.routers.DeleteChannel, s.adminOnlyMiddleware)
		}

		availabilityGroup := api.Group("/availability", auth)
		{
			availabilityGroup.PUT("", s.routers.UpsertAvailability)
			availabilityGroup.POST("/bulk", s.routers.BulkAvailability)
		}
	}
}
