package app

import (
	"context"
	"log/slog"

	httpapp "stayflow/internal/app/http"
	"stayflow/internal/config"
	"stayflow/internal/repository"
	availabilityservice "stayflow/internal/services/availability_service"
	paymentservice "stayflow/internal/services/payment_service"
	propertyservice "stayflow/internal/services/property_service"
	reservationservice "stayflow/internal/services/reservation_service"
	channelservice "stayflow/internal/services/sales_channel_service"
	tokenservice "stayflow/internal/services/token_service"
	userservice "stayflow/internal/services/user_service"
	redisapp "stayflow/internal/storage/redis"
	httprouters "stayflow/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Repo       *repository.Repository
	Redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	repo, err := repository.NewRepository(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	tokenRepo := repository.NewRedisTokenRepo(redisClient)
	tokens := tokenservice.NewTokenService(tokenRepo, repo.User, []byte(cfg.JWTSecret), cfg.TokenTTL, cfg.RefreshTTL)

	users := userservice.NewUserService(log, repo.User, tokens)
	properties := propertyservice.NewPropertyService(log, repo.Property)
	reservations := reservationservice.NewReservationService(log, repo.Reservation, repo.Property)
	payments := paymentservice.NewPaymentService(log, repo.Payment, repo.Reservation)
	channels := channelservice.NewSalesChannelService(log, repo.SalesChannel)
	availability := availabilityservice.NewAvailabilityService(log, repo.Availability, repo.Property)

	routers := httprouters.NewRouter(
		log,
		users,
		tokens,
		properties,
		reservations,
		payments,
		channels,
		availability,
	)

	server := httpapp.New(log, cfg.JWTSecret, cfg.SessionKey, cfg.HTTP.Host, cfg.HTTP.Port, routers)

	return &App{
		HTTPServer: server,
		Repo:       repo,
		Redis:      redisClient,
	}
}

func (a *App) Stop() error {
	if err := a.HTTPServer.Stop(); err != nil {
		return err
	}

	a.Repo.Close()

	return a.Redis.Close()
}
