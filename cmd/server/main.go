package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"visit-planner-service/internal/adapters/cache"
	"visit-planner-service/internal/adapters/geocode"
	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/api"
	"visit-planner-service/internal/config"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/platform/db"
	"visit-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis, Nominatim) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	// The Nominatim client consults a persistent cache first so repeated
	// lookups never hit the rate-limited public API.
	geocodeCache := cache.NewSQLGeocodeCache(database)
	geocoder := geocode.NewNominatimGeocoder(cfg.Geocoder, geocodeCache)

	// The plan cache is optional: without redis, every request recomputes.
	var planCache *cache.RedisPlanCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		planCache = cache.NewRedisPlanCache(client)
	} else {
		log.Println("REDIS_ADDR not set; plan caching disabled")
	}

	deps := api.Deps{
		Patients:  repositories.NewPostgresPatientRepository(database),
		Providers: repositories.NewPostgresProviderRepository(database),
		Settings:  repositories.NewPostgresSettingsRepository(database),
		Geocoder:  geocoder,
		Estimator: services.TravelEstimator{
			SpeedKmh:          cfg.Planner.SpeedKmh,
			DetourFactor:      cfg.Planner.DetourFactor,
			StopBufferMinutes: cfg.Planner.StopBufferMinutes,
			UnknownHopMinutes: cfg.Planner.UnknownHopMinutes,
		},
		Radius: domain.RadiusLimits{
			BikeKm: cfg.Planner.RadiusBikeKm,
			WalkKm: cfg.Planner.RadiusWalkKm,
		},
		DefaultHome: domain.Coordinates{
			Lat: cfg.Planner.HomeLat,
			Lon: cfg.Planner.HomeLon,
		},
		DefaultDailyMinutes: cfg.Planner.DefaultDailyMinutes,
		PlanCacheTTL:        cfg.Redis.PlanTTL,
	}
	if planCache != nil {
		deps.PlanCache = planCache
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=%s", cfg.Server.Addr())
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	log.Fatal(srv.ListenAndServe())
}
