package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrocrm/config"
	"agrocrm/database"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/auth"
	"agrocrm/pkg/metrics"
	"agrocrm/pkg/middleware"
	"agrocrm/pkg/realtime"
	"agrocrm/pkg/storage"
	"agrocrm/pkg/weather"
	"agrocrm/router"

	// Activity + dashboard
	actCtrlImp "agrocrm/pkg/activity/controllerImp"
	actRepoImp "agrocrm/pkg/activity/repositoryImp"

	// Auth + Health
	authCtrlImp "agrocrm/pkg/auth/controllerImp"
	healthCtrlImp "agrocrm/pkg/health/controllerImp"

	// Spray
	sprayCtrlImp "agrocrm/pkg/spray/controllerImp"
	sprayRepoImp "agrocrm/pkg/spray/repositoryImp"
	spraySvcImp "agrocrm/pkg/spray/serviceImp"

	// Leads
	leadCtrlImp "agrocrm/pkg/lead/controllerImp"
	leadRepoImp "agrocrm/pkg/lead/repositoryImp"
	leadSvcImp "agrocrm/pkg/lead/serviceImp"

	// Appointments
	apptCtrlImp "agrocrm/pkg/appointment/controllerImp"
	apptRepoImp "agrocrm/pkg/appointment/repositoryImp"
	apptSvcImp "agrocrm/pkg/appointment/serviceImp"

	// Drone
	droneCtrlImp "agrocrm/pkg/drone/controllerImp"
	droneRepoImp "agrocrm/pkg/drone/repositoryImp"
	droneSvcImp "agrocrm/pkg/drone/serviceImp"

	weatherCtrlImp "agrocrm/pkg/weather/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	loc := cfg.Location()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	metrics.Init(sqlDB)

	// 3) Shared infrastructure
	broker := realtime.NewBroker(0)
	acts := actRepoImp.New(db)
	rec := activity.NewRecorder(acts)
	tokens := auth.NewTokens(cfg.AuthJWTSecret, cfg.AuthTokenTTL)

	store, err := storage.NewDisk(cfg.StorageDir, cfg.FilesURL())
	if err != nil {
		log.Fatalf("[storage] %v", err)
	}

	// 4) Weather (mock fallback)
	var wc weather.Client
	weatherMode := "mock"
	if cfg.WeatherAPIKey != "" {
		wc = weather.NewOpenWeather(cfg.WeatherEndpoint, cfg.WeatherAPIKey, cfg.WeatherLang)
		weatherMode = "openweather"
	} else {
		wc = weather.NewMock()
	}
	th, err := weather.LoadThresholds(cfg.WeatherRulesPath)
	if err != nil {
		log.Printf("[weather] rules warn, using defaults: %v", err)
		th = weather.DefaultThresholds()
	}

	// 5) Repos/Services
	sprayRepo := sprayRepoImp.New(db)
	droneRepo := droneRepoImp.New(db)
	sprays := spraySvcImp.NewSprayService(sprayRepo, broker, rec)
	leads := leadSvcImp.NewLeadService(leadRepoImp.New(db), broker, rec)
	appts := apptSvcImp.NewAppointmentService(apptRepoImp.New(db), broker, rec)
	flights := droneSvcImp.New(droneRepo, store,
		droneSvcImp.WithEvents(broker),
		droneSvcImp.WithActivity(rec),
		droneSvcImp.WithMaxUploadMB(cfg.MaxUploadMB),
	)

	authMode := "dev"
	if tokens.Enabled() {
		authMode = "jwt"
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			log.Printf("[http] %s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.New(e, router.Handlers{
		Identity:     middleware.Identity(tokens),
		Health:       healthCtrlImp.NewHealthCtrl(db, weatherMode, authMode),
		Auth:         authCtrlImp.NewAuthController(tokens),
		Realtime:     realtime.NewStreamHandler(broker),
		Weather:      weatherCtrlImp.New(weather.NewService(wc, th), loc),
		Dashboard:    actCtrlImp.NewDashboard(acts, leads, appts, sprayRepo, droneRepo, loc),
		Spray:        sprayCtrlImp.New(sprays),
		Leads:        leadCtrlImp.New(leads),
		Appointments: apptCtrlImp.New(appts, loc),
		Drone:        droneCtrlImp.New(flights, loc),
		FilesDir:     cfg.StorageDir,
		FilesPath:    cfg.FilesPath,
	})

	// open /realtime streams return once their channel closes
	e.Server.RegisterOnShutdown(broker.Close)

	// 7) Start
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
	_ = sqlDB.Close()
}
