package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/poofware/equity-registry/internal/app"
	"github.com/poofware/equity-registry/internal/config"
	"github.com/poofware/equity-registry/internal/controllers"
	"github.com/poofware/equity-registry/internal/middleware"
	"github.com/poofware/equity-registry/internal/routes"
	"github.com/poofware/equity-registry/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool, store, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	if cfg.Env == "development" {
		if err := app.SeedDemoData(context.Background(), application.Store); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application)
	registryCtrl := controllers.NewRegistryController(application.Registry)

	// 4) Router. Mutations need a caller identity and are rate limited;
	//    reads stay open.
	protected := func(operation string, h http.HandlerFunc) http.Handler {
		return middleware.CallerIdentity(
			middleware.RateLimit(application.RateLimiter, operation)(h),
		)
	}

	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Accounts, protected("createAccount", registryCtrl.CreateAccount)).Methods(http.MethodPost)
	router.HandleFunc(routes.Account, registryCtrl.GetAccount).Methods(http.MethodGet)
	router.HandleFunc(routes.AccountBalance, registryCtrl.CheckBalance).Methods(http.MethodGet)
	router.Handle(routes.AccountProperty, protected("createProperty", registryCtrl.CreateProperty)).Methods(http.MethodPost)
	router.Handle(routes.Investments, protected("invest", registryCtrl.Invest)).Methods(http.MethodPost)

	// 5) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.CallerIdentityHeader},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
