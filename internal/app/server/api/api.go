//cadastro e autenticação de usuários;
//guarda de credenciais de fabricantes com campos sensíveis cifrados;
//listagem de plantas direto na API do fabricante;
//importação idempotente das plantas selecionadas.

//POST /user/register            # Registro (público)
//POST /user/login               # Login (público)
//GET  /api/fabricantes          # Fabricantes e schemas de credencial (auth)
//POST /api/credenciais          # Salvar credenciais (auth)
//PUT  /api/credenciais/{id}     # Atualizar credenciais (auth)
//GET  /api/credenciais          # Listar credenciais (auth)
//DELETE /api/credenciais/{id}   # Remover credencial (auth)
//POST /api/plantas/externas     # Plantas disponíveis no fabricante (auth)
//POST /api/plantas/importar     # Importar plantas selecionadas (auth)
//GET  /api/plantas              # Plantas importadas (auth)

package api

import (
	credentialAPI "solarkeeper/internal/app/server/api/http/credential"
	healthAPI "solarkeeper/internal/app/server/api/http/health"
	manufacturerAPI "solarkeeper/internal/app/server/api/http/manufacturer"
	"solarkeeper/internal/app/server/api/http/middleware"
	"solarkeeper/internal/app/server/api/http/middleware/auth"
	"solarkeeper/internal/app/server/api/http/middleware/logger"
	plantAPI "solarkeeper/internal/app/server/api/http/plant"
	userAPI "solarkeeper/internal/app/server/api/http/user"
	"solarkeeper/internal/app/server/config"
	"solarkeeper/internal/app/server/crypto"
	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/importer"
	"solarkeeper/internal/domain/session"
	"solarkeeper/internal/domain/user"
	"solarkeeper/internal/infrastructure/storage/postgres"
	"solarkeeper/internal/vendorapi"
	"solarkeeper/internal/vendorapi/growatt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health       *healthAPI.Handler
	User         *userAPI.Handler
	Manufacturer *manufacturerAPI.Handler
	Credential   *credentialAPI.Handler
	Plant        *plantAPI.Handler
}

// New builds the *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Solarkeeper API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(storage, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Manufacturer.SetupRoutes(API)
	h.Credential.SetupRoutes(API)
	h.Plant.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	sessionRepo := postgres.NewSessionRepository(pool, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	adapters := vendorapi.NewRegistry()
	adapters.Register("growatt", growatt.NewWithHTTPClient(nil, cfg.Growatt.BaseURL, log))

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(pool, log)
	userService := user.NewService(userRepo, log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	manufacturerRepo := postgres.NewManufacturerRepository(pool, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	manufacturerHandler := manufacturerAPI.NewHandler(manufacturerRepo, log, middlewares.GetAllAndClear())

	credentialRepo := postgres.NewCredentialRepository(pool, log)
	credentialService := credential.NewService(credentialRepo, manufacturerRepo, adapters, crypto.Default, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	credentialHandler := credentialAPI.NewHandler(credentialService, log, middlewares.GetAllAndClear())

	plantRepo := postgres.NewPlantRepository(pool, log)
	importerService := importer.NewService(manufacturerRepo, credentialService, plantRepo, adapters, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	plantHandler := plantAPI.NewHandler(importerService, plantRepo, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:       healthHandler,
		User:         userHandler,
		Manufacturer: manufacturerHandler,
		Credential:   credentialHandler,
		Plant:        plantHandler,
	}
}
