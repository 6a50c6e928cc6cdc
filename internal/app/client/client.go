// Package client implements the terminal client application: an HTTP client
// for the Solarkeeper server plus local session-token persistence.
package client

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"solarkeeper/internal/app/client/config"
	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/importer"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config:     cfg,
		log:        log,
		httpClient: newHTTPClient(cfg, log),
	}

	// A previously saved token keeps the user logged in between runs.
	if token, err := app.loadToken(); err == nil && token != "" {
		app.httpClient.SetToken(token)
	}

	return app, nil
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, login, password string) error {
	return a.httpClient.Register(ctx, login, password)
}

// Login authenticates and persists the session token for later commands.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.httpClient.Login(ctx, login, password)
	if err != nil {
		return err
	}

	if err := a.saveToken(token); err != nil {
		a.log.Warn("could not persist session token", "error", err)
	}

	return nil
}

func (a *App) Logout() error {
	a.httpClient.SetToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erro ao remover token: %w", err)
	}
	return nil
}

func (a *App) IsAuthenticated() bool {
	return a.httpClient.token != ""
}

func (a *App) Manufacturers(ctx context.Context) ([]manufacturer.Manufacturer, error) {
	return a.httpClient.Manufacturers(ctx)
}

func (a *App) SaveCredential(ctx context.Context, manufacturerID int, fields map[string]string, referenceName string) (*CredentialData, error) {
	return a.httpClient.SaveCredential(ctx, CredentialSaveRequest{
		ManufacturerID: manufacturerID,
		Fields:         fields,
		ReferenceName:  referenceName,
	})
}

func (a *App) UpdateCredential(ctx context.Context, id int, fields map[string]string, referenceName string) (*CredentialData, error) {
	return a.httpClient.UpdateCredential(ctx, id, CredentialUpdateRequest{
		Fields:        fields,
		ReferenceName: referenceName,
	})
}

func (a *App) ListCredentials(ctx context.Context) ([]credential.ListItem, error) {
	return a.httpClient.ListCredentials(ctx)
}

func (a *App) DeleteCredential(ctx context.Context, id int) error {
	return a.httpClient.DeleteCredential(ctx, id)
}

func (a *App) FetchExternalPlants(ctx context.Context, manufacturerID int) ([]vendorapi.ExternalPlant, error) {
	return a.httpClient.FetchExternalPlants(ctx, manufacturerID)
}

func (a *App) ImportPlants(ctx context.Context, selections []importer.Selection) (*importer.Result, error) {
	return a.httpClient.ImportPlants(ctx, selections)
}

func (a *App) ListPlants(ctx context.Context) ([]plant.Plant, error) {
	return a.httpClient.ListPlants(ctx)
}

func (a *App) saveToken(token string) error {
	return os.WriteFile(a.config.TokenPath, []byte(token), 0600)
}

func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
