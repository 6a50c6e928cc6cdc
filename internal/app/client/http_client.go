package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"solarkeeper/internal/app/client/config"
	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/importer"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "Solarkeeper-Client/1.0",
	}
}

func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck verifies the server is reachable.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("servidor indisponível: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("servidor retornou status: %d", resp.StatusCode)
	}

	return nil
}

func (h *httpClient) Register(ctx context.Context, login, password string) error {
	req := map[string]string{"login": login, "password": password}

	resp, err := h.doRequest(ctx, "POST", "/user/register", req)
	if err != nil {
		return err
	}

	var registerResp struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}
	if err := h.parseResponse(resp, &registerResp); err != nil {
		return err
	}
	if registerResp.Status == "Error" {
		return fmt.Errorf("erro do servidor: %s", registerResp.Error)
	}

	return nil
}

func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	req := map[string]string{"login": login, "password": password}

	resp, err := h.doRequest(ctx, "POST", "/user/login", req)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token  string `json:"token,omitempty"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}
	if loginResp.Status == "Error" || loginResp.Token == "" {
		return "", fmt.Errorf("erro do servidor: %s", loginResp.Error)
	}

	h.token = loginResp.Token
	return loginResp.Token, nil
}

func (h *httpClient) Manufacturers(ctx context.Context) ([]manufacturer.Manufacturer, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/fabricantes", nil)
	if err != nil {
		return nil, err
	}

	var manufacturers []manufacturer.Manufacturer
	if err := h.parseResponse(resp, &manufacturers); err != nil {
		return nil, err
	}

	return manufacturers, nil
}

func (h *httpClient) SaveCredential(ctx context.Context, req CredentialSaveRequest) (*CredentialData, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/credenciais", req)
	if err != nil {
		return nil, err
	}

	var upsertResp credentialUpsertResponse
	if err := h.parseResponse(resp, &upsertResp); err != nil {
		return nil, err
	}

	return &upsertResp.Data, nil
}

func (h *httpClient) UpdateCredential(ctx context.Context, id int, req CredentialUpdateRequest) (*CredentialData, error) {
	resp, err := h.doRequest(ctx, "PUT", fmt.Sprintf("/api/credenciais/%d", id), req)
	if err != nil {
		return nil, err
	}

	var upsertResp credentialUpsertResponse
	if err := h.parseResponse(resp, &upsertResp); err != nil {
		return nil, err
	}

	return &upsertResp.Data, nil
}

func (h *httpClient) ListCredentials(ctx context.Context) ([]credential.ListItem, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/credenciais", nil)
	if err != nil {
		return nil, err
	}

	var items []credential.ListItem
	if err := h.parseResponse(resp, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (h *httpClient) DeleteCredential(ctx context.Context, id int) error {
	resp, err := h.doRequest(ctx, "DELETE", fmt.Sprintf("/api/credenciais/%d", id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) FetchExternalPlants(ctx context.Context, manufacturerID int) ([]vendorapi.ExternalPlant, error) {
	req := map[string]int{"fabricante_id": manufacturerID}

	resp, err := h.doRequest(ctx, "POST", "/api/plantas/externas", req)
	if err != nil {
		return nil, err
	}

	var plants []vendorapi.ExternalPlant
	if err := h.parseResponse(resp, &plants); err != nil {
		return nil, err
	}

	return plants, nil
}

func (h *httpClient) ImportPlants(ctx context.Context, selections []importer.Selection) (*importer.Result, error) {
	req := struct {
		Plants []importer.Selection `json:"plantas"`
	}{
		Plants: selections,
	}

	resp, err := h.doRequest(ctx, "POST", "/api/plantas/importar", req)
	if err != nil {
		return nil, err
	}

	var importResp struct {
		Success bool                     `json:"success"`
		Message string                   `json:"message"`
		Data    []importer.ImportedPlant `json:"data"`
	}
	if err := h.parseResponse(resp, &importResp); err != nil {
		return nil, err
	}

	return &importer.Result{
		Count:  len(importResp.Data),
		Plants: importResp.Data,
	}, nil
}

func (h *httpClient) ListPlants(ctx context.Context) ([]plant.Plant, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/plantas", nil)
	if err != nil {
		return nil, err
	}

	var plants []plant.Plant
	if err := h.parseResponse(resp, &plants); err != nil {
		return nil, err
	}

	return plants, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar corpo da requisição: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar requisição: %w", err)
	}

	return resp, nil
}

// parseResponse decodes the body into result and turns error statuses into
// errors carrying the server's own message, so vendor texts like the Growatt
// permission hint reach the terminal unchanged.
func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	h.log.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Detail != "" {
				return fmt.Errorf("erro do servidor: %s", errResp.Detail)
			}
			if errResp.Error != "" {
				return fmt.Errorf("erro do servidor: %s", errResp.Error)
			}
		}
		return fmt.Errorf("erro do servidor: status %d", resp.StatusCode)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("erro ao interpretar resposta: %w", err)
		}
	}

	return nil
}
