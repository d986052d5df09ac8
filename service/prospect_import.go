package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"
)

// ImportSource returns prospect-shaped records for a free-text query. The
// integration's internals are not this service's concern, only the output
// shape.
type ImportSource interface {
	Search(ctx context.Context, query string) ([]models.ProspectInput, error)
}

// HTTPImportSource queries the external lead-search API.
type HTTPImportSource struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPImportSource creates the import client.
func NewHTTPImportSource(cfg *config.Config) *HTTPImportSource {
	return &HTTPImportSource{
		url:    cfg.ImportAPIURL,
		apiKey: cfg.ImportAPIKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs the query and decodes the returned prospect records.
func (s *HTTPImportSource) Search(ctx context.Context, query string) ([]models.ProspectInput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("q", query)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gagal menghubungi sumber impor prospek: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		utils.Logger.Error().
			Int("statusCode", resp.StatusCode).
			Str("body", string(body)).
			Msg("prospect import request rejected")
		return nil, fmt.Errorf("sumber impor prospek menolak permintaan (kode %d)", resp.StatusCode)
	}

	var payload struct {
		Prospects []models.ProspectInput `json:"prospects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gagal membaca hasil impor prospek: %w", err)
	}

	return payload.Prospects, nil
}
