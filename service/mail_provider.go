package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/utils"
)

// HTTPMailProvider talks to the real mail provider over its OAuth2 token
// endpoints and send endpoint.
type HTTPMailProvider struct {
	cfg    config.MailProviderConfig
	client *http.Client
}

// NewHTTPMailProvider creates the provider client.
func NewHTTPMailProvider(cfg config.MailProviderConfig) *HTTPMailProvider {
	return &HTTPMailProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int    `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeCode trades a one-time authorization code for a token pair.
func (p *HTTPMailProvider) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURI)

	token, err := p.postToken(ctx, form)
	if err != nil {
		return nil, err
	}
	if token.RefreshToken == "" {
		return nil, utils.NewAuthError("Penyedia email tidak mengembalikan refresh token. Ulangi otorisasi dengan persetujuan penuh.")
	}

	return &TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}, nil
}

// Refresh spends the refresh token on a new access token.
func (p *HTTPMailProvider) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)

	token, err := p.postToken(ctx, form)
	if err != nil {
		return "", time.Time{}, err
	}

	return token.AccessToken, time.Now().Add(time.Duration(token.ExpiresIn) * time.Second), nil
}

func (p *HTTPMailProvider) postToken(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, utils.NewAuthError("Tidak dapat menghubungi penyedia email: " + err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, utils.NewAuthError(fmt.Sprintf("Respons tidak dikenal dari penyedia email (%d)", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK || token.Error != "" {
		utils.Logger.Error().
			Int("statusCode", resp.StatusCode).
			Str("providerError", token.Error).
			Msg("token request rejected")
		return nil, utils.NewAuthError("Otorisasi email ditolak oleh penyedia. Kode mungkin sudah dipakai atau kedaluwarsa, silakan ulangi proses otorisasi.")
	}

	return &token, nil
}

// Send delivers one HTML email through the provider's send endpoint. The
// message goes up as a base64url-encoded RFC 822 document, the format the
// Gmail API expects.
func (p *HTTPMailProvider) Send(ctx context.Context, accessToken, to, subject, htmlBody, from string) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	payload, _ := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString(msg.Bytes()),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.SendURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return utils.NewDeliveryError("Pengiriman email gagal: tidak dapat menghubungi penyedia email.")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return utils.NewAuthError("Penyedia email menolak token akses. Silakan ulangi proses otorisasi.")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		utils.Logger.Error().
			Int("statusCode", resp.StatusCode).
			Str("body", string(body)).
			Msg("send rejected by mail provider")
		return utils.NewDeliveryError(fmt.Sprintf("Pengiriman email ditolak oleh penyedia (kode %d). Periksa alamat tujuan dan coba lagi.", resp.StatusCode))
	}

	return nil
}
