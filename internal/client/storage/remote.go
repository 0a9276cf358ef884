package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

const apiAccounts = "/api/accounts"

// NewHTTPClient returns a client for the API server. When caFile is set the
// server certificate is verified against it.
func NewHTTPClient(caFile string) (*http.Client, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	if caFile == "" {
		return client, nil
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}
	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
	}
	return client, nil
}

// RemoteAccounts reads and registers accounts through the API server.
type RemoteAccounts struct {
	Client  *http.Client
	BaseURL string
}

// AccountsByType fetches the accounts of accountType in registration order.
func (r *RemoteAccounts) AccountsByType(ctx context.Context, accountType string) ([]models.Account, error) {
	u := r.BaseURL + apiAccounts + "?type=" + url.QueryEscape(accountType)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch accounts failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var accounts []models.Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return accounts, nil
}

// AddAccount registers account on the server.
func (r *RemoteAccounts) AddAccount(ctx context.Context, account models.AccountWithDataSet) error {
	b, err := json.Marshal(account)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+apiAccounts, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("add account failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return serverError(resp)
	}
	return nil
}

func serverError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
}
