// pkg/fetcher/fetcher.go
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NivBraz/baconipsum/internal/models"
	"github.com/NivBraz/baconipsum/pkg/counter"
)

const (
	DefaultBaseURL   = "https://baconipsum.com/api/"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "baconipsum-cli/1.0"

	// maxErrorMessage caps how much of an error response body ends up in HTTPError.
	maxErrorMessage = 512
)

type Fetcher struct {
	client  *http.Client
	baseURL *url.URL
	config  FetcherConfig
}

type FetcherConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func New(config FetcherConfig) (*Fetcher, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", config.BaseURL)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   config.Timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
		baseURL: base,
		config:  config,
	}, nil
}

// RequestURL returns the full URL Fetch would request for params.
func (f *Fetcher) RequestURL(params models.RequestParameters) string {
	u := *f.baseURL
	u.RawQuery = params.Query().Encode()
	return u.String()
}

// Fetch issues a single GET for params, decodes the body according to
// params.Format and counts it. Failures come back as *HTTPError,
// *TransportError or *DecodeError; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, params models.RequestParameters) (models.ResponseBody, models.CountResult, error) {
	reqURL := f.RequestURL(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, models.CountResult{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", acceptHeader(params.Format))

	log.Debug().Str("url", reqURL).Msg("requesting placeholder text")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, models.CountResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Int64("content_length", resp.ContentLength).Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorMessage))
		return nil, models.CountResult{}, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.CountResult{}, &TransportError{Err: fmt.Errorf("error reading response body: %w", err)}
	}

	body, err := Decode(params.Format, raw)
	if err != nil {
		return nil, models.CountResult{}, err
	}
	return body, counter.Count(body), nil
}

// Decode turns a raw response body into the ResponseBody variant for format.
func Decode(format models.Format, raw []byte) (models.ResponseBody, error) {
	switch format {
	case models.FormatJSON:
		var paragraphs []string
		if err := json.Unmarshal(raw, &paragraphs); err != nil {
			return nil, &DecodeError{Format: format, Err: err}
		}
		if paragraphs == nil {
			return nil, &DecodeError{Format: format, Err: errors.New("expected an array of strings, got null")}
		}
		return models.JSONStringArray(paragraphs), nil
	case models.FormatText:
		return models.PlainText(raw), nil
	case models.FormatHTML:
		return models.HTMLFragment(raw), nil
	}
	return nil, &DecodeError{Format: format, Err: errors.New("unsupported format")}
}

func acceptHeader(format models.Format) string {
	switch format {
	case models.FormatJSON:
		return "application/json"
	case models.FormatHTML:
		return "text/html"
	default:
		return "text/plain"
	}
}
