package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/NivBraz/baconipsum/internal/config"
	"github.com/NivBraz/baconipsum/internal/models"
	"github.com/NivBraz/baconipsum/pkg/fetcher"
)

// App represents the main application
type App struct {
	config      *config.Config
	fetcher     *fetcher.Fetcher
	progressOut io.Writer
}

// New creates a new instance of the application. progressOut receives the
// spinner when cfg.Output.ShowProgress is set; it may be nil.
func New(cfg *config.Config, progressOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := fetcher.New(fetcher.FetcherConfig{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent: cfg.HTTPClient.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fetcher: %w", err)
	}

	if !cfg.Output.ShowProgress {
		progressOut = nil
	}

	return &App{
		config:      cfg,
		fetcher:     f,
		progressOut: progressOut,
	}, nil
}

// Run fetches one batch of placeholder text and counts it.
func (a *App) Run(ctx context.Context, params models.RequestParameters) (*models.Result, error) {
	startTime := time.Now()

	stop := a.startSpinner()
	body, counts, err := a.fetcher.Fetch(ctx, params)
	stop()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(startTime)
	log.Debug().
		Int("words", counts.Words).
		Int("characters", counts.Characters).
		Dur("elapsed", elapsed).
		Msg("fetch completed")

	return &models.Result{
		Params:      params,
		Data:        body,
		CountResult: counts,
		TimeElapsed: int(elapsed.Milliseconds()),
	}, nil
}

// startSpinner animates an indeterminate progress bar until the returned
// func is called. The returned func blocks until the bar is cleared.
func (a *App) startSpinner() func() {
	if a.progressOut == nil {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(a.progressOut),
		progressbar.OptionSetDescription("Fetching bacon ipsum..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				bar.Finish()
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
