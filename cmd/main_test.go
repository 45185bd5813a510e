package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"crm-admin/internal/api"
	"crm-admin/internal/config"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/logging"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFormLinks struct{ formlink.Service }

type stubOffers struct{ offer.Service }

func TestStartServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
	}
	logger := logging.NewLogger(config.LoggerConfig{})
	router := http.NewServeMux()

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	t.Cleanup(func() { _ = srv.Close() })

	assert.NotNil(t, srv, "Server should not be nil")
	assert.NotNil(t, serverErrors, "Server errors channel should not be nil")
	assert.NotNil(t, shutdownChan, "Shutdown channel should not be nil")
}

func TestHandleShutdown(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	cronScheduler := cron.New()
	cronScheduler.Start()
	srv := &http.Server{}
	shutdownChan := make(chan os.Signal, 1)
	serverErrors := make(chan error, 1)

	shutdownChan <- syscall.SIGINT

	done := make(chan struct{})
	go func() {
		handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("graceful shutdown did not complete")
	}
}

func TestStartBatchJobs(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	cfg := &config.Config{
		Batch: config.BatchConfig{
			FormLinkExpirySchedule: "*/5 * * * *",
			JobTimeout:             time.Minute,
		},
	}
	services := api.Services{FormLinks: stubFormLinks{}, Offers: stubOffers{}}

	c := startBatchJobs(cfg, services, logger)
	t.Cleanup(func() { c.Stop() })

	assert.Len(t, c.Entries(), 2, "both expiry jobs should be scheduled, the offer job on its default spec")
}

func TestInitializeEvents_InProcess(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	cfg := &config.Config{
		Email: config.EmailConfig{Provider: "console", FromName: "CRM", FromAddress: "no-reply@example.gr"},
	}

	pub, closeEvents := initializeEvents(cfg, logger)
	require.NotNil(t, pub)

	err := pub.PublishFormLinkIssued(context.Background(), event.FormLinkIssuedEvent{
		LinkID:         1,
		RecipientEmail: "info@alfa.gr",
		URL:            "https://crm.example.gr/forms/abc",
		ExpiresAt:      time.Now().Add(time.Hour),
	})
	assert.NoError(t, err)

	closeEvents()
}
