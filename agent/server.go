package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/imkonsowa/menu-concierge/config"
	"github.com/imkonsowa/menu-concierge/events"
	"github.com/imkonsowa/menu-concierge/models"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewModel builds the OpenAI chat model. It returns nil when no API key is
// configured.
func NewModel(cfg config.OpenAI) (*openai.LLM, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return llm, nil
}

// Serve runs the chat server for menu until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, menu *models.Configuration) error {
	opts := []Option{
		WithTemperature(cfg.OpenAI.Temperature),
		WithMaxTokens(cfg.OpenAI.MaxTokens, cfg.OpenAI.FollowUpMaxTokens),
		WithMaxHistory(cfg.Chat.MaxHistory),
	}

	llm, err := NewModel(cfg.OpenAI)
	if err != nil {
		return err
	}
	if llm != nil {
		opts = append(opts, WithModel(llm))
	} else {
		slog.Warn("OpenAI API key not configured, chat requests will be rejected")
	}

	if cfg.Transcripts.Enabled {
		transcripts, err := NewSqliteTranscripts(cfg.Transcripts.Path)
		if err != nil {
			return err
		}
		defer transcripts.Close()

		opts = append(opts, WithTranscripts(transcripts))
	}

	if cfg.Nats.Enabled {
		publisher, err := events.NewPublisher(&cfg.Nats)
		if err != nil {
			return err
		}
		defer publisher.Close()

		opts = append(opts, WithCartEvents(publisher))
	}

	handler, err := NewHandler(models.NewIndex(menu), opts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting chat server", "addr", srv.Addr, "items", handler.Index().Len(), "ai_enabled", handler.Enabled())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("chat server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down chat server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
