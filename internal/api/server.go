package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"go-deskpilot/internal/history"
	pipeline "go-deskpilot/internal/pipeline/actor"
	"go-deskpilot/internal/pipeline/handler"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/messages"
	"go-deskpilot/pkg/models"
)

const commandTimeout = 3 * time.Minute

type commandRequest struct {
	Command        string `json:"command"`
	EnableFailsafe bool   `json:"enable_failsafe"`
	Language       string `json:"language,omitempty"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	ac     *actor.RootContext
	server *http.Server
	latest *latestCache
}

func New(ac *actor.RootContext, h *handler.Handler, store history.Store, addr string) *Server {
	r := chi.NewRouter()
	r.Use(logMiddleware())
	latest := newLatestCache(store)
	producer := pipeline.NewProducer(h)

	r.Post("/command", func(w http.ResponseWriter, req *http.Request) {
		log.Debug().Msg("command request")
		cmd := commandRequest{}
		if err := unmarshalRequestBody(req, &cmd); err != nil || cmd.Command == "" {
			w.WriteHeader(http.StatusBadRequest)
			log.Debug().Msg("cannot parse body")
			render.JSON(w, req, errorResponse{Error: "unable to parse body"})
			return
		}

		decider := func(reason interface{}) actor.Directive {
			log.Error().Msgf("handling failure for child. reason: %v", reason)
			return actor.RestartDirective
		}
		strategy := actor.NewOneForOneStrategy(3, 10000, decider)

		props := actor.PropsFromProducer(producer, actor.WithSupervisor(strategy))
		pid := ac.Spawn(props)

		id := uuid.New()
		future := ac.RequestFuture(pid, messages.RunCommand{
			RequestID: id,
			Command: models.Command{
				Text:           cmd.Command,
				Language:       cmd.Language,
				EnableFailsafe: cmd.EnableFailsafe,
			},
		}, commandTimeout)

		res, err := future.Result()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error().Str(logger.CommandIDField, id.String()).Err(err).Msg("pipeline did not answer")
			render.JSON(w, req, errorResponse{Error: "pipeline did not answer in time"})
			return
		}

		result, ok := res.(*models.CommandResult)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error().Str(logger.CommandIDField, id.String()).Msg("unknown result from pipeline")
			return
		}

		latest.put(result.Summary.Sentence)
		log.Debug().Str(logger.CommandIDField, id.String()).Msg("command processed")
		render.JSON(w, req, result)
	})

	r.Get("/command-summary/latest", func(w http.ResponseWriter, req *http.Request) {
		log.Debug().Msg("latest summary request")
		sentence, ok := latest.get()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, req, errorResponse{Error: "no commands processed yet"})
			return
		}
		render.JSON(w, req, summaryResponse{Summary: sentence})
	})

	return &Server{
		ac:     ac,
		latest: latest,
		server: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info().Msg("http server started")
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	return nil
}
