package actor

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	"go-deskpilot/internal/pipeline/handler"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/messages"
)

const runTimeout = 2 * time.Minute

// Pipeline is the per-command actor: it receives one RunCommand, drives the
// whole pipeline through the handler, responds with the result and stops.
type Pipeline struct {
	handler *handler.Handler
}

// NewProducer returns an actor producer bound to the shared handler, for use
// with actor.PropsFromProducer.
func NewProducer(h *handler.Handler) func() actor.Actor {
	return func() actor.Actor {
		return &Pipeline{handler: h}
	}
}

func (p *Pipeline) Receive(ac actor.Context) {
	l := log.With().Str(logger.ActorIDField, ac.Self().GetId()).Str(logger.ComponentField, "pipeline-actor").Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.RunCommand:
		l.Info().Str(logger.CommandIDField, msg.RequestID.String()).Msg("command received")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		res := p.handler.Run(ctx, msg.Command)
		cancel()
		ac.Respond(res)
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}
