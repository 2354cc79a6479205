package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	zLog "github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/openai"
	langChainPrompts "github.com/tmc/langchaingo/prompts"

	"go-deskpilot/internal/api"
	"go-deskpilot/internal/config"
	"go-deskpilot/internal/exec"
	"go-deskpilot/internal/history"
	"go-deskpilot/internal/pipeline/handler"
	"go-deskpilot/internal/planner"
	"go-deskpilot/internal/target"
	"go-deskpilot/internal/vision"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/prompts"
)

var (
	stepBreakdownPrompt = langChainPrompts.NewPromptTemplate(prompts.StepBreakdown, []string{"Command"})
	quoteTargetPrompt   = langChainPrompts.NewPromptTemplate(prompts.QuoteTarget, []string{"Command", "Step"})
)

func main() {
	log.Println("starting server")
	cfg := config.FromEnv()
	if err := logger.NewGlobal(cfg.LogLevel, cfg.PrettyLogs); err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	// A missing model backend is not fatal; the planner degrades to a single
	// whole-command step and the resolver skips quoting.
	var stepModel planner.StepModel
	var quoter target.Quoter
	llm, err := openai.New()
	if err != nil {
		zLog.Warn().Err(err).Msg("model backend unavailable, running degraded")
	} else {
		stepModel = planner.NewChainModel(chains.NewLLMChain(llm, stepBreakdownPrompt))
		quoter = target.NewChainQuoter(chains.NewLLMChain(llm, quoteTargetPrompt))
	}

	var detector vision.Detector
	if cfg.DetectorEndpoint != "" {
		detector = vision.NewHTTPDetector(cfg.DetectorEndpoint)
	}
	cache := vision.NewCache(cfg.CacheTTL, cfg.CacheEntries, nil)
	perception := vision.NewService(cache, vision.NewHTTPOCR(cfg.OCREndpoint), detector, cfg.PerceptionWorkers, cfg.PerceptionTimeout)

	store, err := history.NewFileStore(cfg.HistoryPath)
	if err != nil {
		zLog.Panic().Err(err).Msg("cannot open history store")
	}

	robot := exec.NewRobot()
	h := handler.New(
		planner.New(stepModel),
		target.New(perception, quoter),
		perception,
		exec.New(robot, robot),
		robot,
		robot,
		store,
	)

	system := actor.NewActorSystem().Root
	app := api.New(system, h, store, cfg.Addr)

	go func() {
		if err := app.Start(); err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		zLog.Panic().Err(err).Msg("server forced to shutdown")
	}

	zLog.Info().Msg("server exiting")
}
