package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assistant"
	"github.com/trezcool/shule/core/school"
	emailsvc "github.com/trezcool/shule/services/email"
	genaisvc "github.com/trezcool/shule/services/genai"
	logsvc "github.com/trezcool/shule/services/logger"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("API : ", conf), conf)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	// set up store
	db, err := openDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	schoolSvc := school.NewService(inmemdb.NewSchoolRepository(db), mailSvc, logger, conf)

	var gen assistant.TextGenerator
	gemini, err := genaisvc.NewGeminiGenerator(context.Background(), conf)
	switch {
	case err == nil:
		gen = gemini
		defer func() { _ = gemini.Close() }()
	case err == assistant.ErrMissingAPIKey:
		logger.Warn("assistant API key is not configured; the assistant is disabled")
	default:
		logger.Fatal(fmt.Sprintf("setting up assistant: %v", err), err)
	}
	assistantSvc := assistant.NewService(gen, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			SchoolSvc:    schoolSvc,
			AssistantSvc: assistantSvc,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// openDB returns the store, seeded with the mock dataset unless SEED is false.
func openDB(conf *core.Config) (*inmemdb.DB, error) {
	if !conf.Seed {
		return inmemdb.Open()
	}
	return inmemdb.Open(school.InitialData(time.Now()))
}
