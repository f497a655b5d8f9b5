package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	dig_container "github.com/festify/console/apps/api/di/dig"
	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/timeline"
	identitysvc "github.com/festify/console/services/identity"
)

func main() {
	c := dig_container.New("API")

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		validate *validator.Validate,
		translator ut.Translator,
		timelines timeline.ServiceInterface,
		admins admin.ServiceInterface,
		tokens *identitysvc.LocalTokens,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		core.InitValidators(validate, translator)
		lesson.InitValidators(validate, translator)

		defer apiLogger.Info("Application stopped")

		if conf.IsLocal() {
			if err := seedLocal(conf, apiLogger, timelines, admins, tokens); err != nil {
				apiLogger.Fatal(fmt.Sprintf("seeding local mode: %v", err), err)
			}
		}

		// =========================================================================
		// Start Debug Service
		//
		// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

// seedLocal creates the season timelines and a development admin, whose token is logged.
func seedLocal(
	conf *core.Config,
	logger core.Logger,
	timelines timeline.ServiceInterface,
	admins admin.ServiceInterface,
	tokens *identitysvc.LocalTokens,
) error {
	ctx := context.Background()
	if _, err := timelines.Seed(ctx); err != nil {
		return err
	}

	adm, err := admins.Create(ctx, admin.NewAdmin{
		Username: "admin",
		Email:    "admin@localhost.dev",
		Password: "not-used-locally",
	})
	if err != nil {
		return err
	}
	token, err := tokens.IssueToken(adm.ID)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("local admin %s (valid %s): Bearer %s", adm.Email, conf.Auth.LocalTokenTTL, token))
	return nil
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
