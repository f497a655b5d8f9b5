package main

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	dig_container "github.com/festify/console/apps/api/di/dig"
	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/core/user"
)

func main() {
	c := dig_container.New("ADMIN")

	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		validate *validator.Validate,
		translator ut.Translator,
		timelines timeline.ServiceInterface,
		admins admin.ServiceInterface,
		users user.ServiceInterface,
	) {
		core.InitValidators(validate, translator)
		lesson.InitValidators(validate, translator)

		if conf.IsLocal() {
			logger.Warn("AUTH_MODE is local: changes are kept in memory and lost on exit")
		}

		cli := commandLine{
			timelineSvc: timelines,
			adminSvc:    admins,
			userSvc:     users,
			translator:  translator,
			out:         os.Stdout,
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				log.Printf("\nerror: %s\n", err)
			}
			os.Exit(1)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
}
