package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/festify/console/apps/api/echo"
	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/email"
	"github.com/festify/console/core/home"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/notification"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/core/user"
	blobsvc "github.com/festify/console/services/blob"
	emailsvc "github.com/festify/console/services/email"
	identitysvc "github.com/festify/console/services/identity"
	logsvc "github.com/festify/console/services/logger"
	pushsvc "github.com/festify/console/services/push"
	firestoredb "github.com/festify/console/storage/database/firestore"
	inmemdb "github.com/festify/console/storage/database/inmem"
)

type (
	// Repositories are the stores of every aggregate, all backed by the same database.
	Repositories struct {
		dig.Out

		Timelines timeline.Repository
		Lessons   lesson.Repository
		Rewards   reward.Repository
		Users     user.Repository
		Admins    admin.Repository
	}

	// Identity is the account provider along with the verifier of its credentials.
	Identity struct {
		dig.Out

		Provider core.IdentityProvider
		Verifier core.TokenVerifier
		// Tokens is nil unless in local mode.
		Tokens *identitysvc.LocalTokens
	}

	serverParams struct {
		dig.In

		Conf       *core.Config
		Logger     core.Logger
		Translator ut.Translator
		Verifier   core.TokenVerifier

		Timelines     timeline.ServiceInterface
		Lessons       lesson.ServiceInterface
		Rewards       reward.ServiceInterface
		Users         user.ServiceInterface
		Admins        admin.ServiceInterface
		Emails        email.ServiceInterface
		Notifications notification.ServiceInterface
		Home          home.ServiceInterface
	}
)

func newLoggerFunc(prefix string) func(conf *core.Config) core.Logger {
	return func(conf *core.Config) core.Logger {
		stdLogger := log.New(os.Stdout, prefix+" : ", log.LstdFlags)
		logger := logsvc.NewRollbarLogger(stdLogger, conf)
		logger.Enable(!conf.Debug && conf.RollbarToken != "")
		return logger
	}
}

func newRepositories(conf *core.Config, validate *validator.Validate, logger core.Logger) (Repositories, error) {
	if conf.IsLocal() {
		db := inmemdb.Open()
		return Repositories{
			Timelines: inmemdb.NewTimelineRepository(db),
			Lessons:   inmemdb.NewLessonRepository(db),
			Rewards:   inmemdb.NewRewardRepository(db),
			Users:     inmemdb.NewUserRepository(db),
			Admins:    inmemdb.NewAdminRepository(db),
		}, nil
	}

	client, err := firestoredb.Open(context.Background(), conf)
	if err != nil {
		logger.Error(fmt.Sprintf("opening firestore: %v", err), err)
		return Repositories{}, err
	}
	return Repositories{
		Timelines: firestoredb.NewTimelineRepository(client, validate),
		Lessons:   firestoredb.NewLessonRepository(client, validate),
		Rewards:   firestoredb.NewRewardRepository(client, validate),
		Users:     firestoredb.NewUserRepository(client, validate),
		Admins:    firestoredb.NewAdminRepository(client, validate),
	}, nil
}

func newBlobStore(conf *core.Config, logger core.Logger) (core.BlobStore, error) {
	if conf.IsLocal() {
		return blobsvc.NewMemoryStore(conf.Firebase.StorageBucket), nil
	}
	return blobsvc.NewGCSStore(context.Background(), conf, logger)
}

func newIdentity(conf *core.Config) (Identity, error) {
	if conf.IsLocal() {
		tokens := identitysvc.NewLocalTokens(conf)
		return Identity{Provider: identitysvc.NewLocalProvider(), Verifier: tokens, Tokens: tokens}, nil
	}
	fb, err := identitysvc.NewFirebaseProvider(context.Background(), conf)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Provider: fb, Verifier: fb}, nil
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newPushService(conf *core.Config, logger core.Logger) core.PushService {
	if conf.IsLocal() {
		return pushsvc.NewConsolePush(logger)
	}
	return pushsvc.NewExpoService(conf, logger)
}

func newRewardService(
	repo reward.Repository,
	lessons lesson.Repository,
	blobs core.BlobStore,
	validate *validator.Validate,
	logger core.Logger,
) *reward.Service {
	return reward.NewService(repo, lessons, blobs, validate, logger)
}

func newNotificationService(users user.ServiceInterface, pusher core.PushService, validate *validator.Validate) *notification.Service {
	return notification.NewService(users, pusher, validate)
}

func newHomeService(identities core.IdentityProvider, lessons lesson.ServiceInterface) *home.Service {
	return home.NewService(identities, lessons)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, echoapi.Deps{
		Logger:          p.Logger,
		Translator:      p.Translator,
		Verifier:        p.Verifier,
		TimelineSvc:     p.Timelines,
		LessonSvc:       p.Lessons,
		RewardSvc:       p.Rewards,
		UserSvc:         p.Users,
		AdminSvc:        p.Admins,
		EmailSvc:        p.Emails,
		NotificationSvc: p.Notifications,
		HomeSvc:         p.Home,
	})
}

// New returns a new dependency injection dig.Container. loggerPrefix tags the lines of the executable's logger.
func New(loggerPrefix string) *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLoggerFunc(loggerPrefix)))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newRepositories))
	must(c.Provide(newBlobStore))
	must(c.Provide(newIdentity))
	must(c.Provide(newEmailService))
	must(c.Provide(newPushService))
	must(c.Provide(timeline.NewService, dig.As(new(timeline.ServiceInterface))))
	must(c.Provide(newRewardService, dig.As(new(reward.ServiceInterface))))
	must(c.Provide(lesson.NewService, dig.As(new(lesson.ServiceInterface))))
	must(c.Provide(user.NewService, dig.As(new(user.ServiceInterface))))
	must(c.Provide(admin.NewService, dig.As(new(admin.ServiceInterface))))
	must(c.Provide(email.NewService, dig.As(new(email.ServiceInterface))))
	must(c.Provide(newNotificationService, dig.As(new(notification.ServiceInterface))))
	must(c.Provide(newHomeService, dig.As(new(home.ServiceInterface))))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
