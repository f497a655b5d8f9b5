package testutil

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

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
	pushsvc "github.com/festify/console/services/push"
	inmemdb "github.com/festify/console/storage/database/inmem"
)

// pngPixel is a 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// Image returns a data URL payload, as sent by the console.
func Image() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngPixel)
}

type (
	Entry struct {
		Level string
		Msg   string
	}

	// Logger records what is logged.
	Logger struct {
		mu      sync.Mutex
		entries []Entry
	}
)

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg})
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

// Entries returns the recorded entries of level, or all of them if level is empty.
func (l *Logger) Entries(level string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Env is a complete in-memory setup of the console services.
type Env struct {
	Conf       *core.Config
	Logger     *Logger
	Validate   *validator.Validate
	Translator ut.Translator

	DB         *inmemdb.DB
	Timelines  *inmemdb.TimelineRepository
	Lessons    *inmemdb.LessonRepository
	Rewards    *inmemdb.RewardRepository
	Users      *inmemdb.UserRepository
	Admins     *inmemdb.AdminRepository
	Blobs      *blobsvc.MemoryStore
	Identities *identitysvc.LocalProvider
	Tokens     *identitysvc.LocalTokens
	Mailer     *emailsvc.ConsoleServiceMock
	Pusher     *pushsvc.ConsolePush

	TimelineSvc     *timeline.Service
	RewardSvc       *reward.Service
	LessonSvc       *lesson.Service
	UserSvc         *user.Service
	AdminSvc        *admin.Service
	EmailSvc        *email.Service
	NotificationSvc *notification.Service
	HomeSvc         *home.Service
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	conf := core.NewTestConfig()
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator)

	db := inmemdb.Open()
	env := &Env{
		Conf:       conf,
		Logger:     new(Logger),
		Validate:   validate,
		Translator: translator,
		DB:         db,
		Timelines:  inmemdb.NewTimelineRepository(db),
		Lessons:    inmemdb.NewLessonRepository(db),
		Rewards:    inmemdb.NewRewardRepository(db),
		Users:      inmemdb.NewUserRepository(db),
		Admins:     inmemdb.NewAdminRepository(db),
		Blobs:      blobsvc.NewMemoryStore(conf.Firebase.StorageBucket),
		Identities: identitysvc.NewLocalProvider(),
		Tokens:     identitysvc.NewLocalTokens(conf),
		Mailer:     emailsvc.NewConsoleServiceMock(conf),
	}
	env.Pusher = pushsvc.NewConsolePush(env.Logger)

	env.TimelineSvc = timeline.NewService(env.Timelines, env.Blobs, validate)
	env.RewardSvc = reward.NewService(env.Rewards, env.Lessons, env.Blobs, validate, env.Logger)
	env.LessonSvc = lesson.NewService(env.Lessons, env.Timelines, env.RewardSvc, env.Blobs, validate, env.Logger)
	env.UserSvc = user.NewService(env.Users, env.Timelines, env.Blobs)
	env.AdminSvc = admin.NewService(env.Admins, env.Identities, validate, env.Logger)
	env.EmailSvc = email.NewService(env.Identities, env.Mailer, validate)
	env.NotificationSvc = notification.NewService(env.UserSvc, env.Pusher, validate)
	env.HomeSvc = home.NewService(env.Identities, env.LessonSvc)

	if _, err := env.TimelineSvc.Seed(context.Background()); err != nil {
		t.Fatalf("NewEnv() failed to seed timelines: %v", err)
	}
	return env
}

// CreateLesson creates a lesson (and its holiday) through the lesson service.
func (env *Env) CreateLesson(t *testing.T, season core.Season, name string) lesson.Lesson {
	t.Helper()
	l, err := env.LessonSvc.Create(context.Background(), season, lesson.NewLesson{
		CelebratedOn: "Dec 25",
		Thumbnail:    Image(),
		HolidayName:  name,
		XPReward:     10,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return l
}

// CreateAdmin creates an admin and returns it along with a valid token.
func (env *Env) CreateAdmin(t *testing.T, username string) (admin.Admin, string) {
	t.Helper()
	adm, err := env.AdminSvc.Create(context.Background(), admin.NewAdmin{
		Username: username,
		Email:    username + "@festify.test",
		Password: "secret-pwd",
	})
	if err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	token, err := env.Tokens.IssueToken(adm.ID)
	if err != nil {
		t.Fatalf("CreateAdmin() failed to issue token: %v", err)
	}
	return adm, token
}

// CreateUser stores a mobile user with fresh progress and an uploaded avatar.
func (env *Env) CreateUser(t *testing.T, username, notificationToken string) user.User {
	t.Helper()
	usr := user.User{
		Username:          username,
		Avatar:            env.Blobs.Put(fmt.Sprintf("images/avatars/%s", username), pngPixel),
		NotificationToken: notificationToken,
		Progress:          user.FreshProgress(),
	}
	usr, err := env.Users.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
