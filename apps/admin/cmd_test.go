package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
	"github.com/festify/console/core/timeline"
	inmemdb "github.com/festify/console/storage/database/inmem"
	"github.com/festify/console/tests"
)

func setup(t *testing.T) (*commandLine, *testutil.Env, *bytes.Buffer) {
	env := testutil.NewEnv(t)
	out := new(bytes.Buffer)
	return &commandLine{
		timelineSvc: env.TimelineSvc,
		adminSvc:    env.AdminSvc,
		userSvc:     env.UserSvc,
		translator:  env.Translator,
		out:         out,
	}, env, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
	extra      interface{} // password typed at the prompt
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if pwd, ok := tt.extra.(string); ok {
				return []byte(pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_createAdmin(t *testing.T) {
	cli, env, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErrStr: `unknown command "lol" for "admin"`},
		{name: "no flags", args: []string{"createadmin"}, wantErr: errHelp},
		{name: "no email", args: []string{"createadmin", "--username", "jane"}, wantErr: errHelp},
		{name: "no password", args: []string{"createadmin", "--username", "jane", "--email", "jane@festify.test"}, wantErr: errHelp},
		{
			name:       "invalid email",
			args:       []string{"createadmin", "--username", "jane", "--email", "jane"},
			extra:      "secret-pwd",
			wantErrStr: "email must be a valid email address",
		},
		{
			name:    "created",
			args:    []string{"createadmin", "--username", "jane", "--email", "jane@festify.test"},
			extra:   "secret-pwd",
			wantOut: "Admin jane created with id ",
		},
		{
			name:       "email taken",
			args:       []string{"createadmin", "--username", "janet", "--email", "jane@festify.test"},
			extra:      "secret-pwd",
			wantErrStr: "email: " + core.ErrEmailExists.Error(),
		},
	})

	admins, err := env.AdminSvc.QueryAll(context.Background())
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "jane", admins[0].Username)
}

func Test_commandLine_seedTimelines(t *testing.T) {
	cli, env, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "all seeded", args: []string{"seedtimelines"}, wantOut: "All timelines already exist"},
	})

	db := inmemdb.Open()
	repo := inmemdb.NewTimelineRepository(db)
	require.NoError(t, repo.CreateTimeline(context.Background(), core.Spring))
	cli.timelineSvc = timeline.NewService(repo, env.Blobs, env.Validate)

	runCLITests(t, cli, out, []cliTest{
		{name: "seed missing", args: []string{"seedtimelines"}, wantOut: "Created timelines: summer, autumn, winter"},
		{name: "seed again", args: []string{"seedtimelines"}, wantOut: "All timelines already exist"},
	})
}

func Test_commandLine_wipeUser(t *testing.T) {
	cli, env, out := setup(t)
	usr := env.CreateUser(t, "alice", "")

	runCLITests(t, cli, out, []cliTest{
		{name: "no id", args: []string{"wipeuser"}, wantErr: errHelp},
		{name: "not found", args: []string{"wipeuser", "--id", "nope"}, wantErrStr: "User not found"},
		{name: "wiped", args: []string{"wipeuser", "--id", usr.ID}, wantOut: "User " + usr.ID + " wiped"},
	})

	assert.False(t, env.Blobs.Has(usr.Avatar))
}
