package email_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
	"github.com/festify/console/core/email"
	"github.com/festify/console/tests"
)

var ctx = context.Background()

func TestService_SearchAddresses(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, addr := range []string{"jane@festify.test", "john@example.com", "JOAN@festify.test"} {
		_, err := env.Identities.CreateUser(ctx, addr, "secret-pwd", "")
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{term: "festify", want: []string{"jane@festify.test", "joan@festify.test"}},
		{term: " JO ", want: []string{"joan@festify.test", "john@example.com"}},
		{term: "", want: []string{"jane@festify.test", "joan@festify.test", "john@example.com"}},
		{term: "nobody", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := env.EmailSvc.SearchAddresses(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Send(t *testing.T) {
	env := testutil.NewEnv(t)

	require.NoError(t, env.EmailSvc.Send(ctx, email.Email{To: "Jane@Festify.test", Subject: "Hi", Body: "Hello there"}))
	sent := env.Mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@festify.test", sent[0].To[0].Address)
	assert.Equal(t, "Hi", sent[0].Subject)
	assert.Equal(t, "Hello there", sent[0].Body)

	tests := []struct {
		name string
		e    email.Email
	}{
		{name: "invalid address", e: email.Email{To: "jane", Subject: "Hi", Body: "Hello"}},
		{name: "missing subject", e: email.Email{To: "jane@festify.test", Body: "Hello"}},
		{name: "missing body", e: email.Email{To: "jane@festify.test", Subject: "Hi"}},
		{name: "nobody to send to", e: email.Email{To: email.AllRecipients, Subject: "Hi", Body: "Hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.EmailSvc.Send(ctx, tt.e)
			assert.Equal(t, core.CodeBadRequest, core.ErrorCodeOf(err))
		})
	}
	assert.Len(t, env.Mailer.Sent(), 1)
}

func TestService_Send_all(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, addr := range []string{"a@festify.test", "b@festify.test"} {
		_, err := env.Identities.CreateUser(ctx, addr, "secret-pwd", "")
		require.NoError(t, err)
	}

	require.NoError(t, env.EmailSvc.Send(ctx, email.Email{To: "ALL", Subject: "News", Body: "Winter is coming"}))

	sent := env.Mailer.Sent()
	require.Len(t, sent, 2)
	to := []string{sent[0].To[0].Address, sent[1].To[0].Address}
	assert.ElementsMatch(t, []string{"a@festify.test", "b@festify.test"}, to)
	for _, msg := range sent {
		assert.Len(t, msg.To, 1, "every account gets its own message")
	}
}
