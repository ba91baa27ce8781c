package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tallyup/pkg/api"
)

func TestRegisterLoginCurrentUser(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	token := register(t, c, "ana@example.com")

	login, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "ANA@example.com",
		Password: "correct horse",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, login.Msg.Token)
	assert.Equal(t, "ana@example.com", login.Msg.User.Email)

	me, err := c.auth.CurrentUser(ctx, authed(token, &api.CurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, login.Msg.User.ID, me.Msg.User.ID)
	assert.Equal(t, "Tester", me.Msg.User.DisplayName)
}

func TestRegister_Errors(t *testing.T) {
	c := setupTestServer(t)
	register(t, c, "ana@example.com")

	tests := []struct {
		name string
		req  *api.RegisterRequest
		code connect.Code
	}{
		{
			name: "duplicate email",
			req:  &api.RegisterRequest{Email: "ana@example.com", DisplayName: "Ana", Password: "long enough"},
			code: connect.CodeAlreadyExists,
		},
		{
			name: "bad email",
			req:  &api.RegisterRequest{Email: "not-an-email", DisplayName: "Ana", Password: "long enough"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "short password",
			req:  &api.RegisterRequest{Email: "ben@example.com", DisplayName: "Ben", Password: "short"},
			code: connect.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.auth.Register(context.Background(), connect.NewRequest(tt.req))
			requireCode(t, err, tt.code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	c := setupTestServer(t)
	register(t, c, "ana@example.com")

	_, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong password",
	}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Email: "ana@example.com"}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestCurrentUser_NoToken(t *testing.T) {
	c := setupTestServer(t)
	_, err := c.auth.CurrentUser(context.Background(), connect.NewRequest(&api.CurrentUserRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)
}
