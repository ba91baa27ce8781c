package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tallyup/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService.
const AuthServiceName = "tallyup.v1.AuthService"

var (
	AuthServiceRegisterProcedure    = procedure(AuthServiceName, "Register")
	AuthServiceLoginProcedure       = procedure(AuthServiceName, "Login")
	AuthServiceCurrentUserProcedure = procedure(AuthServiceName, "CurrentUser")
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	CurrentUser(context.Context, *connect.Request[api.CurrentUserRequest]) (*connect.Response[api.CurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for the service and returns
// the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(AuthServiceName), mux{
		AuthServiceRegisterProcedure:    connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:       connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceCurrentUserProcedure, svc.CurrentUser, opts...),
	}
}

// AuthServiceClient is a client for AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	CurrentUser(context.Context, *connect.Request[api.CurrentUserRequest]) (*connect.Response[api.CurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &authServiceClient{
		register:    connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:       connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		currentUser: connect.NewClient[api.CurrentUserRequest, api.CurrentUserResponse](httpClient, baseURL+AuthServiceCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register    *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login       *connect.Client[api.LoginRequest, api.LoginResponse]
	currentUser *connect.Client[api.CurrentUserRequest, api.CurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) CurrentUser(ctx context.Context, req *connect.Request[api.CurrentUserRequest]) (*connect.Response[api.CurrentUserResponse], error) {
	return c.currentUser.CallUnary(ctx, req)
}
