// Package apiconnect binds the tallyup.v1 services to Connect handlers and
// clients. Messages are plain Go structs encoded with a JSON codec, so the
// Connect protocol works without generated protobuf types.
package apiconnect

import (
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec marshals messages as JSON. It registers under the name "json",
// replacing Connect's protobuf JSON codec.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// mux routes procedures of one service to their unary handlers.
type mux map[string]http.Handler

func (m mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func servicePath(service string) string {
	return "/" + service + "/"
}

func procedure(service, method string) string {
	return servicePath(service) + method
}

func trimBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
