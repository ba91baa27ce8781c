package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tallyup/pkg/api"
)

// CalculatorServiceName is the fully-qualified name of the CalculatorService.
const CalculatorServiceName = "tallyup.v1.CalculatorService"

var (
	CalculatorServicePreviewSplitProcedure      = procedure(CalculatorServiceName, "PreviewSplit")
	CalculatorServiceComputeSettlementProcedure = procedure(CalculatorServiceName, "ComputeSettlement")
)

// CalculatorServiceHandler is implemented by the server side of CalculatorService.
type CalculatorServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
}

// NewCalculatorServiceHandler builds an HTTP handler for the service and
// returns the path to mount it on.
func NewCalculatorServiceHandler(svc CalculatorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(CalculatorServiceName), mux{
		CalculatorServicePreviewSplitProcedure:      connect.NewUnaryHandler(CalculatorServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		CalculatorServiceComputeSettlementProcedure: connect.NewUnaryHandler(CalculatorServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...),
	}
}

// CalculatorServiceClient is a client for CalculatorService.
type CalculatorServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
}

// NewCalculatorServiceClient constructs a client for the service at baseURL.
func NewCalculatorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CalculatorServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &calculatorServiceClient{
		previewSplit:      connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+CalculatorServicePreviewSplitProcedure, opts...),
		computeSettlement: connect.NewClient[api.ComputeSettlementRequest, api.ComputeSettlementResponse](httpClient, baseURL+CalculatorServiceComputeSettlementProcedure, opts...),
	}
}

type calculatorServiceClient struct {
	previewSplit      *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	computeSettlement *connect.Client[api.ComputeSettlementRequest, api.ComputeSettlementResponse]
}

func (c *calculatorServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *calculatorServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}
