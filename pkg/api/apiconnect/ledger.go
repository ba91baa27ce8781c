package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tallyup/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "tallyup.v1.LedgerService"

var (
	LedgerServiceCreateLedgerProcedure    = procedure(LedgerServiceName, "CreateLedger")
	LedgerServiceGetLedgerProcedure       = procedure(LedgerServiceName, "GetLedger")
	LedgerServiceListLedgersProcedure     = procedure(LedgerServiceName, "ListLedgers")
	LedgerServiceDeleteLedgerProcedure    = procedure(LedgerServiceName, "DeleteLedger")
	LedgerServiceSetParticipantsProcedure = procedure(LedgerServiceName, "SetParticipants")
	LedgerServiceAddExpenseProcedure      = procedure(LedgerServiceName, "AddExpense")
	LedgerServiceUndoLastExpenseProcedure = procedure(LedgerServiceName, "UndoLastExpense")
	LedgerServiceClearExpensesProcedure   = procedure(LedgerServiceName, "ClearExpenses")
	LedgerServiceRecordPaymentProcedure   = procedure(LedgerServiceName, "RecordPayment")
	LedgerServiceDeletePaymentProcedure   = procedure(LedgerServiceName, "DeletePayment")
	LedgerServiceGetSummaryProcedure      = procedure(LedgerServiceName, "GetSummary")
	LedgerServiceExportCSVProcedure       = procedure(LedgerServiceName, "ExportCSV")
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	CreateLedger(context.Context, *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	ListLedgers(context.Context, *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error)
	DeleteLedger(context.Context, *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error)
	SetParticipants(context.Context, *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UndoLastExpense(context.Context, *connect.Request[api.UndoLastExpenseRequest]) (*connect.Response[api.UndoLastExpenseResponse], error)
	ClearExpenses(context.Context, *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	ExportCSV(context.Context, *connect.Request[api.ExportCSVRequest]) (*connect.Response[api.ExportCSVResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for the service and returns
// the path to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(LedgerServiceName), mux{
		LedgerServiceCreateLedgerProcedure:    connect.NewUnaryHandler(LedgerServiceCreateLedgerProcedure, svc.CreateLedger, opts...),
		LedgerServiceGetLedgerProcedure:       connect.NewUnaryHandler(LedgerServiceGetLedgerProcedure, svc.GetLedger, opts...),
		LedgerServiceListLedgersProcedure:     connect.NewUnaryHandler(LedgerServiceListLedgersProcedure, svc.ListLedgers, opts...),
		LedgerServiceDeleteLedgerProcedure:    connect.NewUnaryHandler(LedgerServiceDeleteLedgerProcedure, svc.DeleteLedger, opts...),
		LedgerServiceSetParticipantsProcedure: connect.NewUnaryHandler(LedgerServiceSetParticipantsProcedure, svc.SetParticipants, opts...),
		LedgerServiceAddExpenseProcedure:      connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceUndoLastExpenseProcedure: connect.NewUnaryHandler(LedgerServiceUndoLastExpenseProcedure, svc.UndoLastExpense, opts...),
		LedgerServiceClearExpensesProcedure:   connect.NewUnaryHandler(LedgerServiceClearExpensesProcedure, svc.ClearExpenses, opts...),
		LedgerServiceRecordPaymentProcedure:   connect.NewUnaryHandler(LedgerServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		LedgerServiceDeletePaymentProcedure:   connect.NewUnaryHandler(LedgerServiceDeletePaymentProcedure, svc.DeletePayment, opts...),
		LedgerServiceGetSummaryProcedure:      connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...),
		LedgerServiceExportCSVProcedure:       connect.NewUnaryHandler(LedgerServiceExportCSVProcedure, svc.ExportCSV, opts...),
	}
}

// LedgerServiceClient is a client for LedgerService.
type LedgerServiceClient interface {
	CreateLedger(context.Context, *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	ListLedgers(context.Context, *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error)
	DeleteLedger(context.Context, *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error)
	SetParticipants(context.Context, *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UndoLastExpense(context.Context, *connect.Request[api.UndoLastExpenseRequest]) (*connect.Response[api.UndoLastExpenseResponse], error)
	ClearExpenses(context.Context, *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	ExportCSV(context.Context, *connect.Request[api.ExportCSVRequest]) (*connect.Response[api.ExportCSVResponse], error)
}

// NewLedgerServiceClient constructs a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		createLedger:    connect.NewClient[api.CreateLedgerRequest, api.CreateLedgerResponse](httpClient, baseURL+LedgerServiceCreateLedgerProcedure, opts...),
		getLedger:       connect.NewClient[api.GetLedgerRequest, api.GetLedgerResponse](httpClient, baseURL+LedgerServiceGetLedgerProcedure, opts...),
		listLedgers:     connect.NewClient[api.ListLedgersRequest, api.ListLedgersResponse](httpClient, baseURL+LedgerServiceListLedgersProcedure, opts...),
		deleteLedger:    connect.NewClient[api.DeleteLedgerRequest, api.DeleteLedgerResponse](httpClient, baseURL+LedgerServiceDeleteLedgerProcedure, opts...),
		setParticipants: connect.NewClient[api.SetParticipantsRequest, api.SetParticipantsResponse](httpClient, baseURL+LedgerServiceSetParticipantsProcedure, opts...),
		addExpense:      connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		undoLastExpense: connect.NewClient[api.UndoLastExpenseRequest, api.UndoLastExpenseResponse](httpClient, baseURL+LedgerServiceUndoLastExpenseProcedure, opts...),
		clearExpenses:   connect.NewClient[api.ClearExpensesRequest, api.ClearExpensesResponse](httpClient, baseURL+LedgerServiceClearExpensesProcedure, opts...),
		recordPayment:   connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+LedgerServiceRecordPaymentProcedure, opts...),
		deletePayment:   connect.NewClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL+LedgerServiceDeletePaymentProcedure, opts...),
		getSummary:      connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		exportCSV:       connect.NewClient[api.ExportCSVRequest, api.ExportCSVResponse](httpClient, baseURL+LedgerServiceExportCSVProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createLedger    *connect.Client[api.CreateLedgerRequest, api.CreateLedgerResponse]
	getLedger       *connect.Client[api.GetLedgerRequest, api.GetLedgerResponse]
	listLedgers     *connect.Client[api.ListLedgersRequest, api.ListLedgersResponse]
	deleteLedger    *connect.Client[api.DeleteLedgerRequest, api.DeleteLedgerResponse]
	setParticipants *connect.Client[api.SetParticipantsRequest, api.SetParticipantsResponse]
	addExpense      *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	undoLastExpense *connect.Client[api.UndoLastExpenseRequest, api.UndoLastExpenseResponse]
	clearExpenses   *connect.Client[api.ClearExpensesRequest, api.ClearExpensesResponse]
	recordPayment   *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	deletePayment   *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
	getSummary      *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	exportCSV       *connect.Client[api.ExportCSVRequest, api.ExportCSVResponse]
}

func (c *ledgerServiceClient) CreateLedger(ctx context.Context, req *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error) {
	return c.createLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListLedgers(ctx context.Context, req *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error) {
	return c.listLedgers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteLedger(ctx context.Context, req *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error) {
	return c.deleteLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetParticipants(ctx context.Context, req *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error) {
	return c.setParticipants.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UndoLastExpense(ctx context.Context, req *connect.Request[api.UndoLastExpenseRequest]) (*connect.Response[api.UndoLastExpenseResponse], error) {
	return c.undoLastExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ClearExpenses(ctx context.Context, req *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error) {
	return c.clearExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ExportCSV(ctx context.Context, req *connect.Request[api.ExportCSVRequest]) (*connect.Response[api.ExportCSVResponse], error) {
	return c.exportCSV.CallUnary(ctx, req)
}
