package api

import (
	"context"
	"encoding/json"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/model"
)

const telekomPrefix = prefix + "/telekom"

// Telekom covers billing, packages, customer, support, services and
// diagnostics. Customer-scoped calls embed session_token in the body; the
// catalog lookups (packages, network, ticket by id) do not.
type Telekom struct {
	d Doer
}

func NewTelekom(d Doer) *Telekom {
	return &Telekom{d: d}
}

func (t *Telekom) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return t.d.Do(ctx, gateway.Post(telekomPrefix+path, body))
}

func (t *Telekom) postSession(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return t.d.Do(ctx, gateway.Post(telekomPrefix+path, body).WithSession())
}

func (t *Telekom) Test(ctx context.Context) (json.RawMessage, error) {
	return t.d.Do(ctx, gateway.Get(telekomPrefix+"/test"))
}

// Auth

func (t *Telekom) RegisterAuth(ctx context.Context, user model.UserRegistration) (json.RawMessage, error) {
	return t.post(ctx, "/auth/register", user)
}

func (t *Telekom) LoginAuth(ctx context.Context, creds model.Credentials) (json.RawMessage, error) {
	return t.post(ctx, "/auth/login", creds)
}

// Billing

func (t *Telekom) CurrentBill(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/billing/current", nil)
}

func (t *Telekom) BillingHistory(ctx context.Context, limit int) (json.RawMessage, error) {
	return t.postSession(ctx, "/billing/history", model.BillingHistoryRequest{Limit: limit})
}

func (t *Telekom) PayBill(ctx context.Context, billID, method string) (json.RawMessage, error) {
	return t.postSession(ctx, "/billing/pay", model.PayBillRequest{BillID: billID, Method: method})
}

func (t *Telekom) PaymentHistory(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/billing/payments", nil)
}

func (t *Telekom) SetAutopay(ctx context.Context, enabled bool) (json.RawMessage, error) {
	return t.postSession(ctx, "/billing/autopay", model.StatusToggleRequest{Status: enabled})
}

// Packages

func (t *Telekom) CurrentPackage(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/packages/current", nil)
}

func (t *Telekom) Quotas(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/packages/quotas", nil)
}

func (t *Telekom) ChangePackage(ctx context.Context, newPackage string) (json.RawMessage, error) {
	return t.postSession(ctx, "/packages/change", model.ChangePackageRequest{NewPackageName: newPackage})
}

func (t *Telekom) AvailablePackages(ctx context.Context) (json.RawMessage, error) {
	return t.post(ctx, "/packages/available", nil)
}

func (t *Telekom) PackageDetails(ctx context.Context, packageName string) (json.RawMessage, error) {
	return t.post(ctx, "/packages/details", model.PackageDetailsRequest{PackageName: packageName})
}

// Customer

func (t *Telekom) CustomerProfile(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/customers/profile", nil)
}

func (t *Telekom) UpdateContact(ctx context.Context, contactType, newValue string) (json.RawMessage, error) {
	return t.postSession(ctx, "/customers/contact", model.ContactUpdateRequest{ContactType: contactType, NewValue: newValue})
}

// Services and lines

func (t *Telekom) SetRoaming(ctx context.Context, enabled bool) (json.RawMessage, error) {
	return t.postSession(ctx, "/services/roaming", model.StatusToggleRequest{Status: enabled})
}

func (t *Telekom) SuspendLine(ctx context.Context, reason string) (json.RawMessage, error) {
	return t.postSession(ctx, "/lines/suspend", model.SuspendLineRequest{Reason: reason})
}

func (t *Telekom) ReactivateLine(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/lines/reactivate", nil)
}

// Network and diagnostics

func (t *Telekom) NetworkStatus(ctx context.Context, region string) (json.RawMessage, error) {
	return t.post(ctx, "/network/status", model.NetworkStatusRequest{Region: region})
}

func (t *Telekom) SpeedTest(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/diagnostics/speed-test", nil)
}

// Support

func (t *Telekom) CreateTicket(ctx context.Context, req model.CreateTicketRequest) (json.RawMessage, error) {
	return t.postSession(ctx, "/support/tickets", req)
}

func (t *Telekom) CloseTicket(ctx context.Context, ticketID string) (json.RawMessage, error) {
	return t.post(ctx, "/support/tickets/close", model.TicketRequest{TicketID: ticketID})
}

func (t *Telekom) TicketStatus(ctx context.Context, ticketID string) (json.RawMessage, error) {
	return t.post(ctx, "/support/tickets/status", model.TicketRequest{TicketID: ticketID})
}

func (t *Telekom) ListTickets(ctx context.Context) (json.RawMessage, error) {
	return t.postSession(ctx, "/support/tickets/list", nil)
}
