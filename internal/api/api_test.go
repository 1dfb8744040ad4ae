package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/model"
	"telekom-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoer struct {
	reqs []gateway.Request
}

func (f *fakeDoer) Do(_ context.Context, req gateway.Request) (json.RawMessage, error) {
	f.reqs = append(f.reqs, req)
	return json.RawMessage(`{"success":true}`), nil
}

func strPtr(s string) *string { return &s }

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	fd := &fakeDoer{}
	svc := New(fd)

	cases := []struct {
		name    string
		call    func() (json.RawMessage, error)
		method  string
		path    string
		session bool
		body    string
	}{
		{"chat.send", func() (json.RawMessage, error) {
			return svc.Chat.SendMessage(ctx, model.ChatMessage{Message: "hi", AIModel: "gemma"})
		}, "POST", "/api/v1/chat/", true, `{"message":"hi","user_id":null,"session_id":null,"ai_model":"gemma"}`},
		{"chat.legacy", func() (json.RawMessage, error) {
			return svc.Chat.SendMessageLegacy(ctx, model.ChatMessage{Message: "hi", AIModel: "gemma"})
		}, "POST", "/api/v1/chat/legacy", true, `{"message":"hi","user_id":null,"session_id":null}`},
		{"chat.clear", func() (json.RawMessage, error) { return svc.Chat.ClearSession(ctx, "s1") },
			"POST", "/api/v1/chat/session/clear", false, `{"session_id":"s1"}`},
		{"chat.health", func() (json.RawMessage, error) { return svc.Chat.Health(ctx) }, "GET", "/api/v1/health", false, ""},
		{"chat.chatHealth", func() (json.RawMessage, error) { return svc.Chat.ChatHealth(ctx) }, "GET", "/api/v1/chat/health", false, ""},
		{"chat.status", func() (json.RawMessage, error) { return svc.Chat.SystemStatus(ctx) }, "GET", "/api/v1/chat/system/status", false, ""},
		{"chat.model", func() (json.RawMessage, error) { return svc.Chat.ModelInfo(ctx) }, "GET", "/api/v1/ai/model-info", false, ""},

		{"user.login", func() (json.RawMessage, error) {
			return svc.User.Login(ctx, model.Credentials{Email: "a@b.c", Password: "pw"})
		}, "POST", "/api/v1/user/login", false, `{"email":"a@b.c","password":"pw"}`},
		{"user.register", func() (json.RawMessage, error) {
			return svc.User.Register(ctx, model.UserRegistration{Email: "a@b.c", Password: "pw", FullName: "A B"})
		}, "POST", "/api/v1/user/register", false, `{"email":"a@b.c","password":"pw","full_name":"A B"}`},
		{"user.profile", func() (json.RawMessage, error) { return svc.User.Profile(ctx) }, "GET", "/api/v1/user/profile", false, ""},
		{"user.current", func() (json.RawMessage, error) { return svc.User.Current(ctx) }, "GET", "/api/v1/user/current", false, ""},
		{"user.byID", func() (json.RawMessage, error) { return svc.User.ByID(ctx, "42") }, "GET", "/api/v1/user/by-id/42", false, ""},
		{"user.update", func() (json.RawMessage, error) {
			return svc.User.UpdateProfile(ctx, model.UserUpdate{Phone: strPtr("0555")})
		}, "PUT", "/api/v1/user/current", false, `{"phone":"0555"}`},
		{"user.logout", func() (json.RawMessage, error) { return svc.User.Logout(ctx) }, "POST", "/api/v1/user/logout", false, ""},
		{"user.active", func() (json.RawMessage, error) { return svc.User.ActiveUsers(ctx) }, "GET", "/api/v1/user/all-active", false, ""},

		{"telekom.test", func() (json.RawMessage, error) { return svc.Telekom.Test(ctx) }, "GET", "/api/v1/telekom/test", false, ""},
		{"telekom.register", func() (json.RawMessage, error) {
			return svc.Telekom.RegisterAuth(ctx, model.UserRegistration{Email: "a@b.c", Password: "pw"})
		}, "POST", "/api/v1/telekom/auth/register", false, `{"email":"a@b.c","password":"pw"}`},
		{"telekom.login", func() (json.RawMessage, error) {
			return svc.Telekom.LoginAuth(ctx, model.Credentials{Email: "a@b.c", Password: "pw"})
		}, "POST", "/api/v1/telekom/auth/login", false, `{"email":"a@b.c","password":"pw"}`},
		{"telekom.bill", func() (json.RawMessage, error) { return svc.Telekom.CurrentBill(ctx) }, "POST", "/api/v1/telekom/billing/current", true, ""},
		{"telekom.history", func() (json.RawMessage, error) { return svc.Telekom.BillingHistory(ctx, 12) },
			"POST", "/api/v1/telekom/billing/history", true, `{"limit":12}`},
		{"telekom.pay", func() (json.RawMessage, error) { return svc.Telekom.PayBill(ctx, "B1", "credit_card") },
			"POST", "/api/v1/telekom/billing/pay", true, `{"bill_id":"B1","method":"credit_card"}`},
		{"telekom.payments", func() (json.RawMessage, error) { return svc.Telekom.PaymentHistory(ctx) },
			"POST", "/api/v1/telekom/billing/payments", true, ""},
		{"telekom.autopay", func() (json.RawMessage, error) { return svc.Telekom.SetAutopay(ctx, true) },
			"POST", "/api/v1/telekom/billing/autopay", true, `{"status":true}`},
		{"telekom.package", func() (json.RawMessage, error) { return svc.Telekom.CurrentPackage(ctx) },
			"POST", "/api/v1/telekom/packages/current", true, ""},
		{"telekom.quotas", func() (json.RawMessage, error) { return svc.Telekom.Quotas(ctx) },
			"POST", "/api/v1/telekom/packages/quotas", true, ""},
		{"telekom.change", func() (json.RawMessage, error) { return svc.Telekom.ChangePackage(ctx, "Full Paket") },
			"POST", "/api/v1/telekom/packages/change", true, `{"new_package_name":"Full Paket"}`},
		{"telekom.available", func() (json.RawMessage, error) { return svc.Telekom.AvailablePackages(ctx) },
			"POST", "/api/v1/telekom/packages/available", false, ""},
		{"telekom.details", func() (json.RawMessage, error) { return svc.Telekom.PackageDetails(ctx, "Full Paket") },
			"POST", "/api/v1/telekom/packages/details", false, `{"package_name":"Full Paket"}`},
		{"telekom.profile", func() (json.RawMessage, error) { return svc.Telekom.CustomerProfile(ctx) },
			"POST", "/api/v1/telekom/customers/profile", true, ""},
		{"telekom.contact", func() (json.RawMessage, error) { return svc.Telekom.UpdateContact(ctx, "email", "x@y.z") },
			"POST", "/api/v1/telekom/customers/contact", true, `{"contact_type":"email","new_value":"x@y.z"}`},
		{"telekom.roaming", func() (json.RawMessage, error) { return svc.Telekom.SetRoaming(ctx, false) },
			"POST", "/api/v1/telekom/services/roaming", true, `{"status":false}`},
		{"telekom.suspend", func() (json.RawMessage, error) { return svc.Telekom.SuspendLine(ctx, "travel") },
			"POST", "/api/v1/telekom/lines/suspend", true, `{"reason":"travel"}`},
		{"telekom.reactivate", func() (json.RawMessage, error) { return svc.Telekom.ReactivateLine(ctx) },
			"POST", "/api/v1/telekom/lines/reactivate", true, ""},
		{"telekom.network", func() (json.RawMessage, error) { return svc.Telekom.NetworkStatus(ctx, "Istanbul") },
			"POST", "/api/v1/telekom/network/status", false, `{"region":"Istanbul"}`},
		{"telekom.speed", func() (json.RawMessage, error) { return svc.Telekom.SpeedTest(ctx) },
			"POST", "/api/v1/telekom/diagnostics/speed-test", true, ""},
		{"telekom.ticket", func() (json.RawMessage, error) {
			return svc.Telekom.CreateTicket(ctx, model.CreateTicketRequest{IssueDescription: "no signal", Category: "technical", Priority: "high"})
		}, "POST", "/api/v1/telekom/support/tickets", true, `{"issue_description":"no signal","category":"technical","priority":"high"}`},
		{"telekom.close", func() (json.RawMessage, error) { return svc.Telekom.CloseTicket(ctx, "T1") },
			"POST", "/api/v1/telekom/support/tickets/close", false, `{"ticket_id":"T1"}`},
		{"telekom.ticketStatus", func() (json.RawMessage, error) { return svc.Telekom.TicketStatus(ctx, "T1") },
			"POST", "/api/v1/telekom/support/tickets/status", false, `{"ticket_id":"T1"}`},
		{"telekom.tickets", func() (json.RawMessage, error) { return svc.Telekom.ListTickets(ctx) },
			"POST", "/api/v1/telekom/support/tickets/list", true, ""},

		{"feedback.submit", func() (json.RawMessage, error) {
			return svc.Feedback.Submit(ctx, model.Feedback{FeedbackType: model.FeedbackPositive, MessageID: "m1", UserQuestion: "q", AIResponse: "a"})
		}, "POST", "/api/v1/feedback", false, `{"feedback_type":"positive","message_id":"m1","user_question":"q","ai_response":"a"}`},
		{"feedback.stats", func() (json.RawMessage, error) { return svc.Feedback.Stats(ctx, "u1") }, "GET", "/api/v1/feedback/stats/u1", false, ""},
		{"feedback.patterns", func() (json.RawMessage, error) { return svc.Feedback.Patterns(ctx) }, "GET", "/api/v1/feedback/patterns", false, ""},
		{"feedback.improvements", func() (json.RawMessage, error) { return svc.Feedback.Improvements(ctx) }, "GET", "/api/v1/feedback/improvements", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fd.reqs = nil
			payload, err := tc.call()
			require.NoError(t, err)
			require.JSONEq(t, `{"success":true}`, string(payload))

			require.Len(t, fd.reqs, 1)
			req := fd.reqs[0]
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, tc.session, req.EmbedSession)

			if tc.body == "" {
				assert.Nil(t, req.Body)
				return
			}
			raw, err := json.Marshal(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tc.body, string(raw))
		})
	}
}

type backendCall struct {
	header http.Header
	body   []byte
}

type backendLog struct {
	mu    sync.Mutex
	calls []backendCall
}

func (l *backendLog) all() []backendCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]backendCall(nil), l.calls...)
}

func newServices(t *testing.T, token string, handler http.HandlerFunc) (*Services, *backendLog) {
	t.Helper()
	calls := &backendLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls.mu.Lock()
		calls.calls = append(calls.calls, backendCall{header: r.Header.Clone(), body: b})
		calls.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	sess := session.NewContext(session.NewMemoryStore())
	if token != "" {
		require.NoError(t, sess.SetCredential(token))
	}
	return New(gateway.New(srv.URL, sess)), calls
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"success":true,"data":{"n":1}}`)
}

func TestSendMessage_CarriesCredentialBothWays(t *testing.T) {
	svc, calls := newServices(t, "tok123", okHandler)

	payload, err := svc.Chat.SendMessage(context.Background(), model.ChatMessage{
		Message:   "hello",
		SessionID: strPtr("s1"),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"data":{"n":1}}`, string(payload))

	got := calls.all()
	require.Len(t, got, 1)
	require.Equal(t, "Bearer tok123", got[0].header.Get("Authorization"))
	require.JSONEq(t,
		`{"message":"hello","user_id":null,"session_id":"s1","session_token":"tok123"}`,
		string(got[0].body))
}

func TestProfile_Unauthorized(t *testing.T) {
	svc, _ := newServices(t, "expired", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid token"}`)
	})

	_, err := svc.User.Profile(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
	require.EqualError(t, err, "session expired, please log in again")
}

func TestCurrentBill_DNSFailure(t *testing.T) {
	sess := session.NewContext(nil)
	require.NoError(t, sess.SetCredential("tok"))
	svc := New(gateway.New("http://telekom-backend.invalid", sess))

	_, err := svc.Telekom.CurrentBill(context.Background())
	require.Equal(t, gateway.KindNetwork, gateway.KindOf(err))
}

func TestAvailablePackages_WithoutCredential(t *testing.T) {
	svc, calls := newServices(t, "", okHandler)

	payload, err := svc.Telekom.AvailablePackages(context.Background())
	require.NoError(t, err)
	require.NotNil(t, payload)

	got := calls.all()
	require.Len(t, got, 1)
	require.Empty(t, got[0].header.Get("Authorization"))
}

func TestStatusKindsAreGroupIndependent(t *testing.T) {
	statuses := map[int]gateway.Kind{
		http.StatusUnauthorized:        gateway.KindUnauthorized,
		http.StatusForbidden:           gateway.KindForbidden,
		http.StatusNotFound:            gateway.KindNotFound,
		http.StatusInternalServerError: gateway.KindServer,
	}

	for status, kind := range statuses {
		status := status
		svc, _ := newServices(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		ctx := context.Background()

		calls := []func() (json.RawMessage, error){
			func() (json.RawMessage, error) { return svc.Chat.Health(ctx) },
			func() (json.RawMessage, error) { return svc.User.Current(ctx) },
			func() (json.RawMessage, error) { return svc.Telekom.Quotas(ctx) },
			func() (json.RawMessage, error) { return svc.Feedback.Stats(ctx, "u1") },
		}
		for i, call := range calls {
			_, err := call()
			assert.Equal(t, kind, gateway.KindOf(err), "status %d call %d", status, i)
		}
	}
}

func TestProfile_RepeatedCallsIndependent(t *testing.T) {
	svc, calls := newServices(t, "tok", okHandler)

	first, err := svc.User.Profile(context.Background())
	require.NoError(t, err)
	second, err := svc.User.Profile(context.Background())
	require.NoError(t, err)

	require.JSONEq(t, string(first), string(second))
	require.Len(t, calls.all(), 2)
	tok, ok := svc.User.d.(*gateway.Gateway).Session().Credential()
	require.True(t, ok)
	require.Equal(t, "tok", tok)
}
