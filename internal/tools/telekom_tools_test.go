package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"telekom-gateway/internal/api"
	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/session"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/require"
)

type lastRequest struct {
	mu   sync.Mutex
	path string
	body []byte
}

func newToolset(t *testing.T, status int, reply string) (map[string]tool.InvokableTool, *lastRequest) {
	t.Helper()
	last := &lastRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		last.mu.Lock()
		last.path, last.body = r.URL.Path, b
		last.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	sess := session.NewContext(nil)
	require.NoError(t, sess.SetCredential("tok"))
	svc := api.New(gateway.New(srv.URL, sess))

	byName := map[string]tool.InvokableTool{}
	for _, bt := range GetTelekomTools(svc.Telekom) {
		info, err := bt.Info(context.Background())
		require.NoError(t, err)
		inv, ok := bt.(tool.InvokableTool)
		require.True(t, ok)
		byName[info.Name] = inv
	}
	return byName, last
}

func TestGetTelekomTools_Names(t *testing.T) {
	tools, _ := newToolset(t, http.StatusOK, `{}`)
	require.Len(t, tools, 21)
	for _, name := range []string{"get_current_bill", "pay_bill", "create_fault_ticket", "reactivate_line"} {
		require.Contains(t, tools, name)
	}
}

func TestInvokableRun_Success(t *testing.T) {
	tools, last := newToolset(t, http.StatusOK, `{"bill_id":"B1","amount":120.5}`)

	out, err := tools["pay_bill"].InvokableRun(context.Background(), `{"bill_id":"B1"}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"data":{"bill_id":"B1","amount":120.5}}`, out)

	last.mu.Lock()
	defer last.mu.Unlock()
	require.Equal(t, "/api/v1/telekom/billing/pay", last.path)
	require.JSONEq(t, `{"bill_id":"B1","method":"credit_card","session_token":"tok"}`, string(last.body))
}

func TestInvokableRun_DefaultsAndNoArgs(t *testing.T) {
	tools, last := newToolset(t, http.StatusOK, `[]`)

	_, err := tools["get_past_bills"].InvokableRun(context.Background(), ``)
	require.NoError(t, err)
	last.mu.Lock()
	require.JSONEq(t, `{"limit":3,"session_token":"tok"}`, string(last.body))
	last.mu.Unlock()

	out, err := tools["get_available_packages"].InvokableRun(context.Background(), `{}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"data":[]}`, out)
}

func TestInvokableRun_GatewayErrorBecomesResult(t *testing.T) {
	tools, _ := newToolset(t, http.StatusNotFound, `{"detail":"ticket not found"}`)

	out, err := tools["get_fault_ticket_status"].InvokableRun(context.Background(), `{"ticket_id":"T9"}`)
	require.NoError(t, err)

	isErr, res := IsErrorResult(out)
	require.True(t, isErr)
	require.Equal(t, string(gateway.KindNotFound), res.Kind)
	require.Equal(t, gateway.MsgNotFound, res.Error)
	require.Equal(t, "get_fault_ticket_status", res.ToolName)
}

func TestInvokableRun_MissingRequiredArgument(t *testing.T) {
	tools, last := newToolset(t, http.StatusOK, `{}`)

	out, err := tools["change_package"].InvokableRun(context.Background(), `{}`)
	require.NoError(t, err)
	isErr, res := IsErrorResult(out)
	require.True(t, isErr)
	require.Contains(t, res.Error, "new_package_name")

	last.mu.Lock()
	defer last.mu.Unlock()
	require.Empty(t, last.path)
}

func TestInvokableRun_BadJSON(t *testing.T) {
	tools, _ := newToolset(t, http.StatusOK, `{}`)
	_, err := tools["suspend_line"].InvokableRun(context.Background(), `{"reason":`)
	require.Error(t, err)
}

func TestDataResult_NonJSONPayload(t *testing.T) {
	out, err := dataResult(json.RawMessage("plain text"))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"data":"plain text"}`, out)

	isErr, _ := IsErrorResult(out)
	require.False(t, isErr)
}

func TestInvokableRun_MistypedArguments(t *testing.T) {
	cases := []struct {
		tool    string
		args    string
		wantErr string
	}{
		{"enable_roaming", `{"status":"true"}`, `argument "status" must be boolean`},
		{"setup_autopay", `{"status":1}`, `argument "status" must be boolean`},
		{"pay_bill", `{"bill_id":12345}`, `argument "bill_id" must be string`},
		{"pay_bill", `{"bill_id":"B1","method":"cash"}`, `argument "method" must be one of credit_card, bank_transfer`},
		{"get_past_bills", `{"limit":"5"}`, `argument "limit" must be integer`},
		{"get_past_bills", `{"limit":2.5}`, `argument "limit" must be integer`},
		{"update_customer_contact", `{"contact_type":"fax","new_value":"x"}`, `argument "contact_type" must be one of phone, email, address`},
	}

	for _, tc := range cases {
		t.Run(tc.tool, func(t *testing.T) {
			tools, last := newToolset(t, http.StatusOK, `{}`)

			out, err := tools[tc.tool].InvokableRun(context.Background(), tc.args)
			require.NoError(t, err)

			isErr, res := IsErrorResult(out)
			require.True(t, isErr, out)
			require.Equal(t, tc.wantErr, res.Error)
			require.Empty(t, res.Kind)

			last.mu.Lock()
			defer last.mu.Unlock()
			require.Empty(t, last.path, "mistyped call must not reach the backend")
		})
	}
}

func TestInvokableRun_WellTypedBooleanIsForwarded(t *testing.T) {
	tools, last := newToolset(t, http.StatusOK, `{}`)

	_, err := tools["enable_roaming"].InvokableRun(context.Background(), `{"status":true}`)
	require.NoError(t, err)

	last.mu.Lock()
	defer last.mu.Unlock()
	require.JSONEq(t, `{"status":true,"session_token":"tok"}`, string(last.body))
}
