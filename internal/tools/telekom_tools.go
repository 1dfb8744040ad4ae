package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"telekom-gateway/internal/api"
	"telekom-gateway/internal/model"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

var _ tool.InvokableTool = (*TelekomTool)(nil)

type runFunc func(ctx context.Context, args toolArgs) (json.RawMessage, error)

// TelekomTool implements tool.InvokableTool over one Telekom operation.
type TelekomTool struct {
	name   string
	desc   string
	params map[string]*schema.ParameterInfo
	run    runFunc
}

func (t *TelekomTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	info := &schema.ToolInfo{
		Name: t.name,
		Desc: t.desc,
	}
	if len(t.params) > 0 {
		info.ParamsOneOf = schema.NewParamsOneOfByParams(t.params)
	}
	return info, nil
}

func (t *TelekomTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	args := toolArgs{}
	if strings.TrimSpace(argumentsInJSON) != "" {
		if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
			return "", fmt.Errorf("failed to parse arguments: %w", err)
		}
	}

	if err := t.checkArgs(args); err != nil {
		return errorResult(t.name, err), nil
	}

	payload, err := t.run(ctx, args)
	if err != nil {
		return errorResult(t.name, err), nil
	}
	return dataResult(payload)
}

// checkArgs rejects missing required arguments and provided arguments whose
// JSON type or value does not match the declared parameter.
func (t *TelekomTool) checkArgs(args toolArgs) error {
	for _, name := range slices.Sorted(maps.Keys(t.params)) {
		p := t.params[name]
		if !args.has(name) {
			if p.Required {
				return fmt.Errorf("missing required argument %q", name)
			}
			continue
		}

		v := args[name]
		if !matchesType(v, p.Type) {
			return fmt.Errorf("argument %q must be %s", name, p.Type)
		}
		if s, ok := v.(string); ok && len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
			return fmt.Errorf("argument %q must be one of %s", name, strings.Join(p.Enum, ", "))
		}
	}
	return nil
}

func matchesType(v interface{}, dt schema.DataType) bool {
	switch dt {
	case schema.String:
		_, ok := v.(string)
		return ok
	case schema.Boolean:
		_, ok := v.(bool)
		return ok
	case schema.Integer:
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case schema.Number:
		_, ok := v.(float64)
		return ok
	default:
		return true
	}
}

type toolArgs map[string]interface{}

func (a toolArgs) has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

func (a toolArgs) str(name, def string) string {
	if s, ok := a[name].(string); ok && s != "" {
		return s
	}
	return def
}

func (a toolArgs) integer(name string, def int) int {
	if f, ok := a[name].(float64); ok {
		return int(f)
	}
	return def
}

func (a toolArgs) boolean(name string, def bool) bool {
	if b, ok := a[name].(bool); ok {
		return b
	}
	return def
}

func strParam(desc string, required bool, enum ...string) *schema.ParameterInfo {
	return &schema.ParameterInfo{Type: schema.String, Desc: desc, Required: required, Enum: enum}
}

// GetTelekomTools exposes every Telekom operation to an agent. Customer
// scoped tools act for whoever owns the gateway's session credential.
func GetTelekomTools(t *api.Telekom) []tool.BaseTool {
	noArgs := func(call func(context.Context) (json.RawMessage, error)) runFunc {
		return func(ctx context.Context, _ toolArgs) (json.RawMessage, error) {
			return call(ctx)
		}
	}

	return []tool.BaseTool{
		&TelekomTool{
			name: "get_current_bill",
			desc: "Returns the customer's current unpaid bill.",
			run:  noArgs(t.CurrentBill),
		},
		&TelekomTool{
			name: "get_past_bills",
			desc: "Lists the customer's previous bills, newest first.",
			params: map[string]*schema.ParameterInfo{
				"limit": {Type: schema.Integer, Desc: "How many bills to return, default 3"},
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.BillingHistory(ctx, a.integer("limit", 3))
			},
		},
		&TelekomTool{
			name: "pay_bill",
			desc: "Pays a bill by its id.",
			params: map[string]*schema.ParameterInfo{
				"bill_id": strParam("Unique id of the bill to pay", true),
				"method":  strParam("Payment method", false, "credit_card", "bank_transfer"),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.PayBill(ctx, a.str("bill_id", ""), a.str("method", "credit_card"))
			},
		},
		&TelekomTool{
			name: "get_payment_history",
			desc: "Lists the customer's past payments.",
			run:  noArgs(t.PaymentHistory),
		},
		&TelekomTool{
			name: "setup_autopay",
			desc: "Turns automatic bill payment on or off.",
			params: map[string]*schema.ParameterInfo{
				"status": {Type: schema.Boolean, Desc: "true to enable autopay", Required: true},
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.SetAutopay(ctx, a.boolean("status", false))
			},
		},
		&TelekomTool{
			name: "get_customer_package",
			desc: "Returns the customer's current tariff and package.",
			run:  noArgs(t.CurrentPackage),
		},
		&TelekomTool{
			name: "get_remaining_quotas",
			desc: "Returns remaining internet, voice and SMS quotas.",
			run:  noArgs(t.Quotas),
		},
		&TelekomTool{
			name: "change_package",
			desc: "Switches the customer to another package.",
			params: map[string]*schema.ParameterInfo{
				"new_package_name": strParam("Exact name of the target package", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.ChangePackage(ctx, a.str("new_package_name", ""))
			},
		},
		&TelekomTool{
			name: "get_available_packages",
			desc: "Lists every package the customer can switch to.",
			run:  noArgs(t.AvailablePackages),
		},
		&TelekomTool{
			name: "get_package_details",
			desc: "Returns the full details of one package.",
			params: map[string]*schema.ParameterInfo{
				"package_name": strParam("Exact package name", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.PackageDetails(ctx, a.str("package_name", ""))
			},
		},
		&TelekomTool{
			name: "get_customer_profile",
			desc: "Returns the customer's profile and contact details.",
			run:  noArgs(t.CustomerProfile),
		},
		&TelekomTool{
			name: "update_customer_contact",
			desc: "Updates one contact field of the customer.",
			params: map[string]*schema.ParameterInfo{
				"contact_type": strParam("Which contact field to change", true, "phone", "email", "address"),
				"new_value":    strParam("New value for the field", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.UpdateContact(ctx, a.str("contact_type", ""), a.str("new_value", ""))
			},
		},
		&TelekomTool{
			name: "enable_roaming",
			desc: "Enables or disables roaming on the customer's line.",
			params: map[string]*schema.ParameterInfo{
				"status": {Type: schema.Boolean, Desc: "true to enable roaming", Required: true},
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.SetRoaming(ctx, a.boolean("status", false))
			},
		},
		&TelekomTool{
			name: "check_network_status",
			desc: "Checks network health and active outages in a region.",
			params: map[string]*schema.ParameterInfo{
				"region": strParam("Region name", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.NetworkStatus(ctx, a.str("region", ""))
			},
		},
		&TelekomTool{
			name: "create_fault_ticket",
			desc: "Opens a technical support ticket.",
			params: map[string]*schema.ParameterInfo{
				"issue_description": strParam("Short description of the problem", true),
				"category":          strParam("Ticket category, default technical", false),
				"priority":          strParam("Ticket priority, default medium", false, "low", "medium", "high"),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.CreateTicket(ctx, model.CreateTicketRequest{
					IssueDescription: a.str("issue_description", ""),
					Category:         a.str("category", "technical"),
					Priority:         a.str("priority", "medium"),
				})
			},
		},
		&TelekomTool{
			name: "close_fault_ticket",
			desc: "Closes an open support ticket.",
			params: map[string]*schema.ParameterInfo{
				"ticket_id": strParam("Ticket id", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.CloseTicket(ctx, a.str("ticket_id", ""))
			},
		},
		&TelekomTool{
			name: "get_fault_ticket_status",
			desc: "Returns the current status of a support ticket.",
			params: map[string]*schema.ParameterInfo{
				"ticket_id": strParam("Ticket id", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.TicketStatus(ctx, a.str("ticket_id", ""))
			},
		},
		&TelekomTool{
			name: "get_users_tickets",
			desc: "Lists the customer's support tickets.",
			run:  noArgs(t.ListTickets),
		},
		&TelekomTool{
			name: "test_internet_speed",
			desc: "Runs a speed test on the customer's connection.",
			run:  noArgs(t.SpeedTest),
		},
		&TelekomTool{
			name: "suspend_line",
			desc: "Temporarily suspends the customer's line.",
			params: map[string]*schema.ParameterInfo{
				"reason": strParam("Why the line is being suspended", true),
			},
			run: func(ctx context.Context, a toolArgs) (json.RawMessage, error) {
				return t.SuspendLine(ctx, a.str("reason", ""))
			},
		},
		&TelekomTool{
			name: "reactivate_line",
			desc: "Reactivates a suspended line.",
			run:  noArgs(t.ReactivateLine),
		},
	}
}
