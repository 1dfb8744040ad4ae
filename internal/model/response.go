package model

import "time"

// Envelopes the backend answers with. Operation groups return payloads
// verbatim; these types serve the mock backend and callers that decode.

type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorDetail struct {
	Detail interface{} `json:"detail"`
}

type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type AuthResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SessionToken string `json:"session_token"`
	UserID       int    `json:"user_id"`
}

type Package struct {
	Name        string  `json:"name"`
	MonthlyFee  float64 `json:"monthly_fee"`
	InternetGB  int     `json:"internet_gb"`
	VoiceMin    int     `json:"voice_minutes"`
	SMSCount    int     `json:"sms_count"`
	Description string  `json:"description,omitempty"`
}

type Bill struct {
	BillID   string  `json:"bill_id"`
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"due_date"`
	Status   string  `json:"status"`
	Period   string  `json:"period"`
	PaidWith string  `json:"paid_with,omitempty"`
}

type Ticket struct {
	TicketID         string    `json:"ticket_id"`
	IssueDescription string    `json:"issue_description"`
	Category         string    `json:"category"`
	Priority         string    `json:"priority"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
