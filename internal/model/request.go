package model

// Request bodies for the v1 endpoint catalog. Fields carrying the session
// credential are not declared here; the gateway adds "session_token" itself.

type ChatMessage struct {
	Message   string  `json:"message" binding:"required"`
	UserID    *int    `json:"user_id"`
	SessionID *string `json:"session_id"`
	// AIModel selects the backend model; empty means the backend default.
	AIModel string `json:"ai_model,omitempty"`
}

type ClearSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserRegistration struct {
	Username    string                 `json:"username,omitempty"`
	Password    string                 `json:"password" binding:"required"`
	Email       string                 `json:"email" binding:"required"`
	FullName    string                 `json:"full_name,omitempty"`
	Phone       string                 `json:"phone,omitempty"`
	BirthDate   string                 `json:"birth_date,omitempty"`
	Gender      string                 `json:"gender,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

type UserUpdate struct {
	Username    *string                `json:"username,omitempty"`
	Email       *string                `json:"email,omitempty"`
	FullName    *string                `json:"full_name,omitempty"`
	Phone       *string                `json:"phone,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

type BillingHistoryRequest struct {
	Limit int `json:"limit"`
}

type PayBillRequest struct {
	BillID string `json:"bill_id" binding:"required"`
	Method string `json:"method" binding:"required"`
}

type StatusToggleRequest struct {
	Status bool `json:"status"`
}

type ChangePackageRequest struct {
	NewPackageName string `json:"new_package_name" binding:"required"`
}

type PackageDetailsRequest struct {
	PackageName string `json:"package_name" binding:"required"`
}

type ContactUpdateRequest struct {
	ContactType string `json:"contact_type" binding:"required"`
	NewValue    string `json:"new_value" binding:"required"`
}

type NetworkStatusRequest struct {
	Region string `json:"region" binding:"required"`
}

type CreateTicketRequest struct {
	IssueDescription string `json:"issue_description" binding:"required"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
}

type TicketRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
}

type SuspendLineRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
)

type Feedback struct {
	FeedbackType FeedbackType           `json:"feedback_type" binding:"required"`
	MessageID    string                 `json:"message_id" binding:"required"`
	UserQuestion string                 `json:"user_question"`
	AIResponse   string                 `json:"ai_response"`
	UserID       string                 `json:"user_id,omitempty"`
	SessionID    string                 `json:"session_id,omitempty"`
	Context      map[string]interface{} `json:"context,omitempty"`
}
