package mockserver

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"telekom-gateway/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID           int
	Username     string
	Email        string
	FullName     string
	Phone        string
	Address      string
	PasswordHash []byte
	Package      string
	Autopay      bool
	Roaming      bool
	Suspended    bool
	Preferences  map[string]interface{}
	LastLogin    time.Time
}

// view must be called with the state lock held. The result shares no maps
// with the account.
func (a *account) view() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     a.ID,
		"username":    a.Username,
		"email":       a.Email,
		"full_name":   a.FullName,
		"phone":       a.Phone,
		"address":     a.Address,
		"preferences": maps.Clone(a.Preferences),
		"is_active":   !a.Suspended,
		"last_login":  a.LastLogin,
	}
}

type ticketRecord struct {
	model.Ticket
	OwnerID int
}

type payment struct {
	PaymentID string    `json:"payment_id"`
	BillID    string    `json:"bill_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
}

type state struct {
	mu       sync.RWMutex
	nextID   int
	accounts map[int]*account
	byEmail  map[string]int
	tokens   map[string]int
	packages map[string]model.Package
	bills    map[int][]*model.Bill
	payments map[int][]payment
	tickets  map[string]*ticketRecord
	feedback []model.Feedback
}

var packageCatalog = []model.Package{
	{Name: "Mega İnternet", MonthlyFee: 69.50, InternetGB: 50, VoiceMin: 1000, SMSCount: 500},
	{Name: "Süper Konuşma", MonthlyFee: 59.90, InternetGB: 25, VoiceMin: 2000, SMSCount: 1000},
	{Name: "Full Paket", MonthlyFee: 89.90, InternetGB: 100, VoiceMin: 3000, SMSCount: 1000},
	{Name: "Öğrenci Dostu Tarife", MonthlyFee: 49.90, InternetGB: 30, VoiceMin: 500, SMSCount: 250},
}

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
)

func newState() *state {
	s := &state{
		nextID:   1000,
		accounts: make(map[int]*account),
		byEmail:  make(map[string]int),
		tokens:   make(map[string]int),
		packages: make(map[string]model.Package),
		bills:    make(map[int][]*model.Bill),
		payments: make(map[int][]payment),
		tickets:  make(map[string]*ticketRecord),
	}
	for _, p := range packageCatalog {
		s.packages[p.Name] = p
	}

	demo, err := s.register(model.UserRegistration{
		Username: "demo",
		Email:    DemoEmail,
		Password: DemoPassword,
		FullName: "Demo Müşteri",
		Phone:    "+905551234567",
	})
	if err == nil {
		demo.Address = "İstanbul, Test Mahallesi 1"
	}
	return s
}

// register must not be called with s.mu held.
func (s *state) register(reg model.UserRegistration) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[reg.Email]; exists {
		return nil, errEmailTaken
	}

	s.nextID++
	acc := &account{
		ID:           s.nextID,
		Username:     reg.Username,
		Email:        reg.Email,
		FullName:     reg.FullName,
		Phone:        reg.Phone,
		PasswordHash: hash,
		Package:      packageCatalog[0].Name,
		Preferences:  reg.Preferences,
	}
	if acc.Preferences == nil {
		acc.Preferences = map[string]interface{}{}
	}
	s.accounts[acc.ID] = acc
	s.byEmail[acc.Email] = acc.ID
	s.bills[acc.ID] = seedBills(acc.ID, s.packages[acc.Package].MonthlyFee)
	return acc, nil
}

func seedBills(userID int, fee float64) []*model.Bill {
	now := time.Now()
	bills := make([]*model.Bill, 0, 4)
	for i := 0; i < 4; i++ {
		period := now.AddDate(0, -i, 0)
		status := "paid"
		if i == 0 {
			status = "unpaid"
		}
		bills = append(bills, &model.Bill{
			BillID:  fmt.Sprintf("F-%d-%s", userID, period.Format("200601")),
			Amount:  fee,
			DueDate: period.AddDate(0, 0, 15).Format("2006-01-02"),
			Status:  status,
			Period:  period.Format("2006-01"),
		})
	}
	return bills
}

// login returns a fresh session token.
func (s *state) login(email, password string) (string, *account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return "", nil, false
	}
	acc := s.accounts[id]
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		return "", nil, false
	}

	token := uuid.NewString()
	s.tokens[token] = id
	acc.LastLogin = time.Now()
	return token, acc, true
}

func (s *state) issueToken(acc *account) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.tokens[token] = acc.ID
	return token
}

func (s *state) accountForToken(token string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	return s.accounts[id], true
}

func (s *state) revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
}
