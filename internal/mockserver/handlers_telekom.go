package mockserver

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"sort"
	"time"

	"telekom-gateway/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) telekomTest(c *gin.Context) {
	respondOK(c, "telekom api reachable", gin.H{"packages": len(packageCatalog)})
}

// Billing

func (s *Server) currentBill(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	for _, b := range s.state.bills[acc.ID] {
		if b.Status == "unpaid" {
			respondOK(c, "current bill", *b)
			return
		}
	}
	respondOK(c, "no unpaid bill", nil)
}

func (s *Server) billingHistory(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.BillingHistoryRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	bills := make([]model.Bill, 0)
	for _, b := range s.state.bills[acc.ID] {
		if b.Status == "paid" {
			bills = append(bills, *b)
		}
	}
	if req.Limit > 0 && len(bills) > req.Limit {
		bills = bills[:req.Limit]
	}
	respondOK(c, "billing history", bills)
}

func (s *Server) payBill(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.PayBillRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, b := range s.state.bills[acc.ID] {
		if b.BillID != req.BillID {
			continue
		}
		if b.Status == "paid" {
			respondDetail(c, http.StatusBadRequest, "Bill already paid")
			return
		}
		b.Status = "paid"
		b.PaidWith = req.Method
		p := payment{
			PaymentID: uuid.NewString(),
			BillID:    b.BillID,
			Amount:    b.Amount,
			Method:    req.Method,
			PaidAt:    time.Now(),
		}
		s.state.payments[acc.ID] = append(s.state.payments[acc.ID], p)
		respondOK(c, "bill paid", p)
		return
	}
	respondDetail(c, http.StatusNotFound, "Bill not found")
}

func (s *Server) paymentHistory(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	payments := append([]payment{}, s.state.payments[acc.ID]...)
	respondOK(c, "payment history", payments)
}

func (s *Server) setAutopay(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.StatusToggleRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	acc.Autopay = req.Status
	s.state.mu.Unlock()

	respondOK(c, "autopay updated", gin.H{"autopay": req.Status})
}

// Packages

func (s *Server) currentPackage(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	respondOK(c, "current package", s.state.packages[acc.Package])
}

func (s *Server) quotas(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	pkg := s.state.packages[acc.Package]
	s.state.mu.RUnlock()

	// Usage is derived from the account id so repeated calls agree.
	used := usageRatio(acc.ID)
	respondOK(c, "remaining quotas", gin.H{
		"package":        pkg.Name,
		"internet_gb":    float64(pkg.InternetGB) * (1 - used),
		"voice_minutes":  int(float64(pkg.VoiceMin) * (1 - used)),
		"sms_count":      int(float64(pkg.SMSCount) * (1 - used)),
		"period_ends_at": time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	})
}

func usageRatio(id int) float64 {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%d", id)
	return float64(h.Sum32()%70) / 100
}

func (s *Server) changePackage(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.ChangePackageRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	pkg, exists := s.state.packages[req.NewPackageName]
	if !exists {
		respondDetail(c, http.StatusNotFound, "Package not found")
		return
	}
	if acc.Package == pkg.Name {
		respondDetail(c, http.StatusBadRequest, "Already subscribed to this package")
		return
	}
	acc.Package = pkg.Name
	respondOK(c, "package changed", gin.H{
		"new_package":    pkg,
		"effective_date": time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	})
}

func (s *Server) availablePackages(c *gin.Context) {
	pkgs := append([]model.Package{}, packageCatalog...)
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].MonthlyFee < pkgs[j].MonthlyFee })
	respondOK(c, "available packages", pkgs)
}

func (s *Server) packageDetails(c *gin.Context) {
	var req model.PackageDetailsRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	pkg, exists := s.state.packages[req.PackageName]
	if !exists {
		respondDetail(c, http.StatusNotFound, "Package not found")
		return
	}
	respondOK(c, "package details", pkg)
}

// Customer

func (s *Server) customerProfile(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	view := acc.view()
	view["package"] = acc.Package
	view["autopay"] = acc.Autopay
	view["roaming"] = acc.Roaming
	view["line_status"] = lineStatus(acc)
	respondOK(c, "customer profile", view)
}

func lineStatus(acc *account) string {
	if acc.Suspended {
		return "suspended"
	}
	return "active"
}

func (s *Server) updateContact(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.ContactUpdateRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	switch req.ContactType {
	case "phone":
		acc.Phone = req.NewValue
	case "address":
		acc.Address = req.NewValue
	case "email":
		if _, taken := s.state.byEmail[req.NewValue]; taken && req.NewValue != acc.Email {
			respondDetail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		delete(s.state.byEmail, acc.Email)
		acc.Email = req.NewValue
		s.state.byEmail[acc.Email] = acc.ID
	default:
		respondDetail(c, http.StatusBadRequest, "contact_type must be phone, email or address")
		return
	}
	respondOK(c, "contact updated", gin.H{"contact_type": req.ContactType, "new_value": req.NewValue})
}

// Services and lines

func (s *Server) setRoaming(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.StatusToggleRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if acc.Suspended {
		respondDetail(c, http.StatusForbidden, "Line is suspended")
		return
	}
	acc.Roaming = req.Status
	respondOK(c, "roaming updated", gin.H{"roaming": req.Status})
}

func (s *Server) suspendLine(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.SuspendLineRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if acc.Suspended {
		respondDetail(c, http.StatusBadRequest, "Line already suspended")
		return
	}
	acc.Suspended = true
	respondOK(c, "line suspended", gin.H{"reason": req.Reason, "line_status": lineStatus(acc)})
}

func (s *Server) reactivateLine(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if !acc.Suspended {
		respondDetail(c, http.StatusBadRequest, "Line is not suspended")
		return
	}
	acc.Suspended = false
	respondOK(c, "line reactivated", gin.H{"line_status": lineStatus(acc)})
}

// Network and diagnostics

func (s *Server) networkStatus(c *gin.Context) {
	var req model.NetworkStatusRequest
	if !bind(c, &req) {
		return
	}
	respondOK(c, "network status", gin.H{
		"region":         req.Region,
		"status":         "operational",
		"active_outages": []string{},
	})
}

func (s *Server) speedTest(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	used := usageRatio(acc.ID)
	respondOK(c, "speed test completed", gin.H{
		"download_mbps": 100 * (1 - used/2),
		"upload_mbps":   20 * (1 - used/2),
		"ping_ms":       12 + int(used*40),
	})
}

// Support

func (s *Server) createTicket(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.CreateTicketRequest
	if !bind(c, &req) {
		return
	}
	if req.Category == "" {
		req.Category = "technical"
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	t := &ticketRecord{
		Ticket: model.Ticket{
			TicketID:         "T-" + uuid.NewString()[:8],
			IssueDescription: req.IssueDescription,
			Category:         req.Category,
			Priority:         req.Priority,
			Status:           "open",
			CreatedAt:        time.Now(),
		},
		OwnerID: acc.ID,
	}

	s.state.mu.Lock()
	s.state.tickets[t.TicketID] = t
	s.state.mu.Unlock()

	respondOK(c, "ticket created", t.Ticket)
}

func (s *Server) closeTicket(c *gin.Context) {
	var req model.TicketRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	t, exists := s.state.tickets[req.TicketID]
	if !exists {
		respondDetail(c, http.StatusNotFound, "Ticket not found")
		return
	}
	t.Status = "closed"
	respondOK(c, "ticket closed", t.Ticket)
}

func (s *Server) ticketStatus(c *gin.Context) {
	var req model.TicketRequest
	if !bind(c, &req) {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	t, exists := s.state.tickets[req.TicketID]
	if !exists {
		respondDetail(c, http.StatusNotFound, "Ticket not found")
		return
	}
	respondOK(c, "ticket status", t.Ticket)
}

func (s *Server) listTickets(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	tickets := make([]model.Ticket, 0)
	for _, t := range s.state.tickets {
		if t.OwnerID == acc.ID {
			tickets = append(tickets, t.Ticket)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].CreatedAt.Before(tickets[j].CreatedAt) })
	respondOK(c, "tickets", tickets)
}
