package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"internship-marketplace/internal/domain"
	"internship-marketplace/internal/domain/model"
	pay "internship-marketplace/internal/infra/payment"
	red "internship-marketplace/internal/infra/redis"
	"internship-marketplace/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the uniform error body; no internal detail leaks here.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeDomainError maps sentinel errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		writeError(w, http.StatusNotFound, "Plan not found")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, "Payment not found")
	case errors.Is(err, domain.ErrInternshipNotFound):
		writeError(w, http.StatusNotFound, "Internship not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many requests")
	case errors.Is(err, domain.ErrGatewayFailed):
		writeError(w, http.StatusInternalServerError, "Payment initialization failed")
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// ----- payments -----

type planSelectRequest struct {
	PlanID string `json:"plan_id"`
}

func (s *Server) handlePlanSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req planSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(r.Context(), red.UserActionKey(id.UserID, "plan_select"), s.rateLimit, time.Minute)
		if err == nil && !allowed {
			writeDomainError(w, domain.ErrRateLimited)
			return
		}
	}

	_, checkoutURL, err := s.paymentUC.Initiate(r.Context(), id.UserID, req.PlanID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id.UserID).Str("plan_id", req.PlanID).Msg("payment initiation failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"payment_url": checkoutURL})
}

// handlePaymentCallback is the gateway's re-entry point. Success reconciles
// and redirects the browser to the frontend; anything else answers JSON.
func (s *Server) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txRef := q.Get("tx_ref")
	status := q.Get("status")
	if txRef == "" {
		writeError(w, http.StatusBadRequest, "Missing tx_ref")
		return
	}

	res, err := s.paymentUC.HandleCallback(r.Context(), txRef, status)
	if err != nil {
		s.log.Error().Err(err).Str("tx_ref", txRef).Str("status", status).Msg("payment callback failed")
		writeDomainError(w, err)
		return
	}

	if res.Payment.Status == model.PaymentStatusCompleted {
		http.Redirect(w, r, res.RedirectURL, http.StatusSeeOther)
		return
	}
	writeError(w, http.StatusBadRequest, "Payment failed")
}

type webhookEvent struct {
	TxRef  string `json:"tx_ref"`
	Status string `json:"status"`
}

// handlePaymentWebhook is the server-to-server delivery path. The signature
// covers the raw body, so read it before decoding.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !pay.VerifyChapaWebhookSignature(s.webhookSecret, body, r.Header.Get("Chapa-Signature")) {
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil || ev.TxRef == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.paymentUC.HandleCallback(r.Context(), ev.TxRef, ev.Status)
	if err != nil {
		s.log.Error().Err(err).Str("tx_ref", ev.TxRef).Str("status", ev.Status).Msg("payment webhook failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(res.Payment.Status)})
}

// ----- plans -----

type planWriteRequest struct {
	Tier        string `json:"tier"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func (s *Server) handlePlansList(w http.ResponseWriter, r *http.Request) {
	plans, err := s.planUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": plans})
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var req planWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	plan, err := s.planUC.Create(r.Context(), req.Tier, req.Price, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	var req planWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	plan, err := s.planUC.Update(r.Context(), chi.URLParam(r, "id"), req.Tier, req.Price, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.planUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----- internships -----

type internshipCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Type        string `json:"type"`
	Payment     string `json:"payment"`
}

func (s *Server) handleInternshipsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.InternshipFilter{
		Location:  q.Get("location"),
		Industry:  q.Get("industry"),
		Type:      q.Get("type"),
		Payment:   q.Get("payment"),
		CompanyID: q.Get("company"),
	}
	internships, err := s.internshipUC.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": internships})
}

func (s *Server) handleInternshipGet(w http.ResponseWriter, r *http.Request) {
	in, err := s.internshipUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleInternshipCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req internshipCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, err := s.internshipUC.Create(r.Context(), id.UserID, req.Title, req.Description, req.Location, req.Industry, req.Type, req.Payment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

type applyRequest struct {
	CoverLetter  string `json:"cover_letter"`
	ResumePath   string `json:"resume_path"`
	PortfolioURL string `json:"portfolio_url"`
}

func (s *Server) handleInternshipApply(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	app, err := s.internshipUC.Apply(r.Context(), id.UserID, chi.URLParam(r, "id"), req.CoverLetter, req.ResumePath, req.PortfolioURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleApplicationsList(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	apps, err := s.internshipUC.ApplicationsByStudent(r.Context(), id.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": apps})
}

// ----- company applications -----

type companyApplyRequest struct {
	Name          string `json:"name"`
	Slogan        string `json:"slogan"`
	Description   string `json:"description"`
	Industry      string `json:"industry"`
	Location      string `json:"location"`
	ManagerName   string `json:"manager_name"`
	JobTitle      string `json:"job_title"`
	ContactNumber string `json:"contact_number"`
	Website       string `json:"website"`
	PlanID        string `json:"plan_id"`
}

func (s *Server) handleCompanyApply(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req companyApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ca, err := s.companyUC.Apply(r.Context(), id.UserID, usecase.CompanyRegistration{
		Name:          req.Name,
		Slogan:        req.Slogan,
		Description:   req.Description,
		Industry:      req.Industry,
		Location:      req.Location,
		ManagerName:   req.ManagerName,
		JobTitle:      req.JobTitle,
		ContactNumber: req.ContactNumber,
		Website:       req.Website,
		PlanID:        req.PlanID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ca)
}

func (s *Server) handleCompanyApplicationsList(w http.ResponseWriter, r *http.Request) {
	apps, err := s.companyUC.ListPending(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": apps})
}

type companyReviewRequest struct {
	Approve bool `json:"approve"`
}

func (s *Server) handleCompanyReview(w http.ResponseWriter, r *http.Request) {
	var req companyReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ca, err := s.companyUC.Review(r.Context(), chi.URLParam(r, "id"), req.Approve)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ca)
}

// ----- stats -----

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	users, revenue, err := s.statsUC.Totals(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_users": users,
		"revenue_etb": revenue,
	})
}
