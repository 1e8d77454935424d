package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bolophil/SplitIt/internal/calculator"
	"github.com/bolophil/SplitIt/internal/ledger"
	"github.com/bolophil/SplitIt/internal/middleware"
	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
	"github.com/bolophil/SplitIt/internal/storage"
)

var errAuthRequired = fmt.Errorf("authentication required")

// ReceiptService exposes receipt creation, settlement, and the payment
// ledger over JSON HTTP. All computation is delegated to the pure calculator;
// this layer only loads inputs, checks permissions, and persists outputs.
type ReceiptService struct {
	store storage.Store
}

// NewReceiptService creates a new ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

type createReceiptRequest struct {
	Vendor       string               `json:"vendor"`
	Location     models.Location      `json:"location,omitempty"`
	Participants []models.Participant `json:"participants"`
	Items        []models.ReceiptItem `json:"items"`
	Subtotal     money.Money          `json:"subtotal"`
	Tax          money.Money          `json:"tax"`
	Tip          money.Money          `json:"tip"`
	Total        money.Money          `json:"total"`
}

type receiptResponse struct {
	Receipt    *models.Receipt          `json:"receipt"`
	Settlement *models.SettlementResult `json:"settlement"`
}

type addParticipantRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type appendPaymentRequest struct {
	// ParticipantID defaults to the caller's own participant entry.
	ParticipantID string      `json:"participant_id,omitempty"`
	Amount        money.Money `json:"amount"`
	Note          string      `json:"note,omitempty"`
}

// isParticipant checks if the user is in the participants list.
func isParticipant(userID string, participants []models.Participant) bool {
	for _, p := range participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// CreateReceipt handles POST /api/v1/receipts. The receipt is normalized and
// validated here, once; every later settlement computation assumes a valid
// receipt. The response includes a settlement preview against an empty ledger.
func (s *ReceiptService) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errAuthRequired)
		return
	}

	var req createReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if !isParticipant(userID, req.Participants) {
		writeError(w, http.StatusForbidden,
			fmt.Errorf("you must be a participant to create this receipt"))
		return
	}

	receipt := &models.Receipt{
		Vendor:       req.Vendor,
		Location:     req.Location,
		HostID:       userID,
		Participants: req.Participants,
		Items:        req.Items,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Tip:          req.Tip,
		Total:        req.Total,
	}
	receipt.Normalize()
	if err := receipt.Validate(); err != nil {
		slog.Error("CreateReceipt validation failed", "error", err)
		writeValidationError(w, err)
		return
	}

	if err := s.store.CreateReceipt(r.Context(), receipt); err != nil {
		slog.Error("CreateReceipt failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	slog.Info("Receipt created",
		"receipt_id", receipt.ID,
		"host_id", receipt.HostID,
		"participants", len(receipt.Participants),
		"items", len(receipt.Items),
	)

	settlement, err := calculator.ComputeSettlement(receipt, nil)
	if err != nil {
		slog.Error("ComputeSettlement failed during CreateReceipt", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse{Receipt: receipt, Settlement: settlement})
}

// GetReceipt handles GET /api/v1/receipts/{id}. The settlement is recomputed
// from the current ledger snapshot on every read; nothing is cached.
func (s *ReceiptService) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, ok := s.loadAuthorized(w, r)
	if !ok {
		return
	}

	settlement, ok := s.settle(w, r, receipt)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, receiptResponse{Receipt: receipt, Settlement: settlement})
}

// GetSettlement handles GET /api/v1/receipts/{id}/settlement. Callers may
// poll this freely: recomputation is pure and never touches ledger state.
func (s *ReceiptService) GetSettlement(w http.ResponseWriter, r *http.Request) {
	receipt, ok := s.loadAuthorized(w, r)
	if !ok {
		return
	}

	settlement, ok := s.settle(w, r, receipt)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, settlement)
}

// AddParticipant handles POST /api/v1/receipts/{id}/participants. Only the
// host can invite guests; sending the actual SMS is the app's problem.
func (s *ReceiptService) AddParticipant(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errAuthRequired)
		return
	}

	receiptID := r.PathValue("id")
	receipt, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil {
		slog.Error("AddParticipant: failed to get receipt", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}

	if receipt.HostID != userID {
		writeError(w, http.StatusForbidden,
			fmt.Errorf("only the host can add participants"))
		return
	}

	var req addParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("participant name required"))
		return
	}

	p := &models.Participant{Name: req.Name, PhoneNumber: req.PhoneNumber}
	if err := s.store.AddParticipant(r.Context(), receiptID, p); err != nil {
		slog.Error("AddParticipant failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("Participant added", "receipt_id", receiptID, "participant_id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusCreated, p)
}

// AppendPayment handles POST /api/v1/receipts/{id}/payments. Payments are
// append-only; a mistake is corrected with a new negative-amount record.
func (s *ReceiptService) AppendPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errAuthRequired)
		return
	}

	receiptID := r.PathValue("id")
	receipt, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil {
		slog.Error("AppendPayment: failed to get receipt", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}

	if !isParticipant(userID, receipt.Participants) {
		writeError(w, http.StatusForbidden,
			fmt.Errorf("you must be a participant to record a payment"))
		return
	}

	var req appendPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	participantID := req.ParticipantID
	if participantID == "" {
		participantID = userID
	}
	if !isParticipant(participantID, receipt.Participants) {
		writeValidationError(w, fmt.Errorf("%w: payment from %q",
			models.ErrUnknownParticipant, participantID))
		return
	}

	rec := models.PaymentRecord{
		ReceiptID:     receiptID,
		ParticipantID: participantID,
		Amount:        req.Amount,
		Note:          req.Note,
	}

	// The ledger enforces the append rules (non-zero amount, matching
	// currency); the store only persists what the ledger accepted.
	book := ledger.New(receiptID, receipt.Total.Cur())
	if err := book.Append(rec); err != nil {
		slog.Warn("AppendPayment rejected", "receipt_id", receiptID, "error", err)
		writeValidationError(w, err)
		return
	}

	stored := book.Snapshot()[0]
	if err := s.store.AppendPayment(r.Context(), &stored); err != nil {
		slog.Error("AppendPayment failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("Payment recorded",
		"receipt_id", receiptID,
		"participant_id", participantID,
		"amount", stored.Amount.String(),
	)
	writeJSON(w, http.StatusCreated, stored)
}

// ListPayments handles GET /api/v1/receipts/{id}/payments, returning the
// full audit history in append order.
func (s *ReceiptService) ListPayments(w http.ResponseWriter, r *http.Request) {
	receipt, ok := s.loadAuthorized(w, r)
	if !ok {
		return
	}

	payments, err := s.store.ListPayments(r.Context(), receipt.ID)
	if err != nil {
		slog.Error("ListPayments failed", "receipt_id", receipt.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if payments == nil {
		payments = []models.PaymentRecord{}
	}

	writeJSON(w, http.StatusOK, payments)
}

// loadAuthorized fetches the receipt from the path and checks that the
// caller is on it. On failure it writes the error response and returns false.
func (s *ReceiptService) loadAuthorized(w http.ResponseWriter, r *http.Request) (*models.Receipt, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errAuthRequired)
		return nil, false
	}

	receiptID := r.PathValue("id")
	receipt, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil {
		slog.Error("GetReceipt failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}

	if !isParticipant(userID, receipt.Participants) {
		writeError(w, http.StatusForbidden,
			fmt.Errorf("you must be a participant to view this receipt"))
		return nil, false
	}

	return receipt, true
}

// settle loads the ledger snapshot and computes the settlement, cross-checking
// that the engine's received figure matches the ledger fold.
func (s *ReceiptService) settle(w http.ResponseWriter, r *http.Request, receipt *models.Receipt) (*models.SettlementResult, bool) {
	payments, err := s.store.ListPayments(r.Context(), receipt.ID)
	if err != nil {
		slog.Error("ListPayments failed", "receipt_id", receipt.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	settlement, err := calculator.ComputeSettlement(receipt, payments)
	if err != nil {
		slog.Error("ComputeSettlement failed", "receipt_id", receipt.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	// Cross-check: Σ paid(p) grouped by participant must equal the plain
	// ledger fold. A mismatch means a bug, not bad input.
	book := ledger.New(receipt.ID, receipt.Total.Cur())
	for _, rec := range payments {
		if err := book.Append(rec); err != nil {
			slog.Error("Stored payment failed ledger rules", "receipt_id", receipt.ID, "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return nil, false
		}
	}
	if got := book.Received(); got.Cmp(settlement.Received) != 0 {
		slog.Error("Settlement cross-check failed",
			"receipt_id", receipt.ID,
			"ledger_received", got.String(),
			"settlement_received", settlement.Received.String(),
		)
	}

	return settlement, true
}
