package http

import (
	"net/http"
	"sync/atomic"

	"spendwise/internal/core"
	"spendwise/internal/log"
)

type transactionRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	MerchantName string `json:"merchant_name"`
	CategoryID   string `json:"category_id"`
	Date         string `json:"date"`
}

type transactionResponse struct {
	ID           string `json:"id"`
	CardID       string `json:"card_id"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	MerchantName string `json:"merchant_name"`
	CategoryID   string `json:"category_id,omitempty"`
	Date         string `json:"date"`
	IsExpense    bool   `json:"is_expense"`
}

func transactionToResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		CardID:       t.CardID,
		AmountCents:  t.Amount.Cents,
		Currency:     t.Currency,
		MerchantName: t.MerchantName,
		CategoryID:   t.CategoryID,
		Date:         t.Date.String(),
		IsExpense:    t.IsExpense(),
	}
}

func transactionFromRequest(req transactionRequest, id, cardID string) (core.Transaction, error) {
	cents, err := core.ParseSignedDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "VND"
	}

	return core.Transaction{
		ID:           id,
		CardID:       cardID,
		Amount:       core.Money{Cents: cents},
		Currency:     currency,
		MerchantName: sanitizeInput(req.MerchantName),
		CategoryID:   req.CategoryID,
		Date:         date,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if _, err := s.store.GetCard(r.Context(), cardID); err != nil {
		respondStoreError(w, err)
		return
	}

	txs, err := s.store.ListTransactionsByCard(r.Context(), cardID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = transactionToResponse(t)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if _, err := s.store.GetCard(r.Context(), cardID); err != nil {
		respondStoreError(w, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := transactionFromRequest(req, "", cardID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	atomic.AddInt64(&s.metrics.transactionsCreated, 1)
	s.summaries.Invalidate(cardID)
	s.overview.Invalidate()

	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction recorded",
		log.FieldCardID, cardID,
		log.FieldAmount, created.Amount.Cents)

	respondJSON(w, http.StatusCreated, transactionToResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := transactionFromRequest(req, id, existing.CardID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdateTransaction(r.Context(), tx); err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(existing.CardID)
	s.overview.Invalidate()
	respondJSON(w, http.StatusOK, transactionToResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(existing.CardID)
	s.overview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
