package http

import (
	"errors"
	"net/http"

	"spendwise/internal/core"
	"spendwise/internal/log"
	"spendwise/internal/services"
)

type summaryTransaction struct {
	ID            string `json:"id"`
	MerchantName  string `json:"merchant_name"`
	AmountCents   int64  `json:"amount_cents"`
	CategoryID    string `json:"category_id,omitempty"`
	Date          string `json:"date"`
	CashbackCents int64  `json:"cashback_cents"`
}

type summaryResponse struct {
	Window               string               `json:"window"`
	Start                string               `json:"start,omitempty"`
	End                  string               `json:"end,omitempty"`
	TotalSpendingCents   int64                `json:"total_spending_cents"`
	TotalRepaymentCents  int64                `json:"total_repayment_cents"`
	TotalCashbackCents   int64                `json:"total_cashback_cents"`
	TransactionCount     int                  `json:"transaction_count"`
	AvailableCreditCents *int64               `json:"available_credit_cents"`
	Transactions         []summaryTransaction `json:"transactions"`
}

func (s *Server) handleCardSummary(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")

	window := services.WindowKind(r.URL.Query().Get("window"))
	if window == "" {
		window = services.WindowStatement
	}

	today := core.DateOf(s.now())
	summary, err := s.summaries.Summarize(r.Context(), cardID, window, today)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownWindow):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNoClosingDay):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondStoreError(w, err)
		}
		return
	}

	resp := summaryResponse{
		Window:              string(summary.Window),
		Start:               summary.Start,
		End:                 summary.End,
		TotalSpendingCents:  summary.TotalSpending.Cents,
		TotalRepaymentCents: summary.TotalRepayment.Cents,
		TotalCashbackCents:  summary.TotalCashback.Cents,
		TransactionCount:    summary.TransactionCount,
	}
	if summary.AvailableCredit != nil {
		cents := summary.AvailableCredit.Cents
		resp.AvailableCreditCents = &cents
	}

	resp.Transactions = make([]summaryTransaction, len(summary.Transactions))
	for i, tc := range summary.Transactions {
		resp.Transactions[i] = summaryTransaction{
			ID:            tc.Transaction.ID,
			MerchantName:  tc.Transaction.MerchantName,
			AmountCents:   tc.Transaction.Amount.Cents,
			CategoryID:    tc.Transaction.CategoryID,
			Date:          tc.Transaction.Date.String(),
			CashbackCents: tc.Cashback.Cents,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type overviewResponse struct {
	Year                int     `json:"year"`
	TotalSpendingCents  int64   `json:"total_spending_cents"`
	TotalCashbackCents  int64   `json:"total_cashback_cents"`
	TotalTransactions   int     `json:"total_transactions"`
	TransactionsByMonth [12]int `json:"transactions_by_month"`
}

func (s *Server) handleYearOverview(w http.ResponseWriter, r *http.Request) {
	year := parseYear(r)

	overview, err := s.overview.OverviewForYear(r.Context(), year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Year overview failed",
			log.FieldYear, year,
			log.FieldError, err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, overviewResponse{
		Year:                overview.Year,
		TotalSpendingCents:  overview.TotalSpending.Cents,
		TotalCashbackCents:  overview.TotalCashback.Cents,
		TotalTransactions:   overview.TotalTransactions,
		TransactionsByMonth: overview.TransactionsByMonth,
	})
}

type notificationResponse struct {
	ID      string `json:"id"`
	CardID  string `json:"card_id"`
	Message string `json:"message"`
	DueDate string `json:"due_date"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.store.ListRecentNotifications(r.Context(), 50)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = notificationResponse{
			ID:      n.ID,
			CardID:  n.CardID,
			Message: n.Message,
			DueDate: n.DueDate.String(),
		}
	}
	respondJSON(w, http.StatusOK, out)
}
