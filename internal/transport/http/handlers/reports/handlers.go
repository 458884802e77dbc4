package reportshandler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/report"
	"storeops/internal/transport/http/api"
	"storeops/internal/transport/http/middleware"
	"storeops/internal/transport/http/shared"
)

type Handler struct {
	Service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Route("/stores/{storeID}/profit", func(r chi.Router) {
			r.Get("/", h.handleProfit)
			r.Get("/export", h.handleProfitCSV)
			r.Get("/pdf", h.handleProfitPDF)
		})
		r.Get("/payroll", h.handlePayrollBalances)
	})
}

func (h *Handler) handleProfit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	result, ok := h.profitFor(w, r, requestID)
	if !ok {
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleProfitCSV(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	result, ok := h.profitFor(w, r, requestID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=profit-report.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"currency", "sales", "expenses", "payroll", "delivery_expenses", "profit"}); err != nil {
		log.Printf("profit export header write failed: %v", err)
	}
	for _, line := range result.Lines {
		row := []string{
			string(line.Currency),
			money.Format(line.Sales, line.Currency),
			money.Format(line.Expenses, line.Currency),
			money.Format(line.Payroll, line.Currency),
			money.Format(line.DeliveryExpenses, line.Currency),
			money.Format(line.Profit, line.Currency),
		}
		if err := writer.Write(row); err != nil {
			log.Printf("profit export row write failed: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("profit export flush failed: %v", err)
	}
}

func (h *Handler) handleProfitPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	result, ok := h.profitFor(w, r, requestID)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Profit Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Store: %s", result.StoreName))
	pdf.Ln(7)
	period := "all time"
	if !result.From.IsZero() || !result.To.IsZero() {
		from, to := "open", "open"
		if !result.From.IsZero() {
			from = result.From.Format("2006-01-02")
		}
		if !result.To.IsZero() {
			to = result.To.Format("2006-01-02")
		}
		period = from + " to " + to
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(10)
	for _, line := range result.Lines {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, string(line.Currency))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Sales: %s", money.Format(line.Sales, line.Currency)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Expenses: %s", money.Format(line.Expenses, line.Currency)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Payroll: %s", money.Format(line.Payroll, line.Currency)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Delivery expenses: %s", money.Format(line.DeliveryExpenses, line.Currency)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Profit: %s", line.Formatted))
		pdf.Ln(10)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=profit-report.pdf")
	if err := pdf.Output(w); err != nil {
		log.Printf("profit pdf write failed: %v", err)
	}
}

func (h *Handler) handlePayrollBalances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return
	}
	balances, err := h.Service.PayrollBalances(r.Context(), r.URL.Query().Get("storeId"), period)
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return
	}
	api.Success(w, balances, requestID)
}

func (h *Handler) profitFor(w http.ResponseWriter, r *http.Request, requestID string) (report.StoreProfit, bool) {
	period, ok := shared.ParsePeriod(w, r, requestID)
	if !ok {
		return report.StoreProfit{}, false
	}
	result, err := h.Service.StoreProfit(r.Context(), chi.URLParam(r, "storeID"), period)
	if err != nil {
		shared.WriteDomainError(w, requestID, err, org.ErrStoreNotFound)
		return report.StoreProfit{}, false
	}
	return result, true
}
