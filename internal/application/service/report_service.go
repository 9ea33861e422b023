package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
)

// DailyReport is the end-of-day view: every bill created that day plus the
// cash and credit movements.
type DailyReport struct {
	Date           string                     `json:"date"`
	TotalBills     int                        `json:"total_bills"`
	TotalSales     decimal.Decimal            `json:"total_sales"`
	SalesByType    map[string]decimal.Decimal `json:"sales_by_type"`
	CashReceived   decimal.Decimal            `json:"cash_received"`
	UdharAdded     decimal.Decimal            `json:"udhar_added"`
	UdharCollected decimal.Decimal            `json:"udhar_collected"`
}

// RangeSummary aggregates billing activity over a date window.
type RangeSummary struct {
	FromDate     string          `json:"from_date"`
	ToDate       string          `json:"to_date"`
	TotalBills   int             `json:"total_bills"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	CashReceived decimal.Decimal `json:"cash_received"`
	UdharAdded   decimal.Decimal `json:"udhar_added"`
}

// TypeBucket is one bill type's slice of a monthly summary.
type TypeBucket struct {
	BillCount    int             `json:"bill_count"`
	Sales        decimal.Decimal `json:"sales"`
	CashReceived decimal.Decimal `json:"cash_received"`
	UdharAdded   decimal.Decimal `json:"udhar_added"`
}

// MonthlySummary groups a month's activity per bill type.
type MonthlySummary struct {
	Year    int                   `json:"year"`
	Month   int                   `json:"month"`
	ByType  map[string]TypeBucket `json:"by_type"`
	Overall TypeBucket            `json:"overall"`
}

// ReportService derives sales reports from bills and payment records. Sales
// figures count bills by creation date; cash figures count payment rows by
// payment date, so money collected later lands in the day it was received.
type ReportService struct {
	billRepo    repository.BillRepository
	paymentRepo repository.PaymentRepository
}

// NewReportService creates a new report service.
func NewReportService(billRepo repository.BillRepository, paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{billRepo: billRepo, paymentRepo: paymentRepo}
}

// GetDailyReport builds the report for one calendar day.
func (s *ReportService) GetDailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	from, to := dayWindow(date)

	bills, err := s.billRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date: date.Format("2006-01-02"),
		SalesByType: map[string]decimal.Decimal{
			enum.BillTypeGST.String():    decimal.Zero,
			enum.BillTypeNonGST.String(): decimal.Zero,
			enum.BillTypeUdhar.String():  decimal.Zero,
		},
		TotalSales:     decimal.Zero,
		CashReceived:   decimal.Zero,
		UdharAdded:     decimal.Zero,
		UdharCollected: decimal.Zero,
	}

	for _, bill := range bills {
		report.TotalBills++
		report.TotalSales = report.TotalSales.Add(bill.TotalAmount)
		key := bill.BillType.String()
		report.SalesByType[key] = report.SalesByType[key].Add(bill.TotalAmount)
		if bill.BillType == enum.BillTypeUdhar {
			report.UdharAdded = report.UdharAdded.Add(bill.TotalAmount.Sub(bill.PaidAmount))
		}
	}

	for _, payment := range payments {
		report.CashReceived = report.CashReceived.Add(payment.Amount)
		if payment.Bill.BillType == enum.BillTypeUdhar {
			report.UdharCollected = report.UdharCollected.Add(payment.Amount)
		}
	}

	return report, nil
}

// GetDailySummary is the one-day case of GetRangeSummary.
func (s *ReportService) GetDailySummary(ctx context.Context, date time.Time) (*RangeSummary, error) {
	return s.GetRangeSummary(ctx, date, date)
}

// GetRangeSummary aggregates activity between two dates inclusive.
func (s *ReportService) GetRangeSummary(ctx context.Context, fromDate, toDate time.Time) (*RangeSummary, error) {
	from, _ := dayWindow(fromDate)
	_, to := dayWindow(toDate)

	bills, err := s.billRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &RangeSummary{
		FromDate:     fromDate.Format("2006-01-02"),
		ToDate:       toDate.Format("2006-01-02"),
		TotalSales:   decimal.Zero,
		CashReceived: decimal.Zero,
		UdharAdded:   decimal.Zero,
	}

	for _, bill := range bills {
		summary.TotalBills++
		summary.TotalSales = summary.TotalSales.Add(bill.TotalAmount)
		if bill.BillType == enum.BillTypeUdhar {
			summary.UdharAdded = summary.UdharAdded.Add(bill.TotalAmount.Sub(bill.PaidAmount))
		}
	}
	for _, payment := range payments {
		summary.CashReceived = summary.CashReceived.Add(payment.Amount)
	}

	return summary, nil
}

// GetMonthlySummary aggregates one calendar month, grouped per bill type.
func (s *ReportService) GetMonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	bills, err := s.billRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]TypeBucket{
		enum.BillTypeGST.String():    newTypeBucket(),
		enum.BillTypeNonGST.String(): newTypeBucket(),
		enum.BillTypeUdhar.String():  newTypeBucket(),
	}
	overall := newTypeBucket()

	for _, bill := range bills {
		key := bill.BillType.String()
		bucket := buckets[key]
		bucket.BillCount++
		bucket.Sales = bucket.Sales.Add(bill.TotalAmount)
		if bill.BillType == enum.BillTypeUdhar {
			bucket.UdharAdded = bucket.UdharAdded.Add(bill.TotalAmount.Sub(bill.PaidAmount))
			overall.UdharAdded = overall.UdharAdded.Add(bill.TotalAmount.Sub(bill.PaidAmount))
		}
		buckets[key] = bucket

		overall.BillCount++
		overall.Sales = overall.Sales.Add(bill.TotalAmount)
	}

	for _, payment := range payments {
		key := payment.Bill.BillType.String()
		bucket := buckets[key]
		bucket.CashReceived = bucket.CashReceived.Add(payment.Amount)
		buckets[key] = bucket

		overall.CashReceived = overall.CashReceived.Add(payment.Amount)
	}

	return &MonthlySummary{
		Year:    year,
		Month:   int(month),
		ByType:  buckets,
		Overall: overall,
	}, nil
}

func newTypeBucket() TypeBucket {
	return TypeBucket{
		Sales:        decimal.Zero,
		CashReceived: decimal.Zero,
		UdharAdded:   decimal.Zero,
	}
}

// dayWindow returns the inclusive bounds of the calendar day containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to
}
