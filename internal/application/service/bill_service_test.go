package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newBillEnv(t *testing.T) (*memStore, *BillService) {
	t.Helper()
	store := newMemStore()
	sequencer := NewInvoiceSequencer(memBills{store})
	sequencer.now = func() time.Time { return store.now }

	svc := NewBillService(
		memTx{store},
		memBills{store},
		memBillItems{store},
		memPayments{store},
		memAdjustments{store},
		memItems{store},
		memCustomers{store},
		sequencer,
		18,
	)
	return store, svc
}

func seedCustomer(t *testing.T, store *memStore, name string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name}
	if err := (memCustomers{store}).Create(context.Background(), customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedItem(t *testing.T, store *memStore, name, rate string) *entity.ItemMaster {
	t.Helper()
	item := &entity.ItemMaster{Name: name, Rate: dec(rate)}
	if err := (memItems{store}).Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestCreateBill(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown customer", func(t *testing.T) {
		_, svc := newBillEnv(t)
		_, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: 99, BillType: enum.BillTypeGST})
		if !apperror.IsKind(err, apperror.KindNotFound) {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("gst bill stamps rate but no tax", func(t *testing.T) {
		store, svc := newBillEnv(t)
		customer := seedCustomer(t, store, "Ramesh")

		bill, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeGST})
		if err != nil {
			t.Fatalf("CreateBill: %v", err)
		}
		if bill.Status != enum.BillStatusOpen {
			t.Errorf("got status %v, want OPEN", bill.Status)
		}
		if !bill.GSTRate.Equal(dec("18")) {
			t.Errorf("got gst rate %s, want 18", bill.GSTRate)
		}
		if !bill.GSTAmount.IsZero() || !bill.TotalAmount.IsZero() {
			t.Errorf("new bill must carry zero amounts, got gst=%s total=%s", bill.GSTAmount, bill.TotalAmount)
		}
	})

	t.Run("non-gst bill has zero rate", func(t *testing.T) {
		store, svc := newBillEnv(t)
		customer := seedCustomer(t, store, "Ramesh")

		bill, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeUdhar})
		if err != nil {
			t.Fatalf("CreateBill: %v", err)
		}
		if !bill.GSTRate.IsZero() {
			t.Errorf("got gst rate %s, want 0", bill.GSTRate)
		}
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	openBill := func(t *testing.T, store *memStore, svc *BillService, billType enum.BillType) *entity.Bill {
		customer := seedCustomer(t, store, "Ramesh")
		bill, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: billType})
		if err != nil {
			t.Fatalf("CreateBill: %v", err)
		}
		return bill
	}

	t.Run("catalog rate wins over supplied rate", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "350")
		bill := openBill(t, store, svc, enum.BillTypeGST)

		supplied := dec("300")
		item, err := svc.AddItem(ctx, bill.ID, &AddItemInput{
			ItemName: "Cement",
			Quantity: dec("2"),
			Rate:     &supplied,
		})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if !item.Rate.Equal(dec("350")) {
			t.Errorf("got rate %s, want catalog rate 350", item.Rate)
		}
		if !item.Subtotal.Equal(dec("700")) {
			t.Errorf("got subtotal %s, want 700", item.Subtotal)
		}
	})

	t.Run("catalog unit wins over supplied unit", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bag := "bag"
		if err := (memItems{store}).Create(ctx, &entity.ItemMaster{Name: "cement", Rate: dec("350"), Unit: &bag}); err != nil {
			t.Fatalf("seed item: %v", err)
		}
		bill := openBill(t, store, svc, enum.BillTypeGST)

		kg := "kg"
		item, err := svc.AddItem(ctx, bill.ID, &AddItemInput{
			ItemName: "cement",
			Quantity: dec("2"),
			Unit:     &kg,
		})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if item.Unit == nil || *item.Unit != "bag" {
			t.Errorf("got unit %v, want catalog unit bag", item.Unit)
		}
	})

	t.Run("fractional quantity keeps three decimals", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "wire", "100")
		bill := openBill(t, store, svc, enum.BillTypeNonGST)

		item, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "wire", Quantity: dec("1.255")})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if !item.Quantity.Equal(dec("1.255")) {
			t.Errorf("got quantity %s, want 1.255", item.Quantity)
		}
		if !item.Subtotal.Equal(dec("125.50")) {
			t.Errorf("got subtotal %s, want 125.50", item.Subtotal)
		}
	})

	t.Run("running total stays tax free", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		bill := openBill(t, store, svc, enum.BillTypeGST)

		if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("2")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		stored := store.bills[bill.ID]
		if !stored.Subtotal.Equal(dec("200")) {
			t.Errorf("got subtotal %s, want 200", stored.Subtotal)
		}
		if !stored.GSTAmount.IsZero() {
			t.Errorf("got gst %s, want 0 before finalize", stored.GSTAmount)
		}
		if !stored.TotalAmount.Equal(dec("200")) {
			t.Errorf("got total %s, want 200 before finalize", stored.TotalAmount)
		}
	})

	t.Run("new item with rate registers in catalog", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := openBill(t, store, svc, enum.BillTypeNonGST)

		rate := dec("50")
		item, err := svc.AddItem(ctx, bill.ID, &AddItemInput{
			ItemName: "Paint Brush",
			Quantity: dec("1"),
			Rate:     &rate,
		})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if item.ItemName != "paint brush" {
			t.Errorf("got item name %q, want lower-cased", item.ItemName)
		}

		master, _ := (memItems{store}).FindByName(ctx, "paint brush")
		if master == nil {
			t.Fatal("expected catalog entry for new item")
		}
		if !master.Rate.Equal(dec("50")) {
			t.Errorf("got catalog rate %s, want 50", master.Rate)
		}
	})

	t.Run("new item without rate fails", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := openBill(t, store, svc, enum.BillTypeNonGST)

		_, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "mystery", Quantity: dec("1")})
		if !apperror.IsKind(err, apperror.KindRateMissing) {
			t.Fatalf("expected RATE_MISSING, got %v", err)
		}
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		bill := openBill(t, store, svc, enum.BillTypeNonGST)

		_, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("0")})
		if !apperror.IsKind(err, apperror.KindInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}
	})

	t.Run("finalized bill rejects items", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		bill := openBill(t, store, svc, enum.BillTypeNonGST)

		if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("1")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if _, err := svc.FinalizeBill(ctx, bill.ID); err != nil {
			t.Fatalf("FinalizeBill: %v", err)
		}

		_, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("1")})
		if !apperror.IsKind(err, apperror.KindInvalidState) {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}
	})
}

func TestFinalizeBill(t *testing.T) {
	ctx := context.Background()

	t.Run("gst bill computes tax and mints both numbers", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		customer := seedCustomer(t, store, "Ramesh")

		bill, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeGST})
		if err != nil {
			t.Fatalf("CreateBill: %v", err)
		}
		if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("2")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		finalized, err := svc.FinalizeBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("FinalizeBill: %v", err)
		}
		if !finalized.Subtotal.Equal(dec("200")) {
			t.Errorf("got subtotal %s, want 200", finalized.Subtotal)
		}
		if !finalized.GSTAmount.Equal(dec("36.00")) {
			t.Errorf("got gst %s, want 36.00", finalized.GSTAmount)
		}
		if !finalized.TotalAmount.Equal(dec("236.00")) {
			t.Errorf("got total %s, want 236.00", finalized.TotalAmount)
		}
		if finalized.Status != enum.BillStatusFinalized {
			t.Errorf("got status %v, want FINALIZED", finalized.Status)
		}
		if finalized.InvoiceNumber == nil || *finalized.InvoiceNumber != "INV-2026-0001" {
			t.Errorf("got invoice number %v, want INV-2026-0001", finalized.InvoiceNumber)
		}
		if finalized.GSTInvoiceNumber == nil || *finalized.GSTInvoiceNumber != "GST-2026-0001" {
			t.Errorf("got gst invoice number %v, want GST-2026-0001", finalized.GSTInvoiceNumber)
		}
	})

	t.Run("non-gst bill gets no gst number", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		customer := seedCustomer(t, store, "Ramesh")

		bill, _ := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeUdhar})
		if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("3")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		finalized, err := svc.FinalizeBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("FinalizeBill: %v", err)
		}
		if !finalized.GSTAmount.IsZero() {
			t.Errorf("got gst %s, want 0", finalized.GSTAmount)
		}
		if !finalized.TotalAmount.Equal(dec("300")) {
			t.Errorf("got total %s, want 300", finalized.TotalAmount)
		}
		if finalized.GSTInvoiceNumber != nil {
			t.Errorf("unexpected gst invoice number %q", *finalized.GSTInvoiceNumber)
		}
	})

	t.Run("empty bill rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		customer := seedCustomer(t, store, "Ramesh")

		bill, _ := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeNonGST})
		_, err := svc.FinalizeBill(ctx, bill.ID)
		if !apperror.IsKind(err, apperror.KindEmptyBill) {
			t.Fatalf("expected EMPTY_BILL, got %v", err)
		}
	})

	t.Run("re-finalize rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		seedItem(t, store, "cement", "100")
		customer := seedCustomer(t, store, "Ramesh")

		bill, _ := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeNonGST})
		if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("1")}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if _, err := svc.FinalizeBill(ctx, bill.ID); err != nil {
			t.Fatalf("FinalizeBill: %v", err)
		}

		_, err := svc.FinalizeBill(ctx, bill.ID)
		if !apperror.IsKind(err, apperror.KindInvalidState) {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}
	})
}

// finalizedGSTBill builds the 236.00 GST bill from the scenario above.
func finalizedGSTBill(t *testing.T, store *memStore, svc *BillService) *entity.Bill {
	t.Helper()
	ctx := context.Background()
	seedItem(t, store, "cement", "100")
	customer := seedCustomer(t, store, "Ramesh")

	bill, err := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeGST})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if _, err := svc.AddItem(ctx, bill.ID, &AddItemInput{ItemName: "cement", Quantity: dec("2")}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	finalized, err := svc.FinalizeBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("FinalizeBill: %v", err)
	}
	return finalized
}

func TestPayBill(t *testing.T) {
	ctx := context.Background()

	t.Run("open bill rejects payment", func(t *testing.T) {
		store, svc := newBillEnv(t)
		customer := seedCustomer(t, store, "Ramesh")
		bill, _ := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeNonGST})

		_, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("10"), Method: "cash"})
		if !apperror.IsKind(err, apperror.KindInvalidState) {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}
	})

	t.Run("partial then exact payment", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		partial, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("100"), Method: "cash"})
		if err != nil {
			t.Fatalf("PayBill: %v", err)
		}
		if partial.Status != enum.BillStatusPartiallyPaid {
			t.Errorf("got status %v, want PARTIALLY_PAID", partial.Status)
		}
		if !partial.Remaining().Equal(dec("136.00")) {
			t.Errorf("got remaining %s, want 136.00", partial.Remaining())
		}

		full, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("136.00"), Method: "upi"})
		if err != nil {
			t.Fatalf("PayBill: %v", err)
		}
		if full.Status != enum.BillStatusPaid {
			t.Errorf("got status %v, want PAID", full.Status)
		}
		if !full.Remaining().IsZero() {
			t.Errorf("got remaining %s, want 0", full.Remaining())
		}
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		_, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("236.01"), Method: "cash"})
		if !apperror.IsKind(err, apperror.KindOverpayment) {
			t.Fatalf("expected OVERPAYMENT, got %v", err)
		}
	})

	t.Run("paid bill rejects further payment", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		if _, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("236.00"), Method: "cash"}); err != nil {
			t.Fatalf("PayBill: %v", err)
		}
		_, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("0.01"), Method: "cash"})
		if !apperror.IsKind(err, apperror.KindOverpayment) {
			t.Fatalf("expected OVERPAYMENT, got %v", err)
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		_, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("0"), Method: "cash"})
		if !apperror.IsKind(err, apperror.KindInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}
	})
}

func TestAdjustBill(t *testing.T) {
	ctx := context.Background()

	t.Run("open bill rejects adjustment", func(t *testing.T) {
		store, svc := newBillEnv(t)
		customer := seedCustomer(t, store, "Ramesh")
		bill, _ := svc.CreateBill(ctx, &CreateBillInput{CustomerID: customer.ID, BillType: enum.BillTypeNonGST})

		_, err := svc.AdjustBill(ctx, bill.ID, &AdjustBillInput{Amount: dec("10"), AdjustmentType: enum.AdjustmentTypeManualAdjustment})
		if !apperror.IsKind(err, apperror.KindInvalidState) {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}
	})

	t.Run("amount above total rejected", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		_, err := svc.AdjustBill(ctx, bill.ID, &AdjustBillInput{Amount: dec("236.01"), AdjustmentType: enum.AdjustmentTypeManualAdjustment})
		if !apperror.IsKind(err, apperror.KindInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}
	})

	t.Run("full adjustment of paid bill caps paid and lands FINALIZED", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		if _, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("236.00"), Method: "cash"}); err != nil {
			t.Fatalf("PayBill: %v", err)
		}

		adjusted, err := svc.AdjustBill(ctx, bill.ID, &AdjustBillInput{
			Amount:         dec("236.00"),
			AdjustmentType: enum.AdjustmentTypeItemReturn,
		})
		if err != nil {
			t.Fatalf("AdjustBill: %v", err)
		}
		if !adjusted.TotalAmount.IsZero() {
			t.Errorf("got total %s, want 0", adjusted.TotalAmount)
		}
		if !adjusted.PaidAmount.IsZero() {
			t.Errorf("got paid %s, want 0", adjusted.PaidAmount)
		}
		if adjusted.Status != enum.BillStatusFinalized {
			t.Errorf("got status %v, want FINALIZED", adjusted.Status)
		}
	})

	t.Run("partial adjustment re-derives PAID", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		if _, err := svc.PayBill(ctx, bill.ID, &PayBillInput{Amount: dec("100"), Method: "cash"}); err != nil {
			t.Fatalf("PayBill: %v", err)
		}
		adjusted, err := svc.AdjustBill(ctx, bill.ID, &AdjustBillInput{
			Amount:         dec("136.00"),
			AdjustmentType: enum.AdjustmentTypeRateCorrection,
		})
		if err != nil {
			t.Fatalf("AdjustBill: %v", err)
		}
		if !adjusted.TotalAmount.Equal(dec("100.00")) {
			t.Errorf("got total %s, want 100.00", adjusted.TotalAmount)
		}
		if adjusted.Status != enum.BillStatusPaid {
			t.Errorf("got status %v, want PAID", adjusted.Status)
		}
	})

	t.Run("adjustment recorded as negative delta", func(t *testing.T) {
		store, svc := newBillEnv(t)
		bill := finalizedGSTBill(t, store, svc)

		if _, err := svc.AdjustBill(ctx, bill.ID, &AdjustBillInput{
			Amount:         dec("36.00"),
			AdjustmentType: enum.AdjustmentTypeManualAdjustment,
		}); err != nil {
			t.Fatalf("AdjustBill: %v", err)
		}

		adjustments, _ := (memAdjustments{store}).GetByBillID(ctx, bill.ID)
		if len(adjustments) != 1 {
			t.Fatalf("got %d adjustments, want 1", len(adjustments))
		}
		if !adjustments[0].AmountDelta.Equal(dec("-36.00")) {
			t.Errorf("got delta %s, want -36.00", adjustments[0].AmountDelta)
		}
	})
}
