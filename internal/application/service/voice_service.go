package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/gemini"
	"github.com/shopbill/billing-api/pkg/money"
	"github.com/shopbill/billing-api/pkg/speech"
)

// IntentParser turns spoken text into a structured billing intent.
// Satisfied by gemini.Client.
type IntentParser interface {
	ParseBillingIntent(ctx context.Context, text string) (*gemini.Intent, error)
	Ping(ctx context.Context) (string, error)
	Model() string
}

// ItemSuggestion is one catalog candidate offered for an unresolved name.
type ItemSuggestion struct {
	ItemID uint            `json:"item_id"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Unit   *string         `json:"unit,omitempty"`
}

// ReadyItem is a spoken item resolved against the catalog, billing-ready.
type ReadyItem struct {
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	Rate     decimal.Decimal `json:"rate"`
	Unit     *string         `json:"unit,omitempty"`
	Quantity *float64        `json:"quantity"`
}

// UnmatchedItem is a spoken item the catalog could not resolve, with
// suggestions for the confirmation step.
type UnmatchedItem struct {
	Name        string           `json:"name"`
	Quantity    *float64         `json:"quantity"`
	Suggestions []ItemSuggestion `json:"suggestions"`
}

// VoiceParseResult is the outcome of parsing one spoken billing request.
type VoiceParseResult struct {
	CustomerName   *string         `json:"customer_name"`
	ReadyItems     []ReadyItem     `json:"ready_items"`
	UnmatchedItems []UnmatchedItem `json:"unmatched_items"`
	NextAction     string          `json:"next_action"`
	Model          string          `json:"model"`
}

// VoiceService drives the voice billing flow: parse spoken text into items,
// confirm ambiguous ones, build an OPEN bill, correct it by voice, then
// finalize and pay through the canonical bill operations.
type VoiceService struct {
	parser       IntentParser
	txManager    repository.TxManager
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	billService  *BillService
	itemService  *ItemService
}

// NewVoiceService creates a new voice billing service.
func NewVoiceService(
	parser IntentParser,
	txManager repository.TxManager,
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	billService *BillService,
	itemService *ItemService,
) *VoiceService {
	return &VoiceService{
		parser:       parser,
		txManager:    txManager,
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		billService:  billService,
		itemService:  itemService,
	}
}

// CheckParser verifies the language model is reachable.
func (s *VoiceService) CheckParser(ctx context.Context) (string, error) {
	reply, err := s.parser.Ping(ctx)
	if err != nil {
		return "", apperror.NewUnavailableError("Voice parser unreachable: " + err.Error())
	}
	return reply, nil
}

// ParseVoice converts spoken text into catalog-resolved items. Spoken Hindi
// number words are normalized to digits before the model sees the text.
func (s *VoiceService) ParseVoice(ctx context.Context, text string) (*VoiceParseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.NewBadRequestError("Spoken text is required")
	}

	intent, err := s.parser.ParseBillingIntent(ctx, speech.NormalizeNumbers(text))
	if err != nil {
		return nil, apperror.NewUnavailableError("Voice parsing failed: " + err.Error())
	}

	result := &VoiceParseResult{
		CustomerName:   intent.CustomerName,
		ReadyItems:     []ReadyItem{},
		UnmatchedItems: []UnmatchedItem{},
		Model:          s.parser.Model(),
	}

	for _, spoken := range intent.Items {
		master, err := s.itemRepo.FindByName(ctx, strings.ToLower(strings.TrimSpace(spoken.Name)))
		if err != nil {
			return nil, err
		}
		if master != nil {
			result.ReadyItems = append(result.ReadyItems, ReadyItem{
				ItemID:   master.ID,
				Name:     master.Name,
				Rate:     master.Rate,
				Unit:     master.Unit,
				Quantity: spoken.Quantity,
			})
			continue
		}

		suggestions, err := s.suggest(ctx, spoken.Name)
		if err != nil {
			return nil, err
		}
		result.UnmatchedItems = append(result.UnmatchedItems, UnmatchedItem{
			Name:        spoken.Name,
			Quantity:    spoken.Quantity,
			Suggestions: suggestions,
		})
	}

	result.NextAction = "CREATE_BILL"
	if len(result.UnmatchedItems) > 0 {
		result.NextAction = "CONFIRM_ITEMS"
	}
	return result, nil
}

// ConfirmItemInput pins one suggested catalog entry with a quantity.
type ConfirmItemInput struct {
	ItemID   uint
	Quantity float64
}

// ConfirmItems validates the user's picks against the catalog and returns
// the billing-ready list for bill creation.
func (s *VoiceService) ConfirmItems(ctx context.Context, items []ConfirmItemInput) ([]ReadyItem, error) {
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("No items confirmed")
	}

	confirmed := make([]ReadyItem, 0, len(items))
	for _, pick := range items {
		master, err := s.itemRepo.GetByID(ctx, pick.ItemID)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, apperror.NewNotFoundError("Item")
		}

		quantity := pick.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		confirmed = append(confirmed, ReadyItem{
			ItemID:   master.ID,
			Name:     master.Name,
			Rate:     master.Rate,
			Unit:     master.Unit,
			Quantity: &quantity,
		})
	}
	return confirmed, nil
}

// VoiceBillInput creates an OPEN bill from confirmed voice items.
type VoiceBillInput struct {
	CustomerName string
	BillType     string
	Items        []ConfirmItemInput
}

// CreateBillFromVoice finds or creates the named customer and opens a bill
// with the confirmed items. The bill stays OPEN so it can still be corrected
// by voice; GST and invoice numbers arrive only at finalize.
func (s *VoiceService) CreateBillFromVoice(ctx context.Context, input *VoiceBillInput) (*entity.Bill, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	billType, ok := enum.ParseBillType(input.BillType)
	if !ok {
		billType = enum.BillTypeNonGST
	}

	var bill *entity.Bill
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if customer == nil {
			customer = &entity.Customer{Name: name}
			if err := s.customerRepo.Create(ctx, customer); err != nil {
				return err
			}
		}

		bill, err = s.billService.CreateBill(ctx, &CreateBillInput{
			CustomerID: customer.ID,
			BillType:   billType,
		})
		if err != nil {
			return err
		}

		for _, pick := range input.Items {
			master, err := s.itemRepo.GetByID(ctx, pick.ItemID)
			if err != nil {
				return err
			}
			if master == nil {
				continue
			}

			quantity := decimal.NewFromFloat(pick.Quantity)
			if !quantity.IsPositive() {
				quantity = decimal.NewFromInt(1)
			}
			item := &entity.BillItem{
				BillID:   bill.ID,
				ItemName: master.Name,
				Quantity: quantity,
				Rate:     master.Rate,
				Unit:     master.Unit,
				Subtotal: money.LineSubtotal(quantity, master.Rate),
			}
			if err := s.billItemRepo.Create(ctx, item); err != nil {
				return err
			}
		}

		return s.billService.recomputeOpenTotals(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// VoiceCorrectionResult reports what a spoken correction changed.
type VoiceCorrectionResult struct {
	BillID   uint            `json:"bill_id"`
	Changes  []string        `json:"changes"`
	NewTotal decimal.Decimal `json:"new_total"`
}

// CorrectBill applies a spoken correction command to an OPEN bill: change a
// line's quantity or rate, or remove it. Matching is by substring against
// the line item names.
func (s *VoiceService) CorrectBill(ctx context.Context, billID uint, command string) (*VoiceCorrectionResult, error) {
	parsed, ok := ParseCorrectionCommand(command)
	if !ok {
		return nil, apperror.NewBadRequestError("Could not understand correction command. Please rephrase.")
	}

	var result *VoiceCorrectionResult
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusOpen {
			return apperror.NewInvalidStateError("Only an open bill can be corrected")
		}

		items, err := s.billItemRepo.GetByBillID(ctx, bill.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperror.NewBadRequestError("No items in bill to modify")
		}

		var changes []string
		for i := range items {
			item := &items[i]
			if !strings.Contains(strings.ToLower(item.ItemName), parsed.Target) {
				continue
			}

			switch parsed.Action {
			case CorrectionUpdateQuantity:
				old := item.Quantity
				item.Quantity = decimal.NewFromFloat(parsed.Value)
				item.Subtotal = money.LineSubtotal(item.Quantity, item.Rate)
				if err := s.billItemRepo.Save(ctx, item); err != nil {
					return err
				}
				changes = append(changes, "Updated "+item.ItemName+" quantity "+old.String()+" -> "+item.Quantity.String())
			case CorrectionUpdateRate:
				old := item.Rate
				item.Rate = money.FromFloat(parsed.Value)
				item.Subtotal = money.LineSubtotal(item.Quantity, item.Rate)
				if err := s.billItemRepo.Save(ctx, item); err != nil {
					return err
				}
				changes = append(changes, "Updated "+item.ItemName+" rate "+old.String()+" -> "+item.Rate.String())
			case CorrectionRemove:
				if err := s.billItemRepo.Delete(ctx, item.ID); err != nil {
					return err
				}
				changes = append(changes, "Removed "+item.ItemName)
			}
		}

		if len(changes) == 0 {
			return apperror.NewNotFoundError("Item mentioned in command")
		}

		if err := s.billService.recomputeOpenTotals(ctx, bill); err != nil {
			return err
		}

		result = &VoiceCorrectionResult{
			BillID:   bill.ID,
			Changes:  changes,
			NewTotal: bill.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizeBillFromVoice finalizes through the canonical path, so GST and
// invoice numbers behave exactly as on the manual flow.
func (s *VoiceService) FinalizeBillFromVoice(ctx context.Context, billID uint) (*entity.Bill, error) {
	return s.billService.FinalizeBill(ctx, billID)
}

// PayBillFromVoice records a payment through the canonical path.
func (s *VoiceService) PayBillFromVoice(ctx context.Context, billID uint, amount float64, method string) (*entity.Bill, error) {
	if method == "" {
		method = "CASH"
	}
	return s.billService.PayBill(ctx, billID, &PayBillInput{
		Amount: decimal.NewFromFloat(amount),
		Method: method,
	})
}

func (s *VoiceService) suggest(ctx context.Context, name string) ([]ItemSuggestion, error) {
	masters, err := s.itemService.SuggestItems(ctx, name, 5)
	if err != nil {
		return nil, err
	}
	suggestions := make([]ItemSuggestion, 0, len(masters))
	for _, master := range masters {
		suggestions = append(suggestions, ItemSuggestion{
			ItemID: master.ID,
			Name:   master.Name,
			Rate:   master.Rate,
			Unit:   master.Unit,
		})
	}
	return suggestions, nil
}
