package service

import (
	"context"
	"testing"

	"github.com/shopbill/billing-api/pkg/apperror"
)

func TestItemService(t *testing.T) {
	ctx := context.Background()

	t.Run("create lower-cases and rounds", func(t *testing.T) {
		store := newMemStore()
		svc := NewItemService(memItems{store})

		item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "  Cement ", Rate: dec("349.995")})
		if err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		if item.Name != "cement" {
			t.Errorf("got name %q, want cement", item.Name)
		}
		if !item.Rate.Equal(dec("350.00")) {
			t.Errorf("got rate %s, want 350.00", item.Rate)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		store := newMemStore()
		seedItem(t, store, "cement", "350")
		svc := NewItemService(memItems{store})

		_, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Cement", Rate: dec("100")})
		if !apperror.IsKind(err, apperror.KindConflict) {
			t.Fatalf("expected CONFLICT, got %v", err)
		}
	})

	t.Run("non-positive rate rejected", func(t *testing.T) {
		store := newMemStore()
		svc := NewItemService(memItems{store})

		_, err := svc.CreateItem(ctx, &CreateItemInput{Name: "cement", Rate: dec("0")})
		if !apperror.IsKind(err, apperror.KindInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}
	})

	t.Run("update changes rate only going forward", func(t *testing.T) {
		store := newMemStore()
		item := seedItem(t, store, "cement", "350")
		svc := NewItemService(memItems{store})

		rate := dec("375")
		updated, err := svc.UpdateItem(ctx, item.ID, &UpdateItemInput{Rate: &rate})
		if err != nil {
			t.Fatalf("UpdateItem: %v", err)
		}
		if !updated.Rate.Equal(dec("375")) {
			t.Errorf("got rate %s, want 375", updated.Rate)
		}
	})

	t.Run("rename checks for collisions", func(t *testing.T) {
		store := newMemStore()
		item := seedItem(t, store, "cement", "350")
		seedItem(t, store, "white cement", "400")
		svc := NewItemService(memItems{store})

		taken := "White Cement"
		_, err := svc.UpdateItem(ctx, item.ID, &UpdateItemInput{Name: &taken})
		if !apperror.IsKind(err, apperror.KindConflict) {
			t.Fatalf("expected CONFLICT, got %v", err)
		}

		free := "Grey Cement"
		updated, err := svc.UpdateItem(ctx, item.ID, &UpdateItemInput{Name: &free})
		if err != nil {
			t.Fatalf("UpdateItem: %v", err)
		}
		if updated.Name != "grey cement" {
			t.Errorf("got name %q, want grey cement", updated.Name)
		}
	})

	t.Run("match prefers exact then contains", func(t *testing.T) {
		store := newMemStore()
		seedItem(t, store, "white cement", "400")
		seedItem(t, store, "cement", "350")
		svc := NewItemService(memItems{store})

		exact, err := svc.MatchItem(ctx, "Cement")
		if err != nil {
			t.Fatalf("MatchItem: %v", err)
		}
		if exact == nil || exact.Name != "cement" {
			t.Fatalf("got %+v, want exact cement match", exact)
		}

		partial, err := svc.MatchItem(ctx, "white cem")
		if err != nil {
			t.Fatalf("MatchItem: %v", err)
		}
		if partial == nil || partial.Name != "white cement" {
			t.Fatalf("got %+v, want white cement", partial)
		}
	})

	t.Run("suggest ignores short tokens", func(t *testing.T) {
		store := newMemStore()
		seedItem(t, store, "cement", "350")
		svc := NewItemService(memItems{store})

		none, err := svc.SuggestItems(ctx, "of to in", 5)
		if err != nil {
			t.Fatalf("SuggestItems: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("got %d suggestions, want 0", len(none))
		}

		some, err := svc.SuggestItems(ctx, "grey cement bag", 5)
		if err != nil {
			t.Fatalf("SuggestItems: %v", err)
		}
		if len(some) != 1 {
			t.Errorf("got %d suggestions, want 1", len(some))
		}
	})
}
