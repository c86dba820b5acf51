package store_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"brickbybrick/store"
)

func TestCreateExpenseDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")

	e, err := s.CreateExpense(store.ExpenseInput{Title: "Drill", Amount: 89.99, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	y, m, d := time.Now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !e.CreationDate.Equal(today) {
		t.Fatalf("creation_date = %v, want %v", e.CreationDate, today)
	}
	if !e.PurchaseDate.Equal(e.CreationDate) {
		t.Fatalf("purchase_date = %v, want creation date", e.PurchaseDate)
	}
	if len(e.Tags) != 0 {
		t.Fatalf("new expense has %d tags, want 0", len(e.Tags))
	}
	if e.Category.Title != "Tools" {
		t.Fatalf("category not loaded: %+v", e.Category)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")

	cases := []struct {
		name string
		in   store.ExpenseInput
	}{
		{"missing category", store.ExpenseInput{Title: "X", Amount: 1, CategoryID: cat.ID + 99}},
		{"zero amount", store.ExpenseInput{Title: "X", Amount: 0, CategoryID: cat.ID}},
		{"negative amount", store.ExpenseInput{Title: "X", Amount: -5, CategoryID: cat.ID}},
		{"blank title", store.ExpenseInput{Title: "  ", Amount: 1, CategoryID: cat.ID}},
	}
	for _, tc := range cases {
		if _, err := s.CreateExpense(tc.in); !errors.Is(err, store.ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", tc.name, err)
		}
	}

	missing := uint(404)
	in := store.ExpenseInput{Title: "X", Amount: 1, CategoryID: cat.ID, SubCategoryID: &missing}
	if _, err := s.CreateExpense(in); !errors.Is(err, store.ErrValidation) {
		t.Errorf("missing sub-category: got %v, want ErrValidation", err)
	}
	in = store.ExpenseInput{Title: "X", Amount: 1, CategoryID: cat.ID, PhaseID: &missing}
	if _, err := s.CreateExpense(in); !errors.Is(err, store.ErrValidation) {
		t.Errorf("missing phase: got %v, want ErrValidation", err)
	}
}

func TestCreateExpenseDropsUnknownTagIDs(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")
	tag, err := s.CreateTag("power-tool")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	e, err := s.CreateExpense(store.ExpenseInput{
		Title: "Drill", Amount: 89.99, CategoryID: cat.ID,
		TagIDs: []uint{tag.ID, tag.ID + 50, tag.ID + 51},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(e.Tags) != 1 || e.Tags[0].ID != tag.ID {
		t.Fatalf("tags = %+v, want just %d (unknown ids dropped silently)", e.Tags, tag.ID)
	}
}

func TestUpdateExpenseReplacesEverything(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")
	other, _ := s.CreateCategory("Interior", "")
	t1, _ := s.CreateTag("power-tool")
	t2, _ := s.CreateTag("rental")

	e, err := s.CreateExpense(store.ExpenseInput{
		Title: "Drill", Amount: 89.99, CategoryID: cat.ID,
		Notes: "original notes", Vendor: "Hardware Co",
		TagIDs: []uint{t1.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := e.CreationDate

	purchase := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateExpense(e.ID, store.ExpenseInput{
		Title: "Hammer drill", Amount: 129.50, CategoryID: other.ID,
		PurchaseDate: &purchase, TagIDs: []uint{t2.ID},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Hammer drill" || updated.Amount != 129.50 || updated.CategoryID != other.ID {
		t.Fatalf("scalars not replaced: %+v", updated)
	}
	if updated.Notes != "" || updated.Vendor != "" {
		t.Fatalf("full-replace must clear omitted fields, got notes=%q vendor=%q", updated.Notes, updated.Vendor)
	}
	if !updated.CreationDate.Equal(created) {
		t.Fatalf("creation_date changed: %v -> %v", created, updated.CreationDate)
	}
	if !updated.PurchaseDate.Equal(purchase) {
		t.Fatalf("purchase_date = %v, want %v", updated.PurchaseDate, purchase)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != t2.ID {
		t.Fatalf("tag set = %+v, want just %d", updated.Tags, t2.ID)
	}
}

func TestUpdateExpenseEmptyTagListClearsTags(t *testing.T) {
	s, _ := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")
	tag, _ := s.CreateTag("power-tool")

	e, err := s.CreateExpense(store.ExpenseInput{
		Title: "Drill", Amount: 89.99, CategoryID: cat.ID, TagIDs: []uint{tag.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(e.Tags) != 1 {
		t.Fatalf("precondition: expense should carry one tag")
	}

	updated, err := s.UpdateExpense(e.ID, store.ExpenseInput{
		Title: "Drill", Amount: 89.99, CategoryID: cat.ID, TagIDs: []uint{},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatalf("empty tag list should clear the set, got %+v", updated.Tags)
	}
	// and the tag itself is now free to delete
	if err := s.DeleteTag(tag.ID); err != nil {
		t.Fatalf("tag delete after unlink: %v", err)
	}
}

func TestDeleteExpenseCascades(t *testing.T) {
	s, files := newTestStore(t)
	cat, _ := s.CreateCategory("Tools", "")
	tag, _ := s.CreateTag("power-tool")

	e, err := s.CreateExpense(store.ExpenseInput{
		Title: "Drill", Amount: 89.99, CategoryID: cat.ID, TagIDs: []uint{tag.ID},
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	att, err := s.CreateAttachment(e.ID, "receipt.txt", strings.NewReader("total 89.99"))
	if err != nil {
		t.Fatalf("create attachment: %v", err)
	}
	if !files.Exists(att.FilePath) {
		t.Fatal("attachment object missing before delete")
	}

	// tag is referenced, so its delete is blocked
	if err := s.DeleteTag(tag.ID); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("tag delete while referenced: got %v, want conflict", err)
	}

	if err := s.DeleteExpense(e.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if _, err := s.GetExpense(e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expense still readable: %v", err)
	}
	if _, err := s.GetAttachment(att.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("attachment record survived the cascade: %v", err)
	}
	if files.Exists(att.FilePath) {
		t.Fatal("attachment object survived the cascade")
	}
	if err := s.DeleteTag(tag.ID); err != nil {
		t.Fatalf("tag delete after expense gone: %v", err)
	}

	if err := s.DeleteExpense(e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}
