package store_test

import (
	"errors"
	"testing"

	"brickbybrick/store"
)

func TestCategoryRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.CreateCategory("Structure", "load-bearing stuff")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a server-assigned id")
	}

	got, err := s.GetCategory(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Structure" {
		t.Fatalf("title = %q, want Structure", got.Title)
	}

	if _, err := s.CreateCategory("Structure", "duplicate"); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("duplicate title: got %v, want ErrConflict", err)
	}
	cats, err := s.ListCategories(0, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("store has %d categories, want exactly one Structure row", len(cats))
	}
}

func TestCategoryUpdate(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.CreateCategory("Interior", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := s.CreateCategory("Exterior", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateCategory(c.ID, "Interior Finish", "walls and floors")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Interior Finish" || updated.Description != "walls and floors" {
		t.Fatalf("update did not replace fields: %+v", updated)
	}

	if _, err := s.UpdateCategory(c.ID, "Exterior", ""); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("update onto taken title: got %v, want ErrConflict", err)
	}
	if _, err := s.UpdateCategory(other.ID+100, "X", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing id: got %v, want ErrNotFound", err)
	}
}

func TestListCategoriesSkipLimit(t *testing.T) {
	s, _ := newTestStore(t)
	for _, title := range []string{"A", "B", "C"} {
		if _, err := s.CreateCategory(title, ""); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	page, err := s.ListCategories(1, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 1 || page[0].Title != "B" {
		t.Fatalf("skip=1 limit=1 returned %+v, want just B", page)
	}

	empty, err := s.ListCategories(50, 10)
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("skip past end returned %d rows, want 0", len(empty))
	}
}

func TestDeleteCategoryGuardedByExpenses(t *testing.T) {
	s, _ := newTestStore(t)

	cat, err := s.CreateCategory("Tools", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	sub, err := s.CreateSubCategory("Power Tools", "", cat.ID)
	if err != nil {
		t.Fatalf("create sub-category: %v", err)
	}
	if _, err := s.CreateExpense(store.ExpenseInput{Title: "Drill", Amount: 89.99, CategoryID: cat.ID, SubCategoryID: &sub.ID}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	err = s.DeleteCategory(cat.ID)
	var ref *store.ReferencedError
	if !errors.As(err, &ref) {
		t.Fatalf("guarded delete: got %v, want ReferencedError", err)
	}
	if ref.Count != 1 {
		t.Fatalf("reference count = %d, want 1", ref.Count)
	}
	if !errors.Is(err, store.ErrConflict) {
		t.Fatal("ReferencedError should match ErrConflict")
	}

	// nothing changed
	if _, err := s.GetCategory(cat.ID); err != nil {
		t.Fatalf("category gone after blocked delete: %v", err)
	}
	if _, err := s.GetSubCategory(sub.ID); err != nil {
		t.Fatalf("sub-category gone after blocked delete: %v", err)
	}
}

func TestDeleteCategoryCascadesSubCategories(t *testing.T) {
	s, _ := newTestStore(t)

	cat, err := s.CreateCategory("Landscaping", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	sub1, err := s.CreateSubCategory("Plants", "", cat.ID)
	if err != nil {
		t.Fatalf("create sub-category: %v", err)
	}
	sub2, err := s.CreateSubCategory("Soil", "", cat.ID)
	if err != nil {
		t.Fatalf("create sub-category: %v", err)
	}

	if err := s.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, id := range []uint{sub1.ID, sub2.ID} {
		if _, err := s.GetSubCategory(id); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("sub-category %d survived the cascade: %v", id, err)
		}
	}
	if err := s.DeleteCategory(cat.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteSubCategoryAndPhaseGuards(t *testing.T) {
	s, _ := newTestStore(t)

	cat, _ := s.CreateCategory("Utilities", "")
	sub, _ := s.CreateSubCategory("Plumbing Pipes", "", cat.ID)
	phase, err := s.CreatePhase("Foundation", "")
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	exp, err := s.CreateExpense(store.ExpenseInput{
		Title: "Copper pipe", Amount: 120, CategoryID: cat.ID,
		SubCategoryID: &sub.ID, PhaseID: &phase.ID,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := s.DeleteSubCategory(sub.ID); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("sub-category delete: got %v, want conflict", err)
	}
	if err := s.DeletePhase(phase.ID); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("phase delete: got %v, want conflict", err)
	}

	if err := s.DeleteExpense(exp.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if err := s.DeleteSubCategory(sub.ID); err != nil {
		t.Fatalf("sub-category delete after expense gone: %v", err)
	}
	if err := s.DeletePhase(phase.ID); err != nil {
		t.Fatalf("phase delete after expense gone: %v", err)
	}
}
