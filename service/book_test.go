package service

import (
	"Libro/models"
	"Libro/pkg/response"
	"Libro/types"
	"net/http"
	"testing"
)

func i64(v int64) *int64 { return &v }

func TestCanModifyBook(t *testing.T) {
	owner := &models.Users{ID: 10}
	stranger := &models.Users{ID: 11}
	staff := &models.Users{ID: 12, IsStaff: true}

	owned := &models.Book{ID: 1, OwnerID: i64(10)}
	orphan := &models.Book{ID: 2, OwnerID: nil}

	if !CanModifyBook(owner, owned) {
		t.Fatal("owner should be allowed")
	}
	if CanModifyBook(stranger, owned) {
		t.Fatal("stranger should be denied")
	}
	if !CanModifyBook(staff, owned) {
		t.Fatal("staff should be allowed")
	}
	// 属主被删除后的书，只有后台用户能改
	if CanModifyBook(stranger, orphan) {
		t.Fatal("stranger should be denied on orphan book")
	}
	if !CanModifyBook(staff, orphan) {
		t.Fatal("staff should be allowed on orphan book")
	}
	if CanModifyBook(nil, owned) {
		t.Fatal("nil user should be denied")
	}
}

func TestValidatePrice(t *testing.T) {
	if err := validatePrice(100); err != nil {
		t.Fatalf("price=100: unexpected error %v", err)
	}
	for _, price := range []float64{0, -1, 100000} {
		err := validatePrice(price)
		if err == nil {
			t.Fatalf("price=%v: expected error", price)
		}
		be, ok := err.(*response.BizError)
		if !ok || be.Code != http.StatusBadRequest {
			t.Fatalf("price=%v: expected 400 BizError, got %v", price, err)
		}
	}
}

func TestBuildBookUpdates(t *testing.T) {
	name := "Clean Code"
	updates := buildBookUpdates(&types.UpdateBookRequest{Name: &name})
	if updates["name"] != "Clean Code" {
		t.Fatalf("name not in updates: %v", updates)
	}
	// 没传 discount 就不动
	if _, ok := updates["discount"]; ok {
		t.Fatalf("absent discount should stay untouched: %v", updates)
	}

	// 显式传 null 清除折扣
	updates = buildBookUpdates(&types.UpdateBookRequest{HasDiscount: true})
	v, ok := updates["discount"]
	if !ok {
		t.Fatalf("explicit null discount should be updated: %v", updates)
	}
	if v.(*float64) != nil {
		t.Fatalf("cleared discount should write NULL, got %v", v)
	}

	discount := 0.3
	updates = buildBookUpdates(&types.UpdateBookRequest{Discount: &discount, HasDiscount: true})
	if d := updates["discount"].(*float64); d == nil || *d != 0.3 {
		t.Fatalf("discount not in updates: %v", updates)
	}
}

func TestValidateDiscount(t *testing.T) {
	if err := validateDiscount(nil); err != nil {
		t.Fatalf("nil discount: unexpected error %v", err)
	}
	ok := 0.5
	if err := validateDiscount(&ok); err != nil {
		t.Fatalf("discount=0.5: unexpected error %v", err)
	}
	for _, d := range []float64{-0.1, 1.01, 2} {
		v := d
		if err := validateDiscount(&v); err == nil {
			t.Fatalf("discount=%v: expected error", d)
		}
	}
}
