package authz

import (
	"testing"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/user"
)

var (
	admin  = &Principal{ID: "a-1", Email: "admin@example.com", Role: user.RoleAdmin}
	signer = &Principal{ID: "s-1", Email: "signer@example.com", Role: user.RoleSigner}
)

func TestRolePredicates(t *testing.T) {
	if !IsAdmin(admin) || IsAdmin(signer) || IsAdmin(nil) {
		t.Fatalf("IsAdmin mismatch")
	}
	if !IsSigner(signer) || IsSigner(admin) || IsSigner(nil) {
		t.Fatalf("IsSigner mismatch")
	}
	if !IsAuthenticated(signer) || !IsAuthenticated(admin) || IsAuthenticated(nil) {
		t.Fatalf("IsAuthenticated mismatch")
	}
	if !CanCreateOffer(admin) || CanCreateOffer(signer) || CanCreateOffer(nil) {
		t.Fatalf("CanCreateOffer mismatch")
	}
	if !CanManageInvestments(admin) || CanManageInvestments(signer) || CanManageInvestments(nil) {
		t.Fatalf("CanManageInvestments mismatch")
	}
	if !CanInvest(signer) || !CanInvest(admin) || CanInvest(nil) {
		t.Fatalf("CanInvest mismatch")
	}
}

func TestCanViewInvestment(t *testing.T) {
	if !CanViewInvestment(signer, "s-1") {
		t.Fatalf("owner should view")
	}
	if CanViewInvestment(signer, "other") {
		t.Fatalf("non-owner signer should not view")
	}
	if !CanViewInvestment(admin, "other") {
		t.Fatalf("admin should view any")
	}
	if CanViewInvestment(nil, "s-1") {
		t.Fatalf("anonymous should not view")
	}
}

func TestCanCancelInvestment(t *testing.T) {
	if !CanCancelInvestment(signer, "s-1", investment.StatusPending) {
		t.Fatalf("owner may cancel pending")
	}
	if CanCancelInvestment(signer, "s-1", investment.StatusAccepted) {
		t.Fatalf("owner may not cancel accepted")
	}
	if CanCancelInvestment(signer, "other", investment.StatusPending) {
		t.Fatalf("non-owner may not cancel")
	}
	if CanCancelInvestment(admin, "s-1", investment.StatusPending) {
		t.Fatalf("admin is not the owner")
	}
}

func TestCanAccessPath(t *testing.T) {
	cases := []struct {
		path string
		p    *Principal
		want bool
	}{
		{"/", nil, true},
		{"/", signer, false},
		{"/about", nil, true},
		{"/about", admin, true},
		{"/contact/form", signer, true},
		{"/login", nil, true},
		{"/login", signer, false},
		{"/register", admin, false},
		{"/forgot-password", nil, true},
		{"/reset-password?token=x", signer, false},
		{"/admin", admin, true},
		{"/admin/offers/new", admin, true},
		{"/admin/offers", signer, false},
		{"/admin", nil, false},
		{"/administrator", nil, true},
		{"/investments", nil, false},
		{"/investments/123", signer, true},
		{"/profile/", signer, true},
		{"/offers", nil, false},
		{"/offers/abc", admin, true},
		{"/unknown", nil, true},
	}
	for _, tc := range cases {
		if got := CanAccessPath(tc.p, tc.path); got != tc.want {
			t.Fatalf("CanAccessPath(%v, %q) = %v, want %v", tc.p, tc.path, got, tc.want)
		}
	}
}
