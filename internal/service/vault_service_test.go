package service

import "testing"

func TestCheckVaultWithdrawal(t *testing.T) {
	if err := checkVaultWithdrawal(100, 50); err != nil {
		t.Errorf("expected withdrawal within the vault balance to pass, got %v", err)
	}
	if err := checkVaultWithdrawal(100, 100); err != nil {
		t.Errorf("expected full-balance withdrawal to pass, got %v", err)
	}
}

func TestCheckVaultWithdrawalInsufficientFunds(t *testing.T) {
	if err := checkVaultWithdrawal(100, 150); err != ErrInsufficientVaultFunds {
		t.Errorf("expected ErrInsufficientVaultFunds, got %v", err)
	}
}
