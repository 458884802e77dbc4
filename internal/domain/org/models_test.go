package org

import (
	"testing"

	"storeops/internal/domain/money"
)

func TestSupportsCurrency(t *testing.T) {
	store := Store{
		SupportedCurrencies: []money.Currency{money.EUR},
		DefaultCurrency:     money.EUR,
	}
	if !store.SupportsCurrency(money.EUR) {
		t.Fatal("expected EUR to be supported")
	}
	if store.SupportsCurrency(money.GBP) {
		t.Fatal("expected GBP to be unsupported")
	}
}

func TestEmployeeRates(t *testing.T) {
	rate := 15.0
	daily := 50.0
	emp := Employee{HourlyRateEur: &rate, DailyWageGbp: &daily}
	rates := emp.Rates()
	if rates.HourlyEur == nil || *rates.HourlyEur != 15.0 {
		t.Fatalf("unexpected hourly EUR rate: %v", rates.HourlyEur)
	}
	if rates.DailyGbp == nil || *rates.DailyGbp != 50.0 {
		t.Fatalf("unexpected daily GBP wage: %v", rates.DailyGbp)
	}
	if rates.HourlyGbp != nil {
		t.Fatal("expected hourly GBP to be unset")
	}
}
