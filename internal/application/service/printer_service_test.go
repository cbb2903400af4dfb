package service

import (
	"bytes"
	"testing"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
)

func TestFormatClosingReceipt(t *testing.T) {
	receipt := &entity.ClosingReceipt{
		Branch:    "Cantt Branch",
		Date:      "29 Jan 2026",
		ClosingID: "CANTT290126CR",
		CashSale:  50000,
		CCTips:    500,
		Expenses: []entity.ReceiptExpense{
			{Category: "Staff", Description: "Overtime", Amount: 3000},
			{Category: "Fuel", Description: "Generator diesel", Amount: 1200},
		},
		ExpectedCash: 45300,
	}

	data := FormatClosingReceipt(receipt)

	for _, want := range []string{
		"KLAP",
		"CANTT BRANCH",
		"CANTT290126CR",
		"Cash Sale:",
		"50,000",
		"EXPENSES:",
		"* Staff:",
		"Overtime",
		"(500)",
		"CASH IN HAND",
		"45,300",
		"*** End of Report ***",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("receipt missing %q", want)
		}
	}

	// Ends with a paper cut command.
	if !bytes.Contains(data[len(data)-8:], []byte{0x1D, 'V'}) {
		t.Error("receipt does not end with a cut command")
	}
}

func TestFormatClosingReceiptOmitsZeroTips(t *testing.T) {
	receipt := &entity.ClosingReceipt{
		Branch:       "DHA Branch",
		Date:         "01 Feb 2026",
		CashSale:     12000,
		ExpectedCash: 12000,
	}

	data := FormatClosingReceipt(receipt)
	if bytes.Contains(data, []byte("CC Tips")) {
		t.Error("receipt shows CC Tips line for zero tips")
	}
	if bytes.Contains(data, []byte("EXPENSES:")) {
		t.Error("receipt shows expenses block for empty ledger")
	}
}
