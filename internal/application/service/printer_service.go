package service

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/money"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/printer"
)

// receiptWidth is the character width of the 80mm closing receipt.
const receiptWidth = 48

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	logger      *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, logger *logrus.Logger) *PrinterService {
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.ClosingReceipt, error) {
	receipt := &entity.ClosingReceipt{
		Branch:    "PRINTER TEST",
		Date:      "Test Date",
		ClosingID: "TEST000000CR",
		CashSale:  1000,
		Expenses: []entity.ReceiptExpense{
			{Category: "Test", Description: "Test expense line", Amount: 100},
		},
		ExpectedCash: 900,
	}

	data := FormatClosingReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintClosing prints the end-of-day receipt for a submitted closing.
func (s *PrinterService) PrintClosing(receipt *entity.ClosingReceipt) error {
	data := FormatClosingReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		s.logger.WithField("closing_id", receipt.ClosingID).WithError(err).Error("receipt print failed")
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// FormatClosingReceipt renders the closing receipt as an ESC/POS byte
// stream for 80mm paper.
func FormatClosingReceipt(r *entity.ClosingReceipt) []byte {
	doc := printer.NewDocument(receiptWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text("KLAP").
		SetFontSize(printer.FontNormal).
		Text(strings.ToUpper(r.Branch)).
		SetBold(false).
		TextF("Date: %s", r.Date)

	if r.ClosingID != "" {
		doc.Text(r.ClosingID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Cash Sale:", money.Format(r.CashSale))

	if len(r.Expenses) > 0 {
		doc.LineFeed().
			SetBold(true).
			Text("EXPENSES:").
			SetBold(false)
		for _, e := range r.Expenses {
			doc.KeyValue("* "+e.Category+":", money.Format(e.Amount))
			if e.Description != "" {
				doc.Indented(4, e.Description)
			}
		}
	}

	if r.CCTips > 0 {
		doc.LineFeed().
			KeyValue("CC Tips:", "("+money.Format(r.CCTips)+")")
	}

	doc.Separator('-')

	// Totals
	doc.SetAlign(printer.AlignCenter).
		Text("CASH IN HAND").
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(money.Format(r.ExpectedCash)).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		LineFeed().
		Text("*** End of Report ***").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
