package report

import (
	"fmt"
	"io"
	"strings"

	"distributor-service/internal/service"

	"github.com/xuri/excelize/v2"
)

const sheet = "Invoice"

// WriteOrderExport пишет xlsx-проекцию заказа: шапка, позиция, история
// платежей. Чистое чтение, состояние заказа не трогается.
func WriteOrderExport(w io.Writer, view *service.OrderView) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	ord := view.Order

	cells := [][2]any{
		{"A1", "INVOICE"},
		{"A3", "Order ID"}, {"B3", ord.ID.String()},
		{"A4", "Date"}, {"B4", ord.CreatedAt.Format("2006-01-02 15:04")},
		{"A5", "Customer"}, {"B5", view.Username},
		{"A6", "Status"}, {"B6", strings.ToUpper(string(ord.Status))},

		{"A8", "Item"}, {"B8", "Quantity"}, {"C8", "Total"},
		{"A9", ord.ProductName}, {"B9", ord.Quantity}, {"C9", money(ord.TotalAmountCents)},

		{"A11", "Total Amount"}, {"B11", money(ord.TotalAmountCents)},
		{"A12", "Advance Paid"}, {"B12", money(ord.AdvanceCents)},
		{"A13", "Remaining Due"}, {"B13", money(ord.RemainingCents)},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c[0].(string), c[1]); err != nil {
			return err
		}
	}

	row := 15
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Payments"); err != nil {
		return err
	}
	row++
	for _, h := range [][2]string{{"A", "Date"}, {"B", "Type"}, {"C", "Amount"}} {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", h[0], row), h[1]); err != nil {
			return err
		}
	}
	for _, p := range view.Payments {
		row++
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(p.PaymentType)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", row), money(p.AmountCents)); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func money(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
