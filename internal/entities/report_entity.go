package entities

// OrderReportRow - строка отчёта по заказам.
type OrderReportRow struct {
	Order        Order
	StatusName   string
	CourierName  string
	WaiterName   string
	HistoryCount int
}
