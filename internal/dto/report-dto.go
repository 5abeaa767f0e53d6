package dto

type OrdersReportQuery struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}
