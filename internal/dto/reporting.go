package dto

// CashSummaryParams selects the inclusive date range of a cash summary.
type CashSummaryParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}
