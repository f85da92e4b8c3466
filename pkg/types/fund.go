package types

import "time"

// Fund is one captured payment. Rows are written only after the payment
// provider confirms the charge and are immutable afterwards.
type Fund struct {
	ID            string    `db:"id" json:"id"`
	DonorName     string    `db:"donor_name" json:"donorName"`
	FundAmount    float64   `db:"fund_amount" json:"fundAmount"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	FundingDate   time.Time `db:"funding_date" json:"fundingDate"`
}
