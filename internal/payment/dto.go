// AngelaMos | 2026
// dto.go

package payment

type InitiateRequest struct {
	Item string `json:"item" validate:"required,max=60"`
}

// InitiateResponse returns the confirmation code in plaintext once.
// A real gateway would deliver it out of band; the simulated one hands
// it straight back.
type InitiateResponse struct {
	PaymentID        string `json:"payment_id"`
	Item             string `json:"item"`
	AmountCents      int64  `json:"amount_cents"`
	ConfirmationCode string `json:"confirmation_code"`
}

type ConfirmRequest struct {
	PaymentID        string `json:"payment_id"        validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,numeric"`
}

type ConfirmResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Badge     string `json:"badge"`
}
