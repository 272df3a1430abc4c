package domain

// Payment statuses follow the gateway's own vocabulary so a verified record
// stores exactly what the gateway reported.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// IsFinal reports whether a status can no longer transition.
func IsFinal(status string) bool {
	return status == PaymentStatusSuccess || status == PaymentStatusFailed
}
