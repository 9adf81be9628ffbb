package orders

import "strings"

// IsDead reports whether an order is terminated. Providers report
// cancellation inconsistently: a payment-level void can precede or substitute
// for an order-level status change, so both signals are checked on every
// reconciled update.
func IsDead(order *CanonicalOrder) bool {
	if order.Status == StatusCanceled {
		return true
	}

	switch strings.ToLower(order.Raw.State) {
	case "voided", "deleted":
		return true
	}

	for _, p := range order.Raw.Payments {
		switch strings.ToUpper(p.Result) {
		case "VOIDED", "VOIDING":
			return true
		}
	}

	return false
}
