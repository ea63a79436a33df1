package valueobjects

// SubscriptionStatus is the lifecycle status of a subscription. The values
// keep the historical French wire form used by existing clients and data.
type SubscriptionStatus string

const (
	// StatusPendingPayment: created, waiting for the tenant's payment.
	StatusPendingPayment SubscriptionStatus = "attente_paiement"
	// StatusPendingDelivery: paid, waiting for document delivery.
	StatusPendingDelivery SubscriptionStatus = "attente_livraison"
	// StatusDelivered: documents delivered, housing unit occupied.
	StatusDelivered SubscriptionStatus = "livre"
	// StatusClosed: validity elapsed, housing unit released. Terminal.
	StatusClosed SubscriptionStatus = "cloture"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsEditable reports whether free-field updates are still allowed. Once a
// subscription is delivered its recorded facts are frozen.
func (s SubscriptionStatus) IsEditable() bool {
	return s == StatusPendingPayment || s == StatusPendingDelivery
}

// IsTerminal reports whether no further transition may leave this status.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusClosed
}

// CanTransitionTo enforces the forward-only lifecycle order.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPendingPayment:  {StatusPendingDelivery},
		StatusPendingDelivery: {StatusDelivered},
		StatusDelivered:       {StatusClosed},
		StatusClosed:          {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPendingPayment:  true,
	StatusPendingDelivery: true,
	StatusDelivered:       true,
	StatusClosed:          true,
}

// ParseStatus validates a raw status string at the API boundary. Statuses
// are only ever converted from strings here; everywhere else the typed
// value is used.
func ParseStatus(raw string) (SubscriptionStatus, bool) {
	s := SubscriptionStatus(raw)
	return s, ValidStatuses[s]
}
