package domain

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusPending   InvoiceStatus = "pending"
	StatusSent      InvoiceStatus = "sent"
	StatusViewed    InvoiceStatus = "viewed"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

// transitions is the allowed lifecycle graph. Paid and Cancelled are
// terminal.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:   {StatusPending, StatusCancelled},
	StatusPending: {StatusSent, StatusCancelled},
	StatusSent:    {StatusViewed, StatusPaid, StatusOverdue, StatusCancelled},
	StatusViewed:  {StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue: {StatusPaid, StatusCancelled},
}

// ParseStatus parses a status string strictly. Unknown values are an
// error, never coerced to draft: the status set is closed and silently
// defaulting would mask client bugs.
func ParseStatus(raw string) (InvoiceStatus, error) {
	switch InvoiceStatus(raw) {
	case StatusDraft, StatusPending, StatusSent, StatusViewed,
		StatusPaid, StatusOverdue, StatusCancelled:
		return InvoiceStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Terminal reports whether no further transitions are allowed.
func (s InvoiceStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is allowed.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
