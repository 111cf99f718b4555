package valueobjects

// CallbackStatus is the payment status the CRM understands.
type CallbackStatus string

const (
	CallbackStatusPending CallbackStatus = "pending"
	CallbackStatusSuccess CallbackStatus = "success"
	CallbackStatusFailed  CallbackStatus = "failed"
)

// providerStatuses is the closed set of Coinsbuy deposit states the relay knows.
var providerStatuses = map[string]CallbackStatus{
	"pending":   CallbackStatusPending,
	"confirmed": CallbackStatusSuccess,
	"completed": CallbackStatusSuccess,
	"failed":    CallbackStatusFailed,
	"cancelled": CallbackStatusFailed,
	"expired":   CallbackStatusFailed,
}

// MapProviderStatus translates a provider deposit status. Matching is exact
// and case-sensitive. Unknown or empty input maps to pending.
func MapProviderStatus(providerStatus string) CallbackStatus {
	if status, ok := providerStatuses[providerStatus]; ok {
		return status
	}
	return CallbackStatusPending
}

func (s CallbackStatus) IsValid() bool {
	switch s {
	case CallbackStatusPending, CallbackStatusSuccess, CallbackStatusFailed:
		return true
	default:
		return false
	}
}

func (s CallbackStatus) IsFinal() bool {
	return s == CallbackStatusSuccess || s == CallbackStatusFailed
}

func (s CallbackStatus) String() string {
	return string(s)
}
