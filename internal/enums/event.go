package enums

const DEFAULT_EVENT_COLOR = "#3788d8"

const (
	RECURRING_DAILY   = "daily"
	RECURRING_WEEKLY  = "weekly"
	RECURRING_MONTHLY = "monthly"
	RECURRING_YEARLY  = "yearly"
)

func IsValidRecurringPattern(pattern string) bool {
	switch pattern {
	case "", RECURRING_DAILY, RECURRING_WEEKLY, RECURRING_MONTHLY, RECURRING_YEARLY:
		return true
	}
	return false
}
