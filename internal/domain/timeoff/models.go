package timeoff

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeVacation = "vacation"
	TypeSick     = "sick"
	TypePersonal = "personal"
)

// Request is a time-off request. ApprovedBy is set only on the transition
// into approved and stays empty otherwise. RequestDate is set at creation
// and immutable thereafter.
type Request struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	ApprovedBy  string    `json:"approvedBy,omitempty"`
	RequestDate time.Time `json:"requestDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Terminal reports whether no further transition is permitted from status.
func Terminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func ValidType(t string) bool {
	return t == TypeVacation || t == TypeSick || t == TypePersonal
}
