package directory

import "time"

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

type Employee struct {
	ID                           int64     `json:"id"`
	FirstName                    string    `json:"firstName"`
	LastName                     string    `json:"lastName"`
	Email                        string    `json:"email"`
	Phone                        string    `json:"phone"`
	Role                         string    `json:"role"`
	DepartmentID                 int64     `json:"departmentId"`
	StartDate                    time.Time `json:"startDate"`
	Status                       string    `json:"status"`
	PhotoURL                     string    `json:"photoUrl,omitempty"`
	EmergencyContactName         string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone        string    `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship string    `json:"emergencyContactRelationship,omitempty"`
	CreatedAt                    time.Time `json:"createdAt"`
	UpdatedAt                    time.Time `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Department has no status field: it is either present or deleted. HeadID is
// zero when no head is assigned. MemberCount is a display cache; the
// authoritative count is always the live filter over employees.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HeadID      int64     `json:"headId,omitempty"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
