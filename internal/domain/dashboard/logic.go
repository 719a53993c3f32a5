package dashboard

import (
	"fmt"
	"sort"
	"time"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/timeoff"
)

type Stats struct {
	ActiveEmployeeCount int `json:"activeEmployeeCount"`
	DepartmentCount     int `json:"departmentCount"`
	PendingRequestCount int `json:"pendingRequestCount"`
	UpcomingLeaveCount  int `json:"upcomingLeaveCount"`
}

// BuildStats derives the dashboard counters from full collection snapshots.
// Upcoming leave is an approved request starting within the next 30 days,
// today included.
func BuildStats(emps []directory.Employee, deps []directory.Department, reqs []timeoff.Request, today time.Time) Stats {
	stats := Stats{DepartmentCount: len(deps)}
	for _, emp := range emps {
		if emp.Status == directory.StatusActive {
			stats.ActiveEmployeeCount++
		}
	}
	horizonStart := timeoff.Day(today)
	horizonEnd := horizonStart.AddDate(0, 0, 30)
	for _, req := range reqs {
		switch req.Status {
		case timeoff.StatusPending:
			stats.PendingRequestCount++
		case timeoff.StatusApproved:
			start := timeoff.Day(req.StartDate)
			if !start.Before(horizonStart) && !start.After(horizonEnd) {
				stats.UpcomingLeaveCount++
			}
		}
	}
	return stats
}

const (
	maxActivityRequests  = 3
	maxActivityEmployees = 2
	maxActivityEntries   = 5
)

type Activity struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

// RecentActivity merges the three most recent pending requests with the
// first two active employees, caps the feed at five entries, and orders it
// by reference date descending. The sort is stable, so ties keep insertion
// order. The feed is display data, never authoritative state.
func RecentActivity(emps []directory.Employee, deps []directory.Department, reqs []timeoff.Request) []Activity {
	employeesByID := make(map[int64]directory.Employee, len(emps))
	for _, emp := range emps {
		employeesByID[emp.ID] = emp
	}
	departmentsByID := make(map[int64]directory.Department, len(deps))
	for _, dep := range deps {
		departmentsByID[dep.ID] = dep
	}

	var pending []timeoff.Request
	for _, req := range reqs {
		if req.Status == timeoff.StatusPending {
			pending = append(pending, req)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].RequestDate.After(pending[j].RequestDate)
	})
	if len(pending) > maxActivityRequests {
		pending = pending[:maxActivityRequests]
	}

	feed := make([]Activity, 0, maxActivityEntries)
	for _, req := range pending {
		name := "Unknown Employee"
		if emp, ok := employeesByID[req.EmployeeID]; ok {
			name = emp.FullName()
		}
		feed = append(feed, Activity{
			ID:      fmt.Sprintf("timeoff-%d", req.ID),
			Kind:    "time-off",
			Message: fmt.Sprintf("%s requested %s leave", name, req.Type),
			Date:    req.RequestDate,
			Status:  req.Status,
		})
	}

	joined := 0
	for _, emp := range emps {
		if emp.Status != directory.StatusActive {
			continue
		}
		target := "the company"
		if dep, ok := departmentsByID[emp.DepartmentID]; ok {
			target = dep.Name
		}
		feed = append(feed, Activity{
			ID:      fmt.Sprintf("employee-%d", emp.ID),
			Kind:    "employee",
			Message: fmt.Sprintf("%s joined %s", emp.FullName(), target),
			Date:    emp.StartDate,
			Status:  directory.StatusActive,
		})
		joined++
		if joined == maxActivityEmployees {
			break
		}
	}

	if len(feed) > maxActivityEntries {
		feed = feed[:maxActivityEntries]
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed
}

// MonthRequests selects every request whose interval shares at least one day
// with the given month.
func MonthRequests(reqs []timeoff.Request, year int, month time.Month) []timeoff.Request {
	monthStart, monthEnd := timeoff.MonthBounds(year, month)
	out := make([]timeoff.Request, 0, len(reqs))
	for _, req := range reqs {
		if timeoff.OverlapsMonth(req.StartDate, req.EndDate, monthStart, monthEnd) {
			out = append(out, req)
		}
	}
	return out
}

type Summary struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	ThisMonth int `json:"thisMonth"`
	Total     int `json:"total"`
}

// BuildSummary derives the time-off page counters for the given month.
func BuildSummary(reqs []timeoff.Request, year int, month time.Month) Summary {
	summary := Summary{Total: len(reqs), ThisMonth: len(MonthRequests(reqs, year, month))}
	for _, req := range reqs {
		switch req.Status {
		case timeoff.StatusPending:
			summary.Pending++
		case timeoff.StatusApproved:
			summary.Approved++
		}
	}
	return summary
}
