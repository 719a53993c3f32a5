package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/record"
	"staffhub/internal/platform/memstore"
)

func newService(t *testing.T) (*directory.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return directory.NewService(store, store), store
}

func seedDepartment(t *testing.T, svc *directory.Service, name string) *directory.Department {
	t.Helper()
	dep, err := svc.CreateDepartment(context.Background(), directory.Department{
		Name:        name,
		Description: name + " team",
	})
	if err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	return dep
}

func seedEmployee(t *testing.T, svc *directory.Service, departmentID int64, email string) *directory.Employee {
	t.Helper()
	emp, err := svc.CreateEmployee(context.Background(), directory.Employee{
		FirstName:    "Test",
		LastName:     "Employee",
		Email:        email,
		Role:         "Engineer",
		DepartmentID: departmentID,
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	return emp
}

func TestCreateEmployeeDefaultsToActive(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")

	emp := seedEmployee(t, svc, dep.ID, "new@example.com")
	if emp.Status != directory.StatusActive {
		t.Fatalf("expected active, got %s", emp.Status)
	}
}

func TestCreateEmployeeRequiresExistingDepartment(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateEmployee(context.Background(), directory.Employee{
		FirstName:    "Test",
		LastName:     "Employee",
		Email:        "orphan@example.com",
		Role:         "Engineer",
		DepartmentID: 42,
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !record.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestArchiveIsOneWay(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")
	emp := seedEmployee(t, svc, dep.ID, "leaver@example.com")

	archived, err := svc.ArchiveEmployee(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if archived.Status != directory.StatusArchived {
		t.Fatalf("expected archived, got %s", archived.Status)
	}

	// Archiving again is a no-op, not an error.
	again, err := svc.ArchiveEmployee(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("second archive failed: %v", err)
	}
	if again.Status != directory.StatusArchived {
		t.Fatalf("expected archived, got %s", again.Status)
	}

	update := *archived
	update.Status = directory.StatusActive
	updated, err := svc.UpdateEmployee(context.Background(), emp.ID, update)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != directory.StatusArchived {
		t.Fatalf("expected archive to stick through updates, got %s", updated.Status)
	}
}

func TestDeleteDepartmentBlockedByActiveEmployees(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")
	first := seedEmployee(t, svc, dep.ID, "first@example.com")
	seedEmployee(t, svc, dep.ID, "second@example.com")

	err := svc.DeleteDepartment(context.Background(), dep.ID)
	var integrityErr *record.IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected integrity error, got %v", err)
	}
	if integrityErr.Count != 2 {
		t.Fatalf("expected 2 blocking employees, got %d", integrityErr.Count)
	}

	// A blocked delete leaves everything untouched.
	if _, err := svc.GetDepartment(context.Background(), dep.ID); err != nil {
		t.Fatalf("department must survive a blocked delete: %v", err)
	}
	if _, err := svc.GetEmployee(context.Background(), first.ID); err != nil {
		t.Fatalf("employees must survive a blocked delete: %v", err)
	}
}

func TestDeleteDepartmentIgnoresArchivedEmployees(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")
	emp := seedEmployee(t, svc, dep.ID, "leaver@example.com")

	if _, err := svc.ArchiveEmployee(context.Background(), emp.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	if err := svc.DeleteDepartment(context.Background(), dep.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := svc.GetDepartment(context.Background(), dep.ID); !record.IsNotFound(err) {
		t.Fatalf("expected department gone, got %v", err)
	}
}

func TestDepartmentHeadMustBeActiveEmployee(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")
	emp := seedEmployee(t, svc, dep.ID, "head@example.com")

	update := *dep
	update.HeadID = emp.ID
	if _, err := svc.UpdateDepartment(context.Background(), dep.ID, update); err != nil {
		t.Fatalf("expected active head to be accepted: %v", err)
	}

	if _, err := svc.ArchiveEmployee(context.Background(), emp.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if _, err := svc.UpdateDepartment(context.Background(), dep.ID, update); !record.IsValidation(err) {
		t.Fatal("expected archived head to be refused")
	}

	update.HeadID = 9999
	if _, err := svc.UpdateDepartment(context.Background(), dep.ID, update); !record.IsValidation(err) {
		t.Fatal("expected unknown head to be refused")
	}
}

func TestMemberCountTracksActiveEmployees(t *testing.T) {
	svc, _ := newService(t)
	dep := seedDepartment(t, svc, "Engineering")
	seedEmployee(t, svc, dep.ID, "one@example.com")
	second := seedEmployee(t, svc, dep.ID, "two@example.com")

	got, err := svc.GetDepartment(context.Background(), dep.ID)
	if err != nil {
		t.Fatalf("get department failed: %v", err)
	}
	if got.MemberCount != 2 {
		t.Fatalf("expected member count 2, got %d", got.MemberCount)
	}

	if _, err := svc.ArchiveEmployee(context.Background(), second.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	got, err = svc.GetDepartment(context.Background(), dep.ID)
	if err != nil {
		t.Fatalf("get department failed: %v", err)
	}
	if got.MemberCount != 1 {
		t.Fatalf("expected member count 1 after archive, got %d", got.MemberCount)
	}
}
