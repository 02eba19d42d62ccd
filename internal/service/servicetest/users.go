// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

// UserStore is an in-memory user.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]user.User
	order []string
	seq   int
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]user.User{}}
}

// Put stores u as is, replacing any user with the same ID.
func (s *UserStore) Put(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		s.order = append(s.order, u.ID)
	}
	s.users[u.ID] = u
	return u
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}

	s.seq++
	u.ID = fmt.Sprintf("0190f0c1-0000-7000-8000-%012d", s.seq)
	u.EmployeeCode = fmt.Sprintf("EMP%05d", 1000+s.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *UserStore) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.EmployeeCode == strings.ToUpper(code) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *UserStore) Update(ctx context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = u
	return u, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLoginAt = &at
	s.users[id] = u
	return nil
}

func (s *UserStore) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []user.User
	for i := len(s.order) - 1; i >= 0; i-- {
		u := s.users[s.order[i]]
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if filter.Department != nil && u.Department != *filter.Department {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Search != nil && !matches(u, *filter.Search) {
			continue
		}
		out = append(out, u)
	}

	total := int64(len(out))
	page := max(filter.Page, 1)
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	start := min((page-1)*limit, len(out))
	end := min(start+limit, len(out))
	return out[start:end], total, nil
}

func matches(u user.User, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{u.FirstName, u.LastName, u.Email, u.EmployeeCode} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *UserStore) ListActiveIDsByDepartment(ctx context.Context, department string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for _, id := range s.order {
		if u := s.users[id]; u.IsActive && u.Department == department {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *UserStore) CountActiveNonAdmin(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, u := range s.users {
		if u.IsActive && u.Role != user.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (s *UserStore) ListDepartments(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	departments := []string{}
	for _, u := range s.users {
		if u.IsActive && !seen[u.Department] {
			seen[u.Department] = true
			departments = append(departments, u.Department)
		}
	}
	sort.Strings(departments)
	return departments, nil
}

func (s *UserStore) DebitLeaveBalance(ctx context.Context, id string, balanceType string, days float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	switch balanceType {
	case "annual":
		u.LeaveBalance.Annual -= days
	case "sick":
		u.LeaveBalance.Sick -= days
	case "casual":
		u.LeaveBalance.Casual -= days
	case "unpaid":
		u.LeaveBalance.Unpaid -= days
	default:
		return user.ErrUnknownLeaveBalance
	}
	s.users[id] = u
	return nil
}

var _ user.UserRepository = (*UserStore)(nil)
