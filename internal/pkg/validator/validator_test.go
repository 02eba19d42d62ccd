package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
		"123e4567-e89b-42d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023/01/01", "01-01-2023", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	got, ok := IsValidMonth("2024-02")
	if !ok {
		t.Fatalf("IsValidMonth(%q) = false, want true", "2024-02")
	}
	want := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("IsValidMonth(%q) = %v, want %v", "2024-02", got, want)
	}
	for _, m := range []string{"2024-13", "2024-2-01", "Feb 2024", ""} {
		if _, ok := IsValidMonth(m); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:00", "18:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	if !IsValidEmployeeCode("EMP01001") {
		t.Errorf("IsValidEmployeeCode(%q) = false, want true", "EMP01001")
	}
	for _, c := range []string{"EMP1001", "emp01001", "1234-5678", ""} {
		if IsValidEmployeeCode(c) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", c)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+1 555 123 4567", "081234567890", "555-1234"}
	invalid := []string{"abc", "12", ""}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestMaxLength(t *testing.T) {
	if !MaxLength("héllo", 5) {
		t.Errorf("MaxLength(%q, 5) = false, want true", "héllo")
	}
	if MaxLength("hello!", 5) {
		t.Errorf("MaxLength(%q, 5) = true, want false", "hello!")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is too short"},
	}
	if got := errs.Error(); got != "email: email is required; password: password is too short" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["email"] != "email is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
