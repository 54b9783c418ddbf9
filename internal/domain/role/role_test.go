package role

import "testing"

func TestParseAcceptsKnownRoles(t *testing.T) {
	for _, s := range []string{"superadmin", "owner", "staff", "client"} {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if string(r) != s {
			t.Fatalf("Parse(%q) = %q", s, r)
		}
	}
}

func TestParseRejectsUnknownRoles(t *testing.T) {
	for _, s := range []string{"", "admin", "OWNER", "barber"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should fail", s)
		}
	}
}

func TestStaffMembership(t *testing.T) {
	if !Owner.IsStaffMember() || !Staff.IsStaffMember() {
		t.Fatal("owner and staff are staff members")
	}
	if Client.IsStaffMember() || Superadmin.IsStaffMember() {
		t.Fatal("client and superadmin are not staff members")
	}

	if !Owner.CanManageBookings() || !Staff.CanManageBookings() {
		t.Fatal("owner and staff manage bookings")
	}
	if Client.CanManageBookings() {
		t.Fatal("client must not manage bookings")
	}
}
