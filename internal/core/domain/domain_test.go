package domain

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestSession_HasPermission(t *testing.T) {
	s := NewSession(LoginData{
		UserID:       "u1",
		AccessToken:  "a",
		RefreshToken: "r",
		Permissions: []Permission{
			{Module: "orders", Actions: PermissionActions{Read: boolPtr(true), Update: boolPtr(false)}},
			{Module: "documents", Actions: PermissionActions{}},
		},
	})

	cases := []struct {
		module string
		action Action
		want   bool
	}{
		{"orders", ActionRead, true},
		{"orders", ActionUpdate, false},
		{"orders", ActionDelete, false},
		{"documents", ActionRead, false},
		{"Orders", ActionRead, false},
		{"missing", ActionRead, false},
		{"orders", Action("bogus"), false},
	}
	for _, tc := range cases {
		if got := s.HasPermission(tc.module, tc.action); got != tc.want {
			t.Fatalf("HasPermission(%q, %q) = %v, want %v", tc.module, tc.action, got, tc.want)
		}
	}

	var empty Session
	if empty.HasPermission("orders", ActionRead) {
		t.Fatalf("empty session must not grant permissions")
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := NewSession(LoginData{UserID: "u1", AccessToken: "a", RefreshToken: "r",
		Permissions: []Permission{Grant("orders", ActionRead)}})

	c := s.Clone()
	*c.User.Permissions[0].Actions.Read = false
	c.User.Email = "changed"

	if !s.HasPermission("orders", ActionRead) {
		t.Fatalf("mutating the clone changed the original permissions")
	}
	if s.User.Email == "changed" {
		t.Fatalf("mutating the clone changed the original user")
	}
}

func TestSession_Consistent(t *testing.T) {
	if !(Session{}).Consistent() {
		t.Fatalf("empty session should be consistent")
	}
	if (Session{IsAuthenticated: true, AccessToken: "a"}).Consistent() {
		t.Fatalf("authenticated without refresh token must be inconsistent")
	}
	if !NewSession(LoginData{AccessToken: "a", RefreshToken: "r"}).Consistent() {
		t.Fatalf("fresh login must be consistent")
	}
}

func TestTimelineStage(t *testing.T) {
	cases := map[string]Stage{
		"Order Confirmed":             StageConfirmed,
		"Shipment In Transit":         StageInTransit,
		"Shipment Departure from POL": StageInTransit,
		"Export Clearance Obtained":   StageInTransit,
		"Shipment Arrival at POD":     StageInTransit,
		"Order Completed":             StageCompleted,
		"Goods Manufactured":          StageConfirmed,
	}
	for state, want := range cases {
		d := OrderDetails{StateActivityLog: []StateActivityLog{
			{StateName: "Order Confirmed"},
			{StateName: state, IsCurrentState: true},
		}}
		if got := TimelineStage(d); got != want {
			t.Fatalf("TimelineStage(%q) = %v, want %v", state, got, want)
		}
	}

	if got := TimelineStage(OrderDetails{}); got != StageConfirmed {
		t.Fatalf("no current state should map to the first stage, got %v", got)
	}
}

func TestOrderStage(t *testing.T) {
	if s, ok := OrderStage("in_transit"); !ok || s != StageInTransit {
		t.Fatalf("unexpected stage %v %v", s, ok)
	}
	if _, ok := OrderStage("unknown"); ok {
		t.Fatalf("unknown code should not map")
	}
}

func TestItemsSummary(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, "-"},
		{[]string{"Citric Acid"}, "Citric Acid"},
		{[]string{"Citric Acid", "Glycerin"}, "Citric Acid and 1 more item"},
		{[]string{"Citric Acid", "Glycerin", "Urea"}, "Citric Acid and 2 more items"},
	}
	for _, tc := range cases {
		if got := ItemsSummary(tc.in); got != tc.want {
			t.Fatalf("ItemsSummary(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewPageInfo(t *testing.T) {
	p := NewPageInfo(21, 10, 2)
	if p.TotalPages != 3 || !p.HasPrev() || !p.HasNext() {
		t.Fatalf("unexpected page info: %+v", p)
	}
	p = NewPageInfo(0, 0, 0)
	if p.TotalPages != 1 || p.PageSize != DefaultPageSize || p.CurrentPage != 1 || p.HasNext() {
		t.Fatalf("unexpected empty page info: %+v", p)
	}
}

func TestEnvelopeErr(t *testing.T) {
	ok := &Envelope[int]{Success: true}
	if ok.Err() != nil {
		t.Fatalf("successful envelope should not error")
	}
	bad := &Envelope[int]{Message: "Invalid password"}
	err := bad.Err()
	if err == nil || err.Error() != "request unsuccessful: Invalid password" {
		t.Fatalf("unexpected error: %v", err)
	}
}
