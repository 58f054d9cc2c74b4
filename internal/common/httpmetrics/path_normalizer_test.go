package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/profile", "/profile"},
		{"/accounts/8d7b1b0e-6f57-4c53-9a43-0c7f3c8f2f11", "/accounts/{param}"},
		{"/items/42", "/items/{param}"},
	}

	for _, tc := range testCases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRouteLabel(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"/signup", "/signup"},
		{"/profile", "/profile"},
		{"/metrics", "/metrics"},
		{"/wp-admin/setup.php", OtherRoute},
		{"/signup/extra", OtherRoute},
		{"/items/42", OtherRoute},
	}

	for _, tc := range testCases {
		if got := RouteLabel(tc.in); got != tc.want {
			t.Errorf("RouteLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
