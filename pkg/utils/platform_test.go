//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("NUTRIQUEST_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("NUTRIQUEST_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour NUTRIQUEST_MOBILE_EMULATE")
	}
}
