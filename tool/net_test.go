package tool

import "testing"

func TestIsLoopbackHost(t *testing.T) {
	cases := map[string]bool{
		"localhost":   true,
		"127.0.0.1":   true,
		"::1":         true,
		"0.0.0.0":     false,
		"192.168.1.5": false,
		"":            false,
	}
	for host, want := range cases {
		if got := IsLoopbackHost(host); got != want {
			t.Errorf("IsLoopbackHost(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestSessionIDs(t *testing.T) {
	id := GenerateRandomUUID()
	if !IsValidSessionID(id) {
		t.Errorf("generated id %q rejected", id)
	}
	if IsValidSessionID("") || IsValidSessionID("../../etc") {
		t.Error("invalid ids accepted")
	}
}
