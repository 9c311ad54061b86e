package tool

import "testing"

func TestFastReturnTooLarge(t *testing.T) {
	body := FastReturnTooLarge(1024)
	if body["error"] != "File too large" {
		t.Errorf("error = %v", body["error"])
	}
	if body["limit"] != int64(1024) {
		t.Errorf("limit = %v", body["limit"])
	}
}
