package notify

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"path/filepath"
	"testing"

	"github.com/moyoez/statusboard/types"
)

type recordingHub struct {
	sessions []string
	got      []*types.Notification
}

func (h *recordingHub) Broadcast(sessionId string, n *types.Notification) {
	h.sessions = append(h.sessions, sessionId)
	h.got = append(h.got, n)
}

func TestDispatchToHub(t *testing.T) {
	h := &recordingHub{}
	SetHub(h)
	defer SetHub(nil)

	if !NotifyWSEnabled() {
		t.Fatal("expected websocket notifications to be enabled")
	}
	Dispatch("s1", VisibilityToggled(true))

	if len(h.got) != 1 || h.sessions[0] != "s1" {
		t.Fatalf("hub got %d notifications for %v", len(h.got), h.sessions)
	}
	if h.got[0].Type != types.NotifyTypeVisibilityToggled {
		t.Errorf("type = %q", h.got[0].Type)
	}
}

func TestSendNotificationOverUnixSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	defer ln.Close()

	received := make(chan types.Notification, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var size uint32
		if err := binary.Read(conn, binary.LittleEndian, &size); err != nil {
			return
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}
		var n types.Notification
		_ = json.Unmarshal(payload, &n)
		_, _ = conn.Write([]byte(`{"status":"ok"}`))
		received <- n
	}()

	n := CountsUpdated("jobs.xlsx", types.Counts{Success: 2, Failed: 1}, 3)
	if err := SendNotification(n, path); err != nil {
		t.Fatalf("SendNotification: %v", err)
	}
	got := <-received
	if got.Type != types.NotifyTypeCountsUpdated {
		t.Errorf("type = %q", got.Type)
	}
	if got.Data["successCount"] != float64(2) {
		t.Errorf("successCount = %v", got.Data["successCount"])
	}
}

func TestSendNotificationMissingSocket(t *testing.T) {
	err := SendNotification(VisibilityToggled(false), filepath.Join(t.TempDir(), "absent.sock"))
	if err == nil {
		t.Fatal("expected error for missing socket")
	}
}
