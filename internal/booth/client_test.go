package booth

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/danmuck/tollctl/internal/toll"
)

// canned server accepts one connection, records the request line and replies
// with a fixed response.
func cannedServer(t *testing.T, response string) (addr string, requests <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	ch := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		ch <- string(buf[:n])
		_, _ = conn.Write([]byte(response + "\n"))
	}()
	return ln.Addr().String(), ch
}

func TestSendRoundTrip(t *testing.T) {
	addr, requests := cannedServer(t, "Vehicle ABC123 entered at point 3")

	client := NewClient(addr).WithTimeout(2 * time.Second)
	resp, err := client.Send(context.Background(), toll.Transaction{Kind: toll.KindEntry, Plate: "ABC123", Point: 3})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp != "Vehicle ABC123 entered at point 3" {
		t.Fatalf("unexpected response: %q", resp)
	}

	select {
	case req := <-requests:
		if req != "ENTRY,ABC123,3\n" {
			t.Fatalf("unexpected request on the wire: %q", req)
		}
	case <-time.After(time.Second):
		t.Fatal("server never saw the request")
	}
}

func TestSendRequiresAddr(t *testing.T) {
	if _, err := NewClient("  ").Send(context.Background(), toll.Transaction{Kind: toll.KindEntry, Plate: "A", Point: 1}); err == nil {
		t.Fatal("expected error for missing addr")
	}
}

func TestIsError(t *testing.T) {
	if !IsError("ERROR: Invalid toll point") {
		t.Fatal("expected error classification")
	}
	if IsError("Vehicle A entered at point 1") {
		t.Fatal("unexpected error classification")
	}
}
