// internal/dispatch/osc/client_test.go
package osc

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"
)

func TestEncodeMessage_Layout(t *testing.T) {
	pkt, err := EncodeMessage("/hp", []any{"pct", 40, 0.5})
	if err != nil {
		t.Fatalf("EncodeMessage err=%v", err)
	}

	want := []byte{
		'/', 'h', 'p', 0, // address
		',', 's', 'i', 'f', 0, 0, 0, 0, // type tags
		'p', 'c', 't', 0, // "pct"
		0, 0, 0, 40, // int32 40
		0x3f, 0x00, 0x00, 0x00, // float32 0.5
	}
	if !bytes.Equal(pkt, want) {
		t.Fatalf("packet mismatch:\n got=% x\nwant=% x", pkt, want)
	}
}

func TestEncodeMessage_Padding(t *testing.T) {
	// "/abc" is 4 bytes: needs a full 4-byte NUL pad
	pkt, err := EncodeMessage("/abc", nil)
	if err != nil {
		t.Fatalf("EncodeMessage err=%v", err)
	}
	if len(pkt) != 12 { // 8 address + 4 ","
		t.Fatalf("len: got=%d want=12 (% x)", len(pkt), pkt)
	}
	if len(pkt)%4 != 0 {
		t.Fatalf("packet not 4-aligned")
	}
}

func TestEncodeMessage_Rejects(t *testing.T) {
	if _, err := EncodeMessage("noslash", nil); err == nil {
		t.Fatalf("expected address error")
	}
	if _, err := EncodeMessage("/x", []any{struct{}{}}); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestFlatten_SortedKeyValuePairs(t *testing.T) {
	args, err := Flatten(map[string]any{
		"rgb": []int{255, 0, 0},
		"on":  1,
		"obj": map[string]any{"z": true},
	})
	if err != nil {
		t.Fatalf("Flatten err=%v", err)
	}

	want := []any{"obj", "z", true, "on", 1, "rgb", 255, 0, 0}
	if len(args) != len(want) {
		t.Fatalf("args: got=%v want=%v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: got=%v want=%v", i, args[i], want[i])
		}
	}
}

func TestSend_LoopbackDatagram(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	port := pc.LocalAddr().(*net.UDPAddr).Port
	c, err := New(Config{Host: "127.0.0.1", Port: port})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	defer c.Close()

	if err := c.Send(context.Background(), "/health", map[string]any{"pct": 40}); err != nil {
		t.Fatalf("Send err=%v", err)
	}

	buf := make([]byte, 512)
	_ = pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want, _ := EncodeMessage("/health", []any{"pct", 40})
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("datagram mismatch:\n got=% x\nwant=% x", buf[:n], want)
	}
}

func TestSend_DialsOnce(t *testing.T) {
	c, err := New(Config{Host: "127.0.0.1", Port: 9})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	dials := 0
	c.dial = func(network, address string, timeout time.Duration) (net.Conn, error) {
		dials++
		client, server := net.Pipe()
		go func() {
			buf := make([]byte, 512)
			for {
				if _, err := server.Read(buf); err != nil {
					return
				}
			}
		}()
		return client, nil
	}

	for i := 0; i < 3; i++ {
		if err := c.Send(context.Background(), "/x", map[string]any{"i": i}); err != nil {
			t.Fatalf("Send %d err=%v", i, err)
		}
	}
	if dials != 1 {
		t.Fatalf("dials: got=%d want=1", dials)
	}
	_ = c.Close()
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Port: 9000}); err == nil {
		t.Fatalf("expected host error")
	}
	if _, err := New(Config{Host: "127.0.0.1"}); err == nil {
		t.Fatalf("expected port error")
	}
}
