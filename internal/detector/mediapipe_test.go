package detector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gocv.io/x/gocv"
)

const fakeServiceEnv = "HOLOCUBE_FAKE_SERVICE"

// TestHelperProcess stands in for the Python landmark service when the test
// binary is started by fakeService. It answers every frame with one hand
// whose wrist X is the frame length it read and whose handedness carries the
// command line. In "once" mode it exits after the first reply.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(fakeServiceEnv)
	if mode == "" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}

	in := bufio.NewReader(os.Stdin)
	for {
		var header [4]byte
		if _, err := io.ReadFull(in, header[:]); err != nil {
			return
		}
		data := make([]byte, binary.BigEndian.Uint32(header[:]))
		if _, err := io.ReadFull(in, data); err != nil {
			return
		}
		fmt.Printf(`{"hands":[{"points":[{"x":%d,"y":0,"z":0}],"handedness":%q,"score":0.5}]}`+"\n",
			len(data), strings.Join(args, " "))
		if mode == "once" {
			return
		}
	}
}

// fakeService returns a detector whose service is this test binary running
// TestHelperProcess. starts counts how many processes were launched.
func fakeService(t *testing.T, mode string, starts *int) *MediaPipeDetector {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MinConfidence = 0.55

	d := &MediaPipeDetector{
		config:     cfg,
		scriptPath: "mediapipe_service.py",
		command: func(args ...string) *exec.Cmd {
			if starts != nil {
				*starts++
			}
			cmd := exec.Command(os.Args[0], append([]string{"-test.run=TestHelperProcess", "--"}, args...)...)
			cmd.Env = append(os.Environ(), fakeServiceEnv+"="+mode)
			return cmd
		},
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMediaPipeDetector_Exchange(t *testing.T) {
	d := fakeService(t, "echo", nil)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		t.Fatalf("ensureStarted() error = %v", err)
	}

	// The last size is larger than a pipe buffer.
	for _, size := range []int{0, 3, 1024, 70000} {
		hands, err := d.exchange(make([]byte, size))
		if err != nil {
			t.Fatalf("exchange(%d bytes) error = %v", size, err)
		}
		if len(hands) != 1 {
			t.Fatalf("exchange(%d bytes) returned %d hands, want 1", size, len(hands))
		}
		if got := hands[0].Points[Wrist].X; got != float64(size) {
			t.Errorf("service read %v bytes, want %d", got, size)
		}
	}
}

func TestMediaPipeDetector_ServiceArgs(t *testing.T) {
	d := fakeService(t, "echo", nil)

	frame := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}

	args := hands[0].Handedness
	for _, want := range []string{"mediapipe_service.py", "--max-hands 1", "--min-confidence 0.55", "--min-tracking 0.5"} {
		if !strings.Contains(args, want) {
			t.Errorf("service args %q missing %q", args, want)
		}
	}
}

func TestMediaPipeDetector_RestartsAfterBrokenExchange(t *testing.T) {
	starts := 0
	d := fakeService(t, "once", &starts)

	frame := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if _, err := d.Detect(&frame); err != nil {
		t.Fatalf("first Detect() error = %v", err)
	}

	// The service has exited after its only reply.
	if _, err := d.Detect(&frame); err == nil {
		t.Fatal("expected an error from the exited service")
	}
	if d.started {
		t.Error("service should be stopped after a failed exchange")
	}

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() after restart error = %v", err)
	}
	if len(hands) != 1 {
		t.Errorf("expected 1 hand after restart, got %d", len(hands))
	}
	if starts != 2 {
		t.Errorf("service started %d times, want 2", starts)
	}
}

func TestMediaPipeDetector_EmptyFrameSkipsService(t *testing.T) {
	starts := 0
	d := fakeService(t, "echo", &starts)

	empty := gocv.NewMat()
	defer empty.Close()

	hands, err := d.Detect(&empty)
	if err != nil || hands != nil {
		t.Errorf("Detect(empty) = %v, %v; want nil, nil", hands, err)
	}
	if starts != 0 {
		t.Errorf("service started %d times for an empty frame", starts)
	}
}
