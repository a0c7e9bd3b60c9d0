package rpc

import (
	"bytes"
	"context"
	"image/png"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/lukaszgryglicki/spheretracer/internal/spheretracer"
)

func startServer(t *testing.T) (*Client, *spheretracer.Studio) {
	t.Helper()
	studio := spheretracer.NewStudio(spheretracer.DefaultScene(), spheretracer.DefaultCamera(), 16, 16)
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, NewService(studio))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn), studio
}

func TestRenderFrameReturnsPNG(t *testing.T) {
	c, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := c.RenderFrame(ctx, 24, 12)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Fatalf("bounds %v, want 24x12", b)
	}
}

func TestRenderFrameRejectsTinyCanvas(t *testing.T) {
	c, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.RenderFrame(ctx, 1, 10)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument (err %v)", status.Code(err), err)
	}
}

func TestSceneInfo(t *testing.T) {
	c, studio := startServer(t)
	if _, err := studio.Step(0.1); err != nil {
		t.Fatalf("step: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := c.SceneInfo(ctx)
	if err != nil {
		t.Fatalf("SceneInfo: %v", err)
	}
	if got := info["spheres"].(float64); got != 3 {
		t.Fatalf("spheres = %v, want 3", got)
	}
	if got := info["frames"].(float64); got != 1 {
		t.Fatalf("frames = %v, want 1", got)
	}
	if got := info["width"].(float64); got != 16 {
		t.Fatalf("width = %v, want 16", got)
	}
	if got := info["depth"].(float64); got != float64(spheretracer.MaxDepth) {
		t.Fatalf("depth = %v, want %d", got, spheretracer.MaxDepth)
	}
}

func TestStreamFramesStopsAtMax(t *testing.T) {
	c, studio := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := c.StreamFrames(ctx, 2)
	if err != nil {
		t.Fatalf("StreamFrames: %v", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			_, _ = studio.Step(1.0 / 30)
			time.Sleep(5 * time.Millisecond)
		}
	}()

	for i := 0; i < 2; i++ {
		msg, err := stream.Recv()
		if err != nil {
			t.Fatalf("recv %d: %v", i, err)
		}
		if _, err := png.Decode(bytes.NewReader(msg.GetValue())); err != nil {
			t.Fatalf("frame %d is not a PNG: %v", i, err)
		}
	}
	if _, err := stream.Recv(); err == nil {
		t.Fatalf("expected end of stream after max frames")
	}
}

func TestStreamFramesCancelled(t *testing.T) {
	c, _ := startServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	stream, err := c.StreamFrames(ctx, 0)
	if err != nil {
		t.Fatalf("StreamFrames: %v", err)
	}
	cancel()
	_, err = stream.Recv()
	if status.Code(err) != codes.Canceled {
		t.Fatalf("code = %v, want Canceled", status.Code(err))
	}
}

func TestNilServiceUnavailable(t *testing.T) {
	var s *Service
	if _, err := s.SceneInfo(context.Background(), nil); status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("code = %v, want FailedPrecondition", status.Code(err))
	}
}
