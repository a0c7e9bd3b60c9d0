package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/lukaszgryglicki/spheretracer/internal/replay"
	"github.com/lukaszgryglicki/spheretracer/internal/rpc"
	"github.com/lukaszgryglicki/spheretracer/internal/spheretracer"
	"github.com/lukaszgryglicki/spheretracer/internal/stream"
)

// serve runs the scene live: the studio ticks in wall time while viewers
// watch over WebSocket (httpAddr) and clients pull frames over gRPC (grpcAddr).
func serve(cfgPath, httpAddr, grpcAddr string) error {
	cfg, err := spheretracer.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	scene, cam, err := cfg.Build()
	if err != nil {
		return err
	}
	studio := spheretracer.NewStudio(scene, cam, cfg.CanvasWidth, cfg.CanvasHeight)

	// all fallible setup happens before any goroutine starts
	var httpLis, grpcLis net.Listener
	closeListeners := func() {
		for _, l := range []net.Listener{httpLis, grpcLis} {
			if l != nil {
				_ = l.Close()
			}
		}
	}
	if httpAddr != "" {
		if httpLis, err = net.Listen("tcp", httpAddr); err != nil {
			return fmt.Errorf("http listen: %w", err)
		}
	}
	if grpcAddr != "" {
		if grpcLis, err = net.Listen("tcp", grpcAddr); err != nil {
			closeListeners()
			return fmt.Errorf("grpc listen: %w", err)
		}
	}
	var rec *replay.Writer
	if spheretracer.Record != "" {
		name := strings.TrimSuffix(filepath.Base(cfg.GIFOut), filepath.Ext(cfg.GIFOut))
		if rec, _, err = replay.NewWriter(spheretracer.Record, name, nil); err != nil {
			closeListeners()
			return fmt.Errorf("open replay: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 5)
	running := 0
	launch := func(name string, fn func() error) {
		running++
		go func() {
			err := fn()
			if err != nil && !errors.Is(err, context.Canceled) {
				err = fmt.Errorf("%s: %w", name, err)
			} else {
				err = nil
			}
			errc <- err
		}()
	}

	launch("studio", func() error { return studio.Run(ctx, cfg.FPS) })

	if rec != nil {
		log.Printf("recording replay into %s", rec.Directory())
		launch("recorder", func() error { return record(ctx, studio, rec) })
	}

	if httpLis != nil {
		hub := stream.NewHub(studio, strings.Split(os.Getenv("ORIGINS"), ",")...)
		srv := &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
		launch("hub", func() error { return hub.Run(ctx) })
		launch("http", func() error {
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
			log.Printf("viewer listening on http://%s/", httpLis.Addr())
			if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if grpcLis != nil {
		gs := grpc.NewServer()
		rpc.Register(gs, rpc.NewService(studio))
		launch("grpc", func() error {
			go func() {
				<-ctx.Done()
				gs.GracefulStop()
			}()
			log.Printf("gRPC %s listening on %s", rpc.ServiceName, grpcLis.Addr())
			return gs.Serve(grpcLis)
		})
	}

	var first error
	for i := 0; i < running; i++ {
		if err := <-errc; err != nil && first == nil {
			first = err
			stop()
		}
	}
	log.Printf("shutdown complete")
	return first
}

// record appends every published frame to a replay bundle until ctx is done.
func record(ctx context.Context, studio *spheretracer.Studio, rec *replay.Writer) error {
	frames, cancel := studio.Subscribe(16)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return rec.Close()
		case ev, ok := <-frames:
			if !ok {
				return rec.Close()
			}
			if err := rec.WriteFrame(ev.Frame.Tick, ev.Frame.Img); err != nil {
				_ = rec.Close()
				return err
			}
			if err := rec.WriteSample(ev.Sample); err != nil {
				_ = rec.Close()
				return err
			}
		}
	}
}
