// Package rpc exposes a live studio as a gRPC render service. Messages are
// protobuf well-known types, so no generated code is needed.
package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lukaszgryglicki/spheretracer/internal/spheretracer"
)

const (
	ServiceName = "spheretracer.Renderer"
	streamBuf   = 4
)

// Source is the studio the service reads from.
type Source interface {
	RenderPNG(w, h int) ([]byte, error)
	Info() spheretracer.StudioInfo
	Subscribe(buf int) (<-chan spheretracer.FrameEvent, func())
}

// RendererServer is the server API of spheretracer.Renderer.
type RendererServer interface {
	// RenderFrame renders the current scene at {width, height} and returns a PNG.
	RenderFrame(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	// SceneInfo summarises the live studio.
	SceneInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// StreamFrames relays published frames; {max} > 0 ends the stream after max frames.
	StreamFrames(*structpb.Struct, grpc.ServerStreamingServer[wrapperspb.BytesValue]) error
}

// Service implements RendererServer on top of a Source.
type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// Register attaches the service to a gRPC server.
func Register(s grpc.ServiceRegistrar, svc RendererServer) {
	s.RegisterService(&ServiceDesc, svc)
}

func intField(s *structpb.Struct, key string) (int, bool) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, false
	}
	return int(v.GetNumberValue()), true
}

func (s *Service) RenderFrame(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	if s == nil || s.src == nil {
		return nil, status.Error(codes.FailedPrecondition, "renderer unavailable")
	}
	info := s.src.Info()
	w, ok := intField(req, "width")
	if !ok {
		w = info.CanvasW
	}
	h, ok := intField(req, "height")
	if !ok {
		h = info.CanvasH
	}
	if w < spheretracer.MinCanvas || h < spheretracer.MinCanvas || w > spheretracer.MaxCanvas || h > spheretracer.MaxCanvas {
		return nil, status.Errorf(codes.InvalidArgument, "canvas %dx%d outside [%d, %d]", w, h, spheretracer.MinCanvas, spheretracer.MaxCanvas)
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	data, err := s.src.RenderPNG(w, h)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "render: %v", err)
	}
	return wrapperspb.Bytes(data), nil
}

func (s *Service) SceneInfo(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s == nil || s.src == nil {
		return nil, status.Error(codes.FailedPrecondition, "renderer unavailable")
	}
	info := s.src.Info()
	out, err := structpb.NewStruct(map[string]any{
		"tick":    info.Tick,
		"frames":  info.Frames,
		"time":    info.Time,
		"width":   info.CanvasW,
		"height":  info.CanvasH,
		"spheres": info.Spheres,
		"depth":   info.Depth,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode info: %v", err)
	}
	return out, nil
}

func (s *Service) StreamFrames(req *structpb.Struct, stream grpc.ServerStreamingServer[wrapperspb.BytesValue]) error {
	if s == nil || s.src == nil {
		return status.Error(codes.FailedPrecondition, "streaming unavailable")
	}
	limit, _ := intField(req, "max")
	if limit < 0 {
		return status.Errorf(codes.InvalidArgument, "max must be >= 0, got %d", limit)
	}
	ctx := stream.Context()
	frames, cancel := s.src.Subscribe(streamBuf)
	defer cancel()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return status.Error(codes.Canceled, "stream cancelled")
			}
			return status.Error(codes.DeadlineExceeded, "stream deadline exceeded")
		case ev, ok := <-frames:
			if !ok {
				return nil
			}
			if err := stream.Send(wrapperspb.Bytes(ev.PNG)); err != nil {
				return err
			}
			sent++
			if limit > 0 && sent >= limit {
				return nil
			}
		}
	}
}

func renderFrameHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RendererServer).RenderFrame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/RenderFrame"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RendererServer).RenderFrame(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func sceneInfoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RendererServer).SceneInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/SceneInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RendererServer).SceneInfo(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func streamFramesHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(RendererServer).StreamFrames(in, &grpc.GenericServerStream[structpb.Struct, wrapperspb.BytesValue]{ServerStream: stream})
}

// ServiceDesc describes spheretracer.Renderer for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RendererServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RenderFrame", Handler: renderFrameHandler},
		{MethodName: "SceneInfo", Handler: sceneInfoHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamFrames", Handler: streamFramesHandler, ServerStreams: true},
	},
	Metadata: "spheretracer/renderer",
}
