package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls spheretracer.Renderer over any gRPC connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// RenderFrame asks for a PNG of the current scene at w x h.
func (c *Client) RenderFrame(ctx context.Context, w, h int, opts ...grpc.CallOption) ([]byte, error) {
	req, err := structpb.NewStruct(map[string]any{"width": w, "height": h})
	if err != nil {
		return nil, err
	}
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/RenderFrame", req, out, opts...); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}

// SceneInfo returns the studio summary as a plain map.
func (c *Client) SceneInfo(ctx context.Context, opts ...grpc.CallOption) (map[string]any, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/SceneInfo", new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// StreamFrames opens a server stream of PNG frames; max > 0 bounds its length.
func (c *Client) StreamFrames(ctx context.Context, max int, opts ...grpc.CallOption) (grpc.ServerStreamingClient[wrapperspb.BytesValue], error) {
	req, err := structpb.NewStruct(map[string]any{"max": max})
	if err != nil {
		return nil, err
	}
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/"+ServiceName+"/StreamFrames", opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, wrapperspb.BytesValue]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
