package grpc

// proto.go defines the RiskService server interface for
// diapredict/risk/v1/risk.proto. Messages are carried by the JSON codec, so
// no generated protobuf types are needed.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names, for clients invoking without stubs.
const (
	RiskServicePredictMethod       = "/diapredict.risk.v1.RiskService/Predict"
	RiskServiceGetPredictionMethod = "/diapredict.risk.v1.RiskService/GetPrediction"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedRiskServiceServer) GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPrediction not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "diapredict.risk.v1.RiskService",
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: _RiskService_Predict_Handler},
		{MethodName: "GetPrediction", Handler: _RiskService_GetPrediction_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "diapredict/risk/v1/risk.proto",
}

func _RiskService_Predict_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(PredictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).Predict(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: RiskServicePredictMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _RiskService_GetPrediction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetPredictionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).GetPrediction(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: RiskServiceGetPredictionMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RiskServiceServer).GetPrediction(ctx, req.(*GetPredictionRequest))
	}
	return interceptor(ctx, req, info, handler)
}
