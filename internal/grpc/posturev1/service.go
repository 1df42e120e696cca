package posturev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	TenantPosture_GetActionCounts_FullMethodName     = "/posture.v1.TenantPosture/GetActionCounts"
	TenantPosture_ListTenantStandards_FullMethodName = "/posture.v1.TenantPosture/ListTenantStandards"
	TenantPosture_GetDashboardSummary_FullMethodName = "/posture.v1.TenantPosture/GetDashboardSummary"
	TenantPosture_HealthCheck_FullMethodName         = "/posture.v1.TenantPosture/HealthCheck"
)

// TenantPostureClient is the client API for the TenantPosture service.
type TenantPostureClient interface {
	GetActionCounts(ctx context.Context, in *GetActionCountsRequest, opts ...grpc.CallOption) (*ActionCounts, error)
	ListTenantStandards(ctx context.Context, in *ListTenantStandardsRequest, opts ...grpc.CallOption) (*ListTenantStandardsResponse, error)
	GetDashboardSummary(ctx context.Context, in *GetDashboardSummaryRequest, opts ...grpc.CallOption) (*DashboardSummary, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type tenantPostureClient struct {
	cc grpc.ClientConnInterface
}

// NewTenantPostureClient returns a client whose calls use the JSON codec.
func NewTenantPostureClient(cc grpc.ClientConnInterface) TenantPostureClient {
	return &tenantPostureClient{cc}
}

func (c *tenantPostureClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{CallOption()}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *tenantPostureClient) GetActionCounts(ctx context.Context, in *GetActionCountsRequest, opts ...grpc.CallOption) (*ActionCounts, error) {
	out := new(ActionCounts)
	if err := c.invoke(ctx, TenantPosture_GetActionCounts_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tenantPostureClient) ListTenantStandards(ctx context.Context, in *ListTenantStandardsRequest, opts ...grpc.CallOption) (*ListTenantStandardsResponse, error) {
	out := new(ListTenantStandardsResponse)
	if err := c.invoke(ctx, TenantPosture_ListTenantStandards_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tenantPostureClient) GetDashboardSummary(ctx context.Context, in *GetDashboardSummaryRequest, opts ...grpc.CallOption) (*DashboardSummary, error) {
	out := new(DashboardSummary)
	if err := c.invoke(ctx, TenantPosture_GetDashboardSummary_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tenantPostureClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.invoke(ctx, TenantPosture_HealthCheck_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// TenantPostureServer is the server API for the TenantPosture service.
// Implementations should embed UnimplementedTenantPostureServer.
type TenantPostureServer interface {
	GetActionCounts(context.Context, *GetActionCountsRequest) (*ActionCounts, error)
	ListTenantStandards(context.Context, *ListTenantStandardsRequest) (*ListTenantStandardsResponse, error)
	GetDashboardSummary(context.Context, *GetDashboardSummaryRequest) (*DashboardSummary, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
	mustEmbedUnimplementedTenantPostureServer()
}

// UnimplementedTenantPostureServer answers every method with codes.Unimplemented.
type UnimplementedTenantPostureServer struct{}

func (UnimplementedTenantPostureServer) GetActionCounts(context.Context, *GetActionCountsRequest) (*ActionCounts, error) {
	return nil, status.Error(codes.Unimplemented, "method GetActionCounts not implemented")
}

func (UnimplementedTenantPostureServer) ListTenantStandards(context.Context, *ListTenantStandardsRequest) (*ListTenantStandardsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTenantStandards not implemented")
}

func (UnimplementedTenantPostureServer) GetDashboardSummary(context.Context, *GetDashboardSummaryRequest) (*DashboardSummary, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboardSummary not implemented")
}

func (UnimplementedTenantPostureServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HealthCheck not implemented")
}

func (UnimplementedTenantPostureServer) mustEmbedUnimplementedTenantPostureServer() {}

// RegisterTenantPostureServer registers srv on s.
func RegisterTenantPostureServer(s grpc.ServiceRegistrar, srv TenantPostureServer) {
	s.RegisterService(&TenantPosture_ServiceDesc, srv)
}

func _TenantPosture_GetActionCounts_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetActionCountsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TenantPostureServer).GetActionCounts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TenantPosture_GetActionCounts_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TenantPostureServer).GetActionCounts(ctx, req.(*GetActionCountsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TenantPosture_ListTenantStandards_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTenantStandardsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TenantPostureServer).ListTenantStandards(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TenantPosture_ListTenantStandards_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TenantPostureServer).ListTenantStandards(ctx, req.(*ListTenantStandardsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TenantPosture_GetDashboardSummary_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDashboardSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TenantPostureServer).GetDashboardSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TenantPosture_GetDashboardSummary_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TenantPostureServer).GetDashboardSummary(ctx, req.(*GetDashboardSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TenantPosture_HealthCheck_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TenantPostureServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TenantPosture_HealthCheck_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TenantPostureServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// TenantPosture_ServiceDesc is the grpc.ServiceDesc for the TenantPosture service.
var TenantPosture_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "posture.v1.TenantPosture",
	HandlerType: (*TenantPostureServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetActionCounts", Handler: _TenantPosture_GetActionCounts_Handler},
		{MethodName: "ListTenantStandards", Handler: _TenantPosture_ListTenantStandards_Handler},
		{MethodName: "GetDashboardSummary", Handler: _TenantPosture_GetDashboardSummary_Handler},
		{MethodName: "HealthCheck", Handler: _TenantPosture_HealthCheck_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "posture/v1/posture.proto",
}
