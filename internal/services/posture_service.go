package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/miradorstack/tenant-posture/internal/api"
	"github.com/miradorstack/tenant-posture/internal/catalog"
	posturev1 "github.com/miradorstack/tenant-posture/internal/grpc/posturev1"
	"github.com/miradorstack/tenant-posture/internal/metrics"
	"github.com/miradorstack/tenant-posture/internal/models"
	"github.com/miradorstack/tenant-posture/internal/standards"
	"github.com/miradorstack/tenant-posture/internal/utils"
)

// TemplateSource lists the standard templates configured in the management API.
type TemplateSource interface {
	ListStandardTemplates(ctx context.Context) ([]models.StandardTemplate, error)
}

// DashboardBuilder assembles a dashboard summary for one tenant.
type DashboardBuilder interface {
	Build(ctx context.Context, tenant string) (models.DashboardSummary, error)
}

// PostureService implements the gRPC TenantPosture service.
type PostureService struct {
	posturev1.UnimplementedTenantPostureServer

	logger    *slog.Logger
	templates TemplateSource
	dashboard DashboardBuilder
	catalog   *catalog.Catalog
	latencies *utils.LatencyTracker
}

// NewPostureService constructs the posture service facade. Any dependency may
// be nil; the operations needing it then fail with FailedPrecondition.
func NewPostureService(logger *slog.Logger, templates TemplateSource, dashboard DashboardBuilder, cat *catalog.Catalog) *PostureService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostureService{
		logger:    logger,
		templates: templates,
		dashboard: dashboard,
		catalog:   cat,
		latencies: utils.NewLatencyTracker(1024),
	}
}

// GetActionCounts counts the standards in effect for a tenant by action.
func (s *PostureService) GetActionCounts(ctx context.Context, req *posturev1.GetActionCountsRequest) (*posturev1.ActionCounts, error) {
	const op = "GetActionCounts"
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request cannot be nil")
	}
	start := time.Now()
	tenant, _ := api.TenantFromProto(req.GetTenantId(), false)

	templates, err := s.loadTemplates(ctx, op, req.GetTemplates())
	if err != nil {
		s.observe(op, start, err)
		return nil, err
	}

	counts := standards.ComputeActionCounts(templates, tenant)
	metrics.ObserveActionCounts(counts)
	s.observe(op, start, nil)

	s.logger.Debug("action counts computed",
		slog.String("tenant", tenant),
		slog.Int("templates", len(templates)),
		slog.Int("total", counts.Total))
	return api.ToProtoActionCounts(tenant, counts), nil
}

// ListTenantStandards returns the standards in effect for a tenant with the
// template that supplied each and its catalog metadata.
func (s *PostureService) ListTenantStandards(ctx context.Context, req *posturev1.ListTenantStandardsRequest) (*posturev1.ListTenantStandardsResponse, error) {
	const op = "ListTenantStandards"
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request cannot be nil")
	}
	start := time.Now()
	tenant, _ := api.TenantFromProto(req.GetTenantId(), false)

	templates, err := s.loadTemplates(ctx, op, req.GetTemplates())
	if err != nil {
		s.observe(op, start, err)
		return nil, err
	}

	rows := s.catalog.Annotate(standards.Resolve(templates, tenant))
	s.observe(op, start, nil)
	return api.ToProtoStandards(tenant, rows), nil
}

// GetDashboardSummary assembles the tenant dashboard.
func (s *PostureService) GetDashboardSummary(ctx context.Context, req *posturev1.GetDashboardSummaryRequest) (*posturev1.DashboardSummary, error) {
	const op = "GetDashboardSummary"
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request cannot be nil")
	}
	tenant, err := api.TenantFromProto(req.GetTenantId(), true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if s.dashboard == nil {
		return nil, status.Error(codes.FailedPrecondition, "dashboard builder not configured")
	}

	start := time.Now()
	summary, err := s.dashboard.Build(ctx, tenant)
	if err != nil {
		s.logger.Error("dashboard build failed", slog.String("tenant", tenant), slog.Any("error", err))
		err = toStatus(err, "failed to build dashboard")
		s.observe(op, start, err)
		return nil, err
	}
	metrics.ObserveActionCounts(summary.Standards)
	s.observe(op, start, nil)

	if len(summary.Unavailable) > 0 {
		s.logger.Info("dashboard built with missing sections",
			slog.String("tenant", tenant),
			slog.Any("unavailable", summary.Unavailable))
	}
	return api.ToProtoDashboardSummary(summary), nil
}

// HealthCheck returns the current health state.
func (s *PostureService) HealthCheck(ctx context.Context, req *posturev1.HealthCheckRequest) (*posturev1.HealthCheckResponse, error) {
	return &posturev1.HealthCheckResponse{Status: "SERVING"}, nil
}

// LatencyP95 returns the current p95 request latency.
func (s *PostureService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}

func (s *PostureService) loadTemplates(ctx context.Context, op string, inline json.RawMessage) ([]models.StandardTemplate, error) {
	if templates, ok := api.TemplatesFromProto(inline); ok {
		return templates, nil
	}
	if s.templates == nil {
		return nil, status.Error(codes.FailedPrecondition, "template source not configured")
	}
	templates, err := s.templates.ListStandardTemplates(ctx)
	if err != nil {
		s.logger.Error("list standard templates failed", slog.String("operation", op), slog.Any("error", err))
		return nil, toStatus(err, "failed to list standard templates")
	}
	return templates, nil
}

func (s *PostureService) observe(op string, start time.Time, err error) {
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveRequest(op, duration, metrics.OutcomeError)
		return
	}
	metrics.ObserveRequest(op, duration, metrics.OutcomeSuccess)
	s.latencies.Observe(duration)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		p95 := s.latencies.Percentile(95)
		s.logger.Info("request latency", slog.Duration("p95", p95), slog.Int("samples", count))
	}
}

// toStatus maps upstream failures onto gRPC codes.
func toStatus(err error, msg string) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	switch code := utils.StatusCodeOf(err); {
	case code == http.StatusNotFound:
		return status.Error(codes.NotFound, msg)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return status.Error(codes.PermissionDenied, msg)
	case code != 0:
		return status.Error(codes.Unavailable, msg)
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return status.Error(codes.Unavailable, msg)
	}
	return status.Error(codes.Internal, msg)
}
