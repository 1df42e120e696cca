package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/miradorstack/tenant-posture/internal/models"
	"github.com/miradorstack/tenant-posture/internal/standards"
)

// Source defines the management API reads the dashboard is built from.
type Source interface {
	ListStandardTemplates(ctx context.Context) ([]models.StandardTemplate, error)
	FetchOrganization(ctx context.Context, tenant string) (models.Organization, error)
	FetchUserCounts(ctx context.Context, tenant string) (models.UserCounts, error)
	FetchGlobalAdmins(ctx context.Context, tenant string) ([]models.DirectoryUser, error)
	FetchSharepointQuota(ctx context.Context, tenant string) (models.SharepointQuota, error)
	FetchPartners(ctx context.Context, tenant string) ([]models.PartnerTenant, error)
}

// Builder assembles the tenant dashboard from its upstream sections.
type Builder struct {
	logger  *slog.Logger
	source  Source
	timeout time.Duration
	now     func() time.Time
}

// NewBuilder constructs a Builder; timeout bounds a whole Build when positive.
func NewBuilder(logger *slog.Logger, source Source, timeout time.Duration) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger:  logger,
		source:  source,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Build fetches every section for tenant concurrently. A section that fails is
// logged, left at its zero value and listed in Unavailable; only cancellation
// of ctx fails the whole summary.
func (b *Builder) Build(ctx context.Context, tenant string) (models.DashboardSummary, error) {
	if b.source == nil {
		return models.DashboardSummary{}, errors.New("dashboard source not configured")
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	var (
		templates    []models.StandardTemplate
		org          models.Organization
		counts       models.UserCounts
		admins       []models.DirectoryUser
		adminsLoaded bool
		quota        models.SharepointQuota
		partners     []models.PartnerTenant

		mu          sync.Mutex
		unavailable []string
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(section string, fn func(context.Context) error) {
		g.Go(func() error {
			err := fn(gctx)
			if err == nil {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			b.logger.Warn("dashboard section unavailable",
				slog.String("section", section),
				slog.String("tenant", tenant),
				slog.Any("error", err))
			mu.Lock()
			unavailable = append(unavailable, section)
			mu.Unlock()
			return nil
		})
	}

	fetch(models.SectionStandards, func(ctx context.Context) (err error) {
		templates, err = b.source.ListStandardTemplates(ctx)
		return err
	})
	fetch(models.SectionOrganization, func(ctx context.Context) (err error) {
		org, err = b.source.FetchOrganization(ctx, tenant)
		return err
	})
	fetch(models.SectionUsers, func(ctx context.Context) (err error) {
		counts, err = b.source.FetchUserCounts(ctx, tenant)
		return err
	})
	fetch(models.SectionGlobalAdmins, func(ctx context.Context) (err error) {
		admins, err = b.source.FetchGlobalAdmins(ctx, tenant)
		adminsLoaded = err == nil
		return err
	})
	fetch(models.SectionStorage, func(ctx context.Context) (err error) {
		quota, err = b.source.FetchSharepointQuota(ctx, tenant)
		return err
	})
	fetch(models.SectionPartners, func(ctx context.Context) (err error) {
		partners, err = b.source.FetchPartners(ctx, tenant)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardSummary{}, err
	}
	sort.Strings(unavailable)

	summary := models.DashboardSummary{
		SummaryID:    uuid.NewString(),
		TenantFilter: tenant,
		Tenant:       TenantInfo(org),
		Users:        UserStats(counts, admins, adminsLoaded),
		Standards:    standards.ComputeActionCounts(templates, tenant),
		Storage:      StorageStats(quota),
		Domains:      DomainNames(org.VerifiedDomains),
		Partners:     partners,
		Capabilities: Capabilities(org.AssignedPlans),
		Unavailable:  unavailable,
		GeneratedAt:  b.now(),
	}
	b.logger.Debug("dashboard summary built",
		slog.String("tenant", tenant),
		slog.String("summary_id", summary.SummaryID),
		slog.Int("standards", summary.Standards.Total),
		slog.Int("unavailable", len(unavailable)))
	return summary, nil
}
