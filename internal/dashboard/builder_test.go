package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/miradorstack/tenant-posture/internal/models"
)

type fakeSource struct {
	templates []models.StandardTemplate
	org       models.Organization
	counts    models.UserCounts
	admins    []models.DirectoryUser
	quota     models.SharepointQuota
	partners  []models.PartnerTenant

	failSections map[string]error
	block        bool
}

func (f *fakeSource) fail(section string) error {
	return f.failSections[section]
}

func (f *fakeSource) ListStandardTemplates(ctx context.Context) ([]models.StandardTemplate, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.fail(models.SectionStandards); err != nil {
		return nil, err
	}
	return f.templates, nil
}

func (f *fakeSource) FetchOrganization(ctx context.Context, tenant string) (models.Organization, error) {
	if err := f.fail(models.SectionOrganization); err != nil {
		return models.Organization{}, err
	}
	return f.org, nil
}

func (f *fakeSource) FetchUserCounts(ctx context.Context, tenant string) (models.UserCounts, error) {
	if err := f.fail(models.SectionUsers); err != nil {
		return models.UserCounts{}, err
	}
	return f.counts, nil
}

func (f *fakeSource) FetchGlobalAdmins(ctx context.Context, tenant string) ([]models.DirectoryUser, error) {
	if err := f.fail(models.SectionGlobalAdmins); err != nil {
		return nil, err
	}
	return f.admins, nil
}

func (f *fakeSource) FetchSharepointQuota(ctx context.Context, tenant string) (models.SharepointQuota, error) {
	if err := f.fail(models.SectionStorage); err != nil {
		return models.SharepointQuota{}, err
	}
	return f.quota, nil
}

func (f *fakeSource) FetchPartners(ctx context.Context, tenant string) ([]models.PartnerTenant, error) {
	if err := f.fail(models.SectionPartners); err != nil {
		return nil, err
	}
	return f.partners, nil
}

func sampleSource() *fakeSource {
	synced := false
	return &fakeSource{
		templates: []models.StandardTemplate{
			{
				TenantFilter: models.TenantRefs{{Value: models.AllTenants}},
				Standards: models.Standards{
					{Key: "AuditLog", Config: models.StandardConfig{Actions: models.Actions{{Value: models.ActionRemediate}, {Value: models.ActionAlert}}}},
					{Key: "SecurityDefaults", Config: models.StandardConfig{Actions: models.Actions{{Value: models.ActionReport}}}},
				},
			},
		},
		org: models.Organization{
			ID:                    "tenant-id",
			DisplayName:           "Contoso",
			OnPremisesSyncEnabled: &synced,
			VerifiedDomains: []models.VerifiedDomain{
				{Name: "contoso.onmicrosoft.com"},
				{Name: "contoso.com", IsDefault: true},
			},
			AssignedPlans: []models.AssignedPlan{
				{Service: "exchange", CapabilityStatus: "Enabled"},
				{Service: "exchange", CapabilityStatus: "Enabled"},
				{Service: "AADPremiumService", CapabilityStatus: "Suspended"},
				{Service: "WindowsDefenderATP", CapabilityStatus: "Enabled"},
				{Service: "AADPremiumService", CapabilityStatus: "Enabled"},
				{Service: "SharePoint", CapabilityStatus: "Enabled"},
			},
		},
		counts: models.UserCounts{Users: 100, LicensedUsers: 70, Guests: 10},
		admins: []models.DirectoryUser{{UserPrincipalName: "a@contoso.com"}, {UserPrincipalName: "b@contoso.com"}},
		quota:  models.SharepointQuota{TenantStorageMB: 1048576, GeoUsedStorageMB: 2048},
		partners: []models.PartnerTenant{
			{DisplayName: "Fabrikam", DefaultDomain: "fabrikam.com"},
		},
	}
}

func TestBuilderBuild(t *testing.T) {
	builder := NewBuilder(nil, sampleSource(), time.Second)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	builder.now = func() time.Time { return fixed }

	summary, err := builder.Build(context.Background(), "contoso.onmicrosoft.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SummaryID == "" {
		t.Fatalf("expected summary id")
	}

	synced := false
	want := models.DashboardSummary{
		TenantFilter: "contoso.onmicrosoft.com",
		Tenant:       models.TenantInfo{ID: "tenant-id", DisplayName: "Contoso", DefaultDomain: "contoso.com", DirSyncEnabled: &synced},
		Users:        models.UserStats{Licensed: 70, Unlicensed: 18, Guests: 10, GlobalAdmins: 2},
		Standards:    models.ActionCounts{RemediateCount: 1, AlertCount: 1, ReportCount: 1, Total: 2},
		Storage:      models.StorageStats{TotalMB: 1048576, UsedMB: 2048, FreeMB: 1046528},
		Domains:      []string{"contoso.onmicrosoft.com", "contoso.com"},
		Partners:     []models.PartnerTenant{{DisplayName: "Fabrikam", DefaultDomain: "fabrikam.com"}},
		Capabilities: []string{"Exchange", "WindowsDefenderATP", "AAD Premium"},
		GeneratedAt:  fixed,
	}
	if diff := cmp.Diff(want, summary, cmpopts.IgnoreFields(models.DashboardSummary{}, "SummaryID")); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderDegradesFailedSections(t *testing.T) {
	source := sampleSource()
	source.failSections = map[string]error{
		models.SectionGlobalAdmins: errors.New("graph throttled"),
		models.SectionStandards:    errors.New("templates unavailable"),
	}
	builder := NewBuilder(nil, source, 0)

	summary, err := builder.Build(context.Background(), "contoso.onmicrosoft.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{models.SectionGlobalAdmins, models.SectionStandards}, summary.Unavailable); diff != "" {
		t.Fatalf("unavailable mismatch (-want +got):\n%s", diff)
	}
	if summary.Standards != (models.ActionCounts{}) {
		t.Fatalf("expected zero counts without templates, got %+v", summary.Standards)
	}
	if summary.Users.Unlicensed != 0 || summary.Users.GlobalAdmins != 0 {
		t.Fatalf("unlicensed users need the admin list: %+v", summary.Users)
	}
	if summary.Tenant.DisplayName != "Contoso" {
		t.Fatalf("healthy sections should still be filled: %+v", summary.Tenant)
	}
}

func TestBuilderCancelled(t *testing.T) {
	source := sampleSource()
	source.block = true
	builder := NewBuilder(nil, source, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := builder.Build(ctx, "contoso"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestBuilderWithoutSource(t *testing.T) {
	if _, err := NewBuilder(nil, nil, 0).Build(context.Background(), "contoso"); err == nil {
		t.Fatalf("expected error without source")
	}
}

func TestUserStats(t *testing.T) {
	admins := []models.DirectoryUser{{}, {}, {}}
	tests := []struct {
		name   string
		counts models.UserCounts
		loaded bool
		want   models.UserStats
	}{
		{
			name:   "all inputs present",
			counts: models.UserCounts{Users: 50, LicensedUsers: 30, Guests: 5},
			loaded: true,
			want:   models.UserStats{Licensed: 30, Unlicensed: 12, Guests: 5, GlobalAdmins: 3},
		},
		{
			name:   "no guests",
			counts: models.UserCounts{Users: 50, LicensedUsers: 30},
			loaded: true,
			want:   models.UserStats{Licensed: 30, GlobalAdmins: 3},
		},
		{
			name:   "admins not loaded",
			counts: models.UserCounts{Users: 50, LicensedUsers: 30, Guests: 5},
			want:   models.UserStats{Licensed: 30, Guests: 5, GlobalAdmins: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserStats(tt.counts, admins, tt.loaded); got != tt.want {
				t.Fatalf("UserStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTenantInfoWithoutDefaultDomain(t *testing.T) {
	info := TenantInfo(models.Organization{VerifiedDomains: []models.VerifiedDomain{{Name: "a.com"}}})
	if info.DefaultDomain != "" || info.DirSyncEnabled != nil {
		t.Fatalf("unexpected tenant info: %+v", info)
	}
	if DomainNames(nil) != nil {
		t.Fatalf("expected nil domains for empty input")
	}
}
