package models

import "time"

// Organization is the directory organization record of a tenant.
type Organization struct {
	ID                    string
	DisplayName           string
	VerifiedDomains       []VerifiedDomain
	OnPremisesSyncEnabled *bool
	AssignedPlans         []AssignedPlan
}

// VerifiedDomain is a domain the tenant has proven ownership of.
type VerifiedDomain struct {
	Name      string
	IsDefault bool
}

// AssignedPlan is a service plan assigned to the tenant.
type AssignedPlan struct {
	Service          string
	CapabilityStatus string
}

// UserCounts are the user totals reported for a tenant.
type UserCounts struct {
	Users         int
	LicensedUsers int
	Guests        int
}

// DirectoryUser is a member of a directory role.
type DirectoryUser struct {
	DisplayName       string
	UserPrincipalName string
	AccountEnabled    bool
}

// SharepointQuota reports tenant storage in megabytes.
type SharepointQuota struct {
	TenantStorageMB  float64
	GeoUsedStorageMB float64
}

// PartnerTenant is a tenant with a cross-tenant access relationship.
type PartnerTenant struct {
	DisplayName   string
	DefaultDomain string
}

// TenantInfo identifies the selected tenant.
type TenantInfo struct {
	ID             string
	DisplayName    string
	DefaultDomain  string
	DirSyncEnabled *bool
}

// UserStats splits the tenant's users for the identity chart.
type UserStats struct {
	Licensed     int
	Unlicensed   int
	Guests       int
	GlobalAdmins int
}

// StorageStats is the SharePoint quota split into free and used megabytes.
type StorageStats struct {
	TotalMB float64
	UsedMB  float64
	FreeMB  float64
}

// DashboardSummary is everything the tenant dashboard shows for one tenant.
type DashboardSummary struct {
	SummaryID    string
	TenantFilter string
	Tenant       TenantInfo
	Users        UserStats
	Standards    ActionCounts
	Storage      StorageStats
	Domains      []string
	Partners     []PartnerTenant
	Capabilities []string
	Unavailable  []string
	GeneratedAt  time.Time
}

// Dashboard section names, reported in DashboardSummary.Unavailable.
const (
	SectionStandards    = "standards"
	SectionOrganization = "organization"
	SectionUsers        = "users"
	SectionGlobalAdmins = "global_admins"
	SectionStorage      = "storage"
	SectionPartners     = "partners"
)
