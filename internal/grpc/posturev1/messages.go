// Package posturev1 holds the wire types and service descriptor of the
// posture.v1.TenantPosture gRPC service. Messages travel with the JSON codec
// registered by this package.
package posturev1

import "encoding/json"

// GetActionCountsRequest selects a tenant and, optionally, an inline template payload.
type GetActionCountsRequest struct {
	TenantId  string          `json:"tenant_id"`
	Templates json.RawMessage `json:"templates,omitempty"`
}

func (x *GetActionCountsRequest) GetTenantId() string {
	if x != nil {
		return x.TenantId
	}
	return ""
}

func (x *GetActionCountsRequest) GetTemplates() json.RawMessage {
	if x != nil {
		return x.Templates
	}
	return nil
}

// ActionCounts reports the standards in effect for a tenant by action.
type ActionCounts struct {
	TenantId  string `json:"tenant_id"`
	Remediate int32  `json:"remediate"`
	Alert     int32  `json:"alert"`
	Report    int32  `json:"report"`
	Total     int32  `json:"total"`
}

// ListTenantStandardsRequest selects a tenant and, optionally, an inline template payload.
type ListTenantStandardsRequest struct {
	TenantId  string          `json:"tenant_id"`
	Templates json.RawMessage `json:"templates,omitempty"`
}

func (x *ListTenantStandardsRequest) GetTenantId() string {
	if x != nil {
		return x.TenantId
	}
	return ""
}

func (x *ListTenantStandardsRequest) GetTemplates() json.RawMessage {
	if x != nil {
		return x.Templates
	}
	return nil
}

// Standard is one resolved standard row.
type Standard struct {
	Key          string                     `json:"key"`
	Actions      []string                   `json:"actions"`
	Settings     map[string]json.RawMessage `json:"settings,omitempty"`
	TemplateGuid string                     `json:"template_guid,omitempty"`
	TemplateName string                     `json:"template_name,omitempty"`
	Label        string                     `json:"label"`
	Category     string                     `json:"category,omitempty"`
	Impact       string                     `json:"impact,omitempty"`
}

type ListTenantStandardsResponse struct {
	TenantId  string      `json:"tenant_id"`
	Standards []*Standard `json:"standards"`
}

type GetDashboardSummaryRequest struct {
	TenantId string `json:"tenant_id"`
}

func (x *GetDashboardSummaryRequest) GetTenantId() string {
	if x != nil {
		return x.TenantId
	}
	return ""
}

type TenantInfo struct {
	Id             string `json:"id"`
	DisplayName    string `json:"display_name"`
	DefaultDomain  string `json:"default_domain"`
	DirSyncEnabled *bool  `json:"dir_sync_enabled,omitempty"`
}

type UserStats struct {
	Licensed     int32 `json:"licensed"`
	Unlicensed   int32 `json:"unlicensed"`
	Guests       int32 `json:"guests"`
	GlobalAdmins int32 `json:"global_admins"`
}

type StorageStats struct {
	TotalMb float64 `json:"total_mb"`
	UsedMb  float64 `json:"used_mb"`
	FreeMb  float64 `json:"free_mb"`
}

type Partner struct {
	DisplayName   string `json:"display_name"`
	DefaultDomain string `json:"default_domain"`
}

// DashboardSummary is the tenant dashboard. GeneratedAt is RFC 3339 in UTC.
type DashboardSummary struct {
	SummaryId    string        `json:"summary_id"`
	TenantId     string        `json:"tenant_id"`
	Tenant       *TenantInfo   `json:"tenant"`
	Users        *UserStats    `json:"users"`
	Standards    *ActionCounts `json:"standards"`
	Storage      *StorageStats `json:"storage"`
	Domains      []string      `json:"domains"`
	Partners     []*Partner    `json:"partners"`
	Capabilities []string      `json:"capabilities"`
	Unavailable  []string      `json:"unavailable,omitempty"`
	GeneratedAt  string        `json:"generated_at"`
}

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
