package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	posturev1 "github.com/miradorstack/tenant-posture/internal/grpc/posturev1"
	"github.com/miradorstack/tenant-posture/internal/models"
)

// TemplatesFromProto decodes an inline template payload. The second result is
// false when the request carried none, in which case templates are fetched upstream.
func TemplatesFromProto(raw json.RawMessage) ([]models.StandardTemplate, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	return models.DecodeTemplates(trimmed), true
}

// TenantFromProto returns an optional tenant unchanged. A required tenant is
// trimmed and must be non-blank.
func TenantFromProto(tenant string, required bool) (string, error) {
	if !required {
		return tenant, nil
	}
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		return "", fmt.Errorf("tenant_id is required")
	}
	return tenant, nil
}

// ToProtoActionCounts converts aggregated counts into the wire representation.
func ToProtoActionCounts(tenant string, counts models.ActionCounts) *posturev1.ActionCounts {
	return &posturev1.ActionCounts{
		TenantId:  tenant,
		Remediate: int32(counts.RemediateCount),
		Alert:     int32(counts.AlertCount),
		Report:    int32(counts.ReportCount),
		Total:     int32(counts.Total),
	}
}

// ToProtoStandards converts resolved standard rows into the list response.
func ToProtoStandards(tenant string, rows []models.ResolvedStandard) *posturev1.ListTenantStandardsResponse {
	resp := &posturev1.ListTenantStandardsResponse{
		TenantId:  tenant,
		Standards: make([]*posturev1.Standard, 0, len(rows)),
	}
	for _, row := range rows {
		actions := append([]string(nil), row.Actions...)
		if actions == nil {
			actions = []string{}
		}
		resp.Standards = append(resp.Standards, &posturev1.Standard{
			Key:          row.Key,
			Actions:      actions,
			Settings:     row.Settings,
			TemplateGuid: row.TemplateGUID,
			TemplateName: row.TemplateName,
			Label:        row.Label,
			Category:     row.Category,
			Impact:       row.Impact,
		})
	}
	return resp
}

// ToProtoDashboardSummary converts a dashboard summary into the wire representation.
func ToProtoDashboardSummary(summary models.DashboardSummary) *posturev1.DashboardSummary {
	proto := &posturev1.DashboardSummary{
		SummaryId: summary.SummaryID,
		TenantId:  summary.TenantFilter,
		Tenant: &posturev1.TenantInfo{
			Id:             summary.Tenant.ID,
			DisplayName:    summary.Tenant.DisplayName,
			DefaultDomain:  summary.Tenant.DefaultDomain,
			DirSyncEnabled: summary.Tenant.DirSyncEnabled,
		},
		Users: &posturev1.UserStats{
			Licensed:     int32(summary.Users.Licensed),
			Unlicensed:   int32(summary.Users.Unlicensed),
			Guests:       int32(summary.Users.Guests),
			GlobalAdmins: int32(summary.Users.GlobalAdmins),
		},
		Standards: ToProtoActionCounts(summary.TenantFilter, summary.Standards),
		Storage: &posturev1.StorageStats{
			TotalMb: summary.Storage.TotalMB,
			UsedMb:  summary.Storage.UsedMB,
			FreeMb:  summary.Storage.FreeMB,
		},
		Domains:      append([]string(nil), summary.Domains...),
		Capabilities: append([]string(nil), summary.Capabilities...),
		Unavailable:  append([]string(nil), summary.Unavailable...),
	}
	if !summary.GeneratedAt.IsZero() {
		proto.GeneratedAt = summary.GeneratedAt.UTC().Format(time.RFC3339)
	}
	for _, partner := range summary.Partners {
		proto.Partners = append(proto.Partners, &posturev1.Partner{
			DisplayName:   partner.DisplayName,
			DefaultDomain: partner.DefaultDomain,
		})
	}
	return proto
}
