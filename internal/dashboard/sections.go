package dashboard

import "github.com/miradorstack/tenant-posture/internal/models"

const capabilityEnabled = "Enabled"

// capabilityLabels lists the services surfaced as tenant capabilities and
// their display labels; an empty label keeps the service name.
var capabilityLabels = map[string]string{
	"exchange":           "Exchange",
	"AADPremiumService":  "AAD Premium",
	"WindowsDefenderATP": "",
}

// TenantInfo extracts the identity block from an organization record.
func TenantInfo(org models.Organization) models.TenantInfo {
	info := models.TenantInfo{
		ID:             org.ID,
		DisplayName:    org.DisplayName,
		DirSyncEnabled: org.OnPremisesSyncEnabled,
	}
	for _, domain := range org.VerifiedDomains {
		if domain.IsDefault {
			info.DefaultDomain = domain.Name
			break
		}
	}
	return info
}

// UserStats splits the user totals for the identity chart. Unlicensed users are
// derived only when users, licensed users and guests are all reported and the
// admin list loaded; otherwise they are reported as zero.
func UserStats(counts models.UserCounts, admins []models.DirectoryUser, adminsLoaded bool) models.UserStats {
	stats := models.UserStats{
		Licensed:     counts.LicensedUsers,
		Guests:       counts.Guests,
		GlobalAdmins: len(admins),
	}
	if counts.Users != 0 && counts.LicensedUsers != 0 && counts.Guests != 0 && adminsLoaded {
		stats.Unlicensed = counts.Users - counts.LicensedUsers - counts.Guests - len(admins)
	}
	return stats
}

// StorageStats converts a quota into total, used and free megabytes.
func StorageStats(quota models.SharepointQuota) models.StorageStats {
	return models.StorageStats{
		TotalMB: quota.TenantStorageMB,
		UsedMB:  quota.GeoUsedStorageMB,
		FreeMB:  quota.TenantStorageMB - quota.GeoUsedStorageMB,
	}
}

// DomainNames returns the verified domain names in upstream order.
func DomainNames(domains []models.VerifiedDomain) []string {
	if len(domains) == 0 {
		return nil
	}
	names := make([]string, 0, len(domains))
	for _, domain := range domains {
		names = append(names, domain.Name)
	}
	return names
}

// Capabilities returns the labels of enabled, surfaced service plans, without
// duplicates, in first-seen order.
func Capabilities(plans []models.AssignedPlan) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, plan := range plans {
		if plan.CapabilityStatus != capabilityEnabled {
			continue
		}
		label, ok := capabilityLabels[plan.Service]
		if !ok {
			continue
		}
		if label == "" {
			label = plan.Service
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}
