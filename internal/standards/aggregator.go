// Package standards resolves which standard templates apply to a tenant and
// tallies the merged standards by action. The summary counts and the detail
// view both go through Merge so they cannot disagree.
package standards

import "github.com/miradorstack/tenant-posture/internal/models"

// Applies reports whether template targets tenant, either by explicit
// inclusion or through AllTenants without an exclusion for tenant.
func Applies(template models.StandardTemplate, tenant string) bool {
	if len(template.TenantFilter) == 0 {
		return false
	}
	if template.TenantFilter.Contains(tenant) {
		return true
	}
	return template.TenantFilter.Contains(models.AllTenants) && !template.ExcludedTenants.Contains(tenant)
}

// ApplicableTemplates returns the templates that apply to tenant, in input order.
func ApplicableTemplates(templates []models.StandardTemplate, tenant string) []models.StandardTemplate {
	applicable := make([]models.StandardTemplate, 0, len(templates))
	for _, tpl := range templates {
		if Applies(tpl, tenant) {
			applicable = append(applicable, tpl)
		}
	}
	return applicable
}

// MergedEntry is the winning configuration for one standard key.
type MergedEntry struct {
	Key          string
	Config       models.StandardConfig
	TemplateGUID string
	TemplateName string
}

// Merged is the last-write-wins union of several templates' standards.
// Entries keep the position of the key's first insertion.
type Merged struct {
	entries []MergedEntry
	index   map[string]int
}

// Merge folds the standards of templates in order; a later template
// overwrites the configuration of a key set by an earlier one.
func Merge(templates []models.StandardTemplate) *Merged {
	m := &Merged{index: make(map[string]int)}
	for _, tpl := range templates {
		for _, std := range tpl.Standards {
			entry := MergedEntry{
				Key:          std.Key,
				Config:       std.Config,
				TemplateGUID: tpl.GUID,
				TemplateName: tpl.TemplateName,
			}
			if i, ok := m.index[std.Key]; ok {
				m.entries[i] = entry
				continue
			}
			m.index[std.Key] = len(m.entries)
			m.entries = append(m.entries, entry)
		}
	}
	return m
}

// Len returns the number of distinct standard keys.
func (m *Merged) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the merged entries in order.
func (m *Merged) Entries() []MergedEntry {
	if m == nil {
		return nil
	}
	return append([]MergedEntry(nil), m.entries...)
}

// Lookup returns the merged entry for key.
func (m *Merged) Lookup(key string) (MergedEntry, bool) {
	if m == nil {
		return MergedEntry{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return MergedEntry{}, false
	}
	return m.entries[i], true
}

// Counts tallies every action of every merged standard. Unknown action values
// count towards no bucket, but their standard still counts towards Total.
func (m *Merged) Counts() models.ActionCounts {
	var counts models.ActionCounts
	if m == nil {
		return counts
	}
	for _, entry := range m.entries {
		for _, action := range entry.Config.Actions {
			switch action.Value {
			case models.ActionRemediate:
				counts.RemediateCount++
			case models.ActionAlert:
				counts.AlertCount++
			case models.ActionReport:
				counts.ReportCount++
			}
		}
	}
	counts.Total = len(m.entries)
	return counts
}

// ComputeActionCounts resolves the standards in effect for tenant and counts
// them by action. A nil or empty template list yields zero counts.
func ComputeActionCounts(templates []models.StandardTemplate, tenant string) models.ActionCounts {
	if len(templates) == 0 {
		return models.ActionCounts{}
	}
	return Merge(ApplicableTemplates(templates, tenant)).Counts()
}

// Resolve returns the standards in effect for tenant, one row per key, each
// attributed to the template that supplied its final configuration.
func Resolve(templates []models.StandardTemplate, tenant string) []models.ResolvedStandard {
	merged := Merge(ApplicableTemplates(templates, tenant))
	rows := make([]models.ResolvedStandard, 0, merged.Len())
	for _, entry := range merged.entries {
		rows = append(rows, models.ResolvedStandard{
			Key:          entry.Key,
			Actions:      entry.Config.Actions.Values(),
			Settings:     entry.Config.Settings,
			TemplateGUID: entry.TemplateGUID,
			TemplateName: entry.TemplateName,
		})
	}
	return rows
}
