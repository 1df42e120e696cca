package models

import (
	"bytes"
	"encoding/json"
)

const (
	// AllTenants is the tenant filter value that matches every tenant not explicitly excluded.
	AllTenants = "AllTenants"

	// ActionRemediate marks a standard that is enforced on the tenant.
	ActionRemediate = "Remediate"
	// ActionAlert marks a standard that raises an alert on drift.
	ActionAlert = "Alert"
	// ActionReport marks a standard that is only reported on.
	ActionReport = "Report"
)

// ValueRef is a {label, value} option as emitted by the management API.
type ValueRef struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// TenantRefs lists tenant filter or exclusion entries.
type TenantRefs []ValueRef

// Contains reports whether any entry carries the given value.
func (r TenantRefs) Contains(value string) bool {
	for _, ref := range r {
		if ref.Value == value {
			return true
		}
	}
	return false
}

// UnmarshalJSON keeps the well-formed entries of an array and treats every other shape as empty.
func (r *TenantRefs) UnmarshalJSON(data []byte) error {
	*r = decodeRefArray(data)
	return nil
}

// Actions is the normalized action list of a standard. The upstream payload may
// carry a single object or an array; both decode into a slice.
type Actions []ValueRef

// Values returns the action values in order.
func (a Actions) Values() []string {
	values := make([]string, 0, len(a))
	for _, ref := range a {
		values = append(values, ref.Value)
	}
	return values
}

// UnmarshalJSON accepts a single action object, an array of them, or anything else as empty.
func (a *Actions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*a = nil
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '[':
		*a = Actions(decodeRefArray(trimmed))
	case '{':
		if ref, ok := decodeValueRef(trimmed); ok {
			*a = Actions{ref}
		}
	}
	return nil
}

// StandardConfig holds the configuration of one standard inside a template.
type StandardConfig struct {
	Actions Actions
	// Settings keeps every other field of the standard, undecoded.
	Settings map[string]json.RawMessage
}

// UnmarshalJSON splits the action list from the remaining settings.
func (c *StandardConfig) UnmarshalJSON(data []byte) error {
	*c = StandardConfig{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	for name, raw := range fields {
		if name == "action" {
			_ = c.Actions.UnmarshalJSON(raw)
			continue
		}
		if c.Settings == nil {
			c.Settings = make(map[string]json.RawMessage, len(fields))
		}
		c.Settings[name] = raw
	}
	return nil
}

// MarshalJSON writes the settings back with the action list under "action".
func (c StandardConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Settings)+1)
	for name, raw := range c.Settings {
		out[name] = raw
	}
	actions := c.Actions
	if actions == nil {
		actions = Actions{}
	}
	out["action"] = []ValueRef(actions)
	return json.Marshal(out)
}

// StandardEntry pairs a standard key with its configuration.
type StandardEntry struct {
	Key    string
	Config StandardConfig
}

// Standards is an ordered mapping of standard key to configuration. Keys are
// unique and keep the order of the source object.
type Standards []StandardEntry

// Get returns the configuration stored for key.
func (s Standards) Get(key string) (StandardConfig, bool) {
	for _, entry := range s {
		if entry.Key == key {
			return entry.Config, true
		}
	}
	return StandardConfig{}, false
}

// Keys returns the standard keys in order.
func (s Standards) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, entry := range s {
		keys = append(keys, entry.Key)
	}
	return keys
}

// UnmarshalJSON reads a JSON object in key order. A key repeated in the object
// keeps its first position and its last value. Non-object input decodes as empty.
func (s *Standards) UnmarshalJSON(data []byte) error {
	*s = nil
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var out Standards
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		var cfg StandardConfig
		_ = cfg.UnmarshalJSON(raw)
		if i, seen := index[key]; seen {
			out[i].Config = cfg
			continue
		}
		index[key] = len(out)
		out = append(out, StandardEntry{Key: key, Config: cfg})
	}
	*s = out
	return nil
}

// MarshalJSON writes the standards as a JSON object in order.
func (s Standards) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		cfg, err := json.Marshal(entry.Config)
		if err != nil {
			return nil, err
		}
		buf.Write(cfg)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StandardTemplate is one configured policy bundle scoped to a set of tenants.
type StandardTemplate struct {
	GUID            string     `json:"GUID,omitempty"`
	TemplateName    string     `json:"templateName,omitempty"`
	TenantFilter    TenantRefs `json:"tenantFilter"`
	ExcludedTenants TenantRefs `json:"excludedTenants"`
	Standards       Standards  `json:"standards"`
}

// UnmarshalJSON decodes every field on its own so one malformed field never
// discards the rest of the template.
func (t *StandardTemplate) UnmarshalJSON(data []byte) error {
	*t = StandardTemplate{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	t.GUID, _ = stringField(fields, "GUID")
	t.TemplateName, _ = stringField(fields, "templateName")
	if raw, ok := fields["tenantFilter"]; ok {
		_ = t.TenantFilter.UnmarshalJSON(raw)
	}
	if raw, ok := fields["excludedTenants"]; ok {
		_ = t.ExcludedTenants.UnmarshalJSON(raw)
	}
	if raw, ok := fields["standards"]; ok {
		_ = t.Standards.UnmarshalJSON(raw)
	}
	return nil
}

// DecodeTemplates decodes a template list payload. Anything other than a JSON
// array yields nil; elements that are not objects become empty templates.
func DecodeTemplates(data []byte) []StandardTemplate {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	templates := make([]StandardTemplate, 0, len(elems))
	for _, elem := range elems {
		var tpl StandardTemplate
		_ = tpl.UnmarshalJSON(elem)
		templates = append(templates, tpl)
	}
	return templates
}

// ActionCounts tallies the merged standards of a tenant by action.
type ActionCounts struct {
	RemediateCount int
	AlertCount     int
	ReportCount    int
	Total          int
}

// ResolvedStandard is one row of a tenant's effective standards.
type ResolvedStandard struct {
	Key          string
	Actions      []string
	Settings     map[string]json.RawMessage
	TemplateGUID string
	TemplateName string
	Label        string
	Category     string
	Impact       string
}

func decodeRefArray(data []byte) []ValueRef {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	var refs []ValueRef
	for _, elem := range elems {
		if ref, ok := decodeValueRef(elem); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

func decodeValueRef(data []byte) (ValueRef, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return ValueRef{}, false
	}
	value, ok := stringField(fields, "value")
	if !ok {
		return ValueRef{}, false
	}
	label, _ := stringField(fields, "label")
	return ValueRef{Label: label, Value: value}, true
}

func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
