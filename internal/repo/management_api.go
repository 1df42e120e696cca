package repo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/miradorstack/tenant-posture/internal/metrics"
	"github.com/miradorstack/tenant-posture/internal/models"
	"github.com/miradorstack/tenant-posture/internal/utils"
)

const (
	globalAdminRoleEndpoint = "/directoryRoles(roleTemplateId='62e90394-69f5-4237-9190-012177145e10')/members"
	partnersEndpoint        = "policies/crossTenantAccessPolicy/partners"

	maxErrorBody = 512
)

// Paths lists the management API routes used by the client.
type Paths struct {
	Templates       string
	Organization    string
	UserCounts      string
	GraphRequest    string
	SharepointQuota string
}

// APIClient reads standard templates and tenant data from the management API.
type APIClient struct {
	baseURL    string
	paths      Paths
	httpClient *http.Client
}

// NewAPIClient constructs a client targeting the configured management API.
func NewAPIClient(baseURL string, paths Paths, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		paths:      paths,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListStandardTemplates returns every standard template known to the management API.
// The payload is decoded leniently; malformed records become empty templates.
func (c *APIClient) ListStandardTemplates(ctx context.Context) ([]models.StandardTemplate, error) {
	const op = "ListStandardTemplates"
	var raw json.RawMessage
	if err := c.getJSON(ctx, op, c.paths.Templates, nil, &raw); err != nil {
		return nil, err
	}
	return models.DecodeTemplates(raw), nil
}

// FetchOrganization returns the directory organization of tenant.
func (c *APIClient) FetchOrganization(ctx context.Context, tenant string) (models.Organization, error) {
	const op = "ListOrg"
	var response struct {
		ID              string `json:"id"`
		DisplayName     string `json:"displayName"`
		VerifiedDomains []struct {
			Name      string `json:"name"`
			IsDefault bool   `json:"isDefault"`
		} `json:"verifiedDomains"`
		OnPremisesSyncEnabled *bool `json:"onPremisesSyncEnabled"`
		AssignedPlans         []struct {
			Service          string `json:"service"`
			CapabilityStatus string `json:"capabilityStatus"`
		} `json:"assignedPlans"`
	}
	if err := c.getJSON(ctx, op, c.paths.Organization, tenantQuery(tenant), &response); err != nil {
		return models.Organization{}, err
	}

	org := models.Organization{
		ID:                    response.ID,
		DisplayName:           response.DisplayName,
		OnPremisesSyncEnabled: response.OnPremisesSyncEnabled,
	}
	for _, d := range response.VerifiedDomains {
		org.VerifiedDomains = append(org.VerifiedDomains, models.VerifiedDomain{Name: d.Name, IsDefault: d.IsDefault})
	}
	for _, p := range response.AssignedPlans {
		org.AssignedPlans = append(org.AssignedPlans, models.AssignedPlan{Service: p.Service, CapabilityStatus: p.CapabilityStatus})
	}
	return org, nil
}

// FetchUserCounts returns the user totals of tenant.
func (c *APIClient) FetchUserCounts(ctx context.Context, tenant string) (models.UserCounts, error) {
	const op = "ListuserCounts"
	var response struct {
		Users    int `json:"Users"`
		LicUsers int `json:"LicUsers"`
		Guests   int `json:"Guests"`
	}
	if err := c.getJSON(ctx, op, c.paths.UserCounts, tenantQuery(tenant), &response); err != nil {
		return models.UserCounts{}, err
	}
	return models.UserCounts{Users: response.Users, LicensedUsers: response.LicUsers, Guests: response.Guests}, nil
}

// FetchGlobalAdmins returns the members of the Global Administrator role of tenant.
func (c *APIClient) FetchGlobalAdmins(ctx context.Context, tenant string) ([]models.DirectoryUser, error) {
	const op = "ListGraphRequest.GlobalAdmins"
	query := tenantQuery(tenant)
	query.Set("Endpoint", globalAdminRoleEndpoint)
	query.Set("$select", "displayName,userPrincipalName,accountEnabled")

	var response struct {
		Results []struct {
			DisplayName       string `json:"displayName"`
			UserPrincipalName string `json:"userPrincipalName"`
			AccountEnabled    bool   `json:"accountEnabled"`
		} `json:"Results"`
	}
	if err := c.getJSON(ctx, op, c.paths.GraphRequest, query, &response); err != nil {
		return nil, err
	}

	admins := make([]models.DirectoryUser, 0, len(response.Results))
	for _, r := range response.Results {
		admins = append(admins, models.DirectoryUser{
			DisplayName:       r.DisplayName,
			UserPrincipalName: r.UserPrincipalName,
			AccountEnabled:    r.AccountEnabled,
		})
	}
	return admins, nil
}

// FetchPartners returns the cross-tenant access partners of tenant.
func (c *APIClient) FetchPartners(ctx context.Context, tenant string) ([]models.PartnerTenant, error) {
	const op = "ListGraphRequest.Partners"
	query := tenantQuery(tenant)
	query.Set("Endpoint", partnersEndpoint)
	query.Set("ReverseTenantLookup", "true")

	var response struct {
		Results []struct {
			TenantInfo *struct {
				DisplayName       string `json:"displayName"`
				DefaultDomainName string `json:"defaultDomainName"`
			} `json:"TenantInfo"`
		} `json:"Results"`
	}
	if err := c.getJSON(ctx, op, c.paths.GraphRequest, query, &response); err != nil {
		return nil, err
	}

	partners := make([]models.PartnerTenant, 0, len(response.Results))
	for _, r := range response.Results {
		if r.TenantInfo == nil {
			partners = append(partners, models.PartnerTenant{})
			continue
		}
		partners = append(partners, models.PartnerTenant{
			DisplayName:   r.TenantInfo.DisplayName,
			DefaultDomain: r.TenantInfo.DefaultDomainName,
		})
	}
	return partners, nil
}

// FetchSharepointQuota returns the SharePoint storage quota of tenant.
func (c *APIClient) FetchSharepointQuota(ctx context.Context, tenant string) (models.SharepointQuota, error) {
	const op = "ListSharepointQuota"
	var response struct {
		TenantStorageMB  float64 `json:"TenantStorageMB"`
		GeoUsedStorageMB float64 `json:"GeoUsedStorageMB"`
	}
	if err := c.getJSON(ctx, op, c.paths.SharepointQuota, tenantQuery(tenant), &response); err != nil {
		return models.SharepointQuota{}, err
	}
	return models.SharepointQuota{TenantStorageMB: response.TenantStorageMB, GeoUsedStorageMB: response.GeoUsedStorageMB}, nil
}

func tenantQuery(tenant string) url.Values {
	query := url.Values{}
	query.Set("tenantFilter", tenant)
	return query
}

func (c *APIClient) resolvePath(p string) string {
	if c.baseURL == "" {
		return ""
	}
	cleaned := "/" + strings.TrimLeft(p, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL + cleaned
	}
	u.Path = path.Join(u.Path, cleaned)
	return u.String()
}

func (c *APIClient) getJSON(ctx context.Context, op, route string, query url.Values, out any) (err error) {
	endpoint := c.resolvePath(route)
	if endpoint == "" {
		return utils.NewAppError(op, "management API base URL not configured", nil)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(op, time.Since(start), err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return utils.NewAppError(op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return utils.NewAppError(op, "upstream request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return utils.NewStatusError(op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return utils.NewAppError(op, "decode response", err)
	}
	return nil
}
