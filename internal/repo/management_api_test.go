package repo

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/miradorstack/tenant-posture/internal/models"
	"github.com/miradorstack/tenant-posture/internal/utils"
)

func testPaths() Paths {
	return Paths{
		Templates:       "/api/ListStandardTemplates",
		Organization:    "/api/ListOrg",
		UserCounts:      "/api/ListuserCounts",
		GraphRequest:    "/api/ListGraphRequest",
		SharepointQuota: "/api/ListSharepointQuota",
	}
}

func TestListStandardTemplates(t *testing.T) {
	client := NewAPIClient("https://cipp.example.com/", testPaths(), time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/ListStandardTemplates" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.RawQuery != "" {
			t.Fatalf("templates request should carry no query, got %q", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `[
			{"GUID": "a", "tenantFilter": [{"value": "AllTenants"}], "standards": {"AuditLog": {"action": {"value": "Remediate"}}}},
			"garbage"
		]`), nil
	})

	templates, err := client.ListStandardTemplates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].GUID != "a" || len(templates[0].Standards) != 1 {
		t.Fatalf("unexpected first template: %+v", templates[0])
	}
	if len(templates[1].TenantFilter) != 0 {
		t.Fatalf("malformed record should decode empty: %+v", templates[1])
	}
}

func TestFetchOrganization(t *testing.T) {
	client := NewAPIClient("https://cipp.example.com", testPaths(), time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query().Get("tenantFilter"); got != "contoso.onmicrosoft.com" {
			t.Fatalf("unexpected tenantFilter: %q", got)
		}
		return jsonResponse(http.StatusOK, `{
			"id": "00000000-0000-0000-0000-000000000001",
			"displayName": "Contoso",
			"onPremisesSyncEnabled": true,
			"verifiedDomains": [{"name": "contoso.com", "isDefault": true}, {"name": "contoso.onmicrosoft.com"}],
			"assignedPlans": [{"service": "exchange", "capabilityStatus": "Enabled"}]
		}`), nil
	})

	org, err := client.FetchOrganization(context.Background(), "contoso.onmicrosoft.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	synced := true
	want := models.Organization{
		ID:                    "00000000-0000-0000-0000-000000000001",
		DisplayName:           "Contoso",
		OnPremisesSyncEnabled: &synced,
		VerifiedDomains:       []models.VerifiedDomain{{Name: "contoso.com", IsDefault: true}, {Name: "contoso.onmicrosoft.com"}},
		AssignedPlans:         []models.AssignedPlan{{Service: "exchange", CapabilityStatus: "Enabled"}},
	}
	if diff := cmp.Diff(want, org); diff != "" {
		t.Fatalf("organization mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchGraphRequests(t *testing.T) {
	client := NewAPIClient("https://cipp.example.com/base", testPaths(), time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/base/api/ListGraphRequest" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		switch req.URL.Query().Get("Endpoint") {
		case globalAdminRoleEndpoint:
			if req.URL.Query().Get("$select") == "" {
				t.Fatalf("expected $select on admin request")
			}
			return jsonResponse(http.StatusOK, `{"Results": [{"displayName": "Admin", "userPrincipalName": "admin@contoso.com", "accountEnabled": true}]}`), nil
		case partnersEndpoint:
			if req.URL.Query().Get("ReverseTenantLookup") != "true" {
				t.Fatalf("expected reverse tenant lookup")
			}
			return jsonResponse(http.StatusOK, `{"Results": [{"TenantInfo": {"displayName": "Fabrikam", "defaultDomainName": "fabrikam.com"}}, {}]}`), nil
		}
		t.Fatalf("unexpected endpoint: %s", req.URL.Query().Get("Endpoint"))
		return nil, nil
	})

	admins, err := client.FetchGlobalAdmins(context.Background(), "contoso")
	if err != nil {
		t.Fatalf("admins: %v", err)
	}
	if len(admins) != 1 || admins[0].UserPrincipalName != "admin@contoso.com" {
		t.Fatalf("unexpected admins: %+v", admins)
	}

	partners, err := client.FetchPartners(context.Background(), "contoso")
	if err != nil {
		t.Fatalf("partners: %v", err)
	}
	want := []models.PartnerTenant{{DisplayName: "Fabrikam", DefaultDomain: "fabrikam.com"}, {}}
	if diff := cmp.Diff(want, partners); diff != "" {
		t.Fatalf("partners mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchUserCountsAndQuota(t *testing.T) {
	client := NewAPIClient("https://cipp.example.com", testPaths(), time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/ListuserCounts":
			return jsonResponse(http.StatusOK, `{"Users": 120, "LicUsers": 90, "Guests": 12}`), nil
		case "/api/ListSharepointQuota":
			return jsonResponse(http.StatusOK, `{"TenantStorageMB": 2048, "GeoUsedStorageMB": 512.5}`), nil
		}
		t.Fatalf("unexpected path: %s", req.URL.Path)
		return nil, nil
	})

	counts, err := client.FetchUserCounts(context.Background(), "contoso")
	if err != nil {
		t.Fatalf("user counts: %v", err)
	}
	if counts != (models.UserCounts{Users: 120, LicensedUsers: 90, Guests: 12}) {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	quota, err := client.FetchSharepointQuota(context.Background(), "contoso")
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	if quota.TenantStorageMB != 2048 || quota.GeoUsedStorageMB != 512.5 {
		t.Fatalf("unexpected quota: %+v", quota)
	}
}

func TestUpstreamErrors(t *testing.T) {
	client := NewAPIClient("https://cipp.example.com", testPaths(), time.Second)
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `tenant not found`), nil
	})

	_, err := client.FetchOrganization(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if utils.StatusCodeOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 status, got %d (%v)", utils.StatusCodeOf(err), err)
	}

	transportErr := errors.New("connection refused")
	client.httpClient = newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, transportErr
	})
	if _, err := client.ListStandardTemplates(context.Background()); !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error to be wrapped, got %v", err)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	client := NewAPIClient("", testPaths(), 0)
	if _, err := client.ListStandardTemplates(context.Background()); err == nil {
		t.Fatalf("expected error without base URL")
	}
}
