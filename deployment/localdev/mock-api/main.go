package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

const sampleTemplates = `[
  {
    "GUID": "4a0b7c5e-9a8b-4b4f-8d59-1d1f7f6a2c01",
    "templateName": "Baseline for all tenants",
    "tenantFilter": [{"label": "All Tenants", "value": "AllTenants"}],
    "excludedTenants": [{"label": "Lab", "value": "lab.onmicrosoft.com"}],
    "standards": {
      "AuditLog": {"action": [{"label": "Remediate", "value": "Remediate"}, {"label": "Alert", "value": "Alert"}]},
      "SecurityDefaults": {"action": [{"label": "Report", "value": "Report"}]},
      "PasswordExpireDisabled": {"action": {"label": "Alert", "value": "Alert"}}
    }
  },
  {
    "GUID": "b5a6a0d2-5b1c-4c47-9f3e-6d0f5a1e7b02",
    "templateName": "Contoso overrides",
    "tenantFilter": [{"label": "Contoso", "value": "contoso.onmicrosoft.com"}],
    "standards": {
      "SecurityDefaults": {"action": [{"label": "Remediate", "value": "Remediate"}]},
      "DisableBasicAuthSMTP": {"action": [{"label": "Report", "value": "Report"}], "state": "enabled"}
    }
  }
]`

func main() {
	addr := ":8081"
	if v := os.Getenv("MOCK_API_ADDRESS"); v != "" {
		addr = v
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/ListStandardTemplates", func(w http.ResponseWriter, r *http.Request) {
		if !enforceGet(w, r) {
			return
		}
		writeJSON(w, json.RawMessage(sampleTemplates))
	})

	mux.HandleFunc("/api/ListOrg", func(w http.ResponseWriter, r *http.Request) {
		if !enforceTenant(w, r) {
			return
		}
		writeJSON(w, map[string]any{
			"id":                    "7e3c1f0a-0000-4000-8000-000000000001",
			"displayName":           "Contoso Ltd",
			"onPremisesSyncEnabled": true,
			"verifiedDomains": []map[string]any{
				{"name": "contoso.onmicrosoft.com", "isDefault": false},
				{"name": "contoso.com", "isDefault": true},
			},
			"assignedPlans": []map[string]any{
				{"service": "exchange", "capabilityStatus": "Enabled"},
				{"service": "AADPremiumService", "capabilityStatus": "Enabled"},
				{"service": "WindowsDefenderATP", "capabilityStatus": "Deleted"},
				{"service": "SharePoint", "capabilityStatus": "Enabled"},
			},
		})
	})

	mux.HandleFunc("/api/ListuserCounts", func(w http.ResponseWriter, r *http.Request) {
		if !enforceTenant(w, r) {
			return
		}
		writeJSON(w, map[string]int{"Users": 240, "LicUsers": 180, "Guests": 35})
	})

	mux.HandleFunc("/api/ListGraphRequest", func(w http.ResponseWriter, r *http.Request) {
		if !enforceTenant(w, r) {
			return
		}
		switch endpoint := r.URL.Query().Get("Endpoint"); {
		case r.URL.Query().Get("ReverseTenantLookup") == "true":
			writeJSON(w, map[string]any{"Results": []map[string]any{
				{"TenantInfo": map[string]string{"displayName": "Fabrikam", "defaultDomainName": "fabrikam.com"}},
				{"TenantInfo": nil},
			}})
		case endpoint != "":
			writeJSON(w, map[string]any{"Results": []map[string]any{
				{"displayName": "Megan Bowen", "userPrincipalName": "meganb@contoso.com", "accountEnabled": true},
				{"displayName": "Break Glass", "userPrincipalName": "breakglass@contoso.com", "accountEnabled": false},
			}})
		default:
			http.Error(w, "Endpoint is required", http.StatusBadRequest)
		}
	})

	mux.HandleFunc("/api/ListSharepointQuota", func(w http.ResponseWriter, r *http.Request) {
		if !enforceTenant(w, r) {
			return
		}
		writeJSON(w, map[string]float64{"TenantStorageMB": 1126400, "GeoUsedStorageMB": 52480})
	})

	logger := log.New(log.Writer(), "api-mock ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:              addr,
		Handler:           logRequests(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func enforceGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func enforceTenant(w http.ResponseWriter, r *http.Request) bool {
	if !enforceGet(w, r) {
		return false
	}
	if r.URL.Query().Get("tenantFilter") == "" {
		http.Error(w, "tenantFilter is required", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
