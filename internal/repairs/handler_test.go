package repairs_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/asset"
	"github.com/bccsims/asset-inventory/internal/repairs"
	"github.com/bccsims/asset-inventory/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockAssetService implements asset.ServiceAPI for the lookup endpoint.
type MockAssetService struct {
	views map[string]*asset.PartnerView
}

func (m *MockAssetService) List(context.Context, asset.ListFilter) ([]*asset.Asset, error) {
	return nil, nil
}
func (m *MockAssetService) Create(context.Context, int64, asset.AssetDTO) (*asset.Asset, error) {
	return nil, nil
}
func (m *MockAssetService) Update(context.Context, int64, asset.AssetDTO) error { return nil }
func (m *MockAssetService) Delete(context.Context, int64, int64) error          { return nil }
func (m *MockAssetService) BulkCreate(context.Context, int64, asset.BulkAssetsDTO) ([]*asset.Asset, error) {
	return nil, nil
}
func (m *MockAssetService) LookupBySerial(_ context.Context, serial string) (*asset.PartnerView, error) {
	view, ok := m.views[serial]
	if !ok {
		return nil, internal.ErrAssetNotFound
	}
	return view, nil
}

var _ = Describe("Repairs Handler", func() {
	var (
		handler *repairs.Handler
		router  *chi.Mux
	)

	newRouter := func(trackerURL string) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		base := transport.NewBaseHandler(logger, false)
		client := repairs.NewClient(trackerURL, 200*time.Millisecond, logger)
		assets := &MockAssetService{views: map[string]*asset.PartnerView{
			"SN-001": {SRNumber: "BCC-SR-2025-AB12", Owner: "Jordan Smith", Department: "ICT"},
		}}
		handler = repairs.NewHandler(base, client, assets, "hunter2")

		router = chi.NewRouter()
		router.Get("/api/assets/repair-status/{serial}", handler.RepairStatus)
		router.Get("/api/external/asset/{serial}", handler.ExternalAssetLookup)
	}

	Describe("RepairStatus", func() {
		It("answers 200 with the tracker payload when the tracker is up", func() {
			tracker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"status": "In Repair"})
			}))
			defer tracker.Close()
			newRouter(tracker.URL)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets/repair-status/SN-001", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["success"]).To(BeTrue())
		})

		It("answers 200 with a placeholder when the tracker is down", func() {
			newRouter("http://127.0.0.1:1")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets/repair-status/SN-001", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["success"]).To(BeFalse())
			Expect(body["message"]).To(Equal("Status unavailable"))
		})
	})

	Describe("ExternalAssetLookup", func() {
		BeforeEach(func() {
			newRouter("")
		})

		It("returns the owner view with a valid key", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/external/asset/SN-001", nil)
			req.Header.Set("x-api-key", "hunter2")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["srNumber"]).To(Equal("BCC-SR-2025-AB12"))
			Expect(body["owner"]).To(Equal("Jordan Smith"))
			Expect(body["department"]).To(Equal("ICT"))
		})

		It("rejects a missing key", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/external/asset/SN-001", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a wrong key", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/external/asset/SN-001", nil)
			req.Header.Set("x-api-key", "wrong")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 404 for an unknown serial", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/external/asset/SN-404", nil)
			req.Header.Set("x-api-key", "hunter2")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
