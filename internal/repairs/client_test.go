package repairs_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bccsims/asset-inventory/internal/repairs"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRepairsClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repairs Client Suite")
}

var _ = Describe("Repairs Client", func() {
	var (
		ctx    context.Context
		logger *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	It("returns the repair status from a healthy tracker", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/external/repair-status/SN-001"))
			json.NewEncoder(w).Encode(map[string]string{
				"status":    "In Repair",
				"ticketRef": "REP-445",
			})
		}))
		defer server.Close()

		client := repairs.NewClient(server.URL, 2*time.Second, logger)
		status, err := client.FetchRepairStatus(ctx, "SN-001")

		Expect(err).NotTo(HaveOccurred())
		Expect(status.Status).To(Equal("In Repair"))
		Expect(status.TicketRef).To(Equal("REP-445"))
		Expect(status.SerialNumber).To(Equal("SN-001"))
	})

	It("reports unavailable when the tracker answers non-200", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := repairs.NewClient(server.URL, 2*time.Second, logger)
		_, err := client.FetchRepairStatus(ctx, "SN-001")
		Expect(err).To(Equal(repairs.ErrUnavailable))
	})

	It("reports unavailable on a malformed body", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := repairs.NewClient(server.URL, 2*time.Second, logger)
		_, err := client.FetchRepairStatus(ctx, "SN-001")
		Expect(err).To(Equal(repairs.ErrUnavailable))
	})

	It("reports unavailable when the tracker is slower than the timeout", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := repairs.NewClient(server.URL, 50*time.Millisecond, logger)
		start := time.Now()
		_, err := client.FetchRepairStatus(ctx, "SN-001")
		Expect(err).To(Equal(repairs.ErrUnavailable))
		Expect(time.Since(start)).To(BeNumerically("<", 150*time.Millisecond))
	})

	It("reports unavailable when the tracker is unreachable", func() {
		client := repairs.NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger)
		_, err := client.FetchRepairStatus(ctx, "SN-001")
		Expect(err).To(Equal(repairs.ErrUnavailable))
	})

	It("reports unavailable when no tracker is configured", func() {
		client := repairs.NewClient("", 2*time.Second, logger)
		_, err := client.FetchRepairStatus(ctx, "SN-001")
		Expect(err).To(Equal(repairs.ErrUnavailable))
	})

	It("escapes the serial in the request path", func() {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
		}))
		defer server.Close()

		client := repairs.NewClient(server.URL, 2*time.Second, logger)
		_, err := client.FetchRepairStatus(ctx, "SN/01 X")
		Expect(err).NotTo(HaveOccurred())
		Expect(gotPath).To(Equal("/api/external/repair-status/SN%2F01%20X"))
	})
})
