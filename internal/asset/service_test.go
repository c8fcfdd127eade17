package asset_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/activity"
	"github.com/bccsims/asset-inventory/internal/asset"
	assetDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/asset"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAssetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Service Suite")
}

// MockRepository implements asset.RepositoryAPI for testing.
type MockRepository struct {
	assets     map[int64]*assetDatamodel.Asset
	nextID     int64
	shouldFail bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{assets: make(map[int64]*assetDatamodel.Asset), nextID: 1}
}

func (m *MockRepository) List(_ context.Context, _ asset.ListFilter) ([]*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("db down")
	}
	var result []*assetDatamodel.Asset
	for _, a := range m.assets {
		result = append(result, a)
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("db down")
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (m *MockRepository) GetBySerial(_ context.Context, serial string) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("db down")
	}
	for _, a := range m.assets {
		if a.SerialNumber != "" && strings.EqualFold(a.SerialNumber, serial) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	a, err := m.GetBySerial(ctx, serial)
	if err != nil {
		return false, err
	}
	return a != nil, nil
}

func (m *MockRepository) Create(_ context.Context, a *assetDatamodel.Asset) error {
	if m.shouldFail {
		return errors.New("db down")
	}
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	m.assets[a.ID] = a
	return nil
}

func (m *MockRepository) CreateBatch(ctx context.Context, batch []*assetDatamodel.Asset) error {
	for _, a := range batch {
		if err := m.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) Update(_ context.Context, a *assetDatamodel.Asset) error {
	if m.shouldFail {
		return errors.New("db down")
	}
	m.assets[a.ID] = a
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id int64) error {
	if m.shouldFail {
		return errors.New("db down")
	}
	delete(m.assets, id)
	return nil
}

// MockRecorder captures audit entries.
type MockRecorder struct {
	entries []activity.Entry
}

func (m *MockRecorder) Record(_ context.Context, entry activity.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

var _ = Describe("Asset Service", func() {
	var (
		ctx      context.Context
		repo     *MockRepository
		recorder *MockRecorder
		service  *asset.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		recorder = &MockRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = asset.NewService(repo, recorder, logger, "BCC")
	})

	Describe("Create", func() {
		It("assigns a reference number in the BCC-SR-{year}-{XXXX} format", func() {
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-001",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.SRNumber).To(MatchRegexp(`^BCC-SR-\d{4}-[A-Z0-9]{4}$`))
			Expect(created.SRNumber).To(ContainSubstring(time.Now().Format("2006")))
		})

		It("keeps a supplied reference number instead of generating one", func() {
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SRNumber:     "BCC-SR-2020-LEGA",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.SRNumber).To(Equal("BCC-SR-2020-LEGA"))
			Expect(repo.assets[created.ID].SRNumber).To(Equal("BCC-SR-2020-LEGA"))
		})

		It("generates a reference when the supplied one is blank", func() {
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SRNumber:     "   ",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.SRNumber).To(MatchRegexp(`^BCC-SR-\d{4}-[A-Z0-9]{4}$`))
		})

		It("writes exactly one audit entry", func() {
			_, err := service.Create(ctx, 7, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].UserID).To(Equal(int64(7)))
			Expect(recorder.entries[0].Action).To(Equal(activity.ActionCreateAsset))
			Expect(recorder.entries[0].TargetTable).To(Equal("assets"))
		})

		It("rejects a serial number already registered", func() {
			_, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-001",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Alex Chen",
				Type:         "Laptop",
				SerialNumber: "sn-001",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Message).To(ContainSubstring("already registered"))

			// Nothing was inserted and no audit entry was written for the
			// rejected attempt.
			Expect(repo.assets).To(HaveLen(1))
			Expect(recorder.entries).To(HaveLen(1))
		})

		It("allows multiple assets without a serial number", func() {
			for i := 0; i < 2; i++ {
				_, err := service.Create(ctx, 1, asset.AssetDTO{
					EmployeeName: "Jordan Smith",
					Type:         "Mouse",
				})
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(repo.assets).To(HaveLen(2))
		})

		It("derives warranty and disposal dates from the purchase date", func() {
			purchase := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				PurchaseDate: &purchase,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.WarrantyExpiry).NotTo(BeNil())
			Expect(*created.WarrantyExpiry).To(Equal(purchase.AddDate(1, 0, 0)))
			Expect(created.DisposalDate).NotTo(BeNil())
			Expect(*created.DisposalDate).To(Equal(purchase.AddDate(3, 0, 0)))
		})

		It("keeps explicitly provided lifecycle dates", func() {
			purchase := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
			warranty := purchase.AddDate(2, 0, 0)
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName:   "Jordan Smith",
				Type:           "Laptop",
				PurchaseDate:   &purchase,
				WarrantyExpiry: &warranty,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(*created.WarrantyExpiry).To(Equal(warranty))
		})

		It("leaves lifecycle dates empty without a purchase date", func() {
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.WarrantyExpiry).To(BeNil())
			Expect(created.DisposalDate).To(BeNil())
		})

		It("rejects a missing employee name", func() {
			_, err := service.Create(ctx, 1, asset.AssetDTO{Type: "Laptop"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("Update", func() {
		var existing *asset.Asset

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-001",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the existing reference number when none is supplied", func() {
			err := service.Update(ctx, 1, asset.AssetDTO{
				ID:           existing.ID,
				EmployeeName: "Alex Chen",
				Type:         "Laptop",
				SerialNumber: "SN-001",
			})
			Expect(err).NotTo(HaveOccurred())

			updated := repo.assets[existing.ID]
			Expect(updated.SRNumber).To(Equal(existing.SRNumber))
			Expect(updated.EmployeeName).To(Equal("Alex Chen"))
		})

		It("applies a supplied reference number", func() {
			err := service.Update(ctx, 1, asset.AssetDTO{
				ID:           existing.ID,
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-001",
				SRNumber:     "BCC-SR-2020-LEGA",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.assets[existing.ID].SRNumber).To(Equal("BCC-SR-2020-LEGA"))
		})

		It("allows keeping the asset's own serial number", func() {
			err := service.Update(ctx, 1, asset.AssetDTO{
				ID:           existing.ID,
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "sn-001",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects changing the serial to another asset's", func() {
			_, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Alex Chen",
				Type:         "Laptop",
				SerialNumber: "SN-002",
			})
			Expect(err).NotTo(HaveOccurred())

			err = service.Update(ctx, 1, asset.AssetDTO{
				ID:           existing.ID,
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-002",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("returns not found for an unknown id", func() {
			err := service.Update(ctx, 1, asset.AssetDTO{
				ID:           999,
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
			})
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the row and audits the deletion", func() {
			created, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, 1, created.ID)).To(Succeed())
			Expect(repo.assets).To(BeEmpty())
			Expect(recorder.entries[len(recorder.entries)-1].Action).To(Equal(activity.ActionDeleteAsset))
		})

		It("returns not found for an unknown id", func() {
			err := service.Delete(ctx, 1, 999)
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})
	})

	Describe("BulkCreate", func() {
		It("registers every asset with its own reference number", func() {
			created, err := service.BulkCreate(ctx, 1, asset.BulkAssetsDTO{
				Assets: []asset.AssetDTO{
					{EmployeeName: "Jordan Smith", Type: "Laptop", SerialNumber: "SN-101"},
					{EmployeeName: "Alex Chen", Type: "Monitor", SerialNumber: "SN-102"},
					{EmployeeName: "Sam Riley", Type: "Dock"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(3))
			refs := map[string]bool{}
			for _, a := range created {
				Expect(a.SRNumber).To(MatchRegexp(`^BCC-SR-\d{4}-[A-Z0-9]{4}$`))
				refs[a.SRNumber] = true
			}
			Expect(refs).To(HaveLen(3))
		})

		It("keeps supplied reference numbers and generates the rest", func() {
			created, err := service.BulkCreate(ctx, 1, asset.BulkAssetsDTO{
				Assets: []asset.AssetDTO{
					{EmployeeName: "Jordan Smith", Type: "Laptop", SRNumber: "BCC-SR-2019-OLDA"},
					{EmployeeName: "Alex Chen", Type: "Monitor"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created[0].SRNumber).To(Equal("BCC-SR-2019-OLDA"))
			Expect(created[1].SRNumber).To(MatchRegexp(`^BCC-SR-\d{4}-[A-Z0-9]{4}$`))
		})

		It("writes a single audit entry for the whole batch", func() {
			_, err := service.BulkCreate(ctx, 1, asset.BulkAssetsDTO{
				Assets: []asset.AssetDTO{
					{EmployeeName: "Jordan Smith", Type: "Laptop"},
					{EmployeeName: "Alex Chen", Type: "Monitor"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Action).To(Equal(activity.ActionBulkCreateAssets))
		})

		It("rejects duplicate serials within the batch", func() {
			_, err := service.BulkCreate(ctx, 1, asset.BulkAssetsDTO{
				Assets: []asset.AssetDTO{
					{EmployeeName: "Jordan Smith", Type: "Laptop", SerialNumber: "SN-201"},
					{EmployeeName: "Alex Chen", Type: "Laptop", SerialNumber: "SN-201"},
				},
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("rejects an empty batch", func() {
			_, err := service.BulkCreate(ctx, 1, asset.BulkAssetsDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("LookupBySerial", func() {
		It("returns the owner view for a known serial", func() {
			_, err := service.Create(ctx, 1, asset.AssetDTO{
				EmployeeName: "Jordan Smith",
				Type:         "Laptop",
				SerialNumber: "SN-001",
				Department:   "ICT",
			})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.LookupBySerial(ctx, "SN-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Owner).To(Equal("Jordan Smith"))
			Expect(view.Department).To(Equal("ICT"))
			Expect(view.SRNumber).To(MatchRegexp(`^BCC-SR-`))
		})

		It("returns not found for an unknown serial", func() {
			_, err := service.LookupBySerial(ctx, "SN-404")
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})
	})
})
