package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/bccsims/asset-inventory/internal/asset"
	assetPostgres "github.com/bccsims/asset-inventory/internal/asset/postgres"
	assetDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/asset"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

// SQLiteAsset is a SQLite-compatible model for testing.
type SQLiteAsset struct {
	ID              int64      `gorm:"primaryKey"`
	AssetName       string     `gorm:"column:asset_name;not null"`
	EmployeeName    string     `gorm:"column:employee_name;not null"`
	AssetCode       string     `gorm:"column:asset_code"`
	SRNumber        string     `gorm:"column:sr_number;uniqueIndex"`
	SerialNumber    string     `gorm:"column:serial_number"`
	Department      string     `gorm:"column:department"`
	DepartmentID    *int64     `gorm:"column:department_id"`
	Section         string     `gorm:"column:section"`
	Position        string     `gorm:"column:position"`
	ExtNumber       string     `gorm:"column:ext_number"`
	OfficeNumber    string     `gorm:"column:office_number"`
	Location        string     `gorm:"column:location"`
	ConditionStatus string     `gorm:"column:condition_status"`
	Model           string     `gorm:"column:model"`
	Notes           string     `gorm:"column:notes"`
	PurchaseDate    *time.Time `gorm:"column:purchase_date"`
	WarrantyExpiry  *time.Time `gorm:"column:warranty_expiry"`
	DisposalDate    *time.Time `gorm:"column:disposal_date"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

var _ = Describe("Asset Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo asset.RepositoryAPI
	)

	newAsset := func(serial, srNumber string) *assetDatamodel.Asset {
		return &assetDatamodel.Asset{
			AssetName:       "Laptop",
			EmployeeName:    "Jordan Smith",
			SRNumber:        srNumber,
			SerialNumber:    serial,
			Department:      "ICT",
			Location:        "Office",
			ConditionStatus: "active",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteAsset{})).To(Succeed())
		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("round-trips an asset", func() {
			a := newAsset("SN-001", "BCC-SR-2025-AB12")
			Expect(repo.Create(ctx, a)).To(Succeed())
			Expect(a.ID).NotTo(BeZero())

			got, err := repo.GetByID(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.SerialNumber).To(Equal("SN-001"))
			Expect(got.SRNumber).To(Equal("BCC-SR-2025-AB12"))
		})

		It("returns nil for an unknown id", func() {
			got, err := repo.GetByID(ctx, 999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("ExistsBySerial", func() {
		It("matches regardless of case", func() {
			Expect(repo.Create(ctx, newAsset("SN-001", "BCC-SR-2025-AB12"))).To(Succeed())

			exists, err := repo.ExistsBySerial(ctx, "sn-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.ExistsBySerial(ctx, "SN-002")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("GetBySerial", func() {
		It("finds the asset regardless of case", func() {
			Expect(repo.Create(ctx, newAsset("SN-001", "BCC-SR-2025-AB12"))).To(Succeed())

			got, err := repo.GetBySerial(ctx, "Sn-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
			Expect(got.EmployeeName).To(Equal("Jordan Smith"))
		})

		It("returns nil for an unknown serial", func() {
			got, err := repo.GetBySerial(ctx, "SN-404")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			first := newAsset("SN-001", "BCC-SR-2025-AB12")
			Expect(repo.Create(ctx, first)).To(Succeed())

			second := newAsset("SN-002", "BCC-SR-2025-CD34")
			second.Department = "Finance"
			second.ConditionStatus = "under repair"
			Expect(repo.Create(ctx, second)).To(Succeed())
		})

		It("returns everything without filters", func() {
			rows, err := repo.List(ctx, asset.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("filters by department", func() {
			rows, err := repo.List(ctx, asset.ListFilter{Department: "Finance"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].SerialNumber).To(Equal("SN-002"))
		})

		It("filters by status regardless of case", func() {
			rows, err := repo.List(ctx, asset.ListFilter{Status: "Under Repair"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ConditionStatus).To(Equal("under repair"))
		})
	})

	Describe("CreateBatch", func() {
		It("inserts every row", func() {
			batch := []*assetDatamodel.Asset{
				newAsset("SN-101", "BCC-SR-2025-EF56"),
				newAsset("SN-102", "BCC-SR-2025-GH78"),
			}
			Expect(repo.CreateBatch(ctx, batch)).To(Succeed())

			rows, err := repo.List(ctx, asset.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})
	})

	Describe("Delete", func() {
		It("removes the row permanently", func() {
			a := newAsset("SN-001", "BCC-SR-2025-AB12")
			Expect(repo.Create(ctx, a)).To(Succeed())

			Expect(repo.Delete(ctx, a.ID)).To(Succeed())

			got, err := repo.GetByID(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})
})
