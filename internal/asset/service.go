package asset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bccsims/asset-inventory/internal"
	"github.com/bccsims/asset-inventory/internal/activity"
	assetDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/asset"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Asset, error)
	Create(ctx context.Context, actorID int64, dto AssetDTO) (*Asset, error)
	Update(ctx context.Context, actorID int64, dto AssetDTO) error
	Delete(ctx context.Context, actorID int64, id int64) error
	BulkCreate(ctx context.Context, actorID int64, dto BulkAssetsDTO) ([]*Asset, error)
	LookupBySerial(ctx context.Context, serial string) (*PartnerView, error)
}

type Service struct {
	repo     RepositoryAPI
	audit    activity.Recorder
	logger   *slog.Logger
	srPrefix string
}

func NewService(repo RepositoryAPI, audit activity.Recorder, logger *slog.Logger, srPrefix string) *Service {
	return &Service{repo: repo, audit: audit, logger: logger, srPrefix: srPrefix}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Asset, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("asset list failed", "error", err)
		return nil, internal.NewInternalError("failed to load assets", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, actorID int64, dto AssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := dto.toAsset()
	if err := s.checkSerialAvailable(ctx, a.SerialNumber); err != nil {
		return nil, err
	}

	// A reference number is only generated when the caller did not supply
	// one, so legacy references survive imports.
	a.SRNumber = strings.TrimSpace(a.SRNumber)
	if a.SRNumber == "" {
		srNumber, err := GenerateSRNumber(s.srPrefix, time.Now())
		if err != nil {
			return nil, internal.NewInternalError("failed to assign reference number", err)
		}
		a.SRNumber = srNumber
	}
	applyLifecycleDefaults(a)

	row := ToDataModel(a)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("asset create failed", "error", err, "sr_number", a.SRNumber)
		return nil, internal.NewInternalError("failed to create asset", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionCreateAsset, row.ID,
		fmt.Sprintf("Added new asset %s for %s", a.SRNumber, a.EmployeeName))

	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actorID int64, dto AssetDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.ID == 0 {
		return internal.NewValidationError("id is required")
	}

	existing, err := s.repo.GetByID(ctx, dto.ID)
	if err != nil {
		return internal.NewInternalError("failed to load asset", err)
	}
	if existing == nil {
		return internal.ErrAssetNotFound
	}

	a := dto.toAsset()
	// Serial changes still go through the duplicate policy; the record's own
	// serial is naturally exempt.
	if !strings.EqualFold(a.SerialNumber, existing.SerialNumber) {
		if err := s.checkSerialAvailable(ctx, a.SerialNumber); err != nil {
			return err
		}
	}

	// A supplied reference number replaces the stored one; otherwise the
	// existing reference is kept.
	a.SRNumber = strings.TrimSpace(a.SRNumber)
	if a.SRNumber == "" {
		a.SRNumber = existing.SRNumber
	}
	applyLifecycleDefaults(a)

	row := ToDataModel(a)
	row.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("asset update failed", "error", err, "asset_id", dto.ID)
		return internal.NewInternalError("failed to update asset", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionUpdateAsset, dto.ID,
		fmt.Sprintf("Updated asset %s", existing.SRNumber))

	return nil
}

func (s *Service) Delete(ctx context.Context, actorID int64, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load asset", err)
	}
	if existing == nil {
		return internal.ErrAssetNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("asset delete failed", "error", err, "asset_id", id)
		return internal.NewInternalError("failed to delete asset", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionDeleteAsset, id,
		fmt.Sprintf("Deleted asset %s", existing.SRNumber))

	return nil
}

// BulkCreate registers a batch of assets in one call. Each asset gets its own
// reference number; the batch produces a single audit entry.
func (s *Service) BulkCreate(ctx context.Context, actorID int64, dto BulkAssetsDTO) ([]*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	seen := make(map[string]bool, len(dto.Assets))
	rows := make([]*assetDatamodel.Asset, 0, len(dto.Assets))
	for _, item := range dto.Assets {
		a := item.toAsset()
		serial := strings.ToLower(strings.TrimSpace(a.SerialNumber))
		if serial != "" {
			if seen[serial] {
				return nil, internal.NewDuplicateSerialError(a.SerialNumber)
			}
			seen[serial] = true
		}
		if err := s.checkSerialAvailable(ctx, a.SerialNumber); err != nil {
			return nil, err
		}

		a.SRNumber = strings.TrimSpace(a.SRNumber)
		if a.SRNumber == "" {
			srNumber, err := GenerateSRNumber(s.srPrefix, now)
			if err != nil {
				return nil, internal.NewInternalError("failed to assign reference number", err)
			}
			a.SRNumber = srNumber
		}
		applyLifecycleDefaults(a)
		rows = append(rows, ToDataModel(a))
	}

	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("asset bulk create failed", "error", err, "count", len(rows))
		return nil, internal.NewInternalError("failed to create assets", err)
	}

	s.recordAudit(ctx, actorID, activity.ActionBulkCreateAssets, 0,
		fmt.Sprintf("Bulk registered %d assets", len(rows)))

	return FromDataModelSlice(rows), nil
}

// LookupBySerial backs the key-authenticated partner endpoint.
func (s *Service) LookupBySerial(ctx context.Context, serial string) (*PartnerView, error) {
	row, err := s.repo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up asset", err)
	}
	if row == nil {
		return nil, internal.ErrAssetNotFound
	}
	a := FromDataModel(row)
	return &PartnerView{
		SRNumber:   a.SRNumber,
		Owner:      a.EmployeeName,
		Department: a.Department,
	}, nil
}

// checkSerialAvailable rejects a serial already registered to another asset.
// Blank serials are allowed; many small peripherals carry none.
func (s *Service) checkSerialAvailable(ctx context.Context, serial string) error {
	if strings.TrimSpace(serial) == "" {
		return nil
	}
	exists, err := s.repo.ExistsBySerial(ctx, serial)
	if err != nil {
		return internal.NewInternalError("failed to verify serial number", err)
	}
	if exists {
		return internal.NewDuplicateSerialError(serial)
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, recordID int64, description string) {
	entry := activity.Entry{
		UserID:      actorID,
		Action:      action,
		TargetTable: "assets",
		Description: description,
	}
	if recordID != 0 {
		entry.RecordID = &recordID
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit entry lost for asset mutation", "action", action, "record_id", recordID)
	}
}
