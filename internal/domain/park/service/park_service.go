package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trailblazer/internal/domain/park/model"
	"trailblazer/internal/domain/park/repository"
	trailModel "trailblazer/internal/domain/trail/model"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/internal/pkg/nps"
	"trailblazer/pkg/logger"
	"trailblazer/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ParkSource 外部公园数据源
type ParkSource interface {
	ParksByState(ctx context.Context, stateCode string) ([]nps.Park, error)
}

type ParkService interface {
	ListParks(ctx context.Context, state string) ([]model.Park, error)
	GetPark(ctx context.Context, id uint) (*model.Park, error)
	ListParkTrails(ctx context.Context, id uint) ([]trailModel.Trail, error)
	ImportByState(ctx context.Context, stateCode string) (*model.ImportResult, error)
}

type parkService struct {
	repo    repository.ParkRepository
	trails  trailRepository.TrailRepository
	source  ParkSource
	metrics *metrics.MetricsCollector
}

func NewParkService(repo repository.ParkRepository, trails trailRepository.TrailRepository, source ParkSource, mc *metrics.MetricsCollector) ParkService {
	return &parkService{repo: repo, trails: trails, source: source, metrics: mc}
}

func (s *parkService) ListParks(ctx context.Context, state string) ([]model.Park, error) {
	return s.repo.List(ctx, strings.ToUpper(strings.TrimSpace(state)))
}

func (s *parkService) GetPark(ctx context.Context, id uint) (*model.Park, error) {
	park, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("park")
		}
		return nil, err
	}
	return park, nil
}

func (s *parkService) ListParkTrails(ctx context.Context, id uint) ([]trailModel.Trail, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("park")
	}
	return s.trails.ListByPark(ctx, id)
}

// ImportByState 拉取 NPS 数据并按 nps_id 或 (name, state) 逐行 upsert。
// 每行单独提交，中途失败时已处理的行保留。
func (s *parkService) ImportByState(ctx context.Context, stateCode string) (*model.ImportResult, error) {
	state := strings.ToUpper(strings.TrimSpace(stateCode))
	if state == "" {
		return nil, apperr.Invalid("state_code is required")
	}

	start := time.Now()
	records, err := s.source.ParksByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("%w: nps import failed: %v", apperr.ErrUpstream, err)
	}

	result := &model.ImportResult{State: state}
	for _, rec := range records {
		if err := s.upsert(ctx, rec, state, result); err != nil {
			logger.Log.Error("nps import aborted",
				zap.String("state", state),
				zap.Int("inserted", result.Inserted),
				zap.Int("updated", result.Updated),
				zap.Error(err),
			)
			s.record(result, start)
			return nil, fmt.Errorf("%w: nps import failed after %d parks: %v", apperr.ErrUpstream, result.Total, err)
		}
	}

	s.record(result, start)
	logger.Log.Info("nps import finished",
		zap.String("state", state),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

func (s *parkService) upsert(ctx context.Context, rec nps.Park, state string, result *model.ImportResult) error {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = "Unnamed Park"
	}
	lat, lon := rec.Coordinates()

	var npsID *string
	if rec.ID != "" {
		id := rec.ID
		npsID = &id
	}
	stateVal := state

	existing, err := s.repo.FindForImport(ctx, rec.ID, name, state)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.NPSID = npsID
		existing.Name = name
		existing.State = &stateVal
		existing.Lat = lat
		existing.Lon = lon
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		result.Updated++
	} else {
		park := &model.Park{NPSID: npsID, Name: name, State: &stateVal, Lat: lat, Lon: lon}
		if err := s.repo.Create(ctx, park); err != nil {
			return err
		}
		result.Inserted++
	}
	result.Total = result.Inserted + result.Updated
	return nil
}

func (s *parkService) record(result *model.ImportResult, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordImport(result.Inserted, result.Updated, time.Since(start))
	}
}
