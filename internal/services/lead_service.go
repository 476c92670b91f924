package services

import (
	"context"
	"fmt"

	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
)

const (
	DefaultLeadLimit = 50
	MaxLeadLimit     = 200
)

// LeadService gives operators a read-only view of stored submissions
type LeadService struct {
	store database.Store
}

// NewLeadService creates a new lead service
func NewLeadService(store database.Store) *LeadService {
	return &LeadService{store: store}
}

// List returns the newest leads of one kind
func (s *LeadService) List(ctx context.Context, kind models.RequestType, limit int) (*models.LeadList, error) {
	rule, ok := IntakeRules[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequestType, kind)
	}
	if limit <= 0 {
		limit = DefaultLeadLimit
	}
	if limit > MaxLeadLimit {
		limit = MaxLeadLimit
	}

	q := database.Query{
		Table:   rule.Table,
		OrderBy: []database.Order{database.Desc("created_at")},
		Limit:   limit,
	}

	var (
		leads interface{}
		count int
		err   error
	)
	switch kind {
	case models.RequestBooking:
		rows := []models.BookingRecord{}
		err = s.store.Select(ctx, &rows, q)
		leads, count = rows, len(rows)
	case models.RequestMultiCity:
		rows := []models.MultiCityRecord{}
		err = s.store.Select(ctx, &rows, q)
		leads, count = rows, len(rows)
	case models.RequestContact:
		rows := []models.ContactRecord{}
		err = s.store.Select(ctx, &rows, q)
		leads, count = rows, len(rows)
	case models.RequestEnterprise:
		rows := []models.EnterpriseRecord{}
		err = s.store.Select(ctx, &rows, q)
		leads, count = rows, len(rows)
	case models.RequestService:
		rows := []models.ServiceRecord{}
		err = s.store.Select(ctx, &rows, q)
		leads, count = rows, len(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s leads: %w", kind, err)
	}

	return &models.LeadList{Kind: kind, Count: count, Leads: leads}, nil
}
