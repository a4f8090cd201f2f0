package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/internal/profile/domain"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Repository domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("profile.service"),
		genID: p.GenID,
		repo:  p.Repository,
	}
}

func (s *Service) Get(ctx context.Context) (*domain.BusinessProfile, error) {
	profile, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertProfileRequest) (*domain.BusinessProfile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	profile, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &domain.BusinessProfile{
			ID:                  s.genID.Generate(),
			DefaultCurrency:     "USD",
			DefaultPaymentTerms: invoicedomain.TermsNet30,
			CreatedAt:           now,
		}
	}

	profile.Name = name
	profile.Email = req.Email
	profile.Phone = req.Phone
	profile.TaxID = req.TaxID
	if currency := strings.TrimSpace(req.DefaultCurrency); currency != "" {
		profile.DefaultCurrency = strings.ToUpper(currency)
	}
	if terms := strings.TrimSpace(req.DefaultPaymentTerms); terms != "" {
		parsed, err := invoicedomain.ParsePaymentTerms(terms)
		if err != nil {
			return nil, err
		}
		profile.DefaultPaymentTerms = parsed
	}

	profile.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	profile.AddressLine2 = req.AddressLine2
	profile.AddressCity = strings.TrimSpace(req.AddressCity)
	profile.AddressState = req.AddressState
	profile.AddressPostalCode = strings.TrimSpace(req.AddressPostalCode)
	profile.AddressCountry = strings.TrimSpace(req.AddressCountry)
	profile.UpdatedAt = now

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info("business profile saved", zap.String("profile_id", profile.ID.String()))
	return profile, nil
}
