// File: internal/profile/service.go
package profile

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"homequest_backend/internal/common"
	"homequest_backend/internal/identity"
	"homequest_backend/internal/kvstore"
)

// KeyPrefix namespaces profile records inside the key-value store.
const KeyPrefix = "profile:"

// Service implements CRUD over per-user profile records on top of the
// key-value store. All operations require a verified identity.
type Service struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(store kvstore.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func profileKey(id string) string {
	return KeyPrefix + id
}

// Create writes a new profile for the identity. Signup is create-once: an
// existing profile for the same id is a validation failure, as is a user
// type outside the enumerated set.
func (s *Service) Create(ctx context.Context, ident *identity.Identity, name, userType string) (*UserProfile, error) {
	if !IsValidUserType(userType) {
		return nil, common.ErrBadRequest.WithDetails("userType must be one of: tenant, landlord, buyer.")
	}

	_, found, err := s.store.Get(ctx, profileKey(ident.ID))
	if err != nil {
		s.logger.Error("Profile lookup failed during create", zap.Error(err), zap.String("userID", ident.ID))
		return nil, common.ErrStore.WithDetails("Could not read profile store.")
	}
	if found {
		return nil, common.ErrBadRequest.WithDetails("A profile already exists for this account.")
	}

	now := time.Now().UTC()
	p := &UserProfile{
		ID:        ident.ID,
		Email:     ident.Email,
		Name:      name,
		UserType:  userType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Profile created", zap.String("userID", ident.ID), zap.String("userType", userType))
	return p, nil
}

// Get reads the profile for the identity. An absent record is synthesized
// from identity metadata, persisted and returned: identity existence implies
// profile eligibility, so absence is recovered rather than reported. The
// lazy create is the only write Get ever performs for an unchanged identity,
// which keeps repeated calls idempotent.
func (s *Service) Get(ctx context.Context, ident *identity.Identity) (*UserProfile, error) {
	raw, found, err := s.store.Get(ctx, profileKey(ident.ID))
	if err != nil {
		s.logger.Error("Profile read failed", zap.Error(err), zap.String("userID", ident.ID))
		return nil, common.ErrStore.WithDetails("Could not read profile store.")
	}

	if !found {
		p := s.materialize(ident)
		if err := s.persist(ctx, p); err != nil {
			return nil, err
		}
		s.logger.Info("Profile lazily materialized", zap.String("userID", ident.ID))
		return p, nil
	}

	p, err := decode(raw)
	if err != nil {
		s.logger.Error("Stored profile is not decodable", zap.Error(err), zap.String("userID", ident.ID))
		return nil, common.ErrStore.WithDetails("Stored profile record is corrupt.")
	}

	// The provider owns id and email; re-sync if the provider record moved.
	if p.Email != ident.Email && ident.Email != "" {
		p.Email = ident.Email
		p.UpdatedAt = time.Now().UTC()
		if err := s.persist(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Update merges the caller-supplied fields over the existing record,
// lazily creating one first if needed. ID and email are always recomputed
// from the identity, never taken from the request.
func (s *Service) Update(ctx context.Context, ident *identity.Identity, req UpdateRequest) (*UserProfile, error) {
	if req.UserType != nil && !IsValidUserType(*req.UserType) {
		return nil, common.ErrBadRequest.WithDetails("userType must be one of: tenant, landlord, buyer.")
	}

	p, err := s.Get(ctx, ident)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.UserType != nil {
		p.UserType = *req.UserType
	}
	p.ID = ident.ID
	p.Email = ident.Email
	p.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("userID", ident.ID))
	return p, nil
}

// materialize builds a fresh profile from identity provider metadata.
func (s *Service) materialize(ident *identity.Identity) *UserProfile {
	userType := ident.UserType
	if !IsValidUserType(userType) {
		userType = UserTypeBuyer
	}
	now := time.Now().UTC()
	return &UserProfile{
		ID:        ident.ID,
		Email:     ident.Email,
		Name:      ident.Name,
		UserType:  userType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) persist(ctx context.Context, p *UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return common.ErrStore.WithDetails("Could not encode profile record.")
	}
	if err := s.store.Set(ctx, profileKey(p.ID), raw); err != nil {
		s.logger.Error("Profile write failed", zap.Error(err), zap.String("userID", p.ID))
		return common.ErrStore.WithDetails("Could not write profile store.")
	}
	return nil
}

func decode(raw []byte) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
