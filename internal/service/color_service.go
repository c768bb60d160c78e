package service

import (
	"context"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
)

// ColorService resolves color-flag combinations to their canonical identity
// rows and combines identities for commander/partner pairs.
type ColorService struct {
	colorRepo repository.ColorIdentityRepository
}

func NewColorService(colorRepo repository.ColorIdentityRepository) *ColorService {
	return &ColorService{colorRepo: colorRepo}
}

func (s *ColorService) GetAll(ctx context.Context) ([]*domain.ColorIdentity, error) {
	return s.colorRepo.GetAll(ctx)
}

func (s *ColorService) GetByID(ctx context.Context, id uint) (*domain.ColorIdentity, error) {
	return s.colorRepo.GetByID(ctx, id)
}

func (s *ColorService) GetByFlags(ctx context.Context, flags domain.ColorFlags) (*domain.ColorIdentity, error) {
	return s.colorRepo.GetByFlags(ctx, flags)
}

// FromLetters resolves Scryfall color-identity letters to an identity row.
func (s *ColorService) FromLetters(ctx context.Context, letters []string) (*domain.ColorIdentity, error) {
	return s.colorRepo.GetByFlags(ctx, domain.FlagsFromLetters(letters))
}

// Combine resolves the flag-wise union of two identities. Commutative and
// idempotent; a nil side returns the other unchanged (union with colorless).
func (s *ColorService) Combine(ctx context.Context, a, b *domain.ColorIdentity) (*domain.ColorIdentity, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.ID == b.ID {
		return a, nil
	}
	return s.colorRepo.GetByFlags(ctx, a.Flags().Union(b.Flags()))
}

// CombineIDs is Combine over identity IDs, loading both rows first.
func (s *ColorService) CombineIDs(ctx context.Context, aID, bID uint) (*domain.ColorIdentity, error) {
	if aID == bID {
		return s.colorRepo.GetByID(ctx, aID)
	}
	a, err := s.colorRepo.GetByID(ctx, aID)
	if err != nil {
		return nil, err
	}
	b, err := s.colorRepo.GetByID(ctx, bID)
	if err != nil {
		return nil, err
	}
	return s.Combine(ctx, a, b)
}
