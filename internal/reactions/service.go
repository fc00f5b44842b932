// Package reactions implements the single like capability shared by posts
// and comments. The post endpoint applies it in toggle mode, the comment
// endpoint in set mode; both run over the same store and derive their
// counts from reaction rows.
package reactions

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid reaction input")
)

// Service applies reactions and reports derived counts.
type Service interface {
	// Apply toggles or sets a user's reaction on a target. A nil desired
	// state toggles; a non-nil state is idempotent set/unset.
	Apply(ctx context.Context, userID string, target Target, desired *bool) (Result, error)

	// Count returns the number of reactions on a target.
	Count(ctx context.Context, target Target) (int64, error)
}

type service struct {
	store Store
}

// NewService creates a reaction service over the given store.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Apply(ctx context.Context, userID string, target Target, desired *bool) (Result, error) {
	if !ValidUserID(userID) || target.ID <= 0 {
		return Result{}, ErrInvalidInput
	}
	if target.Kind != TargetPost && target.Kind != TargetComment {
		return Result{}, ErrInvalidInput
	}

	var res Result
	var err error
	if desired == nil {
		res, err = s.toggle(ctx, userID, target)
	} else {
		res, err = s.set(ctx, userID, target, *desired)
	}
	if err != nil {
		return Result{}, err
	}

	res.Count, err = s.store.Count(ctx, target)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// toggle removes the reaction if present, adds it otherwise. Deleting first
// makes the presence check and the removal a single statement; a lost
// insert race surfaces as a conflict no-op and still reads as liked.
func (s *service) toggle(ctx context.Context, userID string, target Target) (Result, error) {
	removed, err := s.store.Delete(ctx, userID, target)
	if err != nil {
		return Result{}, err
	}
	if removed {
		return Result{Liked: false, Action: ActionUnliked}, nil
	}

	if _, err := s.store.Insert(ctx, userID, target); err != nil {
		return Result{}, err
	}
	return Result{Liked: true, Action: ActionLiked}, nil
}

func (s *service) set(ctx context.Context, userID string, target Target, like bool) (Result, error) {
	if like {
		inserted, err := s.store.Insert(ctx, userID, target)
		if err != nil {
			return Result{}, err
		}
		if inserted {
			return Result{Liked: true, Action: ActionAdded}, nil
		}
		return Result{Liked: true, Action: ActionExists}, nil
	}

	removed, err := s.store.Delete(ctx, userID, target)
	if err != nil {
		return Result{}, err
	}
	if removed {
		return Result{Liked: false, Action: ActionRemoved}, nil
	}
	return Result{Liked: false, Action: ActionNotExists}, nil
}

func (s *service) Count(ctx context.Context, target Target) (int64, error) {
	return s.store.Count(ctx, target)
}
