package service

import (
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

// ToggleOp is the direction of a relation toggle
type ToggleOp int

const (
	Add ToggleOp = iota
	Remove
)

func (op ToggleOp) String() string {
	if op == Remove {
		return "remove"
	}
	return "add"
}

// RelationService adds and removes favorite, shopping cart and subscription rows.
// Every successful call inserts or deletes exactly one row.
type RelationService interface {
	Toggle(rel repository.Relation, actorID, targetID uint, op ToggleOp) error
}

type relationService struct {
	uow repository.UnitOfWork
}

func NewRelationService(uow repository.UnitOfWork) RelationService {
	return &relationService{uow: uow}
}

func (s *relationService) Toggle(rel repository.Relation, actorID, targetID uint, op ToggleOp) error {
	fields := map[string]interface{}{
		"relation":  rel.Name,
		"op":        op.String(),
		"actor_id":  actorID,
		"target_id": targetID,
	}
	logger.Info("Toggling relation", fields)

	relations := s.uow.Repositories().Relations

	exists, err := relations.TargetExists(rel, targetID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Warn("Relation target not found", fields)
		return targetNotFound(rel)
	}

	if op == Remove {
		removed, err := relations.Remove(rel, actorID, targetID)
		if err != nil {
			return err
		}
		if !removed {
			logger.Warn("Relation to remove does not exist", fields)
			return ErrNotMember
		}
		logger.Info("Relation removed", fields)
		return nil
	}

	if rel.NoSelf && actorID == targetID {
		logger.Warn("Self relation rejected", fields)
		return ErrSelfRelation
	}

	// the insert below decides; this only gives the common case a clean path
	already, err := relations.Exists(rel, actorID, targetID)
	if err != nil {
		return err
	}
	if already {
		logger.Warn("Relation already exists", fields)
		return ErrAlreadyMember
	}

	inserted, err := relations.Insert(rel, actorID, targetID)
	if err != nil {
		return err
	}
	if !inserted {
		logger.Warn("Relation inserted concurrently", fields)
		return ErrAlreadyMember
	}

	logger.Info("Relation added", fields)
	return nil
}

func targetNotFound(rel repository.Relation) error {
	if _, ok := rel.TargetModel.(*model.User); ok {
		return ErrUserNotFound
	}
	return ErrRecipeNotFound
}
