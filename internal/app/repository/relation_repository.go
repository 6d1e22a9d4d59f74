package repository

import (
	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relation describes a membership table linking an actor (always a user) to a target.
type Relation struct {
	Name         string
	Model        interface{}
	ActorColumn  string
	TargetColumn string
	TargetModel  interface{}
	// NoSelf forbids actor == target (subscribing to yourself)
	NoSelf bool
	NewRow func(actorID, targetID uint) interface{}
}

var (
	FavoriteRelation = Relation{
		Name:         "favorite",
		Model:        &model.Favorite{},
		ActorColumn:  "user_id",
		TargetColumn: "recipe_id",
		TargetModel:  &model.Recipe{},
		NewRow: func(actorID, targetID uint) interface{} {
			return &model.Favorite{UserID: actorID, RecipeID: targetID}
		},
	}

	ShoppingCartRelation = Relation{
		Name:         "shopping_cart",
		Model:        &model.ShoppingCartItem{},
		ActorColumn:  "user_id",
		TargetColumn: "recipe_id",
		TargetModel:  &model.Recipe{},
		NewRow: func(actorID, targetID uint) interface{} {
			return &model.ShoppingCartItem{UserID: actorID, RecipeID: targetID}
		},
	}

	SubscriptionRelation = Relation{
		Name:         "subscription",
		Model:        &model.Subscription{},
		ActorColumn:  "user_id",
		TargetColumn: "author_id",
		TargetModel:  &model.User{},
		NoSelf:       true,
		NewRow: func(actorID, targetID uint) interface{} {
			return &model.Subscription{UserID: actorID, AuthorID: targetID}
		},
	}
)

type RelationRepository interface {
	// Insert adds the row; false means it already existed
	Insert(rel Relation, actorID, targetID uint) (bool, error)
	// Remove deletes the row; false means there was nothing to delete
	Remove(rel Relation, actorID, targetID uint) (bool, error)
	Exists(rel Relation, actorID, targetID uint) (bool, error)
	TargetExists(rel Relation, targetID uint) (bool, error)
	// TargetsAmong returns which of targetIDs the actor is linked to
	TargetsAmong(rel Relation, actorID uint, targetIDs []uint) (map[uint]bool, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Insert(rel Relation, actorID, targetID uint) (bool, error) {
	fields := map[string]interface{}{
		"relation":  rel.Name,
		"actor_id":  actorID,
		"target_id": targetID,
	}
	logger.Debug("Inserting relation in database", fields)

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rel.NewRow(actorID, targetID))
	if result.Error != nil {
		logger.Error("Failed to insert relation in database", result.Error, fields)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Remove(rel Relation, actorID, targetID uint) (bool, error) {
	fields := map[string]interface{}{
		"relation":  rel.Name,
		"actor_id":  actorID,
		"target_id": targetID,
	}
	logger.Debug("Removing relation from database", fields)

	result := r.db.Where(rel.ActorColumn+" = ? AND "+rel.TargetColumn+" = ?", actorID, targetID).Delete(rel.Model)
	if result.Error != nil {
		logger.Error("Failed to remove relation from database", result.Error, fields)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Exists(rel Relation, actorID, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(rel.Model).
		Where(rel.ActorColumn+" = ? AND "+rel.TargetColumn+" = ?", actorID, targetID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check relation", err, map[string]interface{}{
			"relation": rel.Name,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) TargetExists(rel Relation, targetID uint) (bool, error) {
	var count int64
	if err := r.db.Model(rel.TargetModel).Where("id = ?", targetID).Count(&count).Error; err != nil {
		logger.Error("Failed to check relation target", err, map[string]interface{}{
			"relation":  rel.Name,
			"target_id": targetID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) TargetsAmong(rel Relation, actorID uint, targetIDs []uint) (map[uint]bool, error) {
	linked := make(map[uint]bool, len(targetIDs))
	if actorID == 0 || len(targetIDs) == 0 {
		return linked, nil
	}

	var ids []uint
	err := r.db.Model(rel.Model).
		Where(rel.ActorColumn+" = ?", actorID).
		Where(rel.TargetColumn+" IN ?", targetIDs).
		Pluck(rel.TargetColumn, &ids).Error
	if err != nil {
		logger.Error("Failed to load relation targets", err, map[string]interface{}{
			"relation": rel.Name,
			"actor_id": actorID,
		})
		return nil, err
	}
	for _, id := range ids {
		linked[id] = true
	}
	return linked, nil
}
