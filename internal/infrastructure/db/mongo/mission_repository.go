package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

type MissionRepository struct {
	col *mongo.Collection
}

func NewMissionRepository(db *mongo.Database) *MissionRepository {
	return &MissionRepository{col: db.Collection(collectionMissions)}
}

type missionDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description,omitempty"`
	MinLevel       int                `bson:"min_level"`
	RewardExp      int                `bson:"reward_exp"`
	Categories     []string           `bson:"categories"`
	RequiredPlaces []string           `bson:"required_places"`
	RequiredCount  int                `bson:"required_count"`
}

func (d *missionDoc) toDomain() *domain.Mission {
	return &domain.Mission{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		MinLevel:       d.MinLevel,
		RewardExp:      d.RewardExp,
		Categories:     domain.CategoriesFromStrings(d.Categories),
		RequiredPlaces: d.RequiredPlaces,
		RequiredCount:  d.RequiredCount,
	}
}

func (r *MissionRepository) FindByID(ctx context.Context, id string) (*domain.Mission, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMissionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc missionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMissionNotFound
		}
		return nil, fmt.Errorf("find mission: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs resolves ids in a single query. Ids without a document are
// absent from the result.
func (r *MissionRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Mission, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *MissionRepository) Find(ctx context.Context, f ports.MissionFilter) ([]*domain.Mission, error) {
	filter := bson.M{}
	if len(f.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": objectIDs(f.ExcludeIDs)}
	}
	return r.find(ctx, filter)
}

func (r *MissionRepository) find(ctx context.Context, filter bson.M) ([]*domain.Mission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find missions: %w", err)
	}
	var docs []missionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode missions: %w", err)
	}

	missions := make([]*domain.Mission, len(docs))
	for i := range docs {
		missions[i] = docs[i].toDomain()
	}
	return missions, nil
}

func (r *MissionRepository) Insert(ctx context.Context, m *domain.Mission) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := missionDoc{
		Name:           m.Name,
		Description:    m.Description,
		MinLevel:       m.MinLevel,
		RewardExp:      m.RewardExp,
		Categories:     domain.CategoryStrings(m.Categories),
		RequiredPlaces: m.RequiredPlaces,
		RequiredCount:  m.RequiredCount,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert mission: %w", err)
	}
	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}
