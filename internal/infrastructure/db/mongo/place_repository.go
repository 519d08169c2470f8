package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

type PlaceRepository struct {
	col *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{col: db.Collection(collectionPlaces)}
}

type locationDoc struct {
	Lat float64 `bson:"lat"`
	Lon float64 `bson:"lon"`
}

func toLocationDoc(l *domain.Location) *locationDoc {
	if l == nil {
		return nil
	}
	return &locationDoc{Lat: l.Lat, Lon: l.Lon}
}

func (l *locationDoc) toDomain() *domain.Location {
	if l == nil {
		return nil
	}
	return &domain.Location{Lat: l.Lat, Lon: l.Lon}
}

type placeDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	NormalizedName string             `bson:"normalized_name"`
	Description    string             `bson:"description,omitempty"`
	Categories     []string           `bson:"categories"`
	Location       *locationDoc       `bson:"location,omitempty"`
	Images         []string           `bson:"images,omitempty"`
	IsFree         bool               `bson:"is_free"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func toPlaceDoc(p *domain.Place) placeDoc {
	return placeDoc{
		Name:           p.Name,
		NormalizedName: p.NormalizedName,
		Description:    p.Description,
		Categories:     domain.CategoryStrings(p.Categories),
		Location:       toLocationDoc(p.Location),
		Images:         p.Images,
		IsFree:         p.IsFree,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d *placeDoc) toDomain() *domain.Place {
	return &domain.Place{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		NormalizedName: d.NormalizedName,
		Description:    d.Description,
		Categories:     domain.CategoriesFromStrings(d.Categories),
		Location:       d.Location.toDomain(),
		Images:         d.Images,
		IsFree:         d.IsFree,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *PlaceRepository) FindByID(ctx context.Context, id string) (*domain.Place, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPlaceNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PlaceRepository) FindByNormalizedName(ctx context.Context, normalized string) (*domain.Place, error) {
	return r.findOne(ctx, bson.M{"normalized_name": normalized})
}

func (r *PlaceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc placeDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("find place: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaceRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Place, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// Find applies f as a conjunction of its non-zero clauses.
func (r *PlaceRepository) Find(ctx context.Context, f ports.PlaceFilter) ([]*domain.Place, error) {
	filter := bson.M{}
	if len(f.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": objectIDs(f.ExcludeIDs)}
	}
	if len(f.Categories) > 0 {
		filter["categories"] = bson.M{"$in": domain.CategoryStrings(f.Categories)}
	}
	if f.FreeOnly {
		filter["is_free"] = true
	}
	return r.find(ctx, filter)
}

func (r *PlaceRepository) find(ctx context.Context, filter bson.M) ([]*domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}
	var docs []placeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}

	places := make([]*domain.Place, len(docs))
	for i := range docs {
		places[i] = docs[i].toDomain()
	}
	return places, nil
}

// Insert stores a new place and sets its ID. A normalized name collision
// yields *domain.DuplicatePlaceError.
func (r *PlaceRepository) Insert(ctx context.Context, p *domain.Place) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPlaceDoc(p))
	if err != nil {
		return r.translateWriteError(ctx, p.NormalizedName, err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *PlaceRepository) Save(ctx context.Context, p *domain.Place) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrPlaceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toPlaceDoc(p)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return r.translateWriteError(ctx, p.NormalizedName, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPlaceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepository) translateWriteError(ctx context.Context, normalized string, err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("write place: %w", err)
	}
	existing, findErr := r.FindByNormalizedName(ctx, normalized)
	if findErr != nil {
		return fmt.Errorf("write place: %w", err)
	}
	return &domain.DuplicatePlaceError{PlaceID: existing.ID}
}
