package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

type PlaceRequestRepository struct {
	col *mongo.Collection
}

func NewPlaceRequestRepository(db *mongo.Database) *PlaceRequestRepository {
	return &PlaceRequestRepository{col: db.Collection(collectionPlaceRequests)}
}

// changesDoc keeps absent fields out of the document. Slices are pointers
// so that an explicitly empty list survives a round trip.
type changesDoc struct {
	Name        *string      `bson:"name,omitempty"`
	Description *string      `bson:"description,omitempty"`
	Categories  *[]string    `bson:"categories,omitempty"`
	Location    *locationDoc `bson:"location,omitempty"`
	Images      *[]string    `bson:"images,omitempty"`
	IsFree      *bool        `bson:"is_free,omitempty"`
}

type placeRequestDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	PlaceID         string             `bson:"place_id,omitempty"`
	ProposedChanges changesDoc         `bson:"proposed_changes"`
	IsNewPlace      bool               `bson:"is_new_place"`
	Status          string             `bson:"status"`
	OperatorID      string             `bson:"operator_id,omitempty"`
	OperatorComment string             `bson:"operator_comment,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toChangesDoc(c domain.PlaceChanges) changesDoc {
	doc := changesDoc{
		Name:        c.Name,
		Description: c.Description,
		Location:    toLocationDoc(c.Location),
		IsFree:      c.IsFree,
	}
	if c.Categories != nil {
		cats := domain.CategoryStrings(c.Categories)
		doc.Categories = &cats
	}
	if c.Images != nil {
		images := c.Images
		doc.Images = &images
	}
	return doc
}

func (d changesDoc) toDomain() domain.PlaceChanges {
	c := domain.PlaceChanges{
		Name:        d.Name,
		Description: d.Description,
		Location:    d.Location.toDomain(),
		IsFree:      d.IsFree,
	}
	if d.Categories != nil {
		c.Categories = domain.CategoriesFromStrings(*d.Categories)
		if c.Categories == nil {
			c.Categories = []domain.Category{}
		}
	}
	if d.Images != nil {
		c.Images = *d.Images
		if c.Images == nil {
			c.Images = []string{}
		}
	}
	return c
}

func (d *placeRequestDoc) toDomain() *domain.PlaceEditRequest {
	return &domain.PlaceEditRequest{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		PlaceID:         d.PlaceID,
		ProposedChanges: d.ProposedChanges.toDomain(),
		IsNewPlace:      d.IsNewPlace,
		Status:          domain.RequestStatus(d.Status),
		OperatorID:      d.OperatorID,
		OperatorComment: d.OperatorComment,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (r *PlaceRequestRepository) Insert(ctx context.Context, req *domain.PlaceEditRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := placeRequestDoc{
		UserID:          req.UserID,
		PlaceID:         req.PlaceID,
		ProposedChanges: toChangesDoc(req.ProposedChanges),
		IsNewPlace:      req.IsNewPlace,
		Status:          string(req.Status),
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert place request: %w", err)
	}
	req.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *PlaceRequestRepository) FindByID(ctx context.Context, id string) (*domain.PlaceEditRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc placeRequestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find place request: %w", err)
	}
	return doc.toDomain(), nil
}

// Find lists requests newest first.
func (r *PlaceRequestRepository) Find(ctx context.Context, f ports.PlaceRequestFilter) ([]*domain.PlaceEditRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.PlaceID != "" {
		filter["place_id"] = f.PlaceID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.IsNewPlace != nil {
		filter["is_new_place"] = *f.IsNewPlace
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find place requests: %w", err)
	}
	var docs []placeRequestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode place requests: %w", err)
	}

	reqs := make([]*domain.PlaceEditRequest, len(docs))
	for i := range docs {
		reqs[i] = docs[i].toDomain()
	}
	return reqs, nil
}

// Decide writes the decision only while the stored request is pending.
func (r *PlaceRequestRepository) Decide(ctx context.Context, req *domain.PlaceEditRequest) error {
	oid, ok := objectID(req.ID)
	if !ok {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":           string(req.Status),
		"operator_id":      req.OperatorID,
		"operator_comment": req.OperatorComment,
		"updated_at":       req.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "status": string(domain.RequestPending)}, update)
	if err != nil {
		return fmt.Errorf("decide place request: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("decide place request: %w", err)
		}
		if n == 0 {
			return domain.ErrRequestNotFound
		}
		return domain.ErrRequestAlreadyProcessed
	}
	return nil
}

// Reopen returns a decided request to pending, provided it still carries the
// decision in req. The link to a materialized place is dropped for new-place
// requests.
func (r *PlaceRequestRepository) Reopen(ctx context.Context, req *domain.PlaceEditRequest) error {
	oid, ok := objectID(req.ID)
	if !ok {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	unset := bson.M{"operator_id": "", "operator_comment": ""}
	if req.IsNewPlace {
		unset["place_id"] = ""
	}
	filter := bson.M{"_id": oid, "status": string(req.Status), "operator_id": req.OperatorID}
	update := bson.M{
		"$set":   bson.M{"status": string(domain.RequestPending), "updated_at": time.Now().UTC()},
		"$unset": unset,
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("reopen place request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestAlreadyProcessed
	}
	return nil
}

func (r *PlaceRequestRepository) LinkPlace(ctx context.Context, requestID, placeID string) error {
	oid, ok := objectID(requestID)
	if !ok {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"place_id": placeID}})
	if err != nil {
		return fmt.Errorf("link place: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}
