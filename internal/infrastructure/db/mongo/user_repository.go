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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type preferencesDoc struct {
	AlsoPaid   bool     `bson:"also_paid"`
	Categories []string `bson:"categories"`
}

type discoveredPlaceDoc struct {
	PlaceID   string    `bson:"place_id"`
	VisitedAt time.Time `bson:"visited_at"`
}

type missionProgressDoc struct {
	MissionID             string   `bson:"mission_id"`
	RequiredPlacesVisited []string `bson:"required_places_visited"`
	Progress              int      `bson:"progress"`
	Completed             bool     `bson:"completed"`
}

type userDoc struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty"`
	Username           string               `bson:"username"`
	Email              string               `bson:"email,omitempty"`
	Name               string               `bson:"name,omitempty"`
	Surname            string               `bson:"surname,omitempty"`
	PasswordHash       string               `bson:"password_hash"`
	ProfileImage       string               `bson:"profile_image,omitempty"`
	Preferences        preferencesDoc       `bson:"preferences"`
	Exp                int                  `bson:"exp"`
	Expert             bool                 `bson:"expert"`
	DiscoveredPlaces   []discoveredPlaceDoc `bson:"discovered_places"`
	MissionsProgresses []missionProgressDoc `bson:"missions_progresses"`
	Version            int64                `bson:"version"`
	CreatedAt          time.Time            `bson:"created_at"`
	UpdatedAt          time.Time            `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	state := u.State()
	doc := userDoc{
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		Surname:      u.Surname,
		PasswordHash: u.PasswordHash,
		ProfileImage: u.ProfileImage,
		Preferences: preferencesDoc{
			AlsoPaid:   u.Preferences.AlsoPaid,
			Categories: domain.CategoryStrings(u.Preferences.Categories),
		},
		Exp:                state.Exp,
		Expert:             state.Expert,
		DiscoveredPlaces:   make([]discoveredPlaceDoc, 0, len(state.DiscoveredPlaces)),
		MissionsProgresses: make([]missionProgressDoc, 0, len(state.MissionProgresses)),
		Version:            u.Version,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	for _, d := range state.DiscoveredPlaces {
		doc.DiscoveredPlaces = append(doc.DiscoveredPlaces, discoveredPlaceDoc{PlaceID: d.PlaceID, VisitedAt: d.VisitedAt})
	}
	for _, p := range state.MissionProgresses {
		visited := p.RequiredPlacesVisited
		if visited == nil {
			visited = []string{}
		}
		doc.MissionsProgresses = append(doc.MissionsProgresses, missionProgressDoc{
			MissionID:             p.MissionID,
			RequiredPlacesVisited: visited,
			Progress:              p.Progress,
			Completed:             p.Completed,
		})
	}
	return doc
}

func (d *userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		Name:         d.Name,
		Surname:      d.Surname,
		PasswordHash: d.PasswordHash,
		ProfileImage: d.ProfileImage,
		Preferences: domain.Preferences{
			AlsoPaid:   d.Preferences.AlsoPaid,
			Categories: domain.CategoriesFromStrings(d.Preferences.Categories),
		},
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	state := domain.UserState{Exp: d.Exp, Expert: d.Expert}
	for _, dp := range d.DiscoveredPlaces {
		state.DiscoveredPlaces = append(state.DiscoveredPlaces, domain.DiscoveredPlace{PlaceID: dp.PlaceID, VisitedAt: dp.VisitedAt})
	}
	for _, mp := range d.MissionsProgresses {
		state.MissionProgresses = append(state.MissionProgresses, domain.MissionProgress{
			MissionID:             mp.MissionID,
			RequiredPlacesVisited: mp.RequiredPlacesVisited,
			Progress:              mp.Progress,
			Completed:             mp.Completed,
		})
	}
	u.RestoreState(state)
	return u
}

// Create inserts user with version 0. A taken username yields domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	doc.Version = 0
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns users ordered by experience, highest first.
func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Expert != nil {
		filter["expert"] = *f.Expert
	}
	opts := options.Find().SetSort(bson.D{{Key: "exp", Value: -1}, {Key: "username", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toDomain()
	}
	return users, nil
}

// Save replaces the stored document only if its version equals user.Version,
// then advances user.Version. Documents written before versioning count as
// version 0.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	oid, ok := objectID(user.ID)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "version": user.Version}
	if user.Version == 0 {
		filter["version"] = bson.M{"$in": bson.A{0, nil}}
	}

	now := time.Now().UTC()
	doc := toUserDoc(user)
	doc.ID = oid
	doc.Version = user.Version + 1
	doc.UpdatedAt = now

	res, err := r.col.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if n == 0 {
			return domain.ErrUserNotFound
		}
		return domain.ErrConcurrentUpdate
	}

	user.Version = doc.Version
	user.UpdatedAt = now
	return nil
}
