package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// OperatorRepository reads operator accounts. Operators are provisioned
// out of band.
type OperatorRepository struct {
	col *mongo.Collection
}

func NewOperatorRepository(db *mongo.Database) *OperatorRepository {
	return &OperatorRepository{col: db.Collection(collectionOperators)}
}

type operatorDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Name         string             `bson:"name,omitempty"`
	Surname      string             `bson:"surname,omitempty"`
}

func (r *OperatorRepository) FindByID(ctx context.Context, id string) (*domain.Operator, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOperatorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *OperatorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc operatorDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("find operator: %w", err)
	}

	role := doc.Role
	if role == "" {
		role = domain.RoleOperator
	}
	return &domain.Operator{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         role,
		Name:         doc.Name,
		Surname:      doc.Surname,
	}, nil
}
