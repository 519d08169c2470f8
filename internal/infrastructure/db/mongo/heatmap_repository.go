package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// HeatmapRepository aggregates completed mission progress stored on users.
type HeatmapRepository struct {
	users *mongo.Collection
}

func NewHeatmapRepository(db *mongo.Database) *HeatmapRepository {
	return &HeatmapRepository{users: db.Collection(collectionUsers)}
}

type heatmapRow struct {
	PlaceID   string `bson:"_id"`
	Completed int    `bson:"completed"`
	Place     *struct {
		Name     string       `bson:"name"`
		Location *locationDoc `bson:"location"`
	} `bson:"place"`
}

// MissionHeatmap counts, per place, how many completed mission progresses
// that place contributed to. Places deleted since are reported without
// name or location.
func (r *HeatmapRepository) MissionHeatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$missions_progresses"}},
		{{Key: "$match", Value: bson.M{"missions_progresses.completed": true}}},
		{{Key: "$unwind", Value: "$missions_progresses.required_places_visited"}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$missions_progresses.required_places_visited",
			"completed": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": collectionPlaces,
			"let": bson.M{"pid": bson.M{"$convert": bson.M{
				"input": "$_id", "to": "objectId", "onError": nil, "onNull": nil,
			}}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$pid"}}}},
				bson.M{"$project": bson.M{"name": 1, "location": 1}},
			},
			"as": "place",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$place", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$sort", Value: bson.D{{Key: "completed", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("heatmap aggregate: %w", err)
	}
	var rows []heatmapRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode heatmap: %w", err)
	}

	cells := make([]domain.HeatmapCell, len(rows))
	for i, row := range rows {
		cells[i] = domain.HeatmapCell{PlaceID: row.PlaceID, CompletedMissions: row.Completed}
		if row.Place != nil {
			cells[i].Name = row.Place.Name
			cells[i].Location = row.Place.Location.toDomain()
		}
	}
	return cells, nil
}
