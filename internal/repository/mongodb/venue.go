package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

// Equipment 会場の貸出備品です。
type Equipment struct {
	Name string `bson:"name"`
	Qty  int    `bson:"qty"`
	Fee  int    `bson:"fee"`
}

// Venue 大会・練習会場のレコードです。
type Venue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Address       string             `bson:"address"`
	Phone         string             `bson:"phone"`
	Station       string             `bson:"station"`
	Courts        int                `bson:"courts"`
	Parking       int                `bson:"parking"`
	Toilets       int                `bson:"toilets"`
	HasChangeRoom bool               `bson:"has_change_room"`
	HasShower     bool               `bson:"has_shower"`
	HasGallery    bool               `bson:"has_gallery"`
	HasAC         bool               `bson:"has_ac"`
	EatArea       string             `bson:"eat_area"`
	OpenTime      string             `bson:"open_time"`
	CloseTime     string             `bson:"close_time"`
	Fee           string             `bson:"fee"`
	Equipments    []Equipment        `bson:"equipments"`
	Rating        float64            `bson:"rating"`
	ReviewCount   int                `bson:"review_count"`
	CreatedAt     time.Time          `bson:"created_at"`
}

// VenueRepo venues コレクションへのアクセスを提供します。
type VenueRepo struct {
	collection *mongo.Collection
}

// NewVenueRepository VenueRepo を生成します。
func NewVenueRepository(db *DB) *VenueRepo {
	return &VenueRepo{
		collection: db.Database().Collection("venues"),
	}
}

// FindAll 会場名の昇順ですべての会場を返します。
func (r *VenueRepo) FindAll(ctx context.Context) ([]Venue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "会場一覧の取得に失敗しました")
	}
	defer cursor.Close(ctx)

	var venues []Venue
	for cursor.Next(ctx) {
		var venue Venue
		if err := cursor.Decode(&venue); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "会場レコードのデコードに失敗しました")
		}
		venues = append(venues, venue)
	}

	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "会場一覧の走査中にエラーが発生しました")
	}

	return venues, nil
}
