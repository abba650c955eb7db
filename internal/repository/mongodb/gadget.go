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

// Gadget 利用者が登録したガジェット（愛用品）のレコードです。
type Gadget struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	UserID              string             `bson:"user_id"`
	UserNickname        string             `bson:"user_nickname"`
	Name                string             `bson:"name"`
	Category            string             `bson:"category"`
	AmazonURL           string             `bson:"amazon_url"`
	AmazonAffiliateURL  string             `bson:"amazon_affiliate_url"`
	RakutenAffiliateURL string             `bson:"rakuten_affiliate_url"`
	ImageURL            string             `bson:"image_url"`
	Memo                string             `bson:"memo"`
	CreatedAt           time.Time          `bson:"created_at"`
}

// GadgetRepo gadgets コレクションへのアクセスを提供します。
type GadgetRepo struct {
	collection *mongo.Collection
}

// NewGadgetRepository GadgetRepo を生成します。
func NewGadgetRepository(db *DB) *GadgetRepo {
	return &GadgetRepo{
		collection: db.Database().Collection("gadgets"),
	}
}

// FindAll 登録日の降順ですべてのガジェットを返します。
func (r *GadgetRepo) FindAll(ctx context.Context) ([]Gadget, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "ガジェット一覧の取得に失敗しました")
	}
	defer cursor.Close(ctx)

	var gadgets []Gadget
	for cursor.Next(ctx) {
		var gadget Gadget
		if err := cursor.Decode(&gadget); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "ガジェットレコードのデコードに失敗しました")
		}
		gadgets = append(gadgets, gadget)
	}

	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "ガジェット一覧の走査中にエラーが発生しました")
	}

	return gadgets, nil
}
