package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// Notice アプリ内に表示するお知らせのレコードです。
type Notice struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	CreatedAt time.Time          `bson:"created_at"`
}

// jst お知らせの公開日時の基準タイムゾーン（日本標準時）
var jst = time.FixedZone("JST", 9*60*60)

// defaultNotices 初期登録するお知らせの一覧です。
// リリース告知とアップデート告知の 2 件を、公開日時の新しい順に保持します。
var defaultNotices = []Notice{
	{
		Type:      "release",
		Title:     "Sofvo 正式リリースのお知らせ",
		Body:      "ソフトバレーボール マッチングアプリ「Sofvo」をご利用いただきありがとうございます。大会検索・メンバー募集・チャットなどの機能をお楽しみください。",
		CreatedAt: time.Date(2026, 2, 14, 0, 0, 0, 0, jst),
	},
	{
		Type:      "update",
		Title:     "バージョン 1.1 アップデート",
		Body:      "大会検索のフィルター機能が強化されました。種別・エリア・日付での絞り込みが可能です。",
		CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, jst),
	},
}

// NoticeRepo notices コレクションへのアクセスを提供します。
type NoticeRepo struct {
	collection *mongo.Collection
}

// NewNoticeRepository NoticeRepo を生成します。
func NewNoticeRepository(db *DB) *NoticeRepo {
	return &NoticeRepo{
		collection: db.Database().Collection("notices"),
	}
}

// SeedDefaults コレクションが空の場合のみ初期のお知らせを登録します。
// 登録した件数を返します。すでにデータがある場合は何もせず 0 を返します。
func (r *NoticeRepo) SeedDefaults(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.System, "お知らせ件数の取得に失敗しました")
	}

	if count > 0 {
		applog.WithComponent("repository.mongodb").Info("お知らせはすでに登録済みです")
		return 0, nil
	}

	documents := make([]interface{}, 0, len(defaultNotices))
	for _, notice := range defaultNotices {
		documents = append(documents, notice)
	}

	if _, err := r.collection.InsertMany(ctx, documents); err != nil {
		return 0, apperrors.Wrap(err, apperrors.System, "お知らせの初期登録に失敗しました")
	}

	applog.WithComponentAndFields("repository.mongodb", applog.Fields{
		"count": len(defaultNotices),
	}).Info("初期のお知らせを登録しました")

	return len(defaultNotices), nil
}
