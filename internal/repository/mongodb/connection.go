// Package mongodb MongoDB を利用した永続化リポジトリを提供します。
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	defaultMaxPoolSize     = 10
	defaultMaxConnIdleTime = 30 * time.Second
	defaultConnectTimeout  = 10 * time.Second
)

// DB MongoDB への接続を保持します。
// 各リポジトリはこの接続を共有します。
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewConnection MongoDB へ接続し、疎通確認まで行った DB を返します。
func NewConnection(ctx context.Context, uri, database string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(uri)
	clientOptions.SetMaxPoolSize(defaultMaxPoolSize)
	clientOptions.SetMaxConnIdleTime(defaultMaxConnIdleTime)
	clientOptions.SetTimeout(defaultConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "MongoDBへの接続に失敗しました")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "MongoDBへの疎通確認に失敗しました")
	}

	applog.WithComponentAndFields("repository.mongodb", applog.Fields{
		"database": database,
	}).Info("MongoDBに接続しました")

	return &DB{
		client:   client,
		database: client.Database(database),
	}, nil
}

// Close MongoDB との接続を切断します。
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Database 接続中のデータベースを返します。
func (db *DB) Database() *mongo.Database {
	return db.database
}
