package sheetsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sofvo/catalog-server/internal/repository/mongodb"
)

func TestGadgetRow(t *testing.T) {
	t.Parallel()

	t.Run("全フィールドが列順どおりに変換される", func(t *testing.T) {
		t.Parallel()

		id := primitive.NewObjectID()
		gadget := mongodb.Gadget{
			ID:                  id,
			UserID:              "user-1",
			UserNickname:        "たろう",
			Name:                "ソフトバレーボール 公認球",
			Category:            "ボール",
			AmazonURL:           "https://www.amazon.co.jp/dp/B08N5WRWNW",
			AmazonAffiliateURL:  "https://www.amazon.co.jp/dp/B08N5WRWNW?tag=sofvo-22",
			RakutenAffiliateURL: "https://hb.afl.rakuten.co.jp/xxx",
			ImageURL:            "https://example.com/ball.jpg",
			Memo:                "練習用",
			CreatedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}

		row := gadgetRow(gadget)

		require.Len(t, row, len(gadgetHeader), "行の列数はヘッダーと一致するべきです")
		assert.Equal(t, id.Hex(), row[0])
		assert.Equal(t, "user-1", row[1])
		assert.Equal(t, "たろう", row[2])
		assert.Equal(t, "ソフトバレーボール 公認球", row[3])
		assert.Equal(t, "ボール", row[4])
		assert.Equal(t, "2026-03-01", row[10])
	})

	t.Run("欠損フィールドは補完表記になる", func(t *testing.T) {
		t.Parallel()

		row := gadgetRow(mongodb.Gadget{Name: "マーカーコーン"})

		assert.Equal(t, unknownNickname, row[2])
		assert.Equal(t, noCategory, row[4])
		assert.Equal(t, "", row[10], "登録日未設定の場合は空欄になるべきです")
	})
}

func TestVenueRow(t *testing.T) {
	t.Parallel()

	t.Run("全フィールドが列順どおりに変換される", func(t *testing.T) {
		t.Parallel()

		id := primitive.NewObjectID()
		venue := mongodb.Venue{
			ID:            id,
			Name:          "市民体育館",
			Address:       "東京都新宿区1-2-3",
			Phone:         "03-1234-5678",
			Station:       "新宿駅",
			Courts:        4,
			Parking:       50,
			Toilets:       6,
			HasChangeRoom: true,
			HasShower:     false,
			HasGallery:    true,
			HasAC:         false,
			EatArea:       "ロビーのみ可",
			OpenTime:      "09:00",
			CloseTime:     "21:00",
			Fee:           "2時間 1,100円",
			Equipments: []mongodb.Equipment{
				{Name: "ネット", Qty: 2, Fee: 500},
				{Name: "ボール", Qty: 10, Fee: 0},
			},
			Rating:      4.5,
			ReviewCount: 12,
			CreatedAt:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		}

		row := venueRow(venue)

		require.Len(t, row, len(venueHeader), "行の列数はヘッダーと一致するべきです")
		assert.Equal(t, id.Hex(), row[0])
		assert.Equal(t, "市民体育館", row[1])
		assert.Equal(t, 4, row[5])
		assert.Equal(t, "あり", row[8], "更衣室あり")
		assert.Equal(t, "なし", row[9], "シャワーなし")
		assert.Equal(t, "あり", row[10], "観覧席あり")
		assert.Equal(t, "なし", row[11], "空調なし")
		assert.Equal(t, "ネット(2個/¥500), ボール(10個/無料)", row[16])
		assert.Equal(t, 4.5, row[17])
		assert.Equal(t, 12, row[18])
		assert.Equal(t, "2026-01-15", row[19])
	})
}

func TestFormatEquipments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		equipments []mongodb.Equipment
		expected   string
	}{
		{
			name:       "備品なしの場合は空文字",
			equipments: nil,
			expected:   "",
		},
		{
			name:       "有料備品は円表記になる",
			equipments: []mongodb.Equipment{{Name: "ネット", Qty: 1, Fee: 300}},
			expected:   "ネット(1個/¥300)",
		},
		{
			name:       "無料備品は無料表記になる",
			equipments: []mongodb.Equipment{{Name: "得点板", Qty: 2, Fee: 0}},
			expected:   "得点板(2個/無料)",
		},
		{
			name: "複数の備品はカンマ区切りで連結される",
			equipments: []mongodb.Equipment{
				{Name: "ネット", Qty: 2, Fee: 500},
				{Name: "ボール", Qty: 10, Fee: 0},
			},
			expected: "ネット(2個/¥500), ボール(10個/無料)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, formatEquipments(tt.equipments))
		})
	}
}
