package sheetsync

import (
	"fmt"
	"strings"

	"github.com/sofvo/catalog-server/internal/repository/mongodb"
)

const (
	// dateLayout スプレッドシートへ書き出す登録日の形式
	dateLayout = "2006-01-02"

	gadgetSheetName = "ガジェット一覧"
	gadgetSheetCols = "A:K"

	venueSheetName = "会場一覧"
	venueSheetCols = "A:T"

	// 欠損値の補完表記
	unknownNickname = "不明"
	noCategory      = "カテゴリなし"
)

// gadgetHeader ガジェット一覧シートのヘッダー行です。
// 列の順序はシートを参照する既存の集計処理と互換性があります。
var gadgetHeader = []interface{}{
	"ガジェットID", "ユーザーID", "ユーザー", "商品名", "カテゴリ",
	"Amazon URL", "Amazon Affiliate URL", "楽天 Affiliate URL",
	"画像URL", "メモ", "登録日",
}

// venueHeader 会場一覧シートのヘッダー行です。
var venueHeader = []interface{}{
	"会場ID", "会場名", "住所", "電話", "最寄り駅", "コート数", "駐車場", "トイレ",
	"更衣室", "シャワー", "観覧席", "空調", "飲食エリア",
	"開始時間", "終了時間", "料金", "貸出備品", "評価", "レビュー数", "登録日",
}

// gadgetRow ガジェットレコードをシートの 1 行へ変換します。
func gadgetRow(g mongodb.Gadget) []interface{} {
	nickname := g.UserNickname
	if nickname == "" {
		nickname = unknownNickname
	}

	category := g.Category
	if category == "" {
		category = noCategory
	}

	return []interface{}{
		g.ID.Hex(),
		g.UserID,
		nickname,
		g.Name,
		category,
		g.AmazonURL,
		g.AmazonAffiliateURL,
		g.RakutenAffiliateURL,
		g.ImageURL,
		g.Memo,
		formatDate(g),
	}
}

// venueRow 会場レコードをシートの 1 行へ変換します。
func venueRow(v mongodb.Venue) []interface{} {
	created := ""
	if !v.CreatedAt.IsZero() {
		created = v.CreatedAt.Format(dateLayout)
	}

	return []interface{}{
		v.ID.Hex(),
		v.Name,
		v.Address,
		v.Phone,
		v.Station,
		v.Courts,
		v.Parking,
		v.Toilets,
		formatAvailability(v.HasChangeRoom),
		formatAvailability(v.HasShower),
		formatAvailability(v.HasGallery),
		formatAvailability(v.HasAC),
		v.EatArea,
		v.OpenTime,
		v.CloseTime,
		v.Fee,
		formatEquipments(v.Equipments),
		v.Rating,
		v.ReviewCount,
		created,
	}
}

func formatDate(g mongodb.Gadget) string {
	if g.CreatedAt.IsZero() {
		return ""
	}
	return g.CreatedAt.Format(dateLayout)
}

// formatAvailability 設備の有無を「あり」「なし」表記へ変換します。
func formatAvailability(available bool) string {
	if available {
		return "あり"
	}
	return "なし"
}

// formatEquipments 貸出備品の一覧を「名称(数量個/料金)」形式の文字列へ変換します。
// 例: "ネット(2個/¥500), ボール(10個/無料)"
func formatEquipments(equipments []mongodb.Equipment) string {
	if len(equipments) == 0 {
		return ""
	}

	parts := make([]string, 0, len(equipments))
	for _, eq := range equipments {
		fee := "/無料"
		if eq.Fee > 0 {
			fee = fmt.Sprintf("/¥%d", eq.Fee)
		}
		parts = append(parts, fmt.Sprintf("%s(%d個%s)", eq.Name, eq.Qty, fee))
	}

	return strings.Join(parts, ", ")
}
