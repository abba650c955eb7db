package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	"github.com/sofvo/catalog-server/pkg/validation"
)

// テレグラムのボットトークン形式を検証する正規表現（例: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11）
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

var validate = newValidator()

// newValidator 新しい Validator インスタンスを生成し、カスタム検証関数を登録します。
func newValidator() *validator.Validate {
	v := validator.New()

	// 検証エラー時に Go の構造体フィールド名ではなく JSON 名を表示する
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registrations := map[string]validator.Func{
		"duration":           validateDuration,
		"cors_origin":        validateCORSOrigin,
		"cron_spec":          validateCronSpec,
		"telegram_bot_token": validateTelegramBotToken,
	}
	for tag, fn := range registrations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("初期化致命的エラー: カスタム検証関数'%s'の登録に失敗しました: %v", tag, err))
		}
	}

	return v
}

func validateDuration(fl validator.FieldLevel) bool {
	return validation.ValidateDuration(fl.Field().String()) == nil
}

func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

func validateCronSpec(fl validator.FieldLevel) bool {
	return validation.ValidateCronExpression(fl.Field().String()) == nil
}

func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

// checkStruct 構造体をタグ規則に従って検証し、発生したエラーを利用者にわかりやすい
// ドメインエラーへ変換します。
//
// fields を指定した場合は該当フィールドのみの部分検証を行います。
func checkStruct(s interface{}, contextName string, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = validate.StructPartial(s, fields...)
	} else {
		err = validate.Struct(s)
	}
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s の妥当性検証に失敗しました", contextName)
	}

	// 最初のエラーのみを詳細に報告する
	firstErr := validationErrors[0]

	switch firstErr.StructField() {
	case "Marketplace":
		return apperrors.New(apperrors.InvalidInput, "マーケットプレイス(marketplace)が設定されていません")
	case "SearchItemCount":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("検索結果の最大件数(search_item_count)は1から10の範囲で設定してください: '%v'", firstErr.Value()))
	case "ScrapeTimeout":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("スクレイピングのタイムアウト(scrape_timeout)の形式が正しくありません: '%v' (例: 8s, 500ms)", firstErr.Value()))
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "APIサーバーのポート(listen_port)は1から65535の範囲で設定してください")
	case "TimeSpec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("シートミラーリングのスケジュール(time_spec)の形式が正しくありません: '%v' (秒を含む6フィールド形式)", firstErr.Value()))
	}

	switch firstErr.Tag() {
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Originの形式が正しくありません: '%v' (形式: Scheme://Host[:Port], 例: https://example.com)", firstErr.Value()))
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "テレグラムのボットトークン(telegram_bot_token)の形式が正しくありません (正しい形式: 123456:ABC-DEF...)")
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s の設定が正しくありません: %s (条件: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}
