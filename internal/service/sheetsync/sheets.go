package sheetsync

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// RowWriter スプレッドシートへの行データ書き込みを抽象化するインターフェースです。
type RowWriter interface {
	// ReplaceAll 指定シートの内容をクリアし、新しい行データで置き換えます。
	ReplaceAll(ctx context.Context, spreadsheetID, sheetName, cols string, values [][]interface{}) error
}

// SheetWriter Google Sheets API v4 を利用した RowWriter 実装です。
type SheetWriter struct {
	service *sheets.Service
}

// NewSheetWriter サービスアカウントの認証情報ファイルを使用して SheetWriter を生成します。
func NewSheetWriter(ctx context.Context, credentialsFile string) (*SheetWriter, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.NotConfigured, "Google Sheetsクライアントの生成に失敗しました")
	}

	return &SheetWriter{service: service}, nil
}

// ReplaceAll 指定シートの内容をクリアし、新しい行データで置き換えます。
//
// クリアに失敗した場合はシート自体が存在しないものとみなして新規作成を試みます。
// 書き込みは RAW モードで行い、値をそのままセルへ反映します。
func (w *SheetWriter) ReplaceAll(ctx context.Context, spreadsheetID, sheetName, cols string, values [][]interface{}) error {
	clearRange := fmt.Sprintf("%s!%s", sheetName, cols)

	_, err := w.service.Spreadsheets.Values.
		Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"spreadsheet_id": spreadsheetID,
			"sheet_name":     sheetName,
			"error":          err,
		}).Warn("シートのクリアに失敗したため新規作成を試みます")

		if addErr := w.addSheet(ctx, spreadsheetID, sheetName); addErr != nil {
			return addErr
		}
	}

	_, err = w.service.Spreadsheets.Values.
		Update(spreadsheetID, fmt.Sprintf("%s!A1", sheetName), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, "シートへの書き込みに失敗しました")
	}

	return nil
}

// addSheet スプレッドシートへ新しいシートを追加します。
func (w *SheetWriter) addSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetName},
				},
			},
		},
	}

	_, err := w.service.Spreadsheets.
		BatchUpdate(spreadsheetID, request).
		Context(ctx).
		Do()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, "シートの作成に失敗しました")
	}

	return nil
}
