package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// TelegramSender テレグラムボットを通じて管理者へ通知を送信する Sender 実装です。
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender テレグラムボット API に接続し TelegramSender を生成します。
// トークンが無効な場合はエラーを返します。
func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.NotConfigured, "テレグラムボットAPIへの接続に失敗しました")
	}

	applog.WithComponentAndFields("notify", applog.Fields{
		"bot_username": bot.Self.UserName,
	}).Info("テレグラムボットに接続しました")

	return &TelegramSender{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// NotifyError エラーメッセージを管理者のチャットへ送信します。
func (s *TelegramSender) NotifyError(message string) {
	msg := tgbotapi.NewMessage(s.chatID, message)

	if _, err := s.bot.Send(msg); err != nil {
		applog.WithComponentAndFields("notify", applog.Fields{
			"error": err,
		}).Error("テレグラム通知の送信に失敗しました")
	}
}
