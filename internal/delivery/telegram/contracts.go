package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

// Sender is the part of *tgbotapi.BotAPI used to talk to chats.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot is a Sender that also receives updates.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ExplorerService interface {
	Dispatch(ctx context.Context, chatID, userID int64, ev state.Event) (state.State, error)
	Snapshot(chatID int64) state.State
	Stats(ctx context.Context, userID int64, limit int) (*entities.PlayerStats, []*entities.QuizResult, error)
}

type RegionCatalog interface {
	Regions(ctx context.Context) ([]entities.Region, error)
	Lookup(ctx context.Context, id string) (entities.Region, error)
	Find(ctx context.Context, name string) (entities.Region, error)
}
