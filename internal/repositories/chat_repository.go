package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

func preloadChannel(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy").Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.id ASC")
	})
}

// CreateChannel stores the channel and links channel.Members, which must be existing users.
func (chr *ChatRepository) CreateChannel(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	members := channel.Members
	err := chr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(channel).Error; err != nil {
			// return any error will rollback
			return err
		}
		if len(members) == 0 {
			return nil
		}
		return tx.Model(channel).Association("Members").Append(members)
	})
	if err != nil {
		return nil, duplicated(err, errs.ErrChannelAlreadyExists)
	}
	return chr.FindChannelByID(ctx, channel.ID)
}

func (chr *ChatRepository) FindChannelByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := chr.db.WithContext(ctx).Scopes(preloadChannel).First(&channel, id).Error; err != nil {
		return nil, notFound(err, errs.ErrChannelNotFound)
	}
	return &channel, nil
}

func (chr *ChatRepository) FindChannelsByWorkspace(ctx context.Context, workspaceID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := chr.db.WithContext(ctx).
		Scopes(preloadChannel).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (chr *ChatRepository) CheckChannelNameExists(ctx context.Context, workspaceID uint, name string) (bool, error) {
	var count int64
	err := chr.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (chr *ChatRepository) SaveMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	if err := chr.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error; err != nil {
		return nil, err
	}
	return chr.FindMessageByID(ctx, message.ID)
}

func (chr *ChatRepository) FindMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.WithContext(ctx).Preload("Sender").First(&message, id).Error; err != nil {
		return nil, notFound(err, errs.ErrMessageNotFound)
	}
	return &message, nil
}

// GetRecentMessages returns the channel's last limit messages, oldest first.
func (chr *ChatRepository) GetRecentMessages(ctx context.Context, channelID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := chr.db.WithContext(ctx).
		Preload("Sender").
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// UpdateMessage writes the mutable columns: content, edit flag and reactions.
func (chr *ChatRepository) UpdateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	err := chr.db.WithContext(ctx).
		Model(message).
		Select("content", "is_edited", "reactions").
		Updates(message).Error
	if err != nil {
		return nil, err
	}
	return chr.FindMessageByID(ctx, message.ID)
}
