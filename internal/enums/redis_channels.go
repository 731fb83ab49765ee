package enums

import "fmt"

func RedisChannelWhiteboard(workspaceID uint) string {
	return fmt.Sprintf("whiteboard:%d", workspaceID)
}

func RedisChannelMessages(channelID uint) string {
	return fmt.Sprintf("channel:%d", channelID)
}
