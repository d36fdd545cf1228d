package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/pkg/logger"

	"github.com/google/uuid"
)

// PushRepository sends notifications to the push gateway
type PushRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewPushRepository creates a new push gateway repository
func NewPushRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotifierRepository {
	return &PushRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type pushMessage struct {
	NotificationID string `json:"notificationId"`
	Channel        string `json:"channel"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Link           string `json:"link,omitempty"`
}

// Send delivers a notification to the gateway on its channel
func (r *PushRepository) Send(ctx context.Context, notification *entity.Notification) error {
	msg := pushMessage{
		NotificationID: uuid.NewString(),
		Channel:        string(notification.Channel),
		Title:          notification.Title,
		Body:           notification.Body,
		Link:           notification.Link,
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("push gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Notification sent",
		"notificationId", msg.NotificationID,
		"channel", msg.Channel,
		"title", msg.Title)

	return nil
}
