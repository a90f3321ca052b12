package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"clinicbook/config"
	"clinicbook/models"
	"clinicbook/services/tasks"
	"clinicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// InitNotifyWorker runs the async delivery worker in background. Delivery is
// decoupled from booking: asynq retries failed sends, and nothing here can
// roll a committed reservation back.
func InitNotifyWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifySend, handleNotifyTask)

	go func() {
		log.Println("[NotifyWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[NotifyWorker] failed to start worker: %v", err)
		}
	}()
}

func handleNotifyTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var msg models.NotificationMessage
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		logger.Error("invalid notification payload", zap.Error(err))
		// Malformed payloads never become deliverable; do not retry.
		return nil
	}

	var err error
	switch msg.Channel {
	case models.ChannelEmail:
		err = sendEmail(msg)
	case models.ChannelWhatsApp:
		err = sendWhatsApp(ctx, msg)
	default:
		logger.Warn("unknown notification channel", zap.String("channel", string(msg.Channel)))
		return nil
	}

	if err != nil {
		logger.Error("notification delivery failed",
			zap.String("channel", string(msg.Channel)), zap.Error(err))
		return err // asynq retries
	}
	return nil
}

func sendEmail(msg models.NotificationMessage) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", msg.Address)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return d.DialAndSend(m)
}

func sendWhatsApp(ctx context.Context, msg models.NotificationMessage) error {
	cfg := config.AppConfig
	if cfg.WhatsAppAPIURL == "" {
		return fmt.Errorf("WhatsApp gateway is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":   msg.Address,
		"body": msg.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WhatsAppAPIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.WhatsAppToken)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
