package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"github.com/bigipmachine/backend/internal/services"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailTaskRepository defines the interface for email task repository
type EmailTaskRepository interface {
	// GetByID retrieves a queued email by its ID
	//
	// "id" parameter is used to retrieve a queued email by its ID.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.EmailTask, error)
	// UpdateStatus updates the delivery status of a queued email
	//
	// "id" parameter is used to update the delivery status of a queued email.
	// "status" parameter is used to update the delivery status of a queued email.
	// "taskErr" parameter is used to update the error message of a queued email.
	//
	// If some error occurs during data update, the error will be returned.
	UpdateStatus(ctx context.Context, id int, status models.EmailTaskStatus, taskErr string) error
}

// Worker delivers queued emails
type Worker struct {
	logger        *zap.Logger
	emailTaskRepo EmailTaskRepository
	smtpHost      string
	smtpPort      int
	smtpUsername  string
	smtpPassword  string
	smtpFrom      string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	emailTaskRepo EmailTaskRepository,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:        logger,
		emailTaskRepo: emailTaskRepo,
		smtpHost:      smtpHost,
		smtpPort:      smtpPort,
		smtpUsername:  smtpUsername,
		smtpPassword:  smtpPassword,
		smtpFrom:      smtpFrom,
	}
}

// HandleEmailTask delivers one queued email. The payload is the email_tasks
// row ID; the rendered subject and body are read from the database so the
// queue never carries user content.
func (w *Worker) HandleEmailTask(ctx context.Context, t *asynq.Task) error {
	if t.Type() != services.TaskTypeEmail {
		return fmt.Errorf("unexpected task type %q", t.Type())
	}

	taskIDStr := string(t.Payload())
	taskID := 0
	if _, err := fmt.Sscanf(taskIDStr, "%d", &taskID); err != nil {
		return fmt.Errorf("failed to parse task ID: %w", err)
	}

	task, err := w.emailTaskRepo.GetByID(ctx, taskID)
	if err != nil {
		// Row was deleted before processing, nothing left to deliver.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	if task.Status == models.EmailTaskStatusCompleted {
		return nil
	}

	if err := w.sendEmail(task.Recipient, task.Subject, task.Body); err != nil {
		w.emailTaskRepo.UpdateStatus(ctx, taskID, models.EmailTaskStatusFailed, err.Error())
		return err
	}

	if err := w.emailTaskRepo.UpdateStatus(ctx, taskID, models.EmailTaskStatusCompleted, ""); err != nil {
		return err
	}

	w.logger.Info("Email delivered",
		zap.Int("task_id", taskID),
		zap.String("kind", string(task.Kind)),
		zap.String("recipient", task.Recipient),
	)
	return nil
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
