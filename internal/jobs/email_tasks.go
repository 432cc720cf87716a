package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type definitions
const (
	TypeWelcomeEmail = "email:welcome"
)

// QueueEmail is the asynq queue mail tasks go to.
const QueueEmail = "email"

// WelcomeEmailPayload is the payload of a welcome email task.
type WelcomeEmailPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// NewWelcomeEmailTask creates a welcome email task for a freshly
// registered user.
func NewWelcomeEmailTask(user *models.User) (*asynq.Task, error) {
	payload := WelcomeEmailPayload{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, data), nil
}

// Notifier enqueues email tasks onto the shared queue. It satisfies
// services.WelcomeNotifier.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

// EnqueueWelcomeEmail queues the welcome email for background delivery.
func (n *Notifier) EnqueueWelcomeEmail(ctx context.Context, user *models.User) error {
	task, err := NewWelcomeEmailTask(user)
	if err != nil {
		return fmt.Errorf("failed to build welcome email task: %w", err)
	}
	_, err = n.client.EnqueueContext(ctx, task, asynq.Queue(QueueEmail), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("failed to enqueue welcome email: %w", err)
	}
	return nil
}

// EmailProcessor handles email tasks pulled off the queue.
type EmailProcessor struct {
	mailer Mailer
}

func NewEmailProcessor(mailer Mailer) *EmailProcessor {
	return &EmailProcessor{mailer: mailer}
}

// HandleWelcomeEmail delivers the welcome email for a task.
func (p *EmailProcessor) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	if err := p.mailer.SendWelcome(payload.Email, payload.FullName); err != nil {
		log.Printf("Welcome email delivery failed for user %s: %v", payload.UserID, err)
		return err
	}

	log.Printf("Welcome email sent to %s", payload.Email)
	return nil
}
