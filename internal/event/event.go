package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	LoanCreated        Type = "loan.created"
	LoanAccepted       Type = "loan.accepted"
	LoanDeclined       Type = "loan.declined"
	LoanModified       Type = "loan.modified"
	LoanDeleted        Type = "loan.deleted"
	LoanPaymentApplied Type = "loan.payment_applied"
	LoanCompleted      Type = "loan.completed"

	UserBlocked   Type = "user.blocked"
	UserUnblocked Type = "user.unblocked"
	UserPromoted  Type = "user.promoted"
)

const publisherAppID = "lending-api"

// Envelope is the wire shape of every lifecycle event, whichever broker carries it.
type Envelope struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type LoanPayload struct {
	LoanID          int64  `json:"loanId"`
	OwnerID         int64  `json:"ownerId"`
	OwnerEmail      string `json:"ownerEmail"`
	ActorID         int64  `json:"actorId"`
	LoanType        string `json:"loanType"`
	Status          string `json:"status"`
	Period          string `json:"period"`
	Currency        string `json:"currency"`
	RequestedAmount string `json:"requestedAmount"`
	FinalAmount     string `json:"finalAmount"`
	AmountLeft      string `json:"amountLeft"`
	PaidAmount      string `json:"paidAmount,omitempty"`
	CarID           *int64 `json:"carId,omitempty"`
	ProductID       *int64 `json:"productId,omitempty"`
}

type UserPayload struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"isBlocked"`
	ActorID   int64  `json:"actorId"`
}

func New(t Type, payload any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// wireMessage is an encoded envelope plus the key brokers route or partition on.
type wireMessage struct {
	Key  string
	Body []byte
}

func encode(env Envelope) (wireMessage, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return wireMessage{}, fmt.Errorf("failed to marshal %s event: %w", env.Type, err)
	}
	return wireMessage{Key: messageKey(env), Body: body}, nil
}

// messageKey groups events by aggregate, e.g. "loan-42".
func messageKey(env Envelope) string {
	switch payload := env.Payload.(type) {
	case LoanPayload:
		return fmt.Sprintf("loan-%d", payload.LoanID)
	case UserPayload:
		return fmt.Sprintf("user-%d", payload.UserID)
	default:
		return strings.SplitN(string(env.Type), ".", 2)[0]
	}
}
