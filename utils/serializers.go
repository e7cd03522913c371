package utils

import (
	"strings"
	"time"

	"tuklashub_go/models"
)

// Compact representations used across APIs
type UserShort struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type Sender struct {
	Type string `json:"type"` // "system" or "user"
	ID   *uint  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Recipient struct {
	Type string `json:"type"` // "user", "role", etc.
	ID   uint   `json:"id"`
}

type NotificationDTO struct {
	ID        uint        `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	UserID    uint        `json:"user_id"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Type      string      `json:"type"`
	Read      bool        `json:"read"`
	ReadAt    *time.Time  `json:"read_at,omitempty"`
	Channels  models.JSON `json:"channels,omitempty"`
	Data      models.JSON `json:"data,omitempty"`
	User      UserShort   `json:"user"`
	Sender    Sender      `json:"sender"`
	Recipient Recipient   `json:"recipient"`
}

// ToUserShort maps a models.User to its compact form.
func ToUserShort(u models.User) UserShort {
	name := u.FullName
	if name == "" && u.Email != "" {
		// email local-part as a last resort
		parts := strings.Split(u.Email, "@")
		name = parts[0]
	}
	return UserShort{ID: u.ID, FullName: name, Email: u.Email, Avatar: u.Avatar}
}

// ToNotificationDTO maps a models.Notification to the compact DTO.
// Assumptions: caller has preloaded User when possible.
func ToNotificationDTO(n models.Notification) NotificationDTO {
	sender := Sender{Type: "system", Name: "TUKLAS Virtual Hub"}
	recipient := Recipient{Type: "user", ID: n.UserID}

	return NotificationDTO{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		Channels:  n.Channels,
		Data:      n.Data,
		User:      ToUserShort(n.User),
		Sender:    sender,
		Recipient: recipient,
	}
}

// PaymentProofDTO is the admin/list representation of a proof.
type PaymentProofDTO struct {
	ID             uint       `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UserID         uint       `json:"user_id"`
	ProgramID      string     `json:"program_id"`
	Level          string     `json:"level"`
	Amount         int        `json:"amount"`
	CreditsAwarded int        `json:"credits_awarded"`
	ImageURL       string     `json:"image_url"`
	Status         string     `json:"status"`
	RefText        string     `json:"ref_text,omitempty"`
	ChosenStartAt  *time.Time `json:"chosen_start_at,omitempty"`
	ChosenSlot     string     `json:"chosen_slot,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectReason   string     `json:"reject_reason,omitempty"`
	User           UserShort  `json:"user"`
}

// ToPaymentProofDTO maps a models.PaymentProof to the compact DTO.
func ToPaymentProofDTO(p models.PaymentProof) PaymentProofDTO {
	return PaymentProofDTO{
		ID:             p.ID,
		CreatedAt:      p.CreatedAt,
		UserID:         p.UserID,
		ProgramID:      p.ProgramID,
		Level:          p.Level,
		Amount:         p.Amount,
		CreditsAwarded: p.CreditsAwarded,
		ImageURL:       p.ImageURL,
		Status:         p.Status,
		RefText:        p.RefText,
		ChosenStartAt:  p.ChosenStartAt,
		ChosenSlot:     p.ChosenSlot,
		ApprovedAt:     p.ApprovedAt,
		RejectReason:   p.RejectReason,
		User:           ToUserShort(p.User),
	}
}
