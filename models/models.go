package models

import (
	"database/sql/driver"
	"strconv"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/schedule"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model
type User struct {
	BaseModel
	Email          string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password       string     `json:"-" gorm:"size:255;not null"`
	FullName       string     `json:"full_name" gorm:"size:255"`
	Role           string     `json:"role" gorm:"size:50;not null;default:'user';type:enum('user','admin')"` // user, admin
	Status         string     `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive')"`
	Avatar         string     `json:"avatar" gorm:"size:500"`
	Credits        int        `json:"credits" gorm:"not null;default:0"`
	SuspendedUntil *time.Time `json:"suspended_until"`

	// Relationships
	PaymentProofs []PaymentProof `json:"payment_proofs,omitempty" gorm:"foreignKey:UserID"`
	EnrollForms   []EnrollForm   `json:"enroll_forms,omitempty" gorm:"foreignKey:UserID"`
}

// Suspended reports whether the account is blocked at the given time.
func (u User) Suspended(now time.Time) bool {
	return u.SuspendedUntil != nil && u.SuspendedUntil.After(now)
}

// PaymentProof is a receipt a learner submits to unlock a program level.
// RefText carries the legacy free-text reference; new rows store the
// schedule choice in the structured columns.
type PaymentProof struct {
	BaseModel
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	ProgramID      string     `json:"program_id" gorm:"size:50;not null;index"`
	Level          string     `json:"level" gorm:"size:50;not null;type:enum('beginner','intermediate','expert')"`
	Amount         int        `json:"amount" gorm:"not null"`
	CreditsAwarded int        `json:"credits_awarded" gorm:"not null;default:0"`
	ImageURL       string     `json:"image_url" gorm:"size:500;not null"`
	Status         string     `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','approved','rejected')"` // pending, approved, rejected
	RefText        string     `json:"ref_text" gorm:"type:text"`
	ChosenStartAt  *time.Time `json:"chosen_start_at"`
	ChosenSlot     string     `json:"chosen_slot" gorm:"size:20"`
	ApprovedAt     *time.Time `json:"approved_at"`
	ApprovedByID   *uint      `json:"approved_by_id"`
	RejectReason   string     `json:"reject_reason" gorm:"size:500"`

	// Relationships
	User       User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ApprovedBy *User `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
}

// ScheduleProof converts the row into the derivation core's representation.
// The structured schedule-choice columns win; legacy rows fall back to the
// ref-text decoder. This is the only place raw rows become schedule inputs,
// so the precedence cannot drift between callers.
func (p PaymentProof) ScheduleProof() schedule.Proof {
	choice := schedule.DecodeLegacyRef(p.RefText)
	if p.ChosenStartAt != nil {
		choice.StartAt = p.ChosenStartAt
	}
	if schedule.ValidSlot(schedule.Slot(p.ChosenSlot)) {
		choice.Slot = schedule.Slot(p.ChosenSlot)
	}
	return schedule.Proof{
		ID:         strconv.FormatUint(uint64(p.ID), 10),
		ProgramID:  catalog.NormalizeProgramID(p.ProgramID),
		Level:      catalog.NormalizeLevel(p.Level),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		ApprovedAt: p.ApprovedAt,
		Choice:     choice,
	}
}

// EnrollForm stores the one-time enrollment questionnaire.
type EnrollForm struct {
	BaseModel
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	ProgramTitle string    `json:"program_title" gorm:"size:255"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;index"`
	Payload      JSON      `json:"payload" gorm:"type:json"`
	SubmittedAt  time.Time `json:"submitted_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Review model for the public landing page
type Review struct {
	BaseModel
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	DisplayName string `json:"display_name" gorm:"size:255;not null"`
	Rating      int    `json:"rating" gorm:"not null"`
	Comment     string `json:"comment" gorm:"type:text;not null"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ActivityLog model
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Notification model
type Notification struct {
	BaseModel
	UserID  uint       `json:"user_id" gorm:"not null;index"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Message string     `json:"message" gorm:"type:text;not null"`
	Type    string     `json:"type" gorm:"size:50;not null;type:enum('info','warning','error','success')"` // info, warning, error, success
	Read    bool       `json:"read" gorm:"default:false"`
	ReadAt  *time.Time `json:"read_at"`
	// Delivery channels, e.g. ["normal"] or ["normal","popup"]
	Channels JSON `json:"channels" gorm:"type:json"`
	// Optional structured payload (deep links, proof ids)
	Data JSON `json:"data" gorm:"type:json"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
