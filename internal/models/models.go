package models

import (
	"strings"
	"time"
)

// Role is the two-tier access level attached to a user and embedded in
// session claims.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Section partitions lessons between the active sprint and the archive.
type Section string

const (
	SectionSprint  Section = "SPRINT"
	SectionArchive Section = "ARCHIVE"
)

// ParseSection normalizes a raw query/body value to a known section.
// Unknown values are ignored rather than rejected.
func ParseSection(raw string) (Section, bool) {
	switch Section(strings.ToUpper(strings.TrimSpace(raw))) {
	case SectionSprint:
		return SectionSprint, true
	case SectionArchive:
		return SectionArchive, true
	}
	return "", false
}

// User is created on first successful Telegram login. Role is never
// changed by the login path.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID int64     `gorm:"uniqueIndex" json:"telegramId"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       Role      `gorm:"default:USER" json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// Topic is the root of the catalog hierarchy. Slug is its stable identity.
type Topic struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// Subtopic always belongs to a topic. Deleting the topic removes its
// subtopics at the store level.
type Subtopic struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	TopicID     uint      `gorm:"index" json:"topicId"`
	Topic       *Topic    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// Lesson may be unattached, attached to a topic, or attached to a topic
// and a subtopic. Parent keys are nulled by the store when the parent
// goes away.
type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	TopicID     *uint     `gorm:"index" json:"topicId"`
	Topic       *Topic    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	SubtopicID  *uint     `gorm:"index" json:"subtopicId"`
	Subtopic    *Subtopic `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Section     Section   `json:"section"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}
