package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "rascunho"
	PostStatusPublished PostStatus = "publicado"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

// CanImportPosts reports whether the role is allowed to run content imports.
func (r Role) CanImportPosts() bool {
	return r == RoleAdmin || r == RoleEditor
}

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:256" json:"slug"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Post struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:512" json:"title"`
	Slug          string     `gorm:"uniqueIndex;size:512" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt,omitempty"`
	Content       string     `gorm:"type:text" json:"content"`
	FeaturedImage string     `gorm:"size:2048" json:"featured_image,omitempty"`
	CategoryID    *string    `gorm:"index;size:36" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Status        PostStatus `gorm:"size:20;default:'rascunho'" json:"status"`
	AuthorID      string     `gorm:"index;size:36" json:"author_id"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	Token        string         `gorm:"uniqueIndex;size:64" json:"-"` // API token, hidden from JSON
	Role         Role           `gorm:"size:20;default:'reader'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

func (Post) TableName() string {
	return "posts"
}

func (User) TableName() string {
	return "users"
}
