package database

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fozemdestaque/portal/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Post{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Categories ---

func (d *Database) GetAllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := d.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (d *Database) GetCategoryBySlug(slug string) (*entities.Category, error) {
	var category entities.Category
	err := d.DB.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *Database) CreateCategory(category *entities.Category) error {
	return d.DB.Create(category).Error
}

// --- Posts ---

// PostSlugExists probes for an existing post with the exact slug.
func (d *Database) PostSlugExists(slug string) (bool, error) {
	var count int64
	err := d.DB.Model(&entities.Post{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) CreatePost(post *entities.Post) error {
	return d.DB.Create(post).Error
}

func (d *Database) GetPostBySlug(slug string) (*entities.Post, error) {
	var post entities.Post
	err := d.DB.Preload("Category").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts ordered by publish date, newest first, drafts
// last, optionally filtered by category slug.
func (d *Database) ListPosts(categorySlug string, limit, offset int) ([]entities.Post, error) {
	var posts []entities.Post
	query := d.DB.Preload("Category").Order("published_at IS NULL, published_at DESC")
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&posts).Error
	return posts, err
}

func (d *Database) CountPosts(categorySlug string) (int64, error) {
	var count int64
	query := d.DB.Model(&entities.Post{})
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	err := query.Count(&count).Error
	return count, err
}

// --- Users ---

func (d *Database) CreateUser(username, email, passwordHash string, role entities.Role) (*entities.User, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Token:        token,
		Role:         role,
	}

	if err := d.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (d *Database) GetUserByToken(token string) (*entities.User, error) {
	var user entities.User
	err := d.DB.Where("token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := d.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAdminUser returns the first admin account, used as the fallback author
// for detached (CLI and scheduled) imports.
func (d *Database) GetAdminUser() (*entities.User, error) {
	var user entities.User
	err := d.DB.Where("role = ?", entities.RoleAdmin).Order("created_at ASC").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no admin user exists: create one with the create-user command")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
