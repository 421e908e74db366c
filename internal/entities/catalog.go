package entities

import (
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is a reader whose views and ratings end up in book_history.
type Member struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	DisplayName string    `gorm:"size:255" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:512;not null" json:"title"`
	Author      string    `gorm:"index;size:256" json:"author"`
	Publisher   string    `gorm:"size:256" json:"publisher,omitempty"`
	Synopsis    string    `gorm:"type:text" json:"synopsis,omitempty"`
	ImageCover  *string   `gorm:"size:512" json:"image_cover,omitempty"`
	PublishDate time.Time `gorm:"type:date;index" json:"publish_date"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT;" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookHistory is one view event. Rating is set on at most one row per
// (book, member) pair.
type BookHistory struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	BookID   uint      `gorm:"index;index:idx_book_history_pair,priority:1;not null" json:"book_id"`
	MemberID uint      `gorm:"index;index:idx_book_history_pair,priority:2;not null" json:"member_id"`
	Rating   *int      `gorm:"check:rating >= 0 AND rating <= 5" json:"rating,omitempty"`
	ViewedAt time.Time `gorm:"autoCreateTime" json:"viewed_at"`
	Book     Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"-"`
	Member   Member    `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE;" json:"-"`
}

// BookContent is a chapter of a book.
type BookContent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BookID   uint   `gorm:"index;not null" json:"book_id"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Title    string `gorm:"size:256" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

func (Member) TableName() string {
	return "members"
}

func (Book) TableName() string {
	return "books"
}

func (BookHistory) TableName() string {
	return "book_history"
}

func (BookContent) TableName() string {
	return "book_contents"
}

// CatalogBook is a book row joined with its category name and the
// aggregates computed from book_history at query time.
type CatalogBook struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher,omitempty"`
	Synopsis      string    `json:"synopsis,omitempty"`
	ImageCover    *string   `json:"image_cover,omitempty"`
	PublishDate   time.Time `json:"publish_date"`
	CategoryID    uint      `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	AverageRating *float64  `json:"average_rating"`
	ViewCount     int64     `json:"view_count"`
}

// HasRating reports whether at least one rated history row exists.
func (b CatalogBook) HasRating() bool {
	return b.AverageRating != nil
}

// CatalogStats holds table totals for the catalog.
type CatalogStats struct {
	Books      int64 `json:"books"`
	Categories int64 `json:"categories"`
	Members    int64 `json:"members"`
	Views      int64 `json:"views"`
}
