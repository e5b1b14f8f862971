package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Name     string    `gorm:"index"`
	Email    string    `gorm:"unique_index;not null"`
	Password string    `gorm:"not null"`
	Articles []Article `gorm:"foreignkey:AuthorID"`
	Comments []Comment `gorm:"foreignkey:AuthorID"`
}

type Article struct {
	gorm.Model
	Title    string `gorm:"not null"`
	Body     string `gorm:"type:text;not null"`
	Image    string
	AuthorID uint `gorm:"index;not null"`
	Author   User
	Tags     []ArticleTag `gorm:"foreignkey:ArticleID"`
	Comments []Comment    `gorm:"foreignkey:ArticleID"`
}

// ArticleTag - одна строка на тег статьи. Position хранит исходный порядок
type ArticleTag struct {
	ID        uint   `gorm:"primary_key"`
	ArticleID uint   `gorm:"index;not null"`
	Name      string `gorm:"index;not null"`
	Position  int
}

type Comment struct {
	gorm.Model
	Text      string `gorm:"type:text;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User
	ArticleID uint `gorm:"index;not null"`
}

// All - список моделей для AutoMigrate
func All() []interface{} {
	return []interface{}{&User{}, &Article{}, &ArticleTag{}, &Comment{}}
}
