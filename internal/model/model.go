package model

import "time"

// User - пользователь. PasswordHash наружу не сериализуется
type User struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Author - развернутая ссылка на автора (id, имя, email)
type Author struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) AsAuthor() Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Article struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Image     string    `json:"image,omitempty"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Article) OwnerID() uint {
	return a.Author.ID
}

type Comment struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	ArticleID uint      `json:"article"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) OwnerID() uint {
	return c.Author.ID
}

// NewArticle - поля для создания статьи (теги уже нормализованы)
type NewArticle struct {
	Title string
	Body  string
	Tags  []string
	Image string
}

// ArticleUpdate - частичное обновление: nil означает "оставить как было"
type ArticleUpdate struct {
	Title *string
	Body  *string
	Tags  *[]string
	Image *string
}

// ArticleFilter - пустой фильтр возвращает все статьи
type ArticleFilter struct {
	Tag      string
	AuthorID uint
}
