package seed

import (
	"fmt"

	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent community that every deployment carries.
type BuiltInGroup struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInGroups defines the permanent communities.
var BuiltInGroups = []BuiltInGroup{
	{Title: "Котики", Slug: "cats", Description: "Посты о котиках и прочих пушистых."},
	{Title: "Технологии", Slug: "tech", Description: "Новости и обсуждения технологий."},
	{Title: "Путешествия", Slug: "travel", Description: "Рассказы и фотографии из поездок."},
	{Title: "Книги", Slug: "books", Description: "Что читаем и что советуем."},
	{Title: "Музыка", Slug: "music", Description: "Новые релизы и вечная классика."},
	{Title: "Кино", Slug: "movies", Description: "Фильмы, сериалы и всё вокруг них."},
	{Title: "Еда", Slug: "food", Description: "Рецепты и гастрономические находки."},
	{Title: "Спорт", Slug: "sport", Description: "Тренировки, матчи и результаты."},
}

// Groups seeds the permanent built-in communities. Existing groups are
// updated in place so the seeder can run repeatedly.
func Groups(db *gorm.DB) error {
	for _, item := range BuiltInGroups {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("seed built-in group %s: %w", item.Slug, err)
		}
	}
	return nil
}
