package types

import "bulletin-board/app/server/models"

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=32"`
}

type CategoryInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func CategoryInfoFromModel(category *models.Category) *CategoryInfo {
	return &CategoryInfo{
		ID:   category.ID,
		Name: category.Name,
	}
}
