package dto

type CreateCategoryInput struct {
	Name           string  `json:"name" form:"name" binding:"required"`
	Description    *string `json:"description" form:"description"`
	CategoryTypeID *string `json:"category_type_id" form:"category_type_id"`
	Status         string  `json:"status" form:"status"`
}

type UpdateCategoryInput struct {
	ID             string  `json:"-"`
	Name           *string `json:"name" form:"name"`
	Description    *string `json:"description" form:"description"`
	CategoryTypeID *string `json:"category_type_id" form:"category_type_id"`
	Status         *string `json:"status" form:"status"`
}

type CategoryFilters struct {
	Status      string `form:"status"`
	SearchQuery string `form:"search"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type CreateCategoryTypeInput struct {
	Name        string   `json:"name" binding:"required"`
	SizeOptions []string `json:"size_options"`
}

type UpdateCategoryTypeInput struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name"`
	SizeOptions []string `json:"size_options"`
}
