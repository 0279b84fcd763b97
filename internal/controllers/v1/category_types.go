package v1

import (
	"fmt"

	"github.com/cashfolio/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type CategoryEditable struct {
	Name     string              `json:"name" example:"Groceries" default:""`     // Name of the category
	Kind     models.CategoryKind `json:"kind" example:"expense"`                  // Kind of the category, income or expense
	Color    string              `json:"color" example:"#2da44e" default:""`      // Display color
	Icon     string              `json:"icon" example:"shopping-cart" default:""` // Display icon
	Note     string              `json:"note" example:"Everyday food" default:""` // A note
	Archived bool                `json:"archived" example:"true" default:"false"` // Is the category archived?
}

// model returns the database resource for the API representation of the editable fields
func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:     editable.Name,
		Kind:     editable.Kind,
		Color:    editable.Color,
		Icon:     editable.Icon,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91f71defe"`                     // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91f71defe"` // Transactions referencing the category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:     model.Name,
			Kind:     model.Kind,
			Color:    model.Color,
			Icon:     model.Icon,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Category `json:"data"`                                                          // The Category data
}

type CategoryQueryFilter struct {
	Name     string              `form:"name" filterField:"false"`   // Filter by name
	Kind     models.CategoryKind `form:"kind"`                       // Filter by kind
	Note     string              `form:"note" filterField:"false"`   // Filter by note
	Archived bool                `form:"archived"`                   // Is the category archived?
	Search   string              `form:"search" filterField:"false"` // By string in name or note
	Offset   uint                `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit    int                 `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Kind:     f.Kind,
		Archived: f.Archived,
	}
}
