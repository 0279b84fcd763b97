package v1

import (
	"fmt"

	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetItemEditable struct {
	// ID of an existing item to update. Items without an ID are created,
	// existing items that are missing from the payload are deleted.
	ID uuid.UUID `json:"id" example:"5b95dcbd-63d2-4b0c-9edb-2fdc144591f8"`

	CategoryID    uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"` // ID of the category the amount is planned for
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"100" minimum:"0" multipleOf:"0.01"` // The planned amount
	Notes         string          `json:"notes" example:"Includes the gym membership" default:""`    // Notes for the item
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetItemEditable) model() models.BudgetItem {
	item := models.BudgetItem{
		CategoryID:    editable.CategoryID,
		PlannedAmount: editable.PlannedAmount,
		Notes:         editable.Notes,
	}
	item.ID = editable.ID

	return item
}

type BudgetEditable struct {
	Name       string                  `json:"name" example:"March 2025" default:""`           // Name of the budget
	PeriodType models.BudgetPeriodType `json:"periodType" example:"monthly"`                   // Period type, monthly, quarterly or yearly
	StartDate  types.Date              `json:"startDate" example:"2025-03-01"`                 // First day of the budget period
	EndDate    types.Date              `json:"endDate" example:"2025-03-31"`                   // Last day of the budget period
	Note       string                  `json:"note" example:"Saving up for summer" default:""` // A note
	Archived   bool                    `json:"archived" example:"true" default:"false"`        // Is the budget archived?

	// The items of the budget. A budget needs at least one item.
	Items []BudgetItemEditable `json:"items"`
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:       editable.Name,
		PeriodType: editable.PeriodType,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
		Note:       editable.Note,
		Archived:   editable.Archived,
	}
}

// items returns the database resources for the items of the budget
func (editable BudgetEditable) items() []models.BudgetItem {
	items := make([]models.BudgetItem, 0, len(editable.Items))
	for _, item := range editable.Items {
		items = append(items, item.model())
	}

	return items
}

// BudgetItem is the representation of a BudgetItem in API v1.
type BudgetItem struct {
	models.DefaultModel
	CategoryID      uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"` // ID of the category the amount is planned for
	PlannedAmount   decimal.Decimal `json:"plannedAmount" example:"100"`                               // The planned amount
	ActualAmount    decimal.Decimal `json:"actualAmount" example:"47.12"`                              // Sum of the matching transactions
	PercentageUsed  decimal.Decimal `json:"percentageUsed" example:"47.12"`                            // How much of the planned amount is used, clamped to [0, 100]
	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"52.88"`                           // How much of the planned amount is left, never negative
	Notes           string          `json:"notes" example:"Includes the gym membership" default:""`    // Notes for the item
}

// newBudgetItem returns the API v1 representation of the resource
func newBudgetItem(model models.BudgetItem) BudgetItem {
	return BudgetItem{
		DefaultModel:    model.DefaultModel,
		CategoryID:      model.CategoryID,
		PlannedAmount:   model.PlannedAmount,
		ActualAmount:    model.ActualAmount,
		PercentageUsed:  model.PercentageUsed(),
		RemainingAmount: model.RemainingAmount(),
		Notes:           model.Notes,
	}
}

type BudgetLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/budgets/27bb1a47-33b4-4a99-8b8b-0c6fa0eb87a5"`            // The budget itself
	Report    string `json:"report" example:"https://example.com/api/v1/budgets/27bb1a47-33b4-4a99-8b8b-0c6fa0eb87a5/report"`   // The progress report for the budget
	ReportPDF string `json:"reportPdf" example:"https://example.com/api/v1/budgets/27bb1a47-33b4-4a99-8b8b-0c6fa0eb87a5/report/pdf"` // The progress report as PDF download
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	Name        string                  `json:"name" example:"March 2025" default:""`           // Name of the budget
	PeriodType  models.BudgetPeriodType `json:"periodType" example:"monthly"`                   // Period type, monthly, quarterly or yearly
	StartDate   types.Date              `json:"startDate" example:"2025-03-01"`                 // First day of the budget period
	EndDate     types.Date              `json:"endDate" example:"2025-03-31"`                   // Last day of the budget period
	TotalAmount decimal.Decimal         `json:"totalAmount" example:"1500"`                     // Sum of the planned amounts of all items
	Note        string                  `json:"note" example:"Saving up for summer" default:""` // A note
	Archived    bool                    `json:"archived" example:"true" default:"false"`        // Is the budget archived?
	Items       []BudgetItem            `json:"items"`                                          // The items of the budget
	Links       BudgetLinks             `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	items := make([]BudgetItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, newBudgetItem(item))
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		PeriodType:   model.PeriodType,
		StartDate:    model.StartDate,
		EndDate:      model.EndDate,
		TotalAmount:  model.TotalAmount,
		Note:         model.Note,
		Archived:     model.Archived,
		Items:        items,
		Links: BudgetLinks{
			Self:      fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Report:    fmt.Sprintf("%s/v1/budgets/%s/report", url, model.ID),
			ReportPDF: fmt.Sprintf("%s/v1/budgets/%s/report/pdf", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                          // The Budget data
}

type BudgetReportResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *models.BudgetReport `json:"data"`                                                          // The report data
}

type BudgetQueryFilter struct {
	Name       string                  `form:"name" filterField:"false"`   // Filter by name
	Note       string                  `form:"note" filterField:"false"`   // Filter by note
	PeriodType models.BudgetPeriodType `form:"periodType"`                 // Filter by period type
	Archived   bool                    `form:"archived"`                   // Is the budget archived?
	Search     string                  `form:"search" filterField:"false"` // By string in name or note
	Offset     uint                    `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int                     `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		PeriodType: f.PeriodType,
		Archived:   f.Archived,
	}
}
