package v1

import (
	"fmt"
	"time"

	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashFlowEditable struct {
	Date      types.Date `json:"date" example:"2025-03-04"`                        // Day the cash flow was booked
	Reference string     `json:"reference" example:"Receipt 2025-0815" default:""` // A reference, e.g. a receipt number
	Note      string     `json:"note" example:"Weekly groceries run" default:""`   // A note

	// The lines of the cash flow. Lines without a date inherit the date
	// of the cash flow.
	Transactions []TransactionEditable `json:"transactions"`
}

// model returns the database resource for the API representation of the editable fields
func (editable CashFlowEditable) model() models.CashFlow {
	return models.CashFlow{
		Date:      editable.Date,
		Reference: editable.Reference,
		Note:      editable.Note,
	}
}

// lines returns the database resources for the lines of the cash flow
func (editable CashFlowEditable) lines() []models.Transaction {
	lines := make([]models.Transaction, 0, len(editable.Transactions))
	for _, line := range editable.Transactions {
		lines = append(lines, line.model())
	}

	return lines
}

type CashFlowLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/cashflows/95018a69-758b-46c6-8bab-db70d9614f9d"`                     // The cash flow itself
	Attachment   string `json:"attachment" example:"https://example.com/api/v1/cashflows/95018a69-758b-46c6-8bab-db70d9614f9d/attachment"`    // The uploaded attachment
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?cashflow=95018a69-758b-46c6-8bab-db70d9614f9d"` // The lines of the cash flow
}

// CashFlow is the representation of a CashFlow in API v1.
type CashFlow struct {
	models.DefaultModel
	Date         types.Date    `json:"date" example:"2025-03-04"`                        // Day the cash flow was booked
	Reference    string        `json:"reference" example:"Receipt 2025-0815" default:""` // A reference, e.g. a receipt number
	Note         string        `json:"note" example:"Weekly groceries run" default:""`   // A note
	Attachment   string        `json:"attachment" example:"4ef7c5b0.pdf"`                // Opaque path of an uploaded document
	VerifiedByID *uuid.UUID    `json:"verifiedById"`                                     // User who verified the cash flow
	VerifiedDate *time.Time    `json:"verifiedDate"`                                     // When the cash flow was verified
	Transactions []Transaction `json:"transactions"`                                     // The lines of the cash flow
	Links        CashFlowLinks `json:"links"`
}

// newCashFlow returns the API v1 representation of the resource
func newCashFlow(c *gin.Context, model models.CashFlow, lines []models.Transaction) CashFlow {
	url := c.GetString(string(models.DBContextURL))

	transactions := make([]Transaction, 0, len(lines))
	for _, line := range lines {
		transactions = append(transactions, newTransaction(c, line))
	}

	return CashFlow{
		DefaultModel: model.DefaultModel,
		Date:         model.Date,
		Reference:    model.Reference,
		Note:         model.Note,
		Attachment:   model.Attachment,
		VerifiedByID: model.VerifiedByID,
		VerifiedDate: model.VerifiedDate,
		Transactions: transactions,
		Links: CashFlowLinks{
			Self:         fmt.Sprintf("%s/v1/cashflows/%s", url, model.ID),
			Attachment:   fmt.Sprintf("%s/v1/cashflows/%s/attachment", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?cashflow=%s", url, model.ID),
		},
	}
}

type CashFlowListResponse struct {
	Data       []CashFlow  `json:"data"`                                                          // List of cash flows
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CashFlowResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *CashFlow `json:"data"`                                                          // The CashFlow data
}

type CashFlowQueryFilter struct {
	Date      types.Date `form:"date" filterField:"false"`      // Exact booking date
	FromDate  types.Date `form:"fromDate" filterField:"false"`  // Cash flows at and after this date
	UntilDate types.Date `form:"untilDate" filterField:"false"` // Cash flows before and at this date
	Reference string     `form:"reference"`                     // Filter by reference
	Note      string     `form:"note" filterField:"false"`      // Note contains this string
	Offset    uint       `form:"offset" filterField:"false"`    // The offset of the first CashFlow returned. Defaults to 0.
	Limit     int        `form:"limit" filterField:"false"`     // Maximum number of CashFlows to return. Defaults to 50.
}

func (f CashFlowQueryFilter) model() models.CashFlow {
	return models.CashFlow{
		Reference: f.Reference,
	}
}
