package v1

import (
	"fmt"

	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	cf_uuid "github.com/cashfolio/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date types.Date `json:"date" example:"2025-03-04"` // Day the transaction was booked

	// The maximum value is "999999999999999999.99", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0" multipleOf:"0.01"` // The amount of the transaction

	Kind       models.TransactionKind `json:"kind" example:"expense"`                                         // Kind of the transaction, income or expense
	AccountID  uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`       // ID of the account the transaction is booked on
	CategoryID uuid.UUID              `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91f71defe"`      // ID of the category
	Reference  string                 `json:"reference" example:"Invoice 2025-1138" default:""`               // A reference, e.g. an invoice number
	Note       string                 `json:"note" example:"Lunch" default:""`                                // A note
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:       editable.Date,
		Amount:     editable.Amount,
		Kind:       editable.Kind,
		AccountID:  editable.AccountID,
		CategoryID: editable.CategoryID,
		Reference:  editable.Reference,
		Note:       editable.Note,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	CashFlowID *uuid.UUID       `json:"cashFlowId" example:"95018a69-758b-46c6-8bab-db70d9614f9d"` // Set if the transaction is a line of a cash flow
	Attachment string           `json:"attachment" example:"4ef7c5b0.pdf"`                         // Opaque path of an uploaded receipt
	Links      TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:       model.Date,
			Amount:     model.Amount,
			Kind:       model.Kind,
			AccountID:  model.AccountID,
			CategoryID: model.CategoryID,
			Reference:  model.Reference,
			Note:       model.Note,
		},
		CashFlowID: model.CashFlowID,
		Attachment: model.Attachment,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // The Transaction data
}

type TransactionQueryFilter struct {
	Date              types.Date             `form:"date" filterField:"false"`              // Exact booking date
	FromDate          types.Date             `form:"fromDate" filterField:"false"`          // Transactions at and after this date
	UntilDate         types.Date             `form:"untilDate" filterField:"false"`         // Transactions before and at this date
	Amount            decimal.Decimal        `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Kind              models.TransactionKind `form:"kind"`                                  // Kind of the transaction
	Note              string                 `form:"note" filterField:"false"`              // Note contains this string
	AccountID         cf_uuid.UUID           `form:"account"`                               // ID of the account
	CategoryID        cf_uuid.UUID           `form:"category"`                              // ID of the category
	CashFlowID        cf_uuid.UUID           `form:"cashflow" filterField:"false"`          // ID of the cash flow the transaction belongs to
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// This does not set the string and date fields since they are
	// handled in the controller function
	return models.Transaction{
		Amount:     f.Amount,
		Kind:       f.Kind,
		AccountID:  f.AccountID.UUID,
		CategoryID: f.CategoryID.UUID,
	}
}
