package v1

import (
	"fmt"

	"github.com/cashfolio/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	Name           string          `json:"name" example:"Checking" default:""`                              // Name of the account
	AccountNumber  string          `json:"accountNumber" example:"DE89 3704 0044 0532 0130 00" default:""`  // Account number or IBAN
	Note           string          `json:"note" example:"My main account" default:""`                       // A note
	InitialBalance decimal.Decimal `json:"initialBalance" example:"250.37" default:"0"`                     // The balance the account started with
	Archived       bool            `json:"archived" example:"true" default:"false"`                         // Is the account archived?
}

// model returns the database resource for the API representation of the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		AccountNumber:  editable.AccountNumber,
		Note:           editable.Note,
		InitialBalance: editable.InitialBalance,
		Archived:       editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions referencing the account
}

// Account is the representation of an Account in API v1.
type Account struct {
	models.DefaultModel
	AccountEditable
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"271.12"` // The current balance, maintained by the backend
	Links          AccountLinks    `json:"links"`
}

// newAccount returns the API v1 representation of the resource
func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			AccountNumber:  model.AccountNumber,
			Note:           model.Note,
			InitialBalance: model.InitialBalance,
			Archived:       model.Archived,
		},
		CurrentBalance: model.CurrentBalance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Account `json:"data"`                                                          // The Account data
}

type AccountQueryFilter struct {
	Name          string `form:"name" filterField:"false"`   // Filter by name
	Note          string `form:"note" filterField:"false"`   // Filter by note
	AccountNumber string `form:"accountNumber"`              // Filter by account number
	Archived      bool   `form:"archived"`                   // Is the account archived?
	Search        string `form:"search" filterField:"false"` // By string in name or note
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		AccountNumber: f.AccountNumber,
		Archived:      f.Archived,
	}
}
