package v1

import (
	"net/http"

	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRootRoutes registers the routes for the API root with
// the RouterGroup that is passed.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
}

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`               // URL of the Account collection endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`           // URL of the Category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`       // URL of the Transaction collection endpoint
	CashFlows    string `json:"cashflows" example:"https://example.com/api/v1/cashflows"`             // URL of the CashFlow collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`                 // URL of the Budget collection endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`             // URL of the dashboard endpoint
	Reports      string `json:"reports" example:"https://example.com/api/v1/reports/transactions"`    // URL of the transaction report endpoint
}

// GetRoot returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	RootResponse
//	@Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Accounts:     url + "/v1/accounts",
			Categories:   url + "/v1/categories",
			Transactions: url + "/v1/transactions",
			CashFlows:    url + "/v1/cashflows",
			Budgets:      url + "/v1/budgets",
			Dashboard:    url + "/v1/dashboard",
			Reports:      url + "/v1/reports/transactions",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
