package v1

import (
	"net/http"

	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

type DashboardResponse struct {
	Error *string    `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *Dashboard `json:"data"`                                                                // The dashboard data
}

// Dashboard is the representation of the dashboard in API v1.
type Dashboard struct {
	TotalBalance       decimal.Decimal       `json:"totalBalance" example:"3509.31"` // Sum of the current balances of all accounts
	TotalIncome        decimal.Decimal       `json:"totalIncome" example:"12500"`    // Sum of all income transactions
	TotalExpense       decimal.Decimal       `json:"totalExpense" example:"8990.69"` // Sum of all expense transactions
	Net                decimal.Decimal       `json:"net" example:"3509.31"`          // Income minus expenses
	RecentTransactions []Transaction         `json:"recentTransactions"`             // The five most recent transactions
	MonthlySeries      []models.MonthlyPoint `json:"monthlySeries"`                  // Income and expenses for the last six months
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the dashboard for the authenticated user
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	userID, _ := identity.UserID(c)

	dashboard, err := models.BuildDashboard(models.DB, userID, types.Today())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	recent := make([]Transaction, 0, len(dashboard.RecentTransactions))
	for _, transaction := range dashboard.RecentTransactions {
		recent = append(recent, newTransaction(c, transaction))
	}

	data := Dashboard{
		TotalBalance:       dashboard.TotalBalance,
		TotalIncome:        dashboard.TotalIncome,
		TotalExpense:       dashboard.TotalExpense,
		Net:                dashboard.Net,
		RecentTransactions: recent,
		MonthlySeries:      dashboard.MonthlySeries,
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
