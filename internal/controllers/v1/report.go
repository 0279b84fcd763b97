package v1

import (
	"net/http"

	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	cf_uuid "github.com/cashfolio/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", OptionsTransactionReport)
	r.GET("/transactions", GetTransactionReport)
}

type TransactionReportQuery struct {
	FromDate  types.Date             `form:"fromDate"`  // Transactions at and after this date
	UntilDate types.Date             `form:"untilDate"` // Transactions before and at this date
	AccountID cf_uuid.UUID           `form:"account"`   // Only transactions on this account
	Kind      models.TransactionKind `form:"kind"`      // Only transactions of this kind
}

type TransactionReportResponse struct {
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *models.TransactionReport `json:"data"`                                                          // The report data
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/transactions [options]
func OptionsTransactionReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get transaction report
// @Description	Returns a filtered transaction report with income, expense and net totals and a per-category breakdown
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	TransactionReportResponse
// @Failure		400	{object}	TransactionReportResponse
// @Failure		403	{object}	TransactionReportResponse
// @Failure		404	{object}	TransactionReportResponse
// @Failure		500	{object}	TransactionReportResponse
// @Router			/v1/reports/transactions [get]
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions before and at this date"
// @Param			account		query	string	false	"Only transactions on this account"
// @Param			kind		query	string	false	"Only transactions of this kind, income or expense"
func GetTransactionReport(c *gin.Context) {
	var query TransactionReportQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionReportResponse{
			Error: &s,
		})
		return
	}

	if query.AccountID != cf_uuid.Nil {
		err := checkReference[models.Account](c, query.AccountID.UUID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionReportResponse{
				Error: &e,
			})
			return
		}
	}

	userID, _ := identity.UserID(c)

	report, err := models.BuildTransactionReport(models.DB, userID, models.TransactionReportFilter{
		From:      query.FromDate,
		To:        query.UntilDate,
		AccountID: query.AccountID.UUID,
		Kind:      query.Kind,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionReportResponse{Data: &report})
}
