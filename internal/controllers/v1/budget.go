package v1

import (
	"fmt"
	"net/http"

	"github.com/cashfolio/backend/internal/export"
	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}

	// Reports for a budget
	{
		r.GET("/:id/report", GetBudgetReport)
		r.GET("/:id/report/pdf", GetBudgetReportPDF)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail[models.Budget](c)
}

// @Summary		Get budgets
// @Description	Returns a list of the budgets of the authenticated user
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			periodType	query	string	false	"Filter by period type"
// @Param			archived	query	bool	false	"Is the budget archived?"
// @Param			search		query	string	false	"Search for this string in name and note"
// @Param			offset		query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	userID, _ := identity.UserID(c)
	model := filter.model()

	q := models.DB.
		Order("date(start_date) DESC").
		Where(&model, queryFields...).
		Where(&models.Budget{UserID: userID})

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0)
	for i := range budgets {
		err = budgets[i].RefreshActuals(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, newBudget(c, budgets[i]))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// checkItemReferences verifies the category of every budget item.
func checkItemReferences(c *gin.Context, items []BudgetItemEditable) error {
	for _, item := range items {
		err := checkReference[models.Category](c, item.CategoryID)
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Create budget
// @Description	Creates a new budget with its items for the authenticated user
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	err = checkItemReferences(c, editable.Items)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget := editable.model()
	budget.UserID, _ = identity.UserID(c)

	err = models.CreateBudgetWithItems(models.DB, &budget, editable.items())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		Get budget
// @Description	Returns a specific budget with its items. Actual amounts are refreshed before the budget is returned.
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		403	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	budget, err := getResource[models.Budget](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	err = budget.RefreshActuals(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates the budget and reconciles its items: items with an ID are updated, items without an ID are created, missing items are deleted.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	budget, err := getResource[models.Budget](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	// The items are reconciled explicitly, they are not a column
	headerFields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field != "Items" {
			headerFields = append(headerFields, field)
		}
	}

	// Start from the current values so that partial updates keep
	// everything that is not in the body
	update := BudgetEditable{
		Name:       budget.Name,
		PeriodType: budget.PeriodType,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		Note:       budget.Note,
		Archived:   budget.Archived,
	}
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	err = checkItemReferences(c, update.Items)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	err = models.UpdateBudgetWithItems(models.DB, &budget, update.model(), headerFields, update.items())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budget
// @Description	Deletes a budget with all its items
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	budget, err := getResource[models.Budget](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(models.BudgetItem{BudgetID: budget.ID}).Delete(&models.BudgetItem{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&budget).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get budget report
// @Description	Returns the progress report for the budget: per-category breakdown, top spending categories and the daily spending series
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetReportResponse
// @Failure		400	{object}	BudgetReportResponse
// @Failure		403	{object}	BudgetReportResponse
// @Failure		404	{object}	BudgetReportResponse
// @Failure		500	{object}	BudgetReportResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/report [get]
func GetBudgetReport(c *gin.Context) {
	budget, err := getResource[models.Budget](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{
			Error: &e,
		})
		return
	}

	report, err := budget.Report(models.DB, types.Today())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetReportResponse{Data: &report})
}

// @Summary		Download budget report
// @Description	Renders the progress report for the budget as a PDF document
// @Tags			Budgets
// @Produce		application/pdf
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/report/pdf [get]
func GetBudgetReportPDF(c *gin.Context) {
	budget, err := getResource[models.Budget](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	report, err := budget.Report(models.DB, types.Today())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	document, err := export.BudgetReportPDF(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.BudgetReportFilename(report)))
	c.Data(http.StatusOK, "application/pdf", document)
}
