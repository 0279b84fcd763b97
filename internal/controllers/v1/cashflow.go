package v1

import (
	"io"
	"net/http"

	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// attachments is the storage backend for cash flow attachments. It is set
// by RegisterCashFlowRoutes.
var attachments storage.Service

// RegisterCashFlowRoutes registers the routes for cash flows with
// the RouterGroup that is passed.
func RegisterCashFlowRoutes(r *gin.RouterGroup, svc storage.Service) {
	attachments = svc

	// Root group
	{
		r.OPTIONS("", OptionsCashFlowList)
		r.GET("", GetCashFlows)
		r.POST("", CreateCashFlow)
	}

	// CashFlow with ID
	{
		r.OPTIONS("/:id", OptionsCashFlowDetail)
		r.GET("/:id", GetCashFlow)
		r.PATCH("/:id", UpdateCashFlow)
		r.DELETE("/:id", DeleteCashFlow)
	}

	// Attachment of a cash flow
	{
		r.GET("/:id/attachment", GetCashFlowAttachment)
		r.POST("/:id/attachment", UploadCashFlowAttachment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CashFlows
// @Success		204
// @Router			/v1/cashflows [options]
func OptionsCashFlowList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CashFlows
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cashflows/{id} [options]
func OptionsCashFlowDetail(c *gin.Context) {
	resourceOptionsDetail[models.CashFlow](c)
}

// @Summary		Get cash flows
// @Description	Returns a list of the cash flows of the authenticated user
// @Tags			CashFlows
// @Produce		json
// @Success		200	{object}	CashFlowListResponse
// @Failure		400	{object}	CashFlowListResponse
// @Failure		500	{object}	CashFlowListResponse
// @Router			/v1/cashflows [get]
// @Param			date		query	string	false	"Booking date of the cash flow in YYYY-MM-DD format"
// @Param			fromDate	query	string	false	"Cash flows at and after this date"
// @Param			untilDate	query	string	false	"Cash flows before and at this date"
// @Param			reference	query	string	false	"Filter by reference"
// @Param			note		query	string	false	"Filter by note"
// @Param			offset		query	uint	false	"The offset of the first CashFlow returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of CashFlows to return. Defaults to 50."
func GetCashFlows(c *gin.Context) {
	var filter CashFlowQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CashFlowListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	userID, _ := identity.UserID(c)
	model := filter.model()

	q := models.DB.
		Order("date(cash_flows.date) DESC, datetime(cash_flows.created_at) DESC").
		Where(&model, queryFields...).
		Where(&models.CashFlow{UserID: userID})

	if !filter.Date.IsZero() {
		date := filter.Date.Time()
		q = q.Where("cash_flows.date >= date(?)", date).Where("cash_flows.date < date(?)", date.AddDate(0, 0, 1))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("cash_flows.date >= date(?)", filter.FromDate.Time())
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("cash_flows.date < date(?)", filter.UntilDate.Time().AddDate(0, 0, 1))
	}

	if filter.Note != "" {
		q = q.Where("cash_flows.note LIKE ?", "%"+filter.Note+"%")
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("cash_flows.note = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var cashFlows []models.CashFlow
	err := q.Find(&cashFlows).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CashFlow, 0)
	for _, cashFlow := range cashFlows {
		lines, err := cashFlow.Lines(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), CashFlowListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, newCashFlow(c, cashFlow, lines))
	}

	c.JSON(http.StatusOK, CashFlowListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// checkLineReferences verifies the account and category of every line.
func checkLineReferences(c *gin.Context, lines []TransactionEditable) error {
	for _, line := range lines {
		err := checkReference[models.Account](c, line.AccountID)
		if err != nil {
			return err
		}

		err = checkReference[models.Category](c, line.CategoryID)
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Create cash flow
// @Description	Books a cash flow with all its lines atomically
// @Tags			CashFlows
// @Produce		json
// @Success		201			{object}	CashFlowResponse
// @Failure		400			{object}	CashFlowResponse
// @Failure		403			{object}	CashFlowResponse
// @Failure		404			{object}	CashFlowResponse
// @Failure		500			{object}	CashFlowResponse
// @Param			cashflow	body		CashFlowEditable	true	"CashFlow"
// @Router			/v1/cashflows [post]
func CreateCashFlow(c *gin.Context) {
	var editable CashFlowEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	err = checkLineReferences(c, editable.Transactions)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	cashFlow := editable.model()
	cashFlow.UserID, _ = identity.UserID(c)

	err = models.CreateCashFlow(models.DB, &cashFlow, editable.lines())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	lines, err := cashFlow.Lines(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	data := newCashFlow(c, cashFlow, lines)
	c.JSON(http.StatusCreated, CashFlowResponse{Data: &data})
}

// @Summary		Get cash flow
// @Description	Returns a specific cash flow with all its lines
// @Tags			CashFlows
// @Produce		json
// @Success		200	{object}	CashFlowResponse
// @Failure		400	{object}	CashFlowResponse
// @Failure		403	{object}	CashFlowResponse
// @Failure		404	{object}	CashFlowResponse
// @Failure		500	{object}	CashFlowResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cashflows/{id} [get]
func GetCashFlow(c *gin.Context) {
	cashFlow, err := getResource[models.CashFlow](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	lines, err := cashFlow.Lines(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	data := newCashFlow(c, cashFlow, lines)
	c.JSON(http.StatusOK, CashFlowResponse{Data: &data})
}

// @Summary		Update cash flow
// @Description	Updates the cash flow and replaces all of its lines with the ones from the request body
// @Tags			CashFlows
// @Accept			json
// @Produce		json
// @Success		200			{object}	CashFlowResponse
// @Failure		400			{object}	CashFlowResponse
// @Failure		403			{object}	CashFlowResponse
// @Failure		404			{object}	CashFlowResponse
// @Failure		500			{object}	CashFlowResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			cashflow	body		CashFlowEditable	true	"CashFlow"
// @Router			/v1/cashflows/{id} [patch]
func UpdateCashFlow(c *gin.Context) {
	cashFlow, err := getResource[models.CashFlow](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CashFlowEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	// The lines are replaced explicitly, they are not a column
	headerFields := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field != "Transactions" {
			headerFields = append(headerFields, field)
		}
	}

	update := CashFlowEditable{
		Date:      cashFlow.Date,
		Reference: cashFlow.Reference,
		Note:      cashFlow.Note,
	}
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	err = checkLineReferences(c, update.Transactions)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	err = models.UpdateCashFlow(models.DB, &cashFlow, update.model(), headerFields, update.lines())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	lines, err := cashFlow.Lines(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	data := newCashFlow(c, cashFlow, lines)
	c.JSON(http.StatusOK, CashFlowResponse{Data: &data})
}

// @Summary		Delete cash flow
// @Description	Deletes a cash flow with all its lines and reverses their effect on the account balances
// @Tags			CashFlows
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cashflows/{id} [delete]
func DeleteCashFlow(c *gin.Context) {
	cashFlow, err := getResource[models.CashFlow](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteCashFlow(models.DB, &cashFlow)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The blob is only removed after the database transaction committed so
	// that a failed deletion does not lose the attachment
	if cashFlow.Attachment != "" {
		err = attachments.Delete(cashFlow.Attachment)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get attachment
// @Description	Downloads the attachment of the cash flow
// @Tags			CashFlows
// @Produce		application/octet-stream
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cashflows/{id}/attachment [get]
func GetCashFlowAttachment(c *gin.Context) {
	cashFlow, err := getResource[models.CashFlow](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if cashFlow.Attachment == "" {
		c.JSON(http.StatusNotFound, httpError{
			Error: storage.ErrNotFound.Error(),
		})
		return
	}

	file, err := attachments.Open(cashFlow.Attachment)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", `attachment; filename="`+cashFlow.Attachment+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

// @Summary		Upload attachment
// @Description	Uploads an attachment for the cash flow, replacing an existing one
// @Tags			CashFlows
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	CashFlowResponse
// @Failure		400		{object}	CashFlowResponse
// @Failure		403		{object}	CashFlowResponse
// @Failure		404		{object}	CashFlowResponse
// @Failure		500		{object}	CashFlowResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			file	formData	file	true	"The file to upload"
// @Router			/v1/cashflows/{id}/attachment [post]
func UploadCashFlowAttachment(c *gin.Context) {
	cashFlow, err := getResource[models.CashFlow](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	formFile, err := c.FormFile("file")
	if formFile == nil {
		err = errNoFilePost
	}
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CashFlowResponse{
			Error: &e,
		})
		return
	}

	if !storage.ContentTypeAllowed(formFile.Header.Get("Content-Type")) {
		e := storage.ErrContentTypeNotAllowed.Error()
		c.JSON(http.StatusBadRequest, CashFlowResponse{
			Error: &e,
		})
		return
	}

	file, err := formFile.Open()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CashFlowResponse{
			Error: &e,
		})
		return
	}
	defer file.Close()

	// The new blob is written before the database update so that the
	// stored path always points to an existing file
	path, err := attachments.Save(file, formFile.Filename)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, CashFlowResponse{
			Error: &e,
		})
		return
	}

	old := cashFlow.Attachment
	err = models.DB.Model(&cashFlow).Select("Attachment").Updates(models.CashFlow{Attachment: path}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	// The old blob is only removed after the database update committed
	if old != "" && old != path {
		err = attachments.Delete(old)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusInternalServerError, CashFlowResponse{
				Error: &e,
			})
			return
		}
	}

	lines, err := cashFlow.Lines(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CashFlowResponse{
			Error: &e,
		})
		return
	}

	data := newCashFlow(c, cashFlow, lines)
	c.JSON(http.StatusOK, CashFlowResponse{Data: &data})
}
