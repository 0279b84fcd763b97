package v1_test

import (
	"net/http"

	v1 "github.com/cashfolio/backend/internal/controllers/v1"
	"github.com/cashfolio/backend/test"
	"github.com/stretchr/testify/assert"
)

// The API root is reachable without a token.
func (suite *TestSuiteStandard) TestGetRoot() {
	var response v1.RootResponse
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "http://example.com/v1/accounts", response.Links.Accounts)
	assert.Equal(suite.T(), "http://example.com/v1/categories", response.Links.Categories)
	assert.Equal(suite.T(), "http://example.com/v1/transactions", response.Links.Transactions)
	assert.Equal(suite.T(), "http://example.com/v1/cashflows", response.Links.CashFlows)
	assert.Equal(suite.T(), "http://example.com/v1/budgets", response.Links.Budgets)
	assert.Equal(suite.T(), "http://example.com/v1/dashboard", response.Links.Dashboard)
	assert.Equal(suite.T(), "http://example.com/v1/reports/transactions", response.Links.Reports)
}

func (suite *TestSuiteStandard) TestOptionsRoot() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
