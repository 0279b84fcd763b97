package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/cashfolio/backend/internal/controllers/v1"
	"github.com/cashfolio/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountsRequireAuthentication() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "http://example.com/v1/accounts"},
		{http.MethodPost, "http://example.com/v1/accounts"},
		{http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", uuid.New())},
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsOptions() {
	u := testUser(suite.T())

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/accounts", "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))

	account := createTestAccount(suite.T(), u, v1.AccountEditable{})
	r = test.Request(suite.T(), http.MethodOptions, account.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAccountCreate() {
	u := testUser(suite.T())

	account := createTestAccount(suite.T(), u, v1.AccountEditable{
		Name:           "Checking",
		InitialBalance: decimal.NewFromFloat(250.37),
		Note:           "My main account",
	})

	assert.Equal(suite.T(), "Checking", account.Data.Name)
	assert.True(suite.T(), account.Data.CurrentBalance.Equal(decimal.NewFromFloat(250.37)), "Current balance does not start at the initial balance: %s", account.Data.CurrentBalance)
	assert.Contains(suite.T(), account.Data.Links.Self, "/v1/accounts/")
}

func (suite *TestSuiteStandard) TestAccountCreateBrokenBody() {
	u := testUser(suite.T())

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", `{ broken`, u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountGetSingle() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing account", account.Data.ID.String(), http.StatusOK},
		{"No account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "", u.Headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountOwnership() {
	owner := testUser(suite.T())
	stranger := testUser(suite.T())

	account := createTestAccount(suite.T(), owner, v1.AccountEditable{})

	// Resources of other users are forbidden, not hidden
	r := test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "", stranger.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "", stranger.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	// They are also invisible in the list of the other user
	var list v1.AccountListResponse
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "", stranger.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Empty(suite.T(), list.Data)
}

func (suite *TestSuiteStandard) TestAccountsGetFiltered() {
	u := testUser(suite.T())

	_ = createTestAccount(suite.T(), u, v1.AccountEditable{Name: "Checking", Note: "daily driver"})
	_ = createTestAccount(suite.T(), u, v1.AccountEditable{Name: "Savings", Archived: true})
	_ = createTestAccount(suite.T(), u, v1.AccountEditable{Name: "Cash wallet"})

	tests := []struct {
		query string
		count int
	}{
		{"name=Checking", 1},
		{"name=check", 1},
		{"archived=true", 1},
		{"archived=false", 2},
		{"search=wallet", 1},
		{"note=daily", 1},
		{"", 3},
		{"limit=2", 2},
		{"offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			var list v1.AccountListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "", u.Headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &list)

			assert.Len(t, list.Data, tt.count, "Wrong number of accounts for query %q", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountUpdate() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{Name: "Checking", InitialBalance: decimal.NewFromFloat(100)})

	var updated v1.AccountResponse
	r := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"name": "Main checking",
	}, u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Main checking", updated.Data.Name)
	assert.True(suite.T(), updated.Data.CurrentBalance.Equal(decimal.NewFromFloat(100)))
}

func (suite *TestSuiteStandard) TestAccountUpdateInitialBalance() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{InitialBalance: decimal.NewFromFloat(100)})

	_ = createTestTransaction(suite.T(), u, v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromFloat(30),
	})

	var updated v1.AccountResponse
	r := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"initialBalance": "500",
	}, u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.CurrentBalance.Equal(decimal.NewFromFloat(470)), "Current balance was not recalculated: %s", updated.Data.CurrentBalance)
}

func (suite *TestSuiteStandard) TestAccountDelete() {
	u := testUser(suite.T())
	account := createTestAccount(suite.T(), u, v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	u := testUser(suite.T())

	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
