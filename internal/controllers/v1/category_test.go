package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/cashfolio/backend/internal/controllers/v1"
	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryCreate() {
	u := testUser(suite.T())

	category := createTestCategory(suite.T(), u, v1.CategoryEditable{
		Name:  "Groceries",
		Kind:  models.CategoryKindExpense,
		Color: "#2da44e",
		Icon:  "shopping-cart",
	})

	assert.Equal(suite.T(), "Groceries", category.Data.Name)
	assert.Equal(suite.T(), models.CategoryKindExpense, category.Data.Kind)
	assert.Contains(suite.T(), category.Data.Links.Transactions, fmt.Sprintf("category=%s", category.Data.ID))
}

func (suite *TestSuiteStandard) TestCategoryCreateInvalidKind() {
	u := testUser(suite.T())

	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{
		Name: "Broken",
		Kind: "sideways",
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryDuplicateNameAndKind() {
	u := testUser(suite.T())

	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindExpense})
	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindExpense}, http.StatusBadRequest)

	// The same name with a different kind is allowed
	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindIncome})

	// Another user can reuse the name
	other := testUser(suite.T())
	_ = createTestCategory(suite.T(), other, v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindExpense})
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	u := testUser(suite.T())

	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Salary", Kind: models.CategoryKindIncome})
	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries", Kind: models.CategoryKindExpense})
	_ = createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Leisure", Kind: models.CategoryKindExpense, Archived: true})

	tests := []struct {
		query string
		count int
	}{
		{"kind=income", 1},
		{"kind=expense", 2},
		{"archived=true", 1},
		{"name=groc", 1},
		{"", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			var list v1.CategoryListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "", u.Headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &list)

			assert.Len(t, list.Data, tt.count, "Wrong number of categories for query %q", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{Name: "Groceries"})

	var updated v1.CategoryResponse
	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"note": "Everyday food",
	}, u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Everyday food", updated.Data.Note)

	// The kind is kept when it is not part of the update
	assert.Equal(suite.T(), models.CategoryKindExpense, updated.Data.Kind)
}

func (suite *TestSuiteStandard) TestCategoryDeleteInUse() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	_ = createTestTransaction(suite.T(), u, v1.TransactionEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(10),
	})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// Still there
	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCategoryDeleteUnused() {
	u := testUser(suite.T())
	category := createTestCategory(suite.T(), u, v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "", u.Headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
