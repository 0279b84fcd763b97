package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/router"
	"github.com/cashfolio/backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	routerOnce sync.Once
	testRouter *gin.Engine
	routerErr  error
)

// engine builds the full router exactly once per test binary. The
// Prometheus collectors register with the default registry, so the
// router cannot be rebuilt per request.
func engine(t *testing.T) *gin.Engine {
	routerOnce.Do(func() {
		ensureSecret()

		dir, err := os.MkdirTemp("", "attachments")
		if err != nil {
			routerErr = err
			return
		}

		attachments, err := storage.NewLocalService(dir)
		if err != nil {
			routerErr = err
			return
		}

		r, _, err := router.Config()
		if err != nil {
			routerErr = err
			return
		}

		router.AttachRoutes(r.Group("/"), attachments)
		testRouter = r
	})

	require.Nil(t, routerErr, "Router could not be initialized")
	return testRouter
}

// ensureSecret sets a signing secret when the environment has none so
// that tokens can be minted and verified.
func ensureSecret() {
	if _, ok := os.LookupEnv("IDENTITY_SECRET"); !ok {
		os.Setenv("IDENTITY_SECRET", "test-secret")
	}
}

// Token returns an Authorization header map for the user with the
// passed ID.
func Token(t *testing.T, userID uuid.UUID) map[string]string {
	ensureSecret()

	token, err := identity.Mint(userID, time.Hour)
	require.Nil(t, err, "Token could not be minted")

	return map[string]string{"Authorization": "Bearer " + token}
}

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	// If the body is a string, convert it to bytes
	if body == nil {
		byteBuffer = bytes.NewBuffer(nil)
	} else if reflect.TypeOf(body).Kind() == reflect.String {
		byteBuffer = bytes.NewBufferString(body.(string))
	} else if reflect.TypeOf(body).Kind() == reflect.Struct || reflect.TypeOf(body).Kind() == reflect.Map || reflect.TypeOf(body).Kind() == reflect.Slice {
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	} else {
		// Assume we got sent a *bytes.Buffer for e.g. a file
		byteBuffer = body.(*bytes.Buffer)
	}

	r := engine(t)

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}
