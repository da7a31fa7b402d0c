package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// renderErrors 测试用的最小错误输出
func renderErrors(c *gin.Context) {
	c.Next()
	if len(c.Errors) == 0 {
		return
	}
	be := response.AsBusinessError(c.Errors.Last().Err)
	c.JSON(be.Code.HTTPStatus(), response.ErrorResponse(be))
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(renderErrors)

	r.POST("/register", Validate(RuleRegister), func(c *gin.Context) {
		req := Value[dto.RegisterRequest](c, RuleRegister)
		c.JSON(http.StatusOK, gin.H{"username": req.User.Username})
	})
	r.PUT("/user", Validate(RuleAuthHeader, RuleUpdateUser), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/profile/:username", Validate(RuleGetProfile), func(c *gin.Context) {
		c.String(http.StatusOK, Value[dto.UsernameParams](c, RuleGetProfile).Username)
	})
	r.GET("/article", Validate(RuleListArticles), func(c *gin.Context) {
		limit, offset := Value[dto.ListArticlesQuery](c, RuleListArticles).Page()
		c.JSON(http.StatusOK, gin.H{"limit": limit, "offset": offset})
	})
	r.DELETE("/article/:slug/comment/:id", Validate(RuleCommentParams), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": Value[dto.CommentParams](c, RuleCommentParams).ID})
	})
	return r
}

type errorBody struct {
	Error response.ErrorDetail `json:"error"`
}

func perform(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var eb errorBody
	if w.Code >= 400 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eb))
	}
	return w, eb
}

func TestValidate_Body(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "valid register",
			body:       `{"user":{"email":"jake@jake.jake","username":"jake","password":"jakejakejake"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "user is required",
		},
		{
			name:       "missing email",
			body:       `{"user":{"username":"jake","password":"jakejakejake"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "user.email is required",
		},
		{
			name:       "bad email",
			body:       `{"user":{"email":"jake","username":"jake","password":"jakejakejake"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "user.email must be a valid email",
		},
		{
			name:       "short password",
			body:       `{"user":{"email":"jake@jake.jake","username":"jake","password":"short"}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "user.password must be at least 8 characters long",
		},
		{
			name:       "malformed json",
			body:       `{"user":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "request body must be a valid JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, eb := perform(t, r, http.MethodPost, "/register", tt.body, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, eb.Error.Message)
			}
		})
	}
}

func TestValidate_OrderAndHeader(t *testing.T) {
	r := newTestRouter()

	t.Run("header checked before body", func(t *testing.T) {
		w, eb := perform(t, r, http.MethodPut, "/user", `{}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", eb.Error.Kind)
		assert.Equal(t, "Authorization is required", eb.Error.Message)
	})

	t.Run("malformed header", func(t *testing.T) {
		w, eb := perform(t, r, http.MethodPut, "/user", `{}`, map[string]string{"Authorization": "Token abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, eb.Error.Message, "Bearer")
	})

	t.Run("update needs at least one field", func(t *testing.T) {
		w, eb := perform(t, r, http.MethodPut, "/user", `{"user":{}}`, map[string]string{"Authorization": "Bearer abc"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, eb.Error.Message, "at least one of")
	})

	t.Run("update with one field", func(t *testing.T) {
		w, _ := perform(t, r, http.MethodPut, "/user", `{"user":{"bio":"hi"}}`, map[string]string{"Authorization": "Bearer abc"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestValidate_ParamsAndQuery(t *testing.T) {
	r := newTestRouter()

	w, _ := perform(t, r, http.MethodGet, "/profile/jake", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jake", w.Body.String())

	w, _ = perform(t, r, http.MethodGet, "/article", "", nil)
	assert.JSONEq(t, `{"limit":20,"offset":0}`, w.Body.String())

	w, _ = perform(t, r, http.MethodGet, "/article?limit=5&offset=10", "", nil)
	assert.JSONEq(t, `{"limit":5,"offset":10}`, w.Body.String())

	w, eb := perform(t, r, http.MethodGet, "/article?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit must be greater than or equal to 1", eb.Error.Message)

	w, _ = perform(t, r, http.MethodGet, "/article?offset=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = perform(t, r, http.MethodDelete, "/article/my-title/comment/7", "", nil)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	w, _ = perform(t, r, http.MethodDelete, "/article/my-title/comment/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidate_UnknownRulePanics(t *testing.T) {
	assert.PanicsWithValue(t, `validation: unknown rule "regsiter"`, func() {
		Validate("regsiter")
	})
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(RuleLogin, Rule{Target: TargetBody, Schema: func() any { return &dto.LoginRequest{} }})
	})
}
