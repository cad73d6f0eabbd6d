package flags

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/de-tools/risk-flags/pkg/models/api"
	"github.com/de-tools/risk-flags/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Evaluate(doc *domain.FinancialStatementSet) map[string]domain.Flag {
	args := m.Called(doc)
	return args.Get(0).(map[string]domain.Flag)
}

func (m *mockEngine) Explain(doc *domain.FinancialStatementSet) domain.Evaluation {
	args := m.Called(doc)
	return args.Get(0).(domain.Evaluation)
}

func (m *mockEngine) Rules() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

const standaloneDoc = `{"data": {"financials": [{"nature": "STANDALONE", "pnl": {"lineItems": [{"name": "Net Revenue", "value": 60000000}]}}]}}`

var greenFlags = map[string]domain.Flag{
	"iscr_flag":                 domain.FlagGreen,
	"total_revenue_5cr_flag":    domain.FlagGreen,
	"borrowing_to_revenue_flag": domain.FlagWhite,
}

func hasStatements(n int) interface{} {
	return mock.MatchedBy(func(doc *domain.FinancialStatementSet) bool {
		return doc != nil && len(doc.Financials) == n
	})
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" || content != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name             string
		filename         string
		content          string
		setupMock        func(*mockEngine)
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:     "evaluates and redirects to result",
			filename: "company.json",
			content:  standaloneDoc,
			setupMock: func(m *mockEngine) {
				m.On("Evaluate", hasStatements(1)).Return(greenFlags)
			},
			expectedStatus: http.StatusSeeOther,
			expectedLocation: "/result?" + url.Values{
				"result": {`{"borrowing_to_revenue_flag":4,"iscr_flag":1,"total_revenue_5cr_flag":1}`},
			}.Encode(),
		},
		{
			name:             "missing file redirects home",
			setupMock:        func(m *mockEngine) {},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/",
		},
		{
			name:             "empty filename redirects home",
			filename:         "",
			content:          standaloneDoc,
			setupMock:        func(m *mockEngine) {},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/",
		},
		{
			name:           "document without financials",
			filename:       "company.json",
			content:        `{"data": {}}`,
			setupMock:      func(m *mockEngine) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(mockEngine)
			tt.setupMock(engine)
			handler := NewHandler(engine, 0)

			body, contentType := multipartBody(t, tt.filename, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/submit", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.Submit(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rec.Header().Get("Location"))
			}
			engine.AssertExpectations(t)
		})
	}
}

func TestResult(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		contains       []string
	}{
		{
			name:           "renders flags",
			query:          "?" + url.Values{"result": {`{"iscr_flag":1,"borrowing_to_revenue_flag":4}`}}.Encode(),
			expectedStatus: http.StatusOK,
			contains:       []string{"iscr_flag", "GREEN (1)", "borrowing_to_revenue_flag", "WHITE (4)", "Data missing"},
		},
		{
			name:           "no result parameter",
			query:          "",
			expectedStatus: http.StatusOK,
			contains:       []string{"No flags to show."},
		},
		{
			name:           "malformed result parameter",
			query:          "?result=not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(new(mockEngine), 0)
			req := httptest.NewRequest(http.MethodGet, "/result"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.Result(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	handler := NewHandler(new(mockEngine), 2<<20)
	rec := httptest.NewRecorder()

	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/submit"`)
	assert.Contains(t, rec.Body.String(), "up to 2 MB")
}

func TestEvaluate(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("Evaluate", hasStatements(1)).Return(greenFlags)
		handler := NewHandler(engine, 0)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(standaloneDoc))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Evaluate(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response api.Flags
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, api.Flags{
			"iscr_flag":                 1,
			"total_revenue_5cr_flag":    1,
			"borrowing_to_revenue_flag": 4,
		}, response)
		engine.AssertExpectations(t)
	})

	t.Run("multipart upload with explain", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("Explain", hasStatements(1)).Return(domain.Evaluation{
			Nature: "STANDALONE",
			Indicators: []domain.Indicator{
				{Name: "total_revenue_5cr_flag", Flag: domain.FlagGreen, Value: 60_000_000, Threshold: 50_000_000},
			},
		})
		handler := NewHandler(engine, 0)

		body, contentType := multipartBody(t, "company.yaml", "financials:\n  - nature: STANDALONE\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate?explain=true", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Evaluate(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response api.Evaluation
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "STANDALONE", response.Nature)
		assert.Equal(t, api.Flags{"total_revenue_5cr_flag": 1}, response.Flags)
		require.Len(t, response.Indicators, 1)
		assert.Equal(t, "GREEN", response.Indicators[0].Label)
		engine.AssertExpectations(t)
	})

	t.Run("hjson body via format parameter", func(t *testing.T) {
		engine := new(mockEngine)
		engine.On("Evaluate", hasStatements(0)).Return(map[string]domain.Flag{})
		handler := NewHandler(engine, 0)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate?format=hjson", strings.NewReader("{\n  financials: []\n}"))
		rec := httptest.NewRecorder()

		handler.Evaluate(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		engine.AssertExpectations(t)
	})

	tests := []struct {
		name           string
		path           string
		body           string
		maxBytes       int64
		expectedStatus int
	}{
		{name: "missing financials", path: "/api/v1/evaluate", body: `{"company": "acme"}`, expectedStatus: http.StatusBadRequest},
		{name: "empty body", path: "/api/v1/evaluate", body: "", expectedStatus: http.StatusBadRequest},
		{name: "unsupported format", path: "/api/v1/evaluate?format=xml", body: standaloneDoc, expectedStatus: http.StatusBadRequest},
		{name: "body too large", path: "/api/v1/evaluate", body: standaloneDoc, maxBytes: 16, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(mockEngine)
			handler := NewHandler(engine, tt.maxBytes)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Evaluate(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var response api.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.NotEmpty(t, response.Error)
			engine.AssertNotCalled(t, "Evaluate", mock.Anything)
		})
	}
}

func TestListRules(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Rules").Return([]string{"iscr_flag", "total_revenue_5cr_flag", "borrowing_to_revenue_flag"})
	handler := NewHandler(engine, 0)

	rec := httptest.NewRecorder()
	handler.ListRules(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.RulesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"iscr_flag", "total_revenue_5cr_flag", "borrowing_to_revenue_flag"}, response.Rules)
	assert.Len(t, response.Legend, 5)
	engine.AssertExpectations(t)
}
