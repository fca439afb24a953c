package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efactura/internal/server"
	"github.com/rezonia/efactura/internal/ubl"
)

const invoiceJSON = `{
	"number": "FCT-0001",
	"issueDate": "2024-03-15",
	"supplier": {
		"registrationName": "Alfa Soft SRL",
		"companyId": "RO18547290",
		"isVatPayer": true,
		"address": {"street": "Str. Lunga 1", "city": "Sector 3", "county": "Bucuresti", "postalCode": "030001", "country": "Romania"}
	},
	"customer": {"registrationName": "Beta SA", "companyId": "14399840"},
	"lines": [
		{"name": "Consultanta", "quantity": 2, "unitPrice": 10.345, "taxPercent": 19},
		{"name": "Licenta", "quantity": 1, "unitPrice": 50, "taxPercent": 19},
		{"name": "Transport", "quantity": 3, "unitPrice": 0, "taxPercent": 0}
	]
}`

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Logger:  zerolog.Nop(),
	}
	return server.NewServer(config)
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestRequestID(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodGet, "/health", "")
	_, err := uuid.Parse(w.Header().Get(server.HeaderRequestID))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.HeaderRequestID, id)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(server.HeaderRequestID))
}

func TestRequestID_PipelineLogs(t *testing.T) {
	var buf bytes.Buffer
	srv := server.NewServer(&server.Config{Logger: zerolog.New(&buf)})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/xml", strings.NewReader(invoiceJSON))
	req.Header.Set(server.HeaderRequestID, id)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var pipelineLines int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["component"] == "pipeline" {
			pipelineLines++
			assert.Equal(t, id, entry["request_id"])
		}
	}
	assert.Positive(t, pipelineLines)
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", invoiceJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	summary, err := ubl.ParseSummary(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "FCT-0001", summary.ID)
	assert.Equal(t, "RO-B", summary.Supplier.Subdivision)
	assert.Equal(t, "SECTOR3", summary.Supplier.City)
	assert.Equal(t, "84.12", summary.Totals.PayableAmount)
}

func TestGenerateEndpoint_JSONFormat(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml?format=json", invoiceJSON)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, strings.HasPrefix(response.XML, "<?xml"))
	assert.Equal(t, "70.69", response.Totals.TaxableAmount)
	assert.Equal(t, "13.43", response.Totals.TaxAmount)
	assert.Equal(t, "84.12", response.Totals.TaxInclusiveAmount)
	assert.Equal(t, "84.12", response.Totals.PayableAmount)
}

func TestGenerateEndpoint_Warnings(t *testing.T) {
	srv := newTestServer()

	body := strings.Replace(invoiceJSON, `"companyId": "14399840"`, `"companyId": "HU12345678"`, 1)
	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Values(server.HeaderWarning), 1)
}

func TestGenerateEndpoint_ValidationError(t *testing.T) {
	srv := newTestServer()

	body := strings.Replace(invoiceJSON, `"postalCode": "030001"`, `"postalCode": ""`, 1)
	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Supplier postal code is required", response.Error)
	assert.Equal(t, "supplier.address.postalCode", response.Field)
}

func TestGenerateEndpoint_BadJSON(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/validate", invoiceJSON)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Valid)
	assert.Empty(t, response.Errors)
}

func TestValidateEndpoint_Invalid(t *testing.T) {
	srv := newTestServer()

	body := strings.Replace(invoiceJSON, `"quantity": 1,`, `"quantity": "one",`, 1)
	w := do(t, srv, http.MethodPost, "/api/v1/invoices/validate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "Line 2: quantity must be a number", response.Errors[0].Message)
	assert.Equal(t, 2, response.Errors[0].Line)
	assert.Equal(t, "lines[1].quantity", response.Errors[0].Field)
}

func TestValidateEndpoint_NotJSON(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/validate", "<Invoice/>")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInspectEndpoint(t *testing.T) {
	srv := newTestServer()

	gen := do(t, srv, http.MethodPost, "/api/v1/invoices/xml", invoiceJSON)
	require.Equal(t, http.StatusOK, gen.Code)

	w := do(t, srv, http.MethodPost, "/api/v1/invoices/inspect", gen.Body.String())
	require.Equal(t, http.StatusOK, w.Code)

	var summary ubl.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "FCT-0001", summary.ID)
	assert.Equal(t, 3, summary.LineCount)
	require.Len(t, summary.Subtotals, 2)
	assert.Equal(t, "S", summary.Subtotals[0].Category)

	w = do(t, srv, http.MethodPost, "/api/v1/invoices/inspect", `<?xml version="1.0"?><Order/>`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, srv, http.MethodPost, "/api/v1/invoices/inspect", "hello")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeIdentifierEndpoint(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		value   string
		want    string
		kind    string
		valid   bool
		country string
	}{
		{"18547290", "RO18547290", "CUI", true, "Romania"},
		{"1800101221144", "1800101221144", "CNP", true, ""},
		{"RO12345678", "RO12345678", "unknown", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/v1/identifiers/normalize", `{"value": "`+tt.value+`"}`)
			require.Equal(t, http.StatusOK, w.Code)

			var response server.IdentifierResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.want, response.Normalized)
			assert.Equal(t, tt.kind, response.Kind)
			assert.Equal(t, tt.valid, response.Valid)
			assert.Equal(t, tt.country, response.Country)
		})
	}

	w := do(t, srv, http.MethodPost, "/api/v1/identifiers/normalize", `{"value": " "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeAddressEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/addresses/normalize",
		`{"street": "Bd. Unirii 1", "city": "Sectorul 4", "county": "Mun. Bucuresti", "postalCode": "040001", "country": "România"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.AddressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "RO", response.CountryCode)
	assert.Equal(t, "RO-B", response.Subdivision)
	assert.True(t, response.SubdivisionResolved)
	assert.Equal(t, "SECTOR4", response.City)
	assert.Equal(t, "SECTOR4", response.Sector)
	assert.True(t, response.Domestic)

	w = do(t, srv, http.MethodPost, "/api/v1/addresses/normalize",
		`{"city": "Wien", "county": "Wien", "companyId": "ATU12345678"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var foreign server.AddressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &foreign))
	assert.Equal(t, "AT", foreign.CountryCode)
	assert.Equal(t, "Wien", foreign.Subdivision)
	assert.False(t, foreign.SubdivisionResolved)
	assert.False(t, foreign.Domestic)
}

func TestNormalizeAddressEndpoint_CountryFromIdentifier(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/addresses/normalize",
		`{"city": "Cluj-Napoca", "county": "jud. Cluj", "companyId": "RO14399840"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.AddressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "RO", response.CountryCode)
	assert.Equal(t, "RO-CJ", response.Subdivision)
	assert.True(t, response.Domestic)
}

func TestMetricsEndpoint_BoundedFieldLabels(t *testing.T) {
	srv := newTestServer()

	for _, line := range []int{0, 1, 2} {
		var input map[string]any
		require.NoError(t, json.Unmarshal([]byte(invoiceJSON), &input))
		input["lines"].([]any)[line].(map[string]any)["name"] = ""
		body, err := json.Marshal(input)
		require.NoError(t, err)

		w := do(t, srv, http.MethodPost, "/api/v1/invoices/validate", string(body))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `efactura_validation_failures_total{field="lines[].name"} 3`)
	assert.NotContains(t, w.Body.String(), `lines[1]`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer()

	do(t, srv, http.MethodPost, "/api/v1/invoices/xml", invoiceJSON)

	w := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `efactura_documents_total{outcome="generated"} 1`)
}
