package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/calculator/calculate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req APIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(APIResponse{
			GrossSalary: req.GrossSalary,
			NetSalary:   req.GrossSalary - 3000,
			TaxBreakdown: APITaxBreakdown{
				IncomeTax:         1200,
				NationalInsurance: 800,
				HealthTax:         100,
				PensionEmployee:   900,
				TotalDeductions:   3000,
			},
			CreditPoints:     2.25,
			EffectiveTaxRate: 8,
		})
	})
	mux.HandleFunc("/api/v1/calculator/tax-brackets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tax_year":2025,"brackets":[{"min":0,"max":7010,"rate":0.1}]}`))
	})
	mux.HandleFunc("/api/v1/calculator/constants", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy","tax_years":[2024,2025]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCalculate(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", time.Second)
	assert.Equal(t, srv.URL, c.BaseURL())

	in := sampleInput()
	outcome, err := c.Calculate(context.Background(), in, asOf)
	require.NoError(t, err)
	require.NotNil(t, outcome.Single)
	r := outcome.Single
	assert.Equal(t, "15000", r.GrossSalary.String())
	assert.Equal(t, "12000", r.NetSalary.String())
	assert.Equal(t, "900", r.BituachLeumiEmployee.String(), "national insurance and health tax are combined")
	assert.Equal(t, "1200", r.FinalTax.String())
	assert.Len(t, r.Breakdown, 3)
	assert.NotEmpty(t, r.Warnings)

	_, err = c.Calculate(context.Background(), nil, asOf)
	assert.ErrorIs(t, err, ErrRemote)
}

func TestClientLookups(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, 0)

	brackets, err := c.TaxBrackets(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2025, brackets["tax_year"])

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, []int{2024, 2025}, health.TaxYears)

	_, err = c.Constants(context.Background())
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, "API Error: 500 Internal Server Error", err.Error())
}

func TestClientErrors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		_, err := NewClient(url, time.Second).Health(context.Background())
		assert.ErrorIs(t, err, ErrRemote)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClient(srv.URL, time.Second).Health(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()
		_, err := NewClient(srv.URL, time.Second).Health(context.Background())
		assert.ErrorIs(t, err, ErrRemote)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()
		_, err := NewClient(srv.URL, 20*time.Millisecond).Health(context.Background())
		assert.ErrorIs(t, err, ErrRemote)
	})
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
