package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lms/config"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}

func TestLookupCEPRejectsMalformedCode(t *testing.T) {
	_, err := LookupCEP("1234")
	require.Error(t, err)

	_, err = LookupCEP("12345-678")
	require.Error(t, err)
}

func TestLookupCEPPrimaryProvider(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`)
	}))
	defer primary.Close()

	config.AppConfig.CepPrimaryURL = primary.URL
	config.AppConfig.CepFallbackURL = "http://127.0.0.1:0"

	addr, err := LookupCEP("01310100")
	require.NoError(t, err)
	require.Equal(t, "São Paulo", addr.City)
	require.Equal(t, "SP", addr.State)
	require.Equal(t, "viacep", addr.Provider)
}

func TestLookupCEPFallsBackWhenPrimaryFails(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cep":"01310100","street":"Avenida Paulista","neighborhood":"Bela Vista","city":"São Paulo","state":"SP"}`)
	}))
	defer fallback.Close()

	config.AppConfig.CepPrimaryURL = primary.URL
	config.AppConfig.CepFallbackURL = fallback.URL

	addr, err := LookupCEP("01310100")
	require.NoError(t, err)
	require.Equal(t, "brasilapi", addr.Provider)
	require.Equal(t, "Avenida Paulista", addr.Street)
}

func TestLookupCEPFallsBackOnUnknownCode(t *testing.T) {
	// The primary answers 200 with an error flag for unknown codes.
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"erro":true}`)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cep":"99999999","street":"Rua X","city":"Y","state":"ZZ"}`)
	}))
	defer fallback.Close()

	config.AppConfig.CepPrimaryURL = primary.URL
	config.AppConfig.CepFallbackURL = fallback.URL

	addr, err := LookupCEP("99999999")
	require.NoError(t, err)
	require.Equal(t, "brasilapi", addr.Provider)
}

func TestLookupCEPNotFoundAnywhere(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"erro":true}`)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer fallback.Close()

	config.AppConfig.CepPrimaryURL = primary.URL
	config.AppConfig.CepFallbackURL = fallback.URL

	_, err := LookupCEP("00000000")
	require.ErrorIs(t, err, ErrCepNotFound)
}
