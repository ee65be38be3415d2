package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// Address is the provider-independent result of a CEP lookup.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Provider     string `json:"provider"`
}

// ErrCepNotFound is returned when no provider recognizes the postal code.
var ErrCepNotFound = fmt.Errorf("cep not found")

var cepPattern = regexp.MustCompile(`^[0-9]{8}$`)

// viaCepResponse mirrors the primary provider's payload. The provider
// answers 200 with {"erro": true} for unknown codes.
type viaCepResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// brasilApiResponse mirrors the fallback provider's payload.
type brasilApiResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// LookupCEP resolves a Brazilian postal code, trying the primary provider
// first and falling back to the secondary on failure. A code neither
// provider recognizes yields ErrCepNotFound.
func LookupCEP(cep string) (*Address, error) {
	if !cepPattern.MatchString(cep) {
		return nil, fmt.Errorf("invalid cep %q: must be 8 digits", cep)
	}

	client := resty.New()

	addr, err := lookupPrimary(client, cep)
	if err == nil {
		return addr, nil
	}
	log.Printf("[CEP] Primary provider failed for %s: %v, trying fallback", cep, err)

	addr, err = lookupFallback(client, cep)
	if err != nil {
		log.Printf("[CEP] Fallback provider failed for %s: %v", cep, err)
		return nil, ErrCepNotFound
	}
	return addr, nil
}

func lookupPrimary(client *resty.Client, cep string) (*Address, error) {
	resp, err := client.R().Get(fmt.Sprintf("%s/%s/json/", config.AppConfig.CepPrimaryURL, cep))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("primary provider returned %d", resp.StatusCode())
	}

	var out viaCepResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, err
	}
	if out.Erro || out.CEP == "" {
		return nil, ErrCepNotFound
	}

	return &Address{
		CEP:          out.CEP,
		Street:       out.Logradouro,
		Neighborhood: out.Bairro,
		City:         out.Localidade,
		State:        out.UF,
		Provider:     "viacep",
	}, nil
}

func lookupFallback(client *resty.Client, cep string) (*Address, error) {
	resp, err := client.R().Get(fmt.Sprintf("%s/%s", config.AppConfig.CepFallbackURL, cep))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fallback provider returned %d", resp.StatusCode())
	}

	var out brasilApiResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, err
	}
	if out.CEP == "" {
		return nil, ErrCepNotFound
	}

	return &Address{
		CEP:          out.CEP,
		Street:       out.Street,
		Neighborhood: out.Neighborhood,
		City:         out.City,
		State:        out.State,
		Provider:     "brasilapi",
	}, nil
}
