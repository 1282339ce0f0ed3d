package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DoRequest executa a requisição e devolve o corpo e o status HTTP.
// Status diferente de 2xx não é tratado como erro: cada integrador interpreta o próprio payload de erro.
func DoRequest(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, redactURLError(req, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error reading response from %s: %w", req.URL.Path, err)
	}

	return data, resp.StatusCode, nil
}

func IsSuccessStatus(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// redactURLError remove a URL completa do erro de transporte. Query strings de integradores carregam
// access tokens e segredos de aplicativo, e o texto do erro acaba em logs e no histórico das execuções.
func redactURLError(req *http.Request, err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, urlErr.Err)
}
