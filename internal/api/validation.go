package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// checkoutRequestSchema validates the transaction request body before any
// ledger access happens. The account field is the customer's base58 public
// key as provided by the wallet.
const checkoutRequestSchema = `{
	"type": "object",
	"properties": {
		"account": {
			"type": "string",
			"minLength": 32,
			"maxLength": 44
		}
	},
	"required": ["account"]
}`

var checkoutSchema = mustCompileSchema(checkoutRequestSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

type checkoutRequest struct {
	Account string `json:"account"`
}

// validateCheckoutRequest validates the raw request body against the schema
// and returns the account field. The error describes what failed; the public
// response is always the plain "missing account" rejection.
func validateCheckoutRequest(body []byte) (string, error) {
	result, err := checkoutSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return "", fmt.Errorf("invalid request body: %s", strings.Join(details, "; "))
	}

	var req checkoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	return req.Account, nil
}
