package v1

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"
)

// decodeProductInput reads a product body and checks field presence and JSON
// types. Range checks belong to the usecase.
func decodeProductInput(r io.Reader) (domain.ProductInput, error) {
	var body map[string]any
	if err := utils.DecodeJSON(r, &body); err != nil {
		if errors.Is(err, utils.ErrEmptyBody) {
			return domain.ProductInput{}, domain.NewInvalidInputError("Request body is required")
		}
		return domain.ProductInput{}, domain.NewInvalidInputError("Invalid request body")
	}
	if body == nil {
		return domain.ProductInput{}, domain.NewInvalidInputError("Invalid request body")
	}

	var (
		in       domain.ProductInput
		problems []string
	)

	switch v := body["name"].(type) {
	case string:
		in.Name = v
	case nil:
		problems = append(problems, fieldProblem("name", "Required"))
	default:
		problems = append(problems, fieldProblem("name", expected("string", v)))
	}

	switch v := body["price"].(type) {
	case float64:
		in.Price = v
	case nil:
		problems = append(problems, fieldProblem("price", "Required"))
	default:
		problems = append(problems, fieldProblem("price", expected("number", v)))
	}

	switch v := body["quantity"].(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			problems = append(problems, fieldProblem("quantity", "Expected integer, received float"))
			break
		}
		in.Quantity = int(v)
	case nil:
		problems = append(problems, fieldProblem("quantity", "Required"))
	default:
		problems = append(problems, fieldProblem("quantity", expected("number", v)))
	}

	if len(problems) > 0 {
		return domain.ProductInput{}, domain.NewInvalidInputError("%s", strings.Join(problems, ","))
	}
	return in, nil
}

func fieldProblem(field, msg string) string {
	return fmt.Sprintf("%s -> %s", field, msg)
}

func expected(want string, got any) string {
	return fmt.Sprintf("Expected %s, received %s", want, jsonType(got))
}

func jsonType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "null"
}
