package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Фиксированные тексты ошибок в поле detail.
const (
	detailItemNotFound     = "Item not found"
	detailNotFound         = "Not Found"
	detailMethodNotAllowed = "Method Not Allowed"
	detailInternal         = "Internal Server Error"
	detailTooLarge         = "Request Entity Too Large"
)

// ValidationIssue — одна ошибка валидации: где (loc), что (type) и человекочитаемое msg.
// loc начинается с источника: "body", "query" или "path".
type ValidationIssue struct {
	Type string `json:"type"`
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
}

// ValidationErrorResponse — тело ответа 422.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

// DetailResponse — тело остальных ошибок.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, DetailResponse{Detail: detail})
}

func writeValidation(w http.ResponseWriter, issues []ValidationIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: issues})
}

func missingIssue(loc ...any) ValidationIssue {
	return ValidationIssue{Type: "missing", Loc: loc, Msg: "Field required"}
}

func intParsingIssue(loc ...any) ValidationIssue {
	return ValidationIssue{
		Type: "int_parsing",
		Loc:  loc,
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
	}
}

// validate — общий экземпляр валидатора; имена полей берутся из json-тегов.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationIssues переводит ошибки validator в ValidationIssue с префиксом source.
// skip — поля, по которым ошибка уже есть (например, из json-декодера).
func validationIssues(err error, source string, skip map[string]bool) []ValidationIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationIssue{{Type: "value_error", Loc: []any{source}, Msg: err.Error()}}
	}
	issues := make([]ValidationIssue, 0, len(verrs))
	for _, fe := range verrs {
		if skip[fe.Field()] {
			continue
		}
		loc := []any{source, fe.Field()}
		switch fe.Tag() {
		case "required":
			issues = append(issues, missingIssue(loc...))
		case "gte":
			issues = append(issues, ValidationIssue{
				Type: "greater_than_equal",
				Loc:  loc,
				Msg:  "Input should be greater than or equal to " + fe.Param(),
			})
		default:
			issues = append(issues, ValidationIssue{Type: "value_error", Loc: loc, Msg: fe.Error()})
		}
	}
	return issues
}
