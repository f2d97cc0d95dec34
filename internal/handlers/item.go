package handlers

import (
	"ItemsAPI/internal/middleware"
	"ItemsAPI/internal/model"
	"ItemsAPI/internal/service"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ItemHandler обслуживает CRUD-маршруты /items.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

// listParams — query-параметры списка
type listParams struct {
	Skip  int `json:"skip" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0"`
}

// Create POST /items/
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Create", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.ToItemOut(it))
}

// List GET /items/?skip=&limit=
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	p := listParams{Skip: service.DefaultSkip, Limit: service.DefaultLimit}
	var issues []ValidationIssue
	q := r.URL.Query()
	for _, f := range []struct {
		name string
		dst  *int
	}{{"skip", &p.Skip}, {"limit", &p.Limit}} {
		if !q.Has(f.name) {
			continue
		}
		v, err := strconv.Atoi(q.Get(f.name))
		if err != nil {
			issues = append(issues, intParsingIssue("query", f.name))
			continue
		}
		*f.dst = v
	}
	if len(issues) == 0 {
		if err := validate.Struct(p); err != nil {
			issues = validationIssues(err, "query", nil)
		}
	}
	if len(issues) > 0 {
		h.Logger.Debugw("List: invalid query", "query", r.URL.RawQuery, "request_id", middleware.GetRequestID(r.Context()))
		writeValidation(w, issues)
		return
	}

	items, err := h.ItemService.List(r.Context(), p.Skip, p.Limit)
	if err != nil {
		h.fail(w, r, "List", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ToItemOuts(items))
}

// Get GET /items/{item_id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Get", id, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ToItemOut(it))
}

// Update PUT /items/{item_id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, "Update", id, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ToItemOut(it))
}

// Delete DELETE /items/{item_id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Delete", id, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ToItemOut(it))
}

// itemID разбирает {item_id} из пути; при ошибке уже ответил 422.
func (h *ItemHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "item_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Debugw("invalid item_id", "value", raw, "request_id", middleware.GetRequestID(r.Context()))
		writeValidation(w, []ValidationIssue{intParsingIssue("path", "item_id")})
		return 0, false
	}
	return id, true
}

// decodeItem читает и валидирует тело {name, description?}; при ошибке уже ответил.
func (h *ItemHandler) decodeItem(w http.ResponseWriter, r *http.Request) (model.ItemCreate, bool) {
	var in model.ItemCreate

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
			return in, false
		}
		h.Logger.Warnw("failed to read request body", "error", err)
		writeValidation(w, []ValidationIssue{{Type: "json_invalid", Loc: []any{"body"}, Msg: "JSON decode error"}})
		return in, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeValidation(w, []ValidationIssue{missingIssue("body")})
		return in, false
	}

	var issues []ValidationIssue
	reported := map[string]bool{}
	if err := json.Unmarshal(body, &in); err != nil {
		issue, fatal := decodeIssue(err)
		issues = append(issues, issue)
		if fatal {
			writeValidation(w, issues)
			return in, false
		}
		if len(issue.Loc) > 1 {
			if field, ok := issue.Loc[1].(string); ok {
				reported[field] = true
			}
		}
	}
	if err := validate.Struct(in); err != nil {
		issues = append(issues, validationIssues(err, "body", reported)...)
	}
	if len(issues) > 0 {
		h.Logger.Debugw("invalid item body", "issues", len(issues), "request_id", middleware.GetRequestID(r.Context()))
		writeValidation(w, issues)
		return in, false
	}
	return in, true
}

// decodeIssue переводит ошибку json-декодера в ValidationIssue.
// fatal=true — тело не разобрано вовсе, проверять поля дальше нет смысла.
func decodeIssue(err error) (ValidationIssue, bool) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return ValidationIssue{Type: "json_invalid", Loc: []any{"body", syntaxErr.Offset}, Msg: "JSON decode error"}, true
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return ValidationIssue{
				Type: "model_attributes_type",
				Loc:  []any{"body"},
				Msg:  "Input should be a valid dictionary or object to extract fields from",
			}, true
		}
		issue := ValidationIssue{Type: "type_error", Loc: []any{"body", typeErr.Field}, Msg: "Input has an invalid type"}
		if typeErr.Type != nil && derefKind(typeErr.Type) == reflect.String {
			issue.Type = "string_type"
			issue.Msg = "Input should be a valid string"
		}
		return issue, false
	default:
		return ValidationIssue{Type: "json_invalid", Loc: []any{"body"}, Msg: "JSON decode error"}, true
	}
}

func derefKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind()
}

// fail отвечает на ошибку сервиса: not found — 404, остальное — 500 без деталей.
func (h *ItemHandler) fail(w http.ResponseWriter, r *http.Request, op string, id int64, err error) {
	if errors.Is(err, service.ErrItemNotFound) {
		h.Logger.Debugw(op+": item not found", "id", id, "request_id", middleware.GetRequestID(r.Context()))
		writeDetail(w, http.StatusNotFound, detailItemNotFound)
		return
	}
	h.Logger.Errorw(op+": service error", "id", id, "error", err, "request_id", middleware.GetRequestID(r.Context()))
	writeDetail(w, http.StatusInternalServerError, detailInternal)
}
