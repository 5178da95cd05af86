package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/storage"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(page, limit int, search string) ([]*Employee, int64, error)
	GetByID(id int64) (*Employee, error)
	Create(dto CreateEmployeeDTO) (*Employee, error)
	Update(id int64, dto UpdateEmployeeDTO) (*Employee, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Photos  storage.Storage
}

func NewHandler(service ServiceAPI, photos storage.Storage) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
		Photos:      photos,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	search := r.URL.Query().Get("search")

	employees, total, err := h.Service.List(page, limit, search)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WritePage(w, "Employees fetched successfully", employees, transport.NewMeta(page, limit, total))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	emp, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee fetched successfully", emp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO

	if isMultipart(r) {
		parsed, err := h.parseCreateForm(w, r)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		dto = parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	emp, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Employee created successfully", emp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO

	if isMultipart(r) {
		parsed, err := h.parseUpdateForm(w, r)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		dto = parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	emp, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee updated successfully", emp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee deleted successfully", nil)
}

// parseCreateForm reads the recognized creation fields and the optional
// photo from a multipart form. Unknown keys are ignored.
func (h *Handler) parseCreateForm(w http.ResponseWriter, r *http.Request) (CreateEmployeeDTO, error) {
	var dto CreateEmployeeDTO

	if err := parseMultipart(w, r); err != nil {
		return dto, err
	}

	dto.Name = r.FormValue("name")
	dto.Designation = r.FormValue("designation")
	dto.HiringDate = r.FormValue("hiring_date")
	dto.DateOfBirth = r.FormValue("date_of_birth")

	if v := r.FormValue("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return dto, internal.NewValidationError("Age must be a number")
		}
		dto.Age = &age
	}

	if v := r.FormValue("salary"); v != "" {
		salary, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return dto, internal.NewValidationError("Salary must be a number")
		}
		dto.Salary = &salary
	}

	photoPath, err := h.savePhoto(r)
	if err != nil {
		return dto, err
	}
	dto.PhotoPath = photoPath

	return dto, nil
}

// parseUpdateForm reads only the keys present in the form, so absent fields
// stay untouched by the partial update.
func (h *Handler) parseUpdateForm(w http.ResponseWriter, r *http.Request) (UpdateEmployeeDTO, error) {
	var dto UpdateEmployeeDTO

	if err := parseMultipart(w, r); err != nil {
		return dto, err
	}

	if v, ok := formValue(r, "name"); ok {
		dto.Name = &v
	}
	if v, ok := formValue(r, "designation"); ok {
		dto.Designation = &v
	}
	if v, ok := formValue(r, "hiring_date"); ok {
		dto.HiringDate = &v
	}
	if v, ok := formValue(r, "date_of_birth"); ok {
		dto.DateOfBirth = &v
	}
	if v, ok := formValue(r, "age"); ok {
		age, err := strconv.Atoi(v)
		if err != nil {
			return dto, internal.NewValidationError("Age must be a number")
		}
		dto.Age = &age
	}
	if v, ok := formValue(r, "salary"); ok {
		salary, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return dto, internal.NewValidationError("Salary must be a number")
		}
		dto.Salary = &salary
	}

	photoPath, err := h.savePhoto(r)
	if err != nil {
		return dto, err
	}
	dto.PhotoPath = photoPath

	return dto, nil
}

// savePhoto persists an uploaded photo, if any, and returns its reference.
func (h *Handler) savePhoto(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, internal.NewValidationError("Invalid photo upload")
	}
	defer file.Close()

	if header.Size > storage.MaxUploadBytes {
		return nil, storage.ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if _, ok := storage.ExtensionFor(contentType); !ok {
		return nil, storage.ErrUnsupportedType
	}

	ref, err := h.Photos.Save(r.Context(), contentType, file)
	if err != nil {
		h.Logger.Error("failed to store photo", "error", err)
		return nil, err
	}

	return &ref, nil
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		return internal.NewValidationError("Photo must be at most 5MB")
	}
	return nil
}

func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
