package attendance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/reports"
	"github.com/frahmantamala/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(filters ListFilters) ([]*Attendance, int64, error)
	GetByID(id int64) (*Attendance, error)
	Create(dto CreateAttendanceDTO) (*Attendance, error)
	Update(id int64, dto UpdateAttendanceDTO) (*Attendance, error)
	Delete(id int64) error
	MonthlyReport(month string, employeeID *int64) ([]*ReportRow, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Date:  r.URL.Query().Get("date"),
		From:  r.URL.Query().Get("from"),
		To:    r.URL.Query().Get("to"),
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 10),
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "Invalid employee ID")
			return
		}
		filters.EmployeeID = &id
	}

	records, total, err := h.Service.List(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WritePage(w, "Attendance records fetched successfully", records, transport.NewMeta(filters.Page, filters.Limit, total))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid attendance ID")
		return
	}

	att, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record fetched successfully", att)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	att, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Attendance recorded successfully", att)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid attendance ID")
		return
	}

	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	att, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record updated successfully", att)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid attendance ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record deleted successfully", nil)
}

func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, employeeID, err := h.reportParams(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.MonthlyReport(month, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Monthly attendance report generated successfully", rows)
}

// ExportMonthlyReport streams the monthly report as an xlsx workbook.
func (h *Handler) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, employeeID, err := h.reportParams(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.MonthlyReport(month, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	export := make([]reports.AttendanceRow, 0, len(rows))
	for _, row := range rows {
		export = append(export, reports.AttendanceRow{
			EmployeeID:  row.EmployeeID,
			Name:        row.Name,
			DaysPresent: row.DaysPresent,
			TimesLate:   row.TimesLate,
		})
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-report-%s.xlsx"`, month))

	if err := reports.WriteAttendanceXLSX(w, month, export); err != nil {
		h.Logger.Error("failed to write xlsx report", "month", month, "error", err)
	}
}

func (h *Handler) reportParams(r *http.Request) (string, *int64, error) {
	month := r.URL.Query().Get("month")
	if err := ValidateMonth(month); err != nil {
		return "", nil, err
	}

	var employeeID *int64
	if v := r.URL.Query().Get("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", nil, internal.NewValidationError("Invalid employee ID")
		}
		employeeID = &id
	}

	return month, employeeID, nil
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
