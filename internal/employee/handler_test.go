package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/transport"
)

// fakeStorage records saved photos without touching disk.
type fakeStorage struct {
	saved []string
}

func (f *fakeStorage) Save(_ context.Context, contentType string, content io.Reader) (string, error) {
	_, err := io.Copy(io.Discard, content)
	if err != nil {
		return "", err
	}
	ref := "/uploads/test-photo"
	f.saved = append(f.saved, contentType)
	return ref, nil
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    employee.Repository
		service *employee.Service
		handler *employee.Handler
		photos  *fakeStorage
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employee.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo = employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, slogger)
		photos = &fakeStorage{}
		handler = employee.NewHandler(service, photos)
		handler.BaseHandler = &transport.BaseHandler{Logger: slogger}

		router = chi.NewRouter()
		router.Get("/employees", handler.List)
		router.Post("/employees", handler.Create)
		router.Get("/employees/{id}", handler.Get)
		router.Put("/employees/{id}", handler.Update)
		router.Delete("/employees/{id}", handler.Delete)
	})

	decodeEnvelope := func(w *httptest.ResponseRecorder) transport.Response {
		var resp transport.Response
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	createEmployee := func() int64 {
		emp := &employee.Employee{
			Name:        "Rahim Uddin",
			Age:         28,
			Designation: "Software Engineer",
			HiringDate:  "2024-01-15",
			DateOfBirth: "1997-05-20",
			Salary:      75000,
		}
		Expect(repo.Create(emp)).To(Succeed())
		return emp.ID
	}

	Describe("GET /employees", func() {
		It("should return the envelope with pagination meta", func() {
			createEmployee()

			req := httptest.NewRequest(http.MethodGet, "/employees?page=1&limit=10", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeEnvelope(w)
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Message).To(Equal("Employees fetched successfully"))
			Expect(resp.Meta).NotTo(BeNil())
			Expect(resp.Meta.Total).To(Equal(int64(1)))
			Expect(resp.Meta.TotalPages).To(Equal(1))
		})
	})

	Describe("POST /employees", func() {
		It("should create an employee from a JSON body", func() {
			body := `{"name":"Karim Hossain","age":32,"designation":"Senior Developer","hiring_date":"2023-06-01","date_of_birth":"1993-11-10","salary":95000}`
			req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeEnvelope(w)
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Message).To(Equal("Employee created successfully"))
		})

		It("should create an employee from a multipart form with a photo", func() {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			Expect(form.WriteField("name", "Fatema Akter")).To(Succeed())
			Expect(form.WriteField("age", "25")).To(Succeed())
			Expect(form.WriteField("designation", "Junior Developer")).To(Succeed())
			Expect(form.WriteField("hiring_date", "2025-02-01")).To(Succeed())
			Expect(form.WriteField("date_of_birth", "2000-03-15")).To(Succeed())
			Expect(form.WriteField("salary", "45000")).To(Succeed())

			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
			header.Set("Content-Type", "image/png")
			part, err := form.CreatePart(header)
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("png-bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(form.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/employees", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(photos.saved).To(ConsistOf("image/png"))

			resp := decodeEnvelope(w)
			data, ok := resp.Data.(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(data["photo_path"]).To(Equal("/uploads/test-photo"))
		})

		It("should reject a photo outside the image allow-list", func() {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			Expect(form.WriteField("name", "Fatema Akter")).To(Succeed())

			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="photo"; filename="notes.txt"`)
			header.Set("Content-Type", "text/plain")
			part, err := form.CreatePart(header)
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("not an image"))
			Expect(err).NotTo(HaveOccurred())
			Expect(form.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/employees", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			resp := decodeEnvelope(w)
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Only JPEG, PNG, and WebP images are allowed"))
		})

		It("should reject an invalid JSON body", func() {
			req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeEnvelope(w).Message).To(Equal("Invalid request body"))
		})

		It("should surface validation messages", func() {
			body := `{"name":"Karim Hossain","age":17,"designation":"Senior Developer","hiring_date":"2023-06-01","date_of_birth":"1993-11-10","salary":95000}`
			req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeEnvelope(w).Message).To(Equal("Employee must be at least 18 years old"))
		})
	})

	Describe("GET /employees/{id}", func() {
		It("should fetch one employee", func() {
			id := createEmployee()

			req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeEnvelope(w)
			Expect(resp.Message).To(Equal("Employee fetched successfully"))
			data, ok := resp.Data.(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(data["id"]).To(BeNumerically("==", id))
		})

		It("should return 404 for an unknown employee", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/404", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeEnvelope(w).Message).To(Equal("Employee not found"))
		})

		It("should reject a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/abc", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeEnvelope(w).Message).To(Equal("Invalid employee ID"))
		})
	})

	Describe("PUT /employees/{id}", func() {
		It("should apply a partial update", func() {
			createEmployee()

			req := httptest.NewRequest(http.MethodPut, "/employees/1", strings.NewReader(`{"designation":"Senior Developer"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeEnvelope(w)
			Expect(resp.Message).To(Equal("Employee updated successfully"))
			data, ok := resp.Data.(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(data["designation"]).To(Equal("Senior Developer"))
			Expect(data["name"]).To(Equal("Rahim Uddin"))
		})

		It("should reject an update with no recognized fields", func() {
			createEmployee()

			req := httptest.NewRequest(http.MethodPut, "/employees/1", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeEnvelope(w).Message).To(Equal("At least one field must be provided"))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("should soft-delete and hide the employee", func() {
			id := createEmployee()

			req := httptest.NewRequest(http.MethodDelete, "/employees/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeEnvelope(w).Message).To(Equal("Employee deleted successfully"))

			_, err := repo.GetByID(id)
			Expect(err).To(HaveOccurred())
		})

		It("should return 404 when deleting twice", func() {
			createEmployee()

			first := httptest.NewRecorder()
			router.ServeHTTP(first, httptest.NewRequest(http.MethodDelete, "/employees/1", nil))
			Expect(first.Code).To(Equal(http.StatusOK))

			second := httptest.NewRecorder()
			router.ServeHTTP(second, httptest.NewRequest(http.MethodDelete, "/employees/1", nil))
			Expect(second.Code).To(Equal(http.StatusNotFound))
			Expect(decodeEnvelope(second).Message).To(Equal("Employee not found"))
		})
	})
})
