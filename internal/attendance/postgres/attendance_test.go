package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	"github.com/frahmantamala/hr-management/internal/employee"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

var _ = Describe("Attendance Repository", func() {
	var (
		db   *gorm.DB
		repo attendance.Repository
	)

	seedEmployee := func(name string) *employee.Employee {
		emp := &employee.Employee{
			Name:        name,
			Age:         28,
			Designation: "Software Engineer",
			HiringDate:  "2024-01-15",
			DateOfBirth: "1997-05-20",
			Salary:      75000,
		}
		Expect(db.Create(emp).Error).NotTo(HaveOccurred())
		return emp
	}

	checkIn := func(employeeID int64, date, t string) *attendance.Attendance {
		att, err := repo.Upsert(&attendance.Attendance{
			EmployeeID:  employeeID,
			Date:        date,
			CheckInTime: t,
		})
		Expect(err).NotTo(HaveOccurred())
		return att
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employee.Employee{}, &attendance.Attendance{})
		Expect(err).NotTo(HaveOccurred())

		repo = attendancePostgres.NewAttendanceRepository(db)
	})

	Describe("Upsert", func() {
		It("should insert a first check-in", func() {
			emp := seedEmployee("Rahim Uddin")

			att := checkIn(emp.ID, "2025-08-01", "09:30:00")
			Expect(att.ID).To(BeNumerically(">", 0))
			Expect(att.CheckInTime).To(Equal("09:30:00"))
		})

		It("should overwrite the time for the same employee and date", func() {
			emp := seedEmployee("Rahim Uddin")

			first := checkIn(emp.ID, "2025-08-01", "09:30:00")
			second := checkIn(emp.ID, "2025-08-01", "10:15:00")

			Expect(second.ID).To(Equal(first.ID))
			Expect(second.CheckInTime).To(Equal("10:15:00"))

			var count int64
			Expect(db.Model(&attendance.Attendance{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should keep separate rows for different dates", func() {
			emp := seedEmployee("Rahim Uddin")

			checkIn(emp.ID, "2025-08-01", "09:30:00")
			checkIn(emp.ID, "2025-08-02", "09:30:00")

			var count int64
			Expect(db.Model(&attendance.Attendance{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})

	Describe("List", func() {
		It("should order by descending date", func() {
			emp := seedEmployee("Rahim Uddin")
			checkIn(emp.ID, "2025-08-01", "09:30:00")
			checkIn(emp.ID, "2025-08-03", "09:30:00")
			checkIn(emp.ID, "2025-08-02", "09:30:00")

			records, total, err := repo.List(attendance.ListFilters{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(records[0].Date).To(Equal("2025-08-03"))
			Expect(records[2].Date).To(Equal("2025-08-01"))
		})

		It("should combine employee and date-range filters", func() {
			rahim := seedEmployee("Rahim Uddin")
			karim := seedEmployee("Karim Hossain")
			checkIn(rahim.ID, "2025-08-01", "09:30:00")
			checkIn(rahim.ID, "2025-08-10", "09:30:00")
			checkIn(karim.ID, "2025-08-10", "09:30:00")

			records, total, err := repo.List(attendance.ListFilters{
				EmployeeID: &rahim.ID,
				From:       "2025-08-05",
				To:         "2025-08-15",
				Page:       1,
				Limit:      10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(records[0].EmployeeID).To(Equal(rahim.ID))
			Expect(records[0].Date).To(Equal("2025-08-10"))
		})

		It("should filter by an exact date", func() {
			emp := seedEmployee("Rahim Uddin")
			checkIn(emp.ID, "2025-08-01", "09:30:00")
			checkIn(emp.ID, "2025-08-02", "09:30:00")

			records, total, err := repo.List(attendance.ListFilters{Date: "2025-08-02", Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(records[0].Date).To(Equal("2025-08-02"))
		})
	})

	Describe("GetByID and Delete", func() {
		It("should report not found for an unknown id", func() {
			_, err := repo.GetByID(404)
			Expect(err).To(MatchError(internal.ErrAttendanceNotFound))
		})

		It("should remove a record permanently", func() {
			emp := seedEmployee("Rahim Uddin")
			att := checkIn(emp.ID, "2025-08-01", "09:30:00")

			Expect(repo.Delete(att.ID)).To(Succeed())

			_, err := repo.GetByID(att.ID)
			Expect(err).To(MatchError(internal.ErrAttendanceNotFound))
		})
	})

	Describe("MonthlyReport", func() {
		It("should count presence and lateness per employee", func() {
			rahim := seedEmployee("Rahim Uddin")
			karim := seedEmployee("Karim Hossain")

			checkIn(rahim.ID, "2025-08-01", "09:30:00")
			checkIn(rahim.ID, "2025-08-02", "10:00:00")
			checkIn(karim.ID, "2025-08-01", "09:00:00")

			rows, err := repo.MonthlyReport("2025-08-01", "2025-08-31", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			Expect(rows[0].EmployeeID).To(Equal(rahim.ID))
			Expect(rows[0].Name).To(Equal("Rahim Uddin"))
			Expect(rows[0].DaysPresent).To(Equal(2))
			Expect(rows[0].TimesLate).To(Equal(1))

			Expect(rows[1].EmployeeID).To(Equal(karim.ID))
			Expect(rows[1].TimesLate).To(Equal(0))
		})

		It("should not count a 09:45:00 check-in as late", func() {
			emp := seedEmployee("Fatema Akter")
			checkIn(emp.ID, "2025-08-01", "09:45:00")
			checkIn(emp.ID, "2025-08-02", "09:46:00")

			rows, err := repo.MonthlyReport("2025-08-01", "2025-08-31", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].DaysPresent).To(Equal(2))
			Expect(rows[0].TimesLate).To(Equal(1))
		})

		It("should exclude check-ins outside the month", func() {
			emp := seedEmployee("Rahim Uddin")
			checkIn(emp.ID, "2025-07-31", "09:30:00")
			checkIn(emp.ID, "2025-08-01", "09:30:00")
			checkIn(emp.ID, "2025-09-01", "09:30:00")

			rows, err := repo.MonthlyReport("2025-08-01", "2025-08-31", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].DaysPresent).To(Equal(1))
		})

		It("should exclude soft-deleted employees", func() {
			kept := seedEmployee("Karim Hossain")
			gone := seedEmployee("Rahim Uddin")
			checkIn(kept.ID, "2025-08-01", "09:30:00")
			checkIn(gone.ID, "2025-08-01", "09:30:00")

			Expect(db.Delete(&employee.Employee{}, gone.ID).Error).NotTo(HaveOccurred())

			rows, err := repo.MonthlyReport("2025-08-01", "2025-08-31", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].EmployeeID).To(Equal(kept.ID))
		})

		It("should narrow to one employee when asked", func() {
			rahim := seedEmployee("Rahim Uddin")
			karim := seedEmployee("Karim Hossain")
			checkIn(rahim.ID, "2025-08-01", "09:30:00")
			checkIn(karim.ID, "2025-08-01", "09:30:00")

			rows, err := repo.MonthlyReport("2025-08-01", "2025-08-31", &karim.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].EmployeeID).To(Equal(karim.ID))
		})

		It("should return an empty slice for a month with no rows", func() {
			rows, err := repo.MonthlyReport("2025-01-01", "2025-01-31", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
			Expect(rows).NotTo(BeNil())
		})
	})
})
