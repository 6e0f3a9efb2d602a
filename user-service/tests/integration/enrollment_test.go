//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/enrollhub/enrollment-microservice/user-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/repository"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices() (service.UserService, service.CourseService, service.BookingService) {
	userRepo := repository.NewUserRepository(testDB)
	courseRepo := repository.NewCourseRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	return service.NewUserService(userRepo),
		service.NewCourseService(courseRepo),
		service.NewBookingService(bookingRepo, userRepo, courseRepo)
}

func createTestUser(t *testing.T, svc service.UserService, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Username: username,
		Email:    email,
		Age:      30,
	}
	require.NoError(t, svc.CreateUser(context.Background(), user, "secret1"))
	return user
}

func createTestCourse(t *testing.T, svc service.CourseService, code string) *models.Course {
	t.Helper()
	course := &models.Course{Code: code, Name: "Course " + code}
	require.NoError(t, svc.CreateCourse(context.Background(), course))
	return course
}

// Test: N goroutines insert the same course code concurrently → exactly one
// succeeds, the rest get the conflict error from the unique index.
func TestConcurrentCourseCreate_SameCode(t *testing.T) {
	cleanTables()
	_, courseSvc, _ := newServices()

	attempts := 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	conflictCount := 0

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			course := &models.Course{Code: "CS101", Name: "Intro"}
			err := courseSvc.CreateCourse(context.Background(), course)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successCount++
			} else {
				assert.ErrorIs(t, err, service.ErrCourseCodeTaken)
				conflictCount++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "exactly one insert should win")
	assert.Equal(t, attempts-1, conflictCount)

	var count int64
	testDB.Model(&models.Course{}).Where("code = ?", "CS101").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	cleanTables()
	userSvc, _, _ := newServices()

	createTestUser(t, userSvc, "ann1", "ann@x.com")

	dup := &models.User{Name: "Ann", Username: "ann2", Email: "ann@x.com", Age: 30}
	err := userSvc.CreateUser(context.Background(), dup, "secret1")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	dup = &models.User{Name: "Ann", Username: "ann1", Email: "other@x.com", Age: 30}
	err = userSvc.CreateUser(context.Background(), dup, "secret1")
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestCreateUser_NeverStoresPlainPassword(t *testing.T) {
	cleanTables()
	userSvc, _, _ := newServices()

	user := createTestUser(t, userSvc, "ann1", "ann@x.com")

	var stored models.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

// Test: deleting a user that owns N bookings cascades to zero bookings.
func TestDeleteUser_CascadesBookings(t *testing.T) {
	cleanTables()
	userSvc, courseSvc, bookingSvc := newServices()

	user := createTestUser(t, userSvc, "ann1", "ann@x.com")
	for i := 0; i < 3; i++ {
		course := createTestCourse(t, courseSvc, fmt.Sprintf("CS10%d", i))
		_, err := bookingSvc.CreateBooking(context.Background(), user.ID, course.ID)
		require.NoError(t, err)
	}

	var before int64
	testDB.Model(&models.Booking{}).Where("user_id = ?", user.ID).Count(&before)
	require.Equal(t, int64(3), before)

	require.NoError(t, userSvc.DeleteUser(context.Background(), user.ID))

	var after int64
	testDB.Model(&models.Booking{}).Where("user_id = ?", user.ID).Count(&after)
	assert.Equal(t, int64(0), after, "cascade should remove every booking")

	bookings, err := bookingSvc.ListUserBookings(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBooking_DuplicatePairRejected(t *testing.T) {
	cleanTables()
	userSvc, courseSvc, bookingSvc := newServices()

	user := createTestUser(t, userSvc, "ann1", "ann@x.com")
	course := createTestCourse(t, courseSvc, "CS101")

	_, err := bookingSvc.CreateBooking(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	_, err = bookingSvc.CreateBooking(context.Background(), user.ID, course.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyEnrolled)

	var count int64
	testDB.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// Test: booking an unknown user leaves the bookings table untouched.
func TestCreateBooking_UnknownUser_NoRowWritten(t *testing.T) {
	cleanTables()
	userSvc, courseSvc, bookingSvc := newServices()

	createTestUser(t, userSvc, "ann1", "ann@x.com")
	course := createTestCourse(t, courseSvc, "CS101")

	var before int64
	testDB.Model(&models.Booking{}).Count(&before)

	_, err := bookingSvc.CreateBooking(context.Background(), 99999, course.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	var after int64
	testDB.Model(&models.Booking{}).Count(&after)
	assert.Equal(t, before, after, "booking count must be unchanged")
}

func TestGetBooking_NestedCourseMatches(t *testing.T) {
	cleanTables()
	userSvc, courseSvc, bookingSvc := newServices()

	user := createTestUser(t, userSvc, "ann1", "ann@x.com")
	course := createTestCourse(t, courseSvc, "CS101")

	created, err := bookingSvc.CreateBooking(context.Background(), user.ID, course.ID)
	require.NoError(t, err)

	fetched, err := bookingSvc.GetBookingWithCourse(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Course)
	assert.Equal(t, fetched.CourseID, fetched.Course.ID)
	assert.Equal(t, "CS101", fetched.Course.Code)
}

func TestListings_OrderedByID(t *testing.T) {
	cleanTables()
	userSvc, courseSvc, bookingSvc := newServices()

	for i := 0; i < 5; i++ {
		createTestUser(t, userSvc,
			fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@x.com", i))
		createTestCourse(t, courseSvc, fmt.Sprintf("CS10%d", i))
	}
	users, err := userSvc.ListUsers(context.Background())
	require.NoError(t, err)
	for i := 1; i < len(users); i++ {
		assert.Less(t, users[i-1].ID, users[i].ID)
	}

	courses, err := courseSvc.ListCourses(context.Background(), 100, 0)
	require.NoError(t, err)
	for i := 1; i < len(courses); i++ {
		assert.Less(t, courses[i-1].ID, courses[i].ID)
	}

	for i, u := range users {
		_, err := bookingSvc.CreateBooking(context.Background(), u.ID, courses[i].ID)
		require.NoError(t, err)
	}
	bookings, err := bookingSvc.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 5)
	for i := 1; i < len(bookings); i++ {
		assert.Less(t, bookings[i-1].ID, bookings[i].ID)
	}
}

func TestListCourses_Pagination(t *testing.T) {
	cleanTables()
	_, courseSvc, _ := newServices()

	for i := 0; i < 15; i++ {
		createTestCourse(t, courseSvc, fmt.Sprintf("CS%03d", i))
	}

	page1, err := courseSvc.ListCourses(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 10)

	page2, err := courseSvc.ListCourses(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.Greater(t, page2[0].ID, page1[len(page1)-1].ID)
}
