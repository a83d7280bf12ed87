package memory

import (
	"time"

	"github.com/courseval/courseval-backend/internal/model"
)

// NewFixture creates a Store preloaded with the development catalog: four
// courses, five evaluations, and an admin plus a regular user. Both users
// authenticate with "password123".
func NewFixture(latency time.Duration) *Store {
	s := New(latency)
	for _, u := range FixtureUsers() {
		s.users[u.ID] = u
	}
	for _, c := range FixtureCourses() {
		s.courses[c.ID] = c
	}
	for _, e := range FixtureEvaluations() {
		s.evaluations[e.ID] = e
	}
	return s
}

// FixtureUsers returns the seeded accounts. PasswordHash is a bcrypt hash of
// "password123" (cost 10).
func FixtureUsers() []model.User {
	const passwordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	return []model.User{
		{
			ID:           "1",
			Email:        "admin@example.com",
			Name:         "Admin User",
			Role:         model.RoleAdmin,
			PasswordHash: passwordHash,
			CreatedAt:    ts("2025-03-01T08:00:00Z"),
		},
		{
			ID:           "2",
			Email:        "user@example.com",
			Name:         "Regular User",
			Role:         model.RoleUser,
			PasswordHash: passwordHash,
			CreatedAt:    ts("2025-03-01T08:05:00Z"),
		},
	}
}

// FixtureCourses returns the seeded catalog.
func FixtureCourses() []model.Course {
	return []model.Course{
		{
			ID:           "1",
			Title:        "Introduction to Web Development",
			Description:  "Learn the fundamentals of web development including HTML, CSS, and JavaScript.",
			Hours:        40,
			Instructor:   "John Smith",
			CreatorEmail: "admin@example.com",
			CreatedAt:    ts("2025-04-01T10:00:00Z"),
			UpdatedAt:    ts("2025-04-01T10:00:00Z"),
		},
		{
			ID:           "2",
			Title:        "Advanced React Patterns",
			Description:  "Explore advanced patterns and best practices for building scalable React applications.",
			Hours:        30,
			Instructor:   "Jane Doe",
			CreatorEmail: "admin@example.com",
			CreatedAt:    ts("2025-04-02T14:30:00Z"),
			UpdatedAt:    ts("2025-04-02T14:30:00Z"),
		},
		{
			ID:           "3",
			Title:        "Database Design Principles",
			Description:  "Learn how to design efficient and scalable database schemas for various applications.",
			Hours:        35,
			Instructor:   "Robert Johnson",
			CreatorEmail: "admin@example.com",
			CreatedAt:    ts("2025-04-03T09:15:00Z"),
			UpdatedAt:    ts("2025-04-03T09:15:00Z"),
		},
		{
			ID:           "4",
			Title:        "Mobile App Development with React Native",
			Description:  "Build cross-platform mobile applications using React Native and JavaScript.",
			Hours:        45,
			Instructor:   "Sarah Williams",
			CreatorEmail: "admin@example.com",
			CreatedAt:    ts("2025-04-04T11:45:00Z"),
			UpdatedAt:    ts("2025-04-04T11:45:00Z"),
		},
	}
}

// FixtureEvaluations returns the seeded reviews.
func FixtureEvaluations() []model.Evaluation {
	return []model.Evaluation{
		{
			ID:           "1",
			CourseID:     "1",
			StudentEmail: "user@example.com",
			Rating:       5,
			Title:        "Excellent course!",
			Description:  "This course provided a solid foundation in web development. The instructor was very knowledgeable.",
			CreatedAt:    ts("2025-04-10T15:20:00Z"),
		},
		{
			ID:           "2",
			CourseID:     "1",
			StudentEmail: "student1@example.com",
			Rating:       4,
			Title:        "Very informative",
			Description:  "I learned a lot from this course, but some sections could have been more detailed.",
			CreatedAt:    ts("2025-04-11T09:30:00Z"),
		},
		{
			ID:           "3",
			CourseID:     "2",
			StudentEmail: "user@example.com",
			Rating:       5,
			Title:        "Highly recommended",
			Description:  "The advanced React patterns were exactly what I needed to improve my development skills.",
			CreatedAt:    ts("2025-04-12T14:15:00Z"),
		},
		{
			ID:           "4",
			CourseID:     "3",
			StudentEmail: "student2@example.com",
			Rating:       3,
			Title:        "Good but could be better",
			Description:  "The content was good, but the pace was a bit slow. More practical examples would be helpful.",
			CreatedAt:    ts("2025-04-13T10:45:00Z"),
		},
		{
			ID:           "5",
			CourseID:     "4",
			StudentEmail: "user@example.com",
			Rating:       4,
			Title:        "Great practical knowledge",
			Description:  "The hands-on approach was very effective. I'm now confident in building React Native apps.",
			CreatedAt:    ts("2025-04-14T16:00:00Z"),
		},
	}
}

func ts(v string) time.Time {
	t, _ := time.Parse(time.RFC3339, v)
	return t
}
