// Command console is an interactive terminal client for the course
// evaluation API. It drives the same view-state machinery a graphical
// client would, over the rest repository profile.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/logger"
	"github.com/courseval/courseval-backend/internal/rating"
	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/repository/memory"
	"github.com/courseval/courseval-backend/internal/repository/rest"
	"github.com/courseval/courseval-backend/internal/session"
	"github.com/courseval/courseval-backend/internal/viewstate"
)

func main() {
	var (
		apiURL  string
		profile string
	)
	flag.StringVar(&apiURL, "api", "http://localhost:8080", "Base URL of the API server")
	flag.StringVar(&profile, "profile", "rest", `Data profile: "rest" (live server) or "memory" (offline fixture)`)
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	var (
		sess    *session.Context
		courses repository.CourseRepository
		evals   repository.EvaluationRepository
		target  string
	)
	switch profile {
	case "memory":
		// Offline mode: the seeded fixture catalog, with artificial latency
		// so the experience matches a real round-trip.
		store := memory.NewFixture(cfg.MockLatency)
		sess = session.NewContext(&session.StaticProvider{
			Accounts: map[string]string{
				"admin@example.com": "password123",
				"user@example.com":  "password123",
			},
			Admins: map[string]bool{"admin@example.com": true},
		})
		courses = store.Courses()
		evals = store.Evaluations()
		target = "offline fixture"
	case "rest":
		client := rest.New(apiURL, func() string { return sess.Token() }, log)
		sess = session.NewContext(client)
		courses = client.Courses()
		evals = client.Evaluations()
		target = apiURL
	default:
		fmt.Printf("unknown profile %q\n", profile)
		os.Exit(1)
	}

	view := viewstate.NewCourseView(courses, evals, sess, log)
	defer view.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Course evaluation console (%s)\n", target)
	fmt.Println(`Type "help" for commands.`)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "login":
			doLogin(ctx, sess, reader, args[1:])
		case "logout":
			if err := sess.Logout(ctx); err != nil {
				fmt.Println("logout:", err)
			} else {
				fmt.Println("Logged out.")
			}
		case "whoami":
			printSession(sess)
		case "list":
			listCourses(ctx, courses, evals)
		case "open":
			if len(args) < 2 {
				fmt.Println("usage: open <course-id>")
				continue
			}
			openCourse(ctx, view, args[1])
		case "show":
			printView(view)
		case "submit":
			doSubmit(ctx, view, reader)
		case "remove":
			if len(args) < 2 {
				fmt.Println("usage: remove <evaluation-id>")
				continue
			}
			doRemove(ctx, view, args[1])
		case "remove-course":
			doRemoveCourse(ctx, view)
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  list                  list courses with their ratings
  open <course-id>      load a course and its evaluations
  show                  print the loaded course
  submit                submit an evaluation for the loaded course
  remove <eval-id>      remove an evaluation (author or admin)
  remove-course         remove the loaded course (admin)
  login [email]         log in
  logout                log out
  whoami                print session state
  quit                  exit`)
}

func doLogin(ctx context.Context, sess *session.Context, reader *bufio.Reader, args []string) {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("error reading password")
		return
	}

	if err := sess.Login(ctx, email, string(bytePassword)); err != nil {
		if errors.Is(err, repository.ErrUnauthorized) {
			fmt.Println("Invalid email or password.")
			return
		}
		fmt.Println("login:", err)
		return
	}
	printSession(sess)
}

func printSession(sess *session.Context) {
	s := sess.Current()
	if !s.Authenticated {
		fmt.Println("Not logged in.")
		return
	}
	role := "user"
	if s.User.Admin {
		role = "admin"
	}
	fmt.Printf("Logged in as %s (%s)\n", s.User.Email, role)
}

func listCourses(ctx context.Context, courses repository.CourseRepository, evals repository.EvaluationRepository) {
	// The rest profile gets the aggregates straight from the list endpoint;
	// other profiles compute them from the evaluation sets.
	if rc, ok := courses.(*rest.CourseRepository); ok {
		summaries, err := rc.ListSummaries(ctx)
		if err != nil {
			fmt.Println("list:", err)
			return
		}
		for _, s := range summaries {
			printCourseRow(s.ID, s.Title, rating.Aggregate{
				Count:   s.TotalEvaluations,
				Average: s.AverageRating,
				Rated:   s.TotalEvaluations > 0,
			})
		}
		return
	}

	list, err := courses.List(ctx)
	if err != nil {
		fmt.Println("list:", err)
		return
	}
	for _, c := range list {
		evs, err := evals.ListByCourse(ctx, c.ID)
		if err != nil {
			fmt.Println("list:", err)
			return
		}
		printCourseRow(c.ID, c.Title, rating.Compute(evs))
	}
}

func printCourseRow(id, title string, agg rating.Aggregate) {
	stars := "no ratings yet"
	if agg.Rated {
		stars = fmt.Sprintf("%.1f (%d)", agg.Rounded(), agg.Count)
	}
	fmt.Printf("  %-36s  %-45s  %s\n", id, title, stars)
}

func openCourse(ctx context.Context, view *viewstate.CourseView, id string) {
	if err := view.Load(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Println("Course not found.")
			return
		}
		fmt.Println("open:", err)
		return
	}
	printView(view)
}

func printView(view *viewstate.CourseView) {
	snap := view.Snapshot()
	if snap == nil {
		fmt.Println("No course loaded.")
		return
	}

	agg := view.Aggregate()
	fmt.Printf("%s — %s (%dh)\n", snap.Title, snap.Instructor, snap.Hours)
	fmt.Println(snap.Description)
	if agg.Rated {
		fmt.Printf("Rating: %.1f from %d evaluation(s)\n", agg.Rounded(), agg.Count)
	} else {
		fmt.Println("Rating: no ratings yet")
	}
	for _, e := range snap.Evaluations {
		fmt.Printf("  [%s] %d/5 %q by %s\n", e.ID, e.Rating, e.Title, e.StudentEmail)
	}
}

func doSubmit(ctx context.Context, view *viewstate.CourseView, reader *bufio.Reader) {
	fmt.Print("Rating (1-5): ")
	line, _ := reader.ReadString('\n')
	ratingVal, _ := strconv.Atoi(strings.TrimSpace(line))

	fmt.Print("Title: ")
	title, _ := reader.ReadString('\n')

	fmt.Print("Description: ")
	description, _ := reader.ReadString('\n')

	fields, err := view.SubmitEvaluation(ctx, viewstate.EvaluationInput{
		Rating:      ratingVal,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		fmt.Println("submit:", err)
		return
	}
	if len(fields) > 0 {
		for field, msg := range fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}

	agg := view.Aggregate()
	fmt.Printf("Submitted. Rating is now %.1f from %d evaluation(s).\n", agg.Rounded(), agg.Count)
}

func doRemove(ctx context.Context, view *viewstate.CourseView, id string) {
	if err := view.RemoveEvaluation(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			fmt.Println("Evaluation not found.")
		case errors.Is(err, viewstate.ErrForbidden):
			fmt.Println("Only the author or an admin may remove an evaluation.")
		default:
			fmt.Println("remove:", err)
		}
		return
	}

	agg := view.Aggregate()
	if agg.Rated {
		fmt.Printf("Removed. Rating is now %.1f from %d evaluation(s).\n", agg.Rounded(), agg.Count)
	} else {
		fmt.Println("Removed. No ratings left.")
	}
}

func doRemoveCourse(ctx context.Context, view *viewstate.CourseView) {
	if err := view.RemoveCourse(ctx); err != nil {
		if reason, ok := repository.IsConflict(err); ok {
			fmt.Println("Cannot remove:", reason)
			return
		}
		if errors.Is(err, viewstate.ErrForbidden) {
			fmt.Println("Only an admin may remove a course.")
			return
		}
		fmt.Println("remove-course:", err)
		return
	}
	fmt.Println("Course removed.")
}
