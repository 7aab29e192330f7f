package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/queries"
	"github.com/brunopinheiroeu/artori-sub001/internal/query"
	"github.com/brunopinheiroeu/artori-sub001/internal/table"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	queries *queries.Queries
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL -password PASSWORD   - sign in and store the session")
	fmt.Fprintln(cli.out, "  logout                                  - forget the stored session")
	fmt.Fprintln(cli.out, "  me                                      - show the signed-in user")
	fmt.Fprintln(cli.out, "  exams                                   - list the exam catalog")
	fmt.Fprintln(cli.out, "  questions -exam ID -subject ID          - list practice questions")
	fmt.Fprintln(cli.out, "  answer -question ID -answer CHOICE      - submit an answer")
	fmt.Fprintln(cli.out, "  select-exam -exam ID                    - choose your exam track")
	fmt.Fprintln(cli.out, "  health [-watch]                         - probe (or poll) the backend")
	fmt.Fprintln(cli.out, "  admin-stats                             - dashboard counters")
	fmt.Fprintln(cli.out, "  admin-users [-page N -size N -search S] - account table")
	fmt.Fprintln(cli.out, "  admin-exams [-page N -size N -search S] - exam table")
	fmt.Fprintln(cli.out, "  admin-questions [-page N -size N]       - question table")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" || *password == "" {
			fs.Usage()
			return errHelp
		}
		return cli.login(ctx, *email, *password)

	case "logout":
		if err := cli.queries.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Signed out.")
		return nil

	case "me":
		usr, err := cli.queries.CurrentUser().Get(ctx)
		if errors.Is(err, query.ErrDisabled) {
			fmt.Fprintln(cli.out, "Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s <%s> role=%s\n", usr.Name, usr.Email, usr.Role)
		return nil

	case "exams":
		exams, err := cli.queries.Exams().Get(ctx)
		if err != nil {
			return err
		}
		return cli.renderExams(exams)

	case "questions":
		fs := flag.NewFlagSet("questions", flag.ExitOnError)
		examID := fs.String("exam", "", "exam id")
		subjectID := fs.String("subject", "", "subject id")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *examID == "" || *subjectID == "" {
			fs.Usage()
			return errHelp
		}
		qs, err := cli.queries.Questions(*examID, *subjectID).Get(ctx)
		if err != nil {
			return err
		}
		for _, q := range qs {
			fmt.Fprintf(cli.out, "[%s] %s\n", q.ID, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(cli.out, "    %s) %s\n", opt.ID, opt.Text)
			}
		}
		return nil

	case "answer":
		fs := flag.NewFlagSet("answer", flag.ExitOnError)
		questionID := fs.String("question", "", "question id")
		answer := fs.String("answer", "", "chosen option id")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *questionID == "" || *answer == "" {
			fs.Usage()
			return errHelp
		}
		result, err := cli.queries.SubmitAnswer().Do(ctx, queries.AnswerArgs{QuestionID: *questionID, Answer: *answer})
		if err != nil {
			return err
		}
		if result.Correct {
			fmt.Fprintln(cli.out, "Correct!")
		} else {
			fmt.Fprintf(cli.out, "Incorrect. The right answer is %s.\n", result.CorrectAnswer)
		}
		if result.Explanation.Summary != "" {
			fmt.Fprintln(cli.out, result.Explanation.Summary)
		}
		return nil

	case "select-exam":
		fs := flag.NewFlagSet("select-exam", flag.ExitOnError)
		examID := fs.String("exam", "", "exam id")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *examID == "" {
			fs.Usage()
			return errHelp
		}
		usr, err := cli.queries.SelectExam().Do(ctx, *examID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Selected exam %s. Next stop: %s\n", *examID, usr.RedirectTarget())
		return nil

	case "health":
		fs := flag.NewFlagSet("health", flag.ExitOnError)
		watch := fs.Bool("watch", false, "poll every 30s until interrupted")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		return cli.health(ctx, *watch)

	case "admin-stats":
		stats, err := cli.queries.DashboardStats().Get(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "users=%d active=%d exams=%d questions=%d answers_today=%d signups_this_week=%d\n",
			stats.TotalUsers, stats.ActiveUsers, stats.TotalExams, stats.TotalQuestions,
			stats.AnswersToday, stats.SignupsThisWeek)
		return nil

	case "admin-users":
		return cli.adminUsers(ctx, args[2:])

	case "admin-exams":
		return cli.adminExams(ctx, args[2:])

	case "admin-questions":
		return cli.adminQuestions(ctx, args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, email, password string) error {
	res, err := cli.queries.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Welcome %s. Next stop: %s\n", res.User.Name, res.User.RedirectTarget())
	return nil
}

func (cli *commandLine) health(ctx context.Context, watch bool) error {
	if !watch {
		res, err := cli.queries.Health().Get(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "status=%s\n", res.Status)
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	stop := cli.queries.HealthPoller(func(res dto.HealthResponse, err error) {
		if err != nil {
			fmt.Fprintf(cli.out, "status=unreachable (%v)\n", err)
			return
		}
		fmt.Fprintf(cli.out, "status=%s\n", res.Status)
	}).Start(ctx)
	defer stop()

	<-ctx.Done()
	return nil
}

func listFlags(name string, args []string) (dto.ListParams, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	page := fs.Int("page", 1, "1-based page")
	size := fs.Int("size", 10, "rows per page")
	search := fs.String("search", "", "filter term")
	sortBy := fs.String("sort", "", "server-side sort column")
	if err := fs.Parse(args); err != nil {
		return dto.ListParams{}, err
	}
	return dto.ListParams{Page: *page, PageSize: *size, Search: *search, SortBy: *sortBy}, nil
}

func (cli *commandLine) adminUsers(ctx context.Context, args []string) error {
	params, err := listFlags("admin-users", args)
	if err != nil {
		return err
	}
	res, err := cli.queries.Users(params).Get(ctx)
	if err != nil {
		return err
	}

	t := table.New(table.ModeServer, []table.Column[models.User]{
		{Key: "id", Label: "ID", Value: func(u models.User) any { return u.ID }},
		{Key: "name", Label: "NAME", Value: func(u models.User) any { return u.Name }, Sortable: true},
		{Key: "email", Label: "EMAIL", Value: func(u models.User) any { return u.Email }, Sortable: true},
		{Key: "role", Label: "ROLE", Value: func(u models.User) any { return string(u.Role) }},
		{Key: "active", Label: "ACTIVE", Value: func(u models.User) any { return u.IsActive }},
	}, params.PageSize)
	t.SetRows(res.Users)
	t.SetServerTotal(res.Pagination.TotalItems)
	if err := t.Render(cli.out); err != nil {
		return err
	}
	return cli.footer(res.Pagination)
}

func (cli *commandLine) adminExams(ctx context.Context, args []string) error {
	params, err := listFlags("admin-exams", args)
	if err != nil {
		return err
	}
	res, err := cli.queries.AdminExams(params).Get(ctx)
	if err != nil {
		return err
	}

	t := table.New(table.ModeServer, examColumns(), params.PageSize)
	t.SetRows(res.Exams)
	t.SetServerTotal(res.Pagination.TotalItems)
	if err := t.Render(cli.out); err != nil {
		return err
	}
	return cli.footer(res.Pagination)
}

func (cli *commandLine) adminQuestions(ctx context.Context, args []string) error {
	params, err := listFlags("admin-questions", args)
	if err != nil {
		return err
	}
	res, err := cli.queries.AdminQuestions(params).Get(ctx)
	if err != nil {
		return err
	}

	t := table.New(table.ModeServer, []table.Column[models.AdminQuestion]{
		{Key: "id", Label: "ID", Value: func(q models.AdminQuestion) any { return q.ID }},
		{Key: "subject", Label: "SUBJECT", Value: func(q models.AdminQuestion) any { return q.SubjectID }, Sortable: true},
		{Key: "question", Label: "QUESTION", Value: func(q models.AdminQuestion) any { return q.Question.Question }},
		{Key: "correct", Label: "CORRECT", Value: func(q models.AdminQuestion) any { return q.CorrectAnswer }},
	}, params.PageSize)
	t.SetRows(res.Questions)
	t.SetServerTotal(res.Pagination.TotalItems)
	if err := t.Render(cli.out); err != nil {
		return err
	}
	return cli.footer(res.Pagination)
}

// renderExams shows the public catalog through a local-mode table.
func (cli *commandLine) renderExams(exams []models.Exam) error {
	t := table.New(table.ModeLocal, examColumns(), len(exams)+1)
	t.SetRows(exams)
	return t.Render(cli.out)
}

func examColumns() []table.Column[models.Exam] {
	return []table.Column[models.Exam]{
		{Key: "id", Label: "ID", Value: func(e models.Exam) any { return e.ID }},
		{Key: "name", Label: "NAME", Value: func(e models.Exam) any { return e.Name }, Sortable: true},
		{Key: "country", Label: "COUNTRY", Value: func(e models.Exam) any { return e.Country }, Sortable: true},
		{Key: "subjects", Label: "SUBJECTS", Value: func(e models.Exam) any { return len(e.Subjects) },
			Render: func(e models.Exam) string { return strconv.Itoa(len(e.Subjects)) }},
	}
}

func (cli *commandLine) footer(p dto.PaginationInfo) error {
	_, err := fmt.Fprintf(cli.out, "page %d/%d (%d items)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	return err
}
