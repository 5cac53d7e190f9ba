package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dayoung-lee/taskboard/internal/client"
	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

const usage = `taskcli - task board client

Usage:
  taskcli [-api URL] <command> [arguments]

Commands:
  register -username NAME -email ADDR -password PW -confirm PW
  login    -username NAME -password PW
  logout
  me
  list     [-filter all|todo|in-progress|completed]
  add      -title TITLE [-desc TEXT] [-status S] [-priority P]
  set      -id ID [-title TITLE] [-desc TEXT] [-status S] [-priority P]
  done     -id ID
  rm       -id ID
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("taskcli", flag.ExitOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	apiURL := global.String("api", envOrDefault("TASKBOARD_API", "http://localhost:8080"), "backend base URL")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.OpenFile(storage.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	api := client.NewAPI(*apiURL, &http.Client{Timeout: 15 * time.Second})
	auth := client.NewAuthStore(ctx, api, store)
	tasks := client.NewTaskStore(api, auth)

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return runRegister(ctx, auth, rest)
	case "login":
		return runLogin(ctx, auth, rest)
	case "logout":
		auth.Logout(ctx)
		fmt.Println("Logged out successfully")
		return nil
	case "me":
		return runMe(auth)
	case "list":
		return runList(ctx, tasks, rest)
	case "add":
		return runAdd(ctx, tasks, rest)
	case "set":
		return runSet(ctx, tasks, rest)
	case "done":
		return runDone(ctx, tasks, rest)
	case "rm":
		return runRemove(ctx, tasks, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runRegister(ctx context.Context, auth *client.AuthStore, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := auth.Register(ctx, client.RegisterInput{
		Username:        *username,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}

	user, _ := auth.User()
	fmt.Printf("registered and logged in as %s\n", user.Username)
	return nil
}

func runLogin(ctx context.Context, auth *client.AuthStore, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := auth.Login(ctx, *username, *password); err != nil {
		return err
	}

	user, _ := auth.User()
	fmt.Printf("logged in as %s\n", user.Username)
	return nil
}

func runMe(auth *client.AuthStore) error {
	user, ok := auth.User()
	if !ok {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
	return nil
}

func runList(ctx context.Context, tasks *client.TaskStore, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", "all", "status filter: all, todo, in-progress, completed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := model.Filter(*filter)
	if !f.IsValid() {
		return fmt.Errorf("invalid filter %q", *filter)
	}

	if err := tasks.Fetch(ctx); err != nil {
		return err
	}
	tasks.SetFilter(f)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCREATED\tTITLE")
	for _, t := range tasks.Visible() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Status, t.Priority, t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Title)
	}
	return w.Flush()
}

func runAdd(ctx context.Context, tasks *client.TaskStore, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "description")
	status := fs.String("status", "", "initial status")
	priority := fs.String("priority", "", "priority")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := tasks.Create(ctx, client.CreateTask{
		Title:       *title,
		Description: *desc,
		Status:      model.TaskStatus(*status),
		Priority:    model.TaskPriority(*priority),
	})
	if err != nil {
		return err
	}

	fmt.Println("task created")
	return nil
}

func runSet(ctx context.Context, tasks *client.TaskStore, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	status := fs.String("status", "", "new status")
	priority := fs.String("priority", "", "new priority")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	input := client.UpdateTask{ID: *id}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			input.Title = title
		case "desc":
			input.Description = desc
		case "status":
			s := model.TaskStatus(*status)
			input.Status = &s
		case "priority":
			p := model.TaskPriority(*priority)
			input.Priority = &p
		}
	})

	if err := tasks.Update(ctx, input); err != nil {
		return err
	}

	fmt.Println("task updated")
	return nil
}

func runDone(ctx context.Context, tasks *client.TaskStore, args []string) error {
	fs := flag.NewFlagSet("done", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	status := model.TaskStatusCompleted
	if err := tasks.Update(ctx, client.UpdateTask{ID: *id, Status: &status}); err != nil {
		return err
	}

	fmt.Println("task completed")
	return nil
}

func runRemove(ctx context.Context, tasks *client.TaskStore, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := tasks.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Println("Task deleted successfully")
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
