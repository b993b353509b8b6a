// cli — терминальный фронтенд дневника мыслей: разбор подкоманд и вывод.
//
// Команды тонкие: всё общение с API делает internal/client, здесь только
// флаги, чтение ввода и отрисовка.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"thought-diary-cli/internal/client"
)

// App — зависимости команд.
type App struct {
	Client *client.Client
	Out    io.Writer
	In     io.Reader
}

const usage = `thought diary client

usage: diary-cli <command> [flags]

commands:
  register   -email -password      create an account
  login      -email -password      sign in and store tokens
  logout                           sign out and drop stored tokens
  me                               show current user and session expiry
  list       [-page] [-per-page]   list diary entries
  show       -id                   show one entry with sentiment colors
  create     [-text]               create an entry (stdin when -text empty)
  edit       -id [-text]           replace entry text
  delete     -id                   delete an entry
  stats                            sentiment totals for your diary
  health                           check API availability
  version                          show API version
`

// Run выполняет одну подкоманду. Ошибки API возвращаются вызывающему
// уже нормализованными ({error, message}).
func (a *App) Run(ctx context.Context, args []string) error {
	if a.In == nil {
		a.In = os.Stdin
	}

	if len(args) == 0 {
		fmt.Fprint(a.Out, usage)
		return errors.New("command required")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return a.cmdRegister(ctx, rest)
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout(ctx)
	case "me":
		return a.cmdMe(ctx)
	case "list":
		return a.cmdList(ctx, rest)
	case "show":
		return a.cmdShow(ctx, rest)
	case "create":
		return a.cmdCreate(ctx, rest)
	case "edit":
		return a.cmdEdit(ctx, rest)
	case "delete":
		return a.cmdDelete(ctx, rest)
	case "stats":
		return a.cmdStats(ctx)
	case "health":
		return a.cmdHealth(ctx)
	case "version":
		return a.cmdVersion(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usage)
		return nil
	default:
		fmt.Fprint(a.Out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.Client.Register(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "registered %s (id %d), you can login now\n", user.Email, user.ID)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.Client.Login(ctx, *email, *password); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "logged in as %s\n", *email)
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.Client.Logout(ctx); err != nil {
		// Токены уже стёрты; серверную ошибку только показываем.
		fmt.Fprintf(a.Out, "logged out locally (server said: %v)\n", err)
		return nil
	}

	fmt.Fprintln(a.Out, "logged out")
	return nil
}

func (a *App) cmdMe(ctx context.Context) error {
	user, err := a.Client.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "id:    %d\nemail: %s\n", user.ID, user.Email)

	if info, err := a.Client.SessionInfo(); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.Out, "session expires: %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}

	return nil
}

func (a *App) cmdList(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 10, "items per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.Client.ListDiaries(ctx, *page, *perPage)
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		fmt.Fprintln(a.Out, "no entries")
		return nil
	}

	for _, d := range result.Items {
		fmt.Fprintf(a.Out, "#%-4d %s  [+%d/-%d]  %s\n",
			d.ID,
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
			d.PositiveCount,
			d.NegativeCount,
			preview(d.Content, 60),
		)
	}

	fmt.Fprintln(a.Out, renderPager(result.Pagination))
	return nil
}

func (a *App) cmdShow(ctx context.Context, args []string) error {
	fs := newFlagSet("show")
	id := fs.Int64("id", 0, "entry id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := a.Client.GetDiary(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "#%d  %s  [+%d/-%d]\n\n%s\n",
		d.ID,
		d.CreatedAt.Local().Format("2006-01-02 15:04"),
		d.PositiveCount,
		d.NegativeCount,
		renderMarked(d.AnalyzedContent),
	)
	return nil
}

// readContent берёт текст записи из -text либо из stdin.
func (a *App) readContent(text string) (string, error) {
	if text != "" {
		return text, nil
	}

	raw, err := io.ReadAll(a.In)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(string(raw), "\n"), nil
}

func (a *App) cmdCreate(ctx context.Context, args []string) error {
	fs := newFlagSet("create")
	text := fs.String("text", "", "entry text; stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content, err := a.readContent(*text)
	if err != nil {
		return err
	}

	d, err := a.Client.CreateDiary(ctx, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "created #%d  [+%d/-%d]\n%s\n",
		d.ID, d.PositiveCount, d.NegativeCount, renderMarked(d.AnalyzedContent))
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	fs := newFlagSet("edit")
	id := fs.Int64("id", 0, "entry id")
	text := fs.String("text", "", "entry text; stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content, err := a.readContent(*text)
	if err != nil {
		return err
	}

	d, err := a.Client.UpdateDiary(ctx, *id, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "updated #%d  [+%d/-%d]\n%s\n",
		d.ID, d.PositiveCount, d.NegativeCount, renderMarked(d.AnalyzedContent))
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	id := fs.Int64("id", 0, "entry id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Client.DeleteDiary(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "deleted #%d\n", *id)
	return nil
}

func (a *App) cmdStats(ctx context.Context) error {
	stats, err := a.Client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "entries:  %d\npositive: %d\nnegative: %d\nneutral:  %d\n",
		stats.TotalEntries, stats.PositiveEntries, stats.NegativeEntries, stats.NeutralEntries)
	return nil
}

func (a *App) cmdHealth(ctx context.Context) error {
	h, err := a.Client.Health(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "%s (%s)\n", h.Status, h.Timestamp)
	return nil
}

func (a *App) cmdVersion(ctx context.Context) error {
	v, err := a.Client.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "api %s, version %s\n", v.API, v.Version)
	return nil
}
